package geocoding

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type stubProvider struct {
	name   string
	result *Result
	err    error
	calls  int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Geocode(ctx context.Context, address string) (*Result, error) {
	s.calls++
	return s.result, s.err
}

func TestResolver_PrimaryHitShortCircuits(t *testing.T) {
	primary := &stubProvider{name: "registry", result: &Result{Longitude: 4.352, Latitude: 50.847}}
	secondary := &stubProvider{name: "mapbox", result: &Result{Longitude: 1, Latitude: 1}}

	r := NewResolver(zerolog.Nop(), primary, secondary)
	result := r.Resolve(context.Background(), "Rue Neuve 1, 1000 Bruxelles, BE")

	assert.Equal(t, primary.result, result)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, secondary.calls, "secondary must not be consulted on a primary hit")
}

func TestResolver_FallsBackOnMiss(t *testing.T) {
	primary := &stubProvider{name: "registry"}
	secondary := &stubProvider{name: "mapbox", result: &Result{Longitude: 4.4, Latitude: 51.2}}

	r := NewResolver(zerolog.Nop(), primary, secondary)
	result := r.Resolve(context.Background(), "Meir 24, 2000 Antwerpen, BE")

	assert.Equal(t, secondary.result, result)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestResolver_ErrorIsTreatedAsMiss(t *testing.T) {
	primary := &stubProvider{name: "registry", err: fmt.Errorf("connection refused")}
	secondary := &stubProvider{name: "mapbox", result: &Result{Longitude: 4.4, Latitude: 51.2}}

	r := NewResolver(zerolog.Nop(), primary, secondary)
	result := r.Resolve(context.Background(), "Meir 24, 2000 Antwerpen, BE")

	assert.Equal(t, secondary.result, result)
}

func TestResolver_AllMissReturnsNil(t *testing.T) {
	primary := &stubProvider{name: "registry"}
	secondary := &stubProvider{name: "mapbox", err: fmt.Errorf("timeout")}

	r := NewResolver(zerolog.Nop(), primary, secondary)

	assert.Nil(t, r.Resolve(context.Background(), "Nowhere 1, 0000 Nergens, BE"))
}
