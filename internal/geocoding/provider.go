// Package geocoding contains the HTTP clients for the external geocoding
// services and the resolver that tries them in priority order.
package geocoding

import "context"

// Result is a normalized successful geocode: coordinates in WGS84 degrees
// plus whatever place metadata the provider returned.
type Result struct {
	Longitude float64
	Latitude  float64
	PlaceName string
	// BBox is west, south, east, north; nil when the provider gave none.
	BBox []float64
}

// Provider is one external geocoding API. Geocode returns (nil, nil) when the
// address is well-formed but unresolvable; a non-nil error signals a
// transport or parse failure. Callers above the resolver never see either
// case: both are absorbed into the retry pipeline.
type Provider interface {
	Name() string
	Geocode(ctx context.Context, address string) (*Result, error)
}
