package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapboxClient_Geocode(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantResult *Result
		wantErr    bool
	}{
		{
			name: "successful match",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "pk.test", r.URL.Query().Get("access_token"))
				assert.Equal(t, "be", r.URL.Query().Get("country"))
				assert.Equal(t, "1", r.URL.Query().Get("limit"))

				w.Write([]byte(`{"features":[{
					"center":[4.352,50.847],
					"place_name":"Rue Neuve 1, 1000 Brussels, Belgium",
					"bbox":[4.3,50.8,4.4,50.9]
				}]}`))
			},
			wantResult: &Result{
				Longitude: 4.352,
				Latitude:  50.847,
				PlaceName: "Rue Neuve 1, 1000 Brussels, Belgium",
				BBox:      []float64{4.3, 50.8, 4.4, 50.9},
			},
		},
		{
			name: "no features is a miss",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"features":[]}`))
			},
			wantResult: nil,
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewMapboxClient(srv.URL, "pk.test")
			result, err := client.Geocode(context.Background(), "Rue Neuve 1, 1000 Bruxelles, BE")

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantResult, result)
		})
	}
}

func TestMapboxClient_MissingTokenIsImmediateMiss(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := NewMapboxClient(srv.URL, "")
	result, err := client.Geocode(context.Background(), "Rue Neuve 1, 1000 Bruxelles, BE")

	require.NoError(t, err)
	assert.Nil(t, result)
	assert.False(t, called, "no network call should be made without a token")
}

func TestMapboxClient_EscapesAddressInPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"features":[]}`))
	}))
	defer srv.Close()

	client := NewMapboxClient(srv.URL, "pk.test")
	_, err := client.Geocode(context.Background(), "Rue de l'Église 5, 4000 Liège, BE")

	require.NoError(t, err)
	assert.Contains(t, gotPath, "/geocoding/v5/mapbox.places/")
	assert.Contains(t, gotPath, ".json")
	assert.NotContains(t, gotPath, " ")
}
