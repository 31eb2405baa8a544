package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// MapboxClient is the secondary, commercial geocoder. Without an access
// token it reports every address as a miss instead of making a doomed
// network call, so an unconfigured deployment degrades to registry-only.
type MapboxClient struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

type MapboxOption func(*MapboxClient)

func WithMapboxHTTPClient(hc *http.Client) MapboxOption {
	return func(c *MapboxClient) {
		c.httpClient = hc
	}
}

func NewMapboxClient(baseURL, accessToken string, opts ...MapboxOption) *MapboxClient {
	c := &MapboxClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *MapboxClient) Name() string { return "mapbox" }

type mapboxResponse struct {
	Features []struct {
		Center    []float64 `json:"center"`
		PlaceName string    `json:"place_name"`
		BBox      []float64 `json:"bbox"`
	} `json:"features"`
}

func (c *MapboxClient) Geocode(ctx context.Context, address string) (*Result, error) {
	if address == "" {
		return nil, fmt.Errorf("mapbox: address cannot be empty")
	}

	if c.accessToken == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("access_token", c.accessToken)
	q.Set("country", "be")
	q.Set("limit", "1")

	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?%s",
		c.baseURL, url.PathEscape(address), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("mapbox: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mapbox: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mapbox: unexpected status %d", resp.StatusCode)
	}

	var body mapboxResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("mapbox: decode response: %w", err)
	}

	if len(body.Features) == 0 {
		return nil, nil
	}

	feature := body.Features[0]
	if len(feature.Center) < 2 {
		return nil, fmt.Errorf("mapbox: malformed center in response")
	}

	return &Result{
		Longitude: feature.Center[0],
		Latitude:  feature.Center[1],
		PlaceName: feature.PlaceName,
		BBox:      feature.BBox,
	}, nil
}
