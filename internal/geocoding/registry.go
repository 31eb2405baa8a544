package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// RegistryClient queries the national address registry. It is the primary
// provider: free, authoritative for Belgian addresses, but strict about
// input, so a secondary commercial geocoder backs it up.
type RegistryClient struct {
	baseURL    string
	httpClient *http.Client

	// Optional OAuth-style client-credentials flow. When tokenURL is empty
	// requests go out unauthenticated.
	tokenURL     string
	clientID     string
	clientSecret string
	token        tokenCache
}

// tokenCache holds the last fetched bearer token until shortly before its
// expiry, so the client does not hit the token endpoint on every geocode.
type tokenCache struct {
	mu        sync.Mutex
	value     string
	expiresAt time.Time
}

type RegistryOption func(*RegistryClient)

// WithRegistryAuth enables the client-credentials token flow against the
// given token endpoint.
func WithRegistryAuth(tokenURL, clientID, clientSecret string) RegistryOption {
	return func(c *RegistryClient) {
		c.tokenURL = tokenURL
		c.clientID = clientID
		c.clientSecret = clientSecret
	}
}

// WithRegistryHTTPClient overrides the underlying HTTP client, mainly for
// timeouts and tests.
func WithRegistryHTTPClient(hc *http.Client) RegistryOption {
	return func(c *RegistryClient) {
		c.httpClient = hc
	}
}

func NewRegistryClient(baseURL string, opts ...RegistryOption) *RegistryClient {
	c := &RegistryClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RegistryClient) Name() string { return "registry" }

type registryResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Label string `json:"label"`
		} `json:"properties"`
		BBox []float64 `json:"bbox"`
	} `json:"features"`
}

// Geocode resolves an address against the registry's search endpoint,
// limited to one Belgian match.
func (c *RegistryClient) Geocode(ctx context.Context, address string) (*Result, error) {
	if address == "" {
		return nil, fmt.Errorf("registry: address cannot be empty")
	}

	q := url.Values{}
	q.Set("query", address)
	q.Set("limit", "1")
	q.Set("country", "BE")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/geocoding/v1/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("registry: build request: %w", err)
	}

	if c.tokenURL != "" {
		token, err := c.bearerToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("registry: fetch token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registry: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry: unexpected status %d", resp.StatusCode)
	}

	var body registryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("registry: decode response: %w", err)
	}

	if len(body.Features) == 0 {
		return nil, nil
	}

	feature := body.Features[0]
	if len(feature.Geometry.Coordinates) < 2 {
		return nil, fmt.Errorf("registry: malformed coordinates in response")
	}

	return &Result{
		Longitude: feature.Geometry.Coordinates[0],
		Latitude:  feature.Geometry.Coordinates[1],
		PlaceName: feature.Properties.Label,
		BBox:      feature.BBox,
	}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// bearerToken returns the cached token, refreshing it through the
// client-credentials flow when it is missing or within 30s of expiry.
func (c *RegistryClient) bearerToken(ctx context.Context) (string, error) {
	c.token.mu.Lock()
	defer c.token.mu.Unlock()

	if c.token.value != "" && time.Now().Before(c.token.expiresAt.Add(-30*time.Second)) {
		return c.token.value, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var body tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned empty token")
	}

	c.token.value = body.AccessToken
	c.token.expiresAt = time.Now().Add(time.Duration(body.ExpiresIn) * time.Second)

	return c.token.value, nil
}
