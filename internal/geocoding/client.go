// Package geocoding resolves street addresses to coordinates through a
// Nominatim-style search endpoint. Failures are always non-fatal to the
// caller: a record that cannot be geocoded keeps NULL coordinates and is
// retried later by the background job.
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultBaseURL = "https://nominatim.openstreetmap.org"
	userAgent      = "foodbanked"

	// Nominatim's usage policy allows at most one request per second.
	minInterval = time.Second
)

// Coordinates is a resolved latitude/longitude pair.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Client geocodes addresses. Implementations must treat service errors
// and timeouts as a "not geocoded" outcome, not a hard failure.
type Client interface {
	Geocode(ctx context.Context, address, city, state, zipcode string) (*Coordinates, error)
}

type nominatimClient struct {
	baseURL    string
	httpClient *http.Client

	mu       sync.Mutex
	lastCall time.Time
}

// NewClient creates a geocoding client against baseURL (the public
// Nominatim instance when empty).
func NewClient(baseURL string) Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &nominatimClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves the address parts to coordinates. Returns (nil, nil)
// when the address is empty or the service has no match.
func (c *nominatimClient) Geocode(ctx context.Context, address, city, state, zipcode string) (*Coordinates, error) {
	fullAddress := joinAddress(address, city, state, zipcode)
	if fullAddress == "" {
		return nil, nil
	}

	c.throttle()

	params := url.Values{}
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("q", fullAddress)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding service returned status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in geocoding response: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in geocoding response: %w", err)
	}

	return &Coordinates{Latitude: lat, Longitude: lon}, nil
}

// throttle enforces the one-request-per-second usage policy across all
// callers sharing this client.
func (c *nominatimClient) throttle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if wait := minInterval - time.Since(c.lastCall); wait > 0 {
		time.Sleep(wait)
	}
	c.lastCall = time.Now()
}

func joinAddress(parts ...string) string {
	var kept []string
	for _, part := range parts {
		if p := strings.TrimSpace(part); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
