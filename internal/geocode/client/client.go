// Package client provides the HTTP client for the Google Geocoding API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"addressradar/internal/geo"
	"addressradar/platform/apperr"
	"addressradar/platform/logger"
)

const (
	baseURL      = "https://maps.googleapis.com/maps/api/geocode/json"
	providerName = "google-geocoding"
)

// Client is the HTTP client for the Google Geocoding API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	language   string
	country    string
	log        *logger.Logger
}

// Option customizes the client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// New creates a new Google Geocoding client. The language hint is sent with
// every request; country, when non-empty, is applied as a components filter.
func New(apiKey, language, country string, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		language:   language,
		country:    country,
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithAPIKey returns a copy of the client bound to a different API key.
// Used when a request supplies its own credential.
func (c *Client) WithAPIKey(apiKey string) *Client {
	clone := *c
	clone.apiKey = apiKey
	return &clone
}

// Geocode resolves an address to the location of the first geocoding result.
func (c *Client) Geocode(ctx context.Context, address string) (geo.Coordinate, error) {
	if c.apiKey == "" {
		return geo.Coordinate{}, apperr.Unauthorized("google maps api key is not configured")
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("language", c.language)
	if c.country != "" {
		params.Set("components", "country:"+c.country)
	}
	params.Set("key", c.apiKey)

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.UpstreamError(providerName, "geocode", err)
		return geo.Coordinate{}, apperr.Wrap(apperr.KindUpstream, "geocoding request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.UpstreamStatus(providerName, "geocode", resp.StatusCode)
		return geo.Coordinate{}, apperr.Upstream(fmt.Sprintf("geocoding service returned status %d", resp.StatusCode))
	}

	var apiResp geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		c.log.UpstreamError(providerName, "geocode", err)
		return geo.Coordinate{}, apperr.Wrap(apperr.KindUpstream, "failed to decode geocoding response", err)
	}

	switch apiResp.Status {
	case "OK":
		// Success - first result wins
	case "ZERO_RESULTS":
		return geo.Coordinate{}, apperr.NotFound("address not found")
	case "OVER_QUERY_LIMIT":
		return geo.Coordinate{}, apperr.RateLimited("geocoding quota exceeded")
	case "REQUEST_DENIED":
		return geo.Coordinate{}, apperr.Unauthorized("geocoding request denied: invalid api key")
	default:
		c.log.Error("geocoding error status", "status", apiResp.Status, "message", apiResp.ErrorMessage)
		return geo.Coordinate{}, apperr.Upstream("geocoding service error: " + apiResp.Status)
	}

	if len(apiResp.Results) == 0 {
		return geo.Coordinate{}, apperr.NotFound("address not found")
	}

	loc := apiResp.Results[0].Geometry.Location
	return geo.Coordinate{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// Ping verifies the configured credential with a throwaway geocode request.
// Any result, including zero results, proves the key is accepted.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Geocode(ctx, "Test")
	if apperr.Is(err, apperr.KindNotFound) {
		return nil
	}
	return err
}

// --- Google Geocoding API response structures ---

type geocodeResponse struct {
	Results      []geocodeResult `json:"results"`
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message,omitempty"`
}

type geocodeResult struct {
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}
