// Package places provides the commercial nearby search backend over the
// Google Places Nearby Search API.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"addressradar/internal/geo"
	"addressradar/internal/nearby/record"
	"addressradar/platform/apperr"
	"addressradar/platform/logger"
)

const (
	baseURL      = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"
	providerName = "google-places"

	// The only place category requested: results are street addresses, not
	// businesses.
	placeType = "street_address"
)

// Client is the HTTP client for the Google Places Nearby Search API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	log        *logger.Logger
}

// Option customizes the client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// New creates a new Places nearby search client.
func New(apiKey string, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithAPIKey returns a copy of the client bound to a different API key.
func (c *Client) WithAPIKey(apiKey string) *Client {
	clone := *c
	clone.apiKey = apiKey
	return &clone
}

// Search issues one nearby-search request and maps each result to its
// vicinity string, deduplicated in first-seen order. A single page is
// fetched; the service's own page size caps the result count.
func (c *Client) Search(ctx context.Context, center geo.Coordinate, radius int) ([]record.Record, error) {
	if c.apiKey == "" {
		return nil, apperr.Unauthorized("google maps api key is not configured")
	}

	params := url.Values{}
	params.Set("location", center.String())
	params.Set("radius", strconv.Itoa(radius))
	params.Set("type", placeType)
	params.Set("key", c.apiKey)

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.UpstreamError(providerName, "search", err)
		return nil, apperr.Wrap(apperr.KindUpstream, "places request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.UpstreamStatus(providerName, "search", resp.StatusCode)
		return nil, apperr.Upstream(fmt.Sprintf("places service returned status %d", resp.StatusCode))
	}

	var apiResp placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		c.log.UpstreamError(providerName, "search", err)
		return nil, apperr.Wrap(apperr.KindUpstream, "failed to decode places response", err)
	}

	switch apiResp.Status {
	case "OK", "ZERO_RESULTS":
		// Both are successful responses; ZERO_RESULTS means an empty page.
	case "OVER_QUERY_LIMIT":
		return nil, apperr.RateLimited("places quota exceeded")
	case "REQUEST_DENIED":
		return nil, apperr.Unauthorized("places request denied: invalid api key")
	default:
		c.log.Error("places error status", "status", apiResp.Status, "message", apiResp.ErrorMessage)
		return nil, apperr.Upstream("places service error: " + apiResp.Status)
	}

	seen := make(map[string]struct{}, len(apiResp.Results))
	records := make([]record.Record, 0, len(apiResp.Results))
	for _, place := range apiResp.Results {
		if place.Vicinity == "" {
			continue
		}
		if _, dup := seen[place.Vicinity]; dup {
			continue
		}
		seen[place.Vicinity] = struct{}{}
		records = append(records, record.Record{Vicinity: place.Vicinity})
	}

	return records, nil
}

// --- Google Places API response structures ---

type placesResponse struct {
	Results      []placeResult `json:"results"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

type placeResult struct {
	Vicinity string `json:"vicinity"`
}
