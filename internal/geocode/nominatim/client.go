// Package nominatim provides a keyless geocoder over the OSM Nominatim
// search API, used when no Google credential is available.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"addressradar/internal/geo"
	"addressradar/platform/apperr"
	"addressradar/platform/logger"

	"golang.org/x/time/rate"
)

const (
	baseURL      = "https://nominatim.openstreetmap.org/search"
	providerName = "nominatim"
	userAgent    = "AddressRadar/1.0"
)

// Client is the HTTP client for the Nominatim search API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	language   string
	country    string
	limiter    *rate.Limiter
	log        *logger.Logger
}

// Option customizes the client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// New creates a new Nominatim client. The public instance's usage policy
// allows at most one request per second, enforced with a client-side limiter.
func New(language, country string, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		language:   language,
		country:    country,
		limiter:    rate.NewLimiter(rate.Limit(1), 1),
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Geocode resolves an address to the location of the first search result.
func (c *Client) Geocode(ctx context.Context, address string) (geo.Coordinate, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return geo.Coordinate{}, apperr.Wrap(apperr.KindInternal, "nominatim limiter interrupted", err)
	}

	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("accept-language", c.language)
	if c.country != "" {
		params.Set("countrycodes", strings.ToLower(c.country))
	}

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.UpstreamError(providerName, "geocode", err)
		return geo.Coordinate{}, apperr.Wrap(apperr.KindUpstream, "geocoding request failed", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Success - continue to decode
	case http.StatusTooManyRequests:
		c.log.UpstreamStatus(providerName, "geocode", resp.StatusCode)
		return geo.Coordinate{}, apperr.RateLimited("nominatim rejected the request: too many requests")
	default:
		c.log.UpstreamStatus(providerName, "geocode", resp.StatusCode)
		return geo.Coordinate{}, apperr.Upstream(fmt.Sprintf("nominatim returned status %d", resp.StatusCode))
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		c.log.UpstreamError(providerName, "geocode", err)
		return geo.Coordinate{}, apperr.Wrap(apperr.KindUpstream, "failed to decode nominatim response", err)
	}

	if len(results) == 0 {
		return geo.Coordinate{}, apperr.NotFound("address not found")
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return geo.Coordinate{}, apperr.Wrap(apperr.KindUpstream, "invalid latitude in nominatim response", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return geo.Coordinate{}, apperr.Wrap(apperr.KindUpstream, "invalid longitude in nominatim response", err)
	}

	return geo.Coordinate{Lat: lat, Lng: lng}, nil
}

// nominatimResult mirrors the relevant parts of the OSM search payload.
type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}
