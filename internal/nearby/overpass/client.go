// Package overpass provides the open-data nearby search backend over the
// Overpass API.
package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"addressradar/internal/geo"
	"addressradar/internal/nearby/record"
	"addressradar/platform/apperr"
	"addressradar/platform/logger"

	"golang.org/x/time/rate"
)

const providerName = "overpass"

// Client queries the Overpass API for addressed OSM nodes around a point.
type Client struct {
	httpClient     *http.Client
	endpoint       string
	timeoutSeconds int
	limiter        *rate.Limiter
	log            *logger.Logger
}

// New creates an Overpass client. timeoutSeconds is embedded in the query
// text as the service-side timeout; the HTTP client allows a little extra so
// the server can answer with its own timeout status.
func New(endpoint string, timeoutSeconds int, log *logger.Logger) *Client {
	return &Client{
		httpClient:     &http.Client{Timeout: time.Duration(timeoutSeconds+10) * time.Second},
		endpoint:       endpoint,
		timeoutSeconds: timeoutSeconds,
		// Public Overpass instances ask for at most one request in flight;
		// one request per second keeps scans well inside their usage policy.
		limiter: rate.NewLimiter(rate.Limit(1), 1),
		log:     log,
	}
}

// BuildQuery formats the Overpass QL query selecting nodes within radius
// meters of center that carry both a house-number and a street tag.
func (c *Client) BuildQuery(center geo.Coordinate, radius int) string {
	return fmt.Sprintf(
		"[out:json][timeout:%d];\n( node(around:%d,%f,%f)[%q][%q]; );\nout body;",
		c.timeoutSeconds, radius, center.Lat, center.Lng, record.TagHouseNumber, record.TagStreet,
	)
}

// Search submits the radius query and returns one record per addressed node.
func (c *Client) Search(ctx context.Context, center geo.Coordinate, radius int) ([]record.Record, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "overpass limiter interrupted", err)
	}

	form := url.Values{}
	form.Set("data", c.BuildQuery(center, radius))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.UpstreamError(providerName, "search", err)
		return nil, apperr.Wrap(apperr.KindUpstream, "overpass request failed", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Success - continue to decode
	case http.StatusTooManyRequests:
		c.log.UpstreamStatus(providerName, "search", resp.StatusCode)
		return nil, apperr.RateLimited("overpass rejected the request: too many requests")
	case http.StatusGatewayTimeout:
		c.log.UpstreamStatus(providerName, "search", resp.StatusCode)
		return nil, apperr.GatewayTimeout("overpass gateway timeout")
	default:
		c.log.UpstreamStatus(providerName, "search", resp.StatusCode)
		return nil, apperr.Upstream(fmt.Sprintf("overpass returned status %d", resp.StatusCode))
	}

	var apiResp overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		c.log.UpstreamError(providerName, "search", err)
		return nil, apperr.Wrap(apperr.KindUpstream, "failed to decode overpass response", err)
	}

	records := make([]record.Record, 0, len(apiResp.Elements))
	for _, el := range apiResp.Elements {
		if el.Type != "node" || len(el.Tags) == 0 {
			continue
		}
		records = append(records, record.Record{
			Tags:  el.Tags,
			Coord: &geo.Coordinate{Lat: el.Lat, Lng: el.Lon},
		})
	}

	return records, nil
}

// --- Overpass API response structures ---

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	ID   int64             `json:"id"`
	Type string            `json:"type"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}
