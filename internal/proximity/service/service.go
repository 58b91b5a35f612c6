// Package service implements the proximity scan pipeline:
// geocode, nearby search, normalize/deduplicate, map view.
package service

import (
	"context"

	"addressradar/internal/address"
	"addressradar/internal/geocode"
	"addressradar/internal/mapview"
	"addressradar/internal/nearby"
	"addressradar/internal/proximity/transport"
	"addressradar/platform/apperr"
	"addressradar/platform/config"
	"addressradar/platform/logger"
	"addressradar/platform/validator"
)

// Geocoders hands out a geocoder for an optional per-request API key.
// Implemented by the geocode module.
type Geocoders interface {
	GeocoderForKey(apiKey string) geocode.Geocoder
}

// Searchers hands out the search backend selected per request.
// Implemented by the nearby module.
type Searchers interface {
	Searcher(backend, apiKey string) (nearby.Searcher, error)
}

// Service runs the scan pipeline. Each call is one stateless
// request/response round trip; stages run strictly in sequence and the first
// failing stage halts the whole action.
type Service struct {
	geocoders Geocoders
	searchers Searchers
	builder   *mapview.Builder
	cfg       config.SearchConfig
	val       *validator.Validator
	log       *logger.Logger
}

// New creates the proximity service.
func New(geocoders Geocoders, searchers Searchers, builder *mapview.Builder, cfg config.SearchConfig, log *logger.Logger) *Service {
	return &Service{
		geocoders: geocoders,
		searchers: searchers,
		builder:   builder,
		cfg:       cfg,
		val:       validator.New(),
		log:       log,
	}
}

// scan is the shared pipeline front: resolve dependencies, geocode, search,
// normalize and deduplicate. placements parallel the response addresses,
// carrying the record coordinate when the backend supplied one.
func (s *Service) scan(ctx context.Context, req transport.NearbyRequest, apiKey string) (*transport.NearbyResponse, []mapview.Placement, error) {
	// The HTTP layer binds with the same tags; validating here too keeps
	// non-HTTP callers (the CLI) inside the same bounds.
	if err := s.val.Struct(req); err != nil {
		return nil, nil, apperr.Wrap(apperr.KindValidation, "invalid scan request", err)
	}

	backend := req.Backend
	if backend == "" {
		backend = s.cfg.GetSearchBackend()
	}
	radius := req.Radius
	if radius == 0 {
		radius = s.cfg.GetDefaultRadiusMeters()
	}

	// Backend resolution runs first so a missing credential halts the
	// action before any outbound request.
	searcher, err := s.searchers.Searcher(backend, apiKey)
	if err != nil {
		return nil, nil, err
	}
	geocoder := s.geocoders.GeocoderForKey(apiKey)

	center, err := geocoder.Geocode(ctx, req.Address)
	if err != nil {
		return nil, nil, err
	}

	// Refinement hint only; never enforced against search results.
	postcode, _ := geocode.ExtractPostcode(req.Address)

	records, err := searcher.Search(ctx, center, radius)
	if err != nil {
		return nil, nil, err
	}
	s.log.Debug("nearby search complete", "backend", backend, "radius", radius, "results", len(records))

	labels := make([]string, 0, len(records))
	byLabel := make(map[string]nearby.Record, len(records))
	for _, rec := range records {
		label := address.Normalize(rec)
		if label == "" {
			continue
		}
		labels = append(labels, label)
		if _, dup := byLabel[label]; !dup {
			byLabel[label] = rec
		}
	}
	labels = address.Dedupe(labels)

	placements := make([]mapview.Placement, 0, len(labels))
	for _, label := range labels {
		rec := byLabel[label]
		placements = append(placements, mapview.Placement{Label: label, Coord: rec.Coord})
	}

	resp := &transport.NearbyResponse{
		Query:     req.Address,
		Postcode:  postcode,
		Center:    center,
		Backend:   backend,
		Radius:    radius,
		Count:     len(labels),
		Addresses: labels,
	}
	return resp, placements, nil
}

// Nearby returns the normalized nearby-address list for an address and
// radius. An empty list is a successful outcome, not an error.
func (s *Service) Nearby(ctx context.Context, req transport.NearbyRequest, apiKey string) (*transport.NearbyResponse, error) {
	resp, _, err := s.scan(ctx, req, apiKey)
	return resp, err
}

// Map runs the full pipeline and returns the rendered map view. No partial
// view is produced: any stage failure aborts before rendering.
func (s *Service) Map(ctx context.Context, req transport.NearbyRequest, apiKey string) (*mapview.View, error) {
	resp, placements, err := s.scan(ctx, req, apiKey)
	if err != nil {
		return nil, err
	}

	geocoder := s.geocoders.GeocoderForKey(apiKey)
	view := s.builder.Build(ctx, resp.Query, resp.Center, resp.Radius, placements, geocoder)
	return &view, nil
}
