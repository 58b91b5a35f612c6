// Package nearby provides the nearby-address search bounded context module.
// This file defines the module that selects and wires the search backends.
package nearby

import (
	"addressradar/internal/nearby/overpass"
	"addressradar/internal/nearby/places"
	"addressradar/platform/apperr"
	"addressradar/platform/config"
	"addressradar/platform/logger"
)

// ModuleConfig combines the config interfaces the module needs.
type ModuleConfig interface {
	config.SearchConfig
	config.OverpassConfig
	config.GoogleConfig
}

// Module is the nearby-search bounded context module. It owns both backend
// clients and hands out the one selected by configuration or by a
// per-request override.
type Module struct {
	overpass *overpass.Client
	places   *places.Client
	cfg      ModuleConfig
	log      *logger.Logger
}

// NewModule creates and initializes the nearby-search module. The Overpass
// backend is always available; the Places backend only when a Google API key
// exists (configured or supplied per request).
func NewModule(cfg ModuleConfig, log *logger.Logger) *Module {
	m := &Module{
		overpass: overpass.New(cfg.GetOverpassURL(), cfg.GetOverpassTimeoutSeconds(), log),
		cfg:      cfg,
		log:      log,
	}
	if cfg.IsGoogleEnabled() {
		m.places = places.New(cfg.GetGoogleAPIKey(), log)
	}
	log.Info("nearby search module initialized", "defaultBackend", cfg.GetSearchBackend())
	return m
}

// Searcher returns the backend named by backend, falling back to the
// configured default when backend is empty. apiKey overrides the configured
// Google credential for the places backend.
func (m *Module) Searcher(backend, apiKey string) (Searcher, error) {
	if backend == "" {
		backend = m.cfg.GetSearchBackend()
	}

	switch backend {
	case config.BackendOverpass:
		return m.overpass, nil
	case config.BackendPlaces:
		if apiKey != "" {
			if m.places != nil {
				return m.places.WithAPIKey(apiKey), nil
			}
			return places.New(apiKey, m.log), nil
		}
		if m.places == nil {
			return nil, apperr.Unauthorized("places backend requires a google maps api key")
		}
		return m.places, nil
	default:
		return nil, apperr.BadRequest("unknown search backend: " + backend)
	}
}
