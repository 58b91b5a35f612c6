// Package geocode provides the address geocoding bounded context module.
// This file defines the module that encapsulates all geocoding setup.
package geocode

import (
	"context"

	"addressradar/internal/geocode/client"
	"addressradar/internal/geocode/nominatim"
	"addressradar/platform/apperr"
	"addressradar/platform/config"
	"addressradar/platform/logger"

	"github.com/redis/go-redis/v9"
)

// ModuleConfig combines the config interfaces the module needs.
type ModuleConfig interface {
	config.GoogleConfig
	config.CacheConfig
}

// Module is the geocoding bounded context module. It owns the Google
// geocoding client (when a key is configured), the keyless Nominatim
// fallback, and the optional redis result cache.
type Module struct {
	google    *client.Client
	nominatim *nominatim.Client
	rdb       *redis.Client
	cfg       ModuleConfig
	log       *logger.Logger
}

// NewModule creates and initializes the geocoding module. Without a Google
// API key the module degrades to Nominatim, so the open-data pipeline never
// needs a credential.
func NewModule(cfg ModuleConfig, log *logger.Logger) *Module {
	m := &Module{
		nominatim: nominatim.New(cfg.GetGeocodeLanguage(), cfg.GetGeocodeCountry(), log),
		cfg:       cfg,
		log:       log,
	}

	if cfg.IsCacheEnabled() {
		opts, err := redis.ParseURL(cfg.GetRedisURL())
		if err != nil {
			log.Error("invalid REDIS_URL, geocode cache disabled", "error", err)
		} else {
			m.rdb = redis.NewClient(opts)
			log.Info("geocode cache enabled", "ttl", cfg.GetGeocodeCacheTTL().String())
		}
	}

	if cfg.IsGoogleEnabled() {
		m.google = client.New(cfg.GetGoogleAPIKey(), cfg.GetGeocodeLanguage(), cfg.GetGeocodeCountry(), log)
		log.Info("geocode module initialized", "provider", "google")
	} else {
		log.Info("geocode module initialized", "provider", "nominatim")
	}

	return m
}

// HasGoogleKey returns true if a server-side Google API key is configured.
func (m *Module) HasGoogleKey() bool {
	return m != nil && m.google != nil
}

// Geocoder returns the default geocoder: Google when a key is configured,
// Nominatim otherwise, wrapped with the redis cache when one is configured.
func (m *Module) Geocoder() Geocoder {
	if m.google != nil {
		return m.wrap(m.google)
	}
	return m.wrap(m.nominatim)
}

// GeocoderForKey returns a Google geocoder bound to a per-request API key.
// Falls back to the default geocoder when apiKey is empty.
func (m *Module) GeocoderForKey(apiKey string) Geocoder {
	if apiKey == "" {
		return m.Geocoder()
	}
	if m.google != nil {
		return m.wrap(m.google.WithAPIKey(apiKey))
	}
	return m.wrap(client.New(apiKey, m.cfg.GetGeocodeLanguage(), m.cfg.GetGeocodeCountry(), m.log))
}

// Ping verifies the configured Google credential against the upstream
// service with a throwaway lookup.
func (m *Module) Ping(ctx context.Context) error {
	if m.google == nil {
		return apperr.Unauthorized("google maps api key is not configured")
	}
	return m.google.Ping(ctx)
}

// Close releases the cache connection, if any.
func (m *Module) Close() error {
	if m.rdb != nil {
		return m.rdb.Close()
	}
	return nil
}

func (m *Module) wrap(g Geocoder) Geocoder {
	if m.rdb == nil {
		return g
	}
	return NewCachedGeocoder(g, m.rdb, m.cfg.GetGeocodeCacheTTL(), m.log)
}
