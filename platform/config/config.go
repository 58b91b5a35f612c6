// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// GoogleConfig provides settings for the Google Maps APIs (geocoding and
// places nearby search).
type GoogleConfig interface {
	GetGoogleAPIKey() string
	GetGeocodeLanguage() string
	GetGeocodeCountry() string
	IsGoogleEnabled() bool
}

// OverpassConfig provides settings for the Overpass API client.
type OverpassConfig interface {
	GetOverpassURL() string
	GetOverpassTimeoutSeconds() int
}

// SearchConfig provides settings for nearby-search backend selection.
type SearchConfig interface {
	GetSearchBackend() string
	GetDefaultRadiusMeters() int
}

// CacheConfig provides settings for the optional geocode result cache.
type CacheConfig interface {
	GetRedisURL() string
	GetGeocodeCacheTTL() time.Duration
	IsCacheEnabled() bool
}

// TileConfig provides settings for map tile providers.
type TileConfig interface {
	GetTileConfigPath() string
}

// Search backend identifiers accepted in SEARCH_BACKEND and the per-request
// backend override.
const (
	BackendPlaces   = "places"
	BackendOverpass = "overpass"
)

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                    string
	HTTPAddr               string
	CORSAllowAll           bool
	CORSOrigins            []string
	CORSAllowCreds         bool
	GoogleAPIKey           string
	GeocodeLanguage        string
	GeocodeCountry         string
	SearchBackend          string
	DefaultRadiusMeters    int
	OverpassURL            string
	OverpassTimeoutSeconds int
	RedisURL               string
	GeocodeCacheTTL        time.Duration
	TileConfigPath         string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// GoogleConfig implementation
func (c *Config) GetGoogleAPIKey() string    { return c.GoogleAPIKey }
func (c *Config) GetGeocodeLanguage() string { return c.GeocodeLanguage }
func (c *Config) GetGeocodeCountry() string  { return c.GeocodeCountry }
func (c *Config) IsGoogleEnabled() bool      { return c.GoogleAPIKey != "" }

// OverpassConfig implementation
func (c *Config) GetOverpassURL() string         { return c.OverpassURL }
func (c *Config) GetOverpassTimeoutSeconds() int { return c.OverpassTimeoutSeconds }

// SearchConfig implementation
func (c *Config) GetSearchBackend() string    { return c.SearchBackend }
func (c *Config) GetDefaultRadiusMeters() int { return c.DefaultRadiusMeters }

// CacheConfig implementation
func (c *Config) GetRedisURL() string               { return c.RedisURL }
func (c *Config) GetGeocodeCacheTTL() time.Duration { return c.GeocodeCacheTTL }
func (c *Config) IsCacheEnabled() bool              { return c.RedisURL != "" }

// TileConfig implementation
func (c *Config) GetTileConfigPath() string { return c.TileConfigPath }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                    getEnv("APP_ENV", "development"),
		HTTPAddr:               getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:           corsAllowAll,
		CORSOrigins:            corsOrigins,
		CORSAllowCreds:         strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		GoogleAPIKey:           getEnv("GOOGLE_MAPS_API_KEY", ""),
		GeocodeLanguage:        getEnv("GEOCODE_LANGUAGE", "el"),
		GeocodeCountry:         getEnv("GEOCODE_COUNTRY", "GR"),
		SearchBackend:          strings.ToLower(getEnv("SEARCH_BACKEND", BackendOverpass)),
		DefaultRadiusMeters:    mustInt(getEnv("DEFAULT_RADIUS_METERS", "500")),
		OverpassURL:            getEnv("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		OverpassTimeoutSeconds: mustInt(getEnv("OVERPASS_TIMEOUT_SECONDS", "60")),
		RedisURL:               getEnv("REDIS_URL", ""),
		GeocodeCacheTTL:        mustDuration(getEnv("GEOCODE_CACHE_TTL", "1h")),
		TileConfigPath:         getEnv("TILE_CONFIG", ""),
	}

	if cfg.SearchBackend != BackendPlaces && cfg.SearchBackend != BackendOverpass {
		return nil, fmt.Errorf("SEARCH_BACKEND must be %q or %q, got %q", BackendPlaces, BackendOverpass, cfg.SearchBackend)
	}
	if cfg.SearchBackend == BackendPlaces && cfg.GoogleAPIKey == "" {
		return nil, fmt.Errorf("GOOGLE_MAPS_API_KEY is required when SEARCH_BACKEND is %q", BackendPlaces)
	}
	if cfg.DefaultRadiusMeters < 100 || cfg.DefaultRadiusMeters > 2000 {
		return nil, fmt.Errorf("DEFAULT_RADIUS_METERS must be within [100, 2000]")
	}
	if cfg.OverpassTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("OVERPASS_TIMEOUT_SECONDS must be positive")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
