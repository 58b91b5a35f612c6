package geocode

import (
	"context"
	"testing"
	"time"

	"addressradar/internal/geocode/client"
	"addressradar/internal/geocode/nominatim"
	"addressradar/platform/apperr"
	"addressradar/platform/logger"

	"github.com/alicebob/miniredis/v2"
)

type fakeModuleConfig struct {
	apiKey   string
	redisURL string
}

func (c fakeModuleConfig) GetGoogleAPIKey() string           { return c.apiKey }
func (c fakeModuleConfig) GetGeocodeLanguage() string        { return "el" }
func (c fakeModuleConfig) GetGeocodeCountry() string         { return "GR" }
func (c fakeModuleConfig) IsGoogleEnabled() bool             { return c.apiKey != "" }
func (c fakeModuleConfig) GetRedisURL() string               { return c.redisURL }
func (c fakeModuleConfig) GetGeocodeCacheTTL() time.Duration { return time.Hour }
func (c fakeModuleConfig) IsCacheEnabled() bool              { return c.redisURL != "" }

func TestGeocoder_FallsBackToNominatimWithoutKey(t *testing.T) {
	m := NewModule(fakeModuleConfig{}, logger.New("test"))

	if m.HasGoogleKey() {
		t.Fatal("no google key configured")
	}
	if _, ok := m.Geocoder().(*nominatim.Client); !ok {
		t.Fatalf("expected the nominatim fallback, got %T", m.Geocoder())
	}
}

func TestGeocoder_PrefersGoogleWithKey(t *testing.T) {
	m := NewModule(fakeModuleConfig{apiKey: "configured"}, logger.New("test"))

	if !m.HasGoogleKey() {
		t.Fatal("expected the configured key to be detected")
	}
	if _, ok := m.Geocoder().(*client.Client); !ok {
		t.Fatalf("expected the google geocoder, got %T", m.Geocoder())
	}
}

func TestGeocoderForKey_PerRequestKeyGetsGoogle(t *testing.T) {
	m := NewModule(fakeModuleConfig{}, logger.New("test"))

	if _, ok := m.GeocoderForKey("user-key").(*client.Client); !ok {
		t.Fatalf("expected a google geocoder for a per-request key, got %T", m.GeocoderForKey("user-key"))
	}
	if _, ok := m.GeocoderForKey("").(*nominatim.Client); !ok {
		t.Fatal("an empty key must fall back to the default geocoder")
	}
}

func TestGeocoder_CacheWrapsWhenConfigured(t *testing.T) {
	mr := miniredis.RunT(t)
	m := NewModule(fakeModuleConfig{redisURL: "redis://" + mr.Addr()}, logger.New("test"))
	defer m.Close()

	if _, ok := m.Geocoder().(*CachedGeocoder); !ok {
		t.Fatalf("expected a cache-wrapped geocoder, got %T", m.Geocoder())
	}
}

func TestPing_WithoutKey(t *testing.T) {
	m := NewModule(fakeModuleConfig{}, logger.New("test"))

	if err := m.Ping(context.Background()); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}
