package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"addressradar/platform/apperr"
	"addressradar/platform/logger"
)

var testLog = logger.New("test")

func TestGeocode_FirstResultWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("language"); got != "el" {
			t.Errorf("expected language=el, got %q", got)
		}
		if got := q.Get("components"); got != "country:GR" {
			t.Errorf("expected components=country:GR, got %q", got)
		}
		if got := q.Get("address"); got != "Παπαφλέσσα 145, Αθήνα" {
			t.Errorf("unexpected address %q", got)
		}
		fmt.Fprint(w, `{"status":"OK","results":[
			{"geometry":{"location":{"lat":37.946,"lng":23.645}}},
			{"geometry":{"location":{"lat":0,"lng":0}}}
		]}`)
	}))
	defer srv.Close()

	c := New("test-key", "el", "GR", testLog, WithBaseURL(srv.URL))
	coord, err := c.Geocode(context.Background(), "Παπαφλέσσα 145, Αθήνα")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coord.Lat != 37.946 || coord.Lng != 23.645 {
		t.Fatalf("expected first result location, got %v", coord)
	}
}

func TestGeocode_NoCountryOmitsComponents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, set := r.URL.Query()["components"]; set {
			t.Error("components filter must be omitted when no country is configured")
		}
		fmt.Fprint(w, `{"status":"OK","results":[{"geometry":{"location":{"lat":1,"lng":2}}}]}`)
	}))
	defer srv.Close()

	c := New("test-key", "el", "", testLog, WithBaseURL(srv.URL))
	if _, err := c.Geocode(context.Background(), "somewhere"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGeocode_ZeroResultsIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"ZERO_RESULTS","results":[]}`)
	}))
	defer srv.Close()

	c := New("test-key", "el", "GR", testLog, WithBaseURL(srv.URL))
	_, err := c.Geocode(context.Background(), "nowhere at all")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestGeocode_MissingKeyHaltsBeforeRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := New("", "el", "GR", testLog, WithBaseURL(srv.URL))
	_, err := c.Geocode(context.Background(), "somewhere")
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if called {
		t.Fatal("no request must be issued without an api key")
	}
}

func TestGeocode_APIErrorStatuses(t *testing.T) {
	tests := []struct {
		status string
		kind   apperr.Kind
	}{
		{"OVER_QUERY_LIMIT", apperr.KindRateLimited},
		{"REQUEST_DENIED", apperr.KindUnauthorized},
		{"UNKNOWN_ERROR", apperr.KindUpstream},
	}

	for _, tc := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `{"status":%q,"results":[]}`, tc.status)
		}))

		c := New("test-key", "el", "GR", testLog, WithBaseURL(srv.URL))
		_, err := c.Geocode(context.Background(), "somewhere")
		srv.Close()

		if !apperr.Is(err, tc.kind) {
			t.Fatalf("status %s: expected kind %v, got %v (%v)", tc.status, tc.kind, apperr.GetKind(err), err)
		}
	}
}

func TestPing_TreatsNotFoundAsHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"ZERO_RESULTS","results":[]}`)
	}))
	defer srv.Close()

	c := New("test-key", "el", "GR", testLog, WithBaseURL(srv.URL))
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("ping must treat zero results as success, got %v", err)
	}
}

func TestPing_ReportsRejectedKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"REQUEST_DENIED","results":[]}`)
	}))
	defer srv.Close()

	c := New("bad-key", "el", "GR", testLog, WithBaseURL(srv.URL))
	if err := c.Ping(context.Background()); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}
