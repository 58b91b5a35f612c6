package places

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"addressradar/internal/geo"
	"addressradar/platform/apperr"
	"addressradar/platform/logger"
)

var testLog = logger.New("test")

func TestSearch_RequestParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("type"); got != "street_address" {
			t.Errorf("expected type=street_address, got %q", got)
		}
		if got := q.Get("radius"); got != "500" {
			t.Errorf("expected radius=500, got %q", got)
		}
		if got := q.Get("key"); got != "test-key" {
			t.Errorf("expected key=test-key, got %q", got)
		}
		if got := q.Get("location"); got != "37.946000,23.645000" {
			t.Errorf("unexpected location %q", got)
		}
		fmt.Fprint(w, `{"status":"OK","results":[]}`)
	}))
	defer srv.Close()

	c := New("test-key", testLog, WithBaseURL(srv.URL))
	if _, err := c.Search(context.Background(), geo.Coordinate{Lat: 37.946, Lng: 23.645}, 500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSearch_DedupesVicinitiesInOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"OK","results":[
			{"vicinity":"Ermou 12, Athens"},
			{"vicinity":"Stadiou 4, Athens"},
			{"vicinity":"Ermou 12, Athens"},
			{"vicinity":""},
			{"vicinity":"Ermou 14, Athens"}
		]}`)
	}))
	defer srv.Close()

	c := New("test-key", testLog, WithBaseURL(srv.URL))
	records, err := c.Search(context.Background(), geo.Coordinate{}, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Ermou 12, Athens", "Stadiou 4, Athens", "Ermou 14, Athens"}
	if len(records) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(records))
	}
	for i, rec := range records {
		if rec.Vicinity != want[i] {
			t.Fatalf("record %d: got %q, want %q", i, rec.Vicinity, want[i])
		}
	}
}

func TestSearch_ZeroResultsIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"ZERO_RESULTS","results":[]}`)
	}))
	defer srv.Close()

	c := New("test-key", testLog, WithBaseURL(srv.URL))
	records, err := c.Search(context.Background(), geo.Coordinate{}, 500)
	if err != nil {
		t.Fatalf("zero results must not be an error, got %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestSearch_MissingKeyHaltsBeforeRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := New("", testLog, WithBaseURL(srv.URL))
	_, err := c.Search(context.Background(), geo.Coordinate{}, 500)
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if called {
		t.Fatal("no request must be issued without an api key")
	}
}

func TestSearch_APIErrorStatuses(t *testing.T) {
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

		c := New("test-key", testLog, WithBaseURL(srv.URL))
		_, err := c.Search(context.Background(), geo.Coordinate{}, 500)
		srv.Close()

		if !apperr.Is(err, tc.kind) {
			t.Fatalf("status %s: expected kind %v, got %v (%v)", tc.status, tc.kind, apperr.GetKind(err), err)
		}
	}
}

func TestWithAPIKey_DoesNotMutateOriginal(t *testing.T) {
	c := New("original", testLog)
	clone := c.WithAPIKey("per-request")
	if c.apiKey != "original" {
		t.Fatalf("original key mutated to %q", c.apiKey)
	}
	if clone.apiKey != "per-request" {
		t.Fatalf("clone key is %q", clone.apiKey)
	}
}
