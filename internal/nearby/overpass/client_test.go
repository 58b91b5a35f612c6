package overpass

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"addressradar/internal/geo"
	"addressradar/platform/apperr"
	"addressradar/platform/logger"
)

var testLog = logger.New("test")

func TestBuildQuery(t *testing.T) {
	c := New("http://overpass.example", 60, testLog)
	center := geo.Coordinate{Lat: 37.946, Lng: 23.645}

	got := c.BuildQuery(center, 500)
	want := "[out:json][timeout:60];\n" +
		"( node(around:500,37.946000,23.645000)[\"addr:housenumber\"][\"addr:street\"]; );\n" +
		"out body;"
	if got != want {
		t.Fatalf("query mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestBuildQuery_RadiusBounds(t *testing.T) {
	c := New("http://overpass.example", 60, testLog)
	center := geo.Coordinate{Lat: 1, Lng: 2}

	for _, radius := range []int{geo.MinRadiusMeters, 750, geo.MaxRadiusMeters} {
		q := c.BuildQuery(center, radius)
		if !strings.Contains(q, fmt.Sprintf("around:%d,", radius)) {
			t.Fatalf("radius %d not embedded in query %q", radius, q)
		}
	}
}

func TestSearch_MapsNodesToRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if data := r.PostFormValue("data"); !strings.HasPrefix(data, "[out:json][timeout:60];") {
			t.Errorf("unexpected query payload %q", data)
		}
		fmt.Fprint(w, `{"elements":[
			{"id":1,"type":"node","lat":37.95,"lon":23.64,"tags":{"addr:housenumber":"10","addr:street":"Ermou"}},
			{"id":2,"type":"way","tags":{"addr:housenumber":"11","addr:street":"Ermou"}},
			{"id":3,"type":"node","lat":37.96,"lon":23.65,"tags":{"addr:housenumber":"12","addr:street":"Ermou","addr:postcode":"18546"}}
		]}`)
	}))
	defer srv.Close()

	c := New(srv.URL, 60, testLog)
	records, err := c.Search(context.Background(), geo.Coordinate{Lat: 37.946, Lng: 23.645}, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 node records, got %d", len(records))
	}
	if records[0].Tags["addr:street"] != "Ermou" || records[0].Tags["addr:housenumber"] != "10" {
		t.Fatalf("unexpected first record tags: %v", records[0].Tags)
	}
	if !records[0].HasCoordinate() || records[0].Coord.Lat != 37.95 {
		t.Fatalf("expected node coordinate to be carried over, got %v", records[0].Coord)
	}
	if records[1].Tags["addr:postcode"] != "18546" {
		t.Fatalf("unexpected second record tags: %v", records[1].Tags)
	}
}

func TestSearch_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"elements":[]}`)
	}))
	defer srv.Close()

	c := New(srv.URL, 60, testLog)
	records, err := c.Search(context.Background(), geo.Coordinate{}, 100)
	if err != nil {
		t.Fatalf("empty result must not be an error, got %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestSearch_ErrorStatuses(t *testing.T) {
	tests := []struct {
		status int
		kind   apperr.Kind
	}{
		{http.StatusTooManyRequests, apperr.KindRateLimited},
		{http.StatusGatewayTimeout, apperr.KindGatewayTimeout},
		{http.StatusInternalServerError, apperr.KindUpstream},
	}

	for _, tc := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))

		c := New(srv.URL, 60, testLog)
		_, err := c.Search(context.Background(), geo.Coordinate{}, 500)
		srv.Close()

		if err == nil {
			t.Fatalf("status %d: expected an error", tc.status)
		}
		if !apperr.Is(err, tc.kind) {
			t.Fatalf("status %d: expected kind %v, got %v (%v)", tc.status, tc.kind, apperr.GetKind(err), err)
		}
	}
}
