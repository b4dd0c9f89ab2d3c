package geoapify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/chimdiadi/go-geoform/pkg/suggest"
	"github.com/google/go-cmp/cmp"
)

const autocompleteBody = `{
  "type": "FeatureCollection",
  "features": [
    {"properties": {"formatted": "Paris, France", "lat": 48.8566, "lon": 2.3522, "place_id": "p1"}},
    {"properties": {"formatted": "Paris, Texas, USA", "lat": 33.6609, "lon": -95.5555, "place_id": "p2"}}
  ]
}`

func TestAutocompleteParsesFeatures(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/geocode/autocomplete" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = map[string]string{
			"text":   r.URL.Query().Get("text"),
			"apiKey": r.URL.Query().Get("apiKey"),
			"limit":  r.URL.Query().Get("limit"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(autocompleteBody))
	}))
	defer server.Close()

	client := New(WithAPIKey("test-key"), WithBaseURL(server.URL))

	got, err := client.Autocomplete(context.Background(), "paris")
	if err != nil {
		t.Fatalf("autocomplete: %v", err)
	}

	want := []suggest.Suggestion{
		{Label: "Paris, France", Lat: 48.8566, Lon: 2.3522, PlaceID: "p1"},
		{Label: "Paris, Texas, USA", Lat: 33.6609, Lon: -95.5555, PlaceID: "p2"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("suggestions mismatch (-want +got):\n%s", diff)
	}

	wantQuery := map[string]string{"text": "paris", "apiKey": "test-key", "limit": "10"}
	if diff := cmp.Diff(wantQuery, gotQuery); diff != "" {
		t.Fatalf("query mismatch (-want +got):\n%s", diff)
	}
}

func TestAutocompleteShortTextSkipsRequest(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(autocompleteBody))
	}))
	defer server.Close()

	client := New(WithAPIKey("test-key"), WithBaseURL(server.URL))

	got, err := client.Autocomplete(context.Background(), "  pa ")
	if err != nil {
		t.Fatalf("autocomplete: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil result for short text, got %v", got)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatalf("expected no request for short text")
	}
}

func TestAutocompleteCapsResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(autocompleteBody))
	}))
	defer server.Close()

	client := New(WithAPIKey("test-key"), WithBaseURL(server.URL), WithMaxResults(1))

	got, err := client.Autocomplete(context.Background(), "paris")
	if err != nil {
		t.Fatalf("autocomplete: %v", err)
	}
	if len(got) != 1 || got[0].Label != "Paris, France" {
		t.Fatalf("expected first result only, got %v", got)
	}
}

func TestAutocompleteSkipsUnlabeledFeatures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"features": [{"properties": {"lat": 1, "lon": 2}}, {"properties": {"formatted": "Lyon, France", "lat": 45.764, "lon": 4.8357}}]}`))
	}))
	defer server.Close()

	client := New(WithAPIKey("test-key"), WithBaseURL(server.URL))

	got, err := client.Autocomplete(context.Background(), "lyon")
	if err != nil {
		t.Fatalf("autocomplete: %v", err)
	}
	if len(got) != 1 || got[0].Label != "Lyon, France" {
		t.Fatalf("unexpected result: %v", got)
	}
}

func TestAutocompleteMissingAPIKey(t *testing.T) {
	client := New(WithBaseURL("http://localhost:0"))
	if _, err := client.Autocomplete(context.Background(), "paris"); err == nil {
		t.Fatalf("expected error without api key")
	}
}

func TestAutocompleteClientErrorNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := New(WithAPIKey("bad-key"), WithBaseURL(server.URL), WithRetryAttempts(3))

	if _, err := client.Autocomplete(context.Background(), "paris"); err == nil {
		t.Fatalf("expected error for 401 response")
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("4xx should not retry, got %d calls", calls)
	}
}

func TestAutocompleteRetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(autocompleteBody))
	}))
	defer server.Close()

	client := New(WithAPIKey("test-key"), WithBaseURL(server.URL), WithRetryAttempts(3))

	got, err := client.Autocomplete(context.Background(), "paris")
	if err != nil {
		t.Fatalf("autocomplete after retries: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected suggestions after retry, got %v", got)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestAutocompleteMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer server.Close()

	client := New(WithAPIKey("test-key"), WithBaseURL(server.URL))

	if _, err := client.Autocomplete(context.Background(), "paris"); err == nil {
		t.Fatalf("expected decode error")
	}
}
