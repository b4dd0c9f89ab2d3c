package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/chimdiadi/go-geoform/pkg/geoapify"
	"github.com/chimdiadi/go-geoform/pkg/suggest"
)

// FakeGeoapify is an in-process stand-in for the Geoapify API. It serves the
// autocomplete and routing endpoints from a fixed suggestion set so client
// and component tests run without network access or an API key.
type FakeGeoapify struct {
	Server *httptest.Server

	mu                sync.Mutex
	suggestions       []suggest.Suggestion
	autocompleteCalls int
	routingCalls      int
}

// NewFakeGeoapify starts the fake server and registers cleanup with t. The
// supplied suggestions back the autocomplete endpoint; nil falls back to
// ParisSuggestions.
func NewFakeGeoapify(t *testing.T, suggestions []suggest.Suggestion) *FakeGeoapify {
	t.Helper()

	if suggestions == nil {
		suggestions = ParisSuggestions()
	}
	fake := &FakeGeoapify{suggestions: suggestions}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/geocode/autocomplete", fake.handleAutocomplete)
	mux.HandleFunc("/v1/routing", fake.handleRouting)

	fake.Server = httptest.NewServer(mux)
	t.Cleanup(fake.Server.Close)
	return fake
}

// Client builds a geoapify client pointed at the fake server. Extra options
// are applied after the base URL and test API key.
func (f *FakeGeoapify) Client(fns ...geoapify.OptionFn) *geoapify.Client {
	base := []geoapify.OptionFn{
		geoapify.WithBaseURL(f.Server.URL),
		geoapify.WithAPIKey("test-key"),
	}
	return geoapify.New(append(base, fns...)...)
}

// AutocompleteCalls reports how many autocomplete requests the fake served.
func (f *FakeGeoapify) AutocompleteCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.autocompleteCalls
}

// RoutingCalls reports how many routing requests the fake served.
func (f *FakeGeoapify) RoutingCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.routingCalls
}

func (f *FakeGeoapify) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.autocompleteCalls++
	items := append([]suggest.Suggestion(nil), f.suggestions...)
	f.mu.Unlock()

	if r.URL.Query().Get("apiKey") == "" {
		http.Error(w, `{"error":"missing apiKey"}`, http.StatusUnauthorized)
		return
	}

	text := strings.ToLower(r.URL.Query().Get("text"))
	limit := len(items)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	type properties struct {
		Formatted string  `json:"formatted"`
		Lat       float64 `json:"lat"`
		Lon       float64 `json:"lon"`
		PlaceID   string  `json:"place_id"`
	}
	type feature struct {
		Properties properties `json:"properties"`
	}

	features := make([]feature, 0, len(items))
	for _, item := range items {
		if text != "" && !strings.Contains(strings.ToLower(item.Label), text) {
			continue
		}
		features = append(features, feature{Properties: properties{
			Formatted: item.Label,
			Lat:       item.Lat,
			Lon:       item.Lon,
			PlaceID:   item.PlaceID,
		}})
		if len(features) == limit {
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"features": features})
}

func (f *FakeGeoapify) handleRouting(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.routingCalls++
	f.mu.Unlock()

	if r.URL.Query().Get("apiKey") == "" {
		http.Error(w, `{"error":"missing apiKey"}`, http.StatusUnauthorized)
		return
	}

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "heavy_truck"
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"results": []map[string]any{
			{
				"mode":           mode,
				"distance":       465412.0,
				"distance_units": "meters",
				"time":           17569.0,
				"toll":           true,
				"legs": []map[string]any{
					{"distance": 465412.0, "time": 17569.0},
				},
			},
		},
	})
}
