package places_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chimdiadi/go-geoform/components/places"
	"github.com/chimdiadi/go-geoform/pkg/suggest"
	"github.com/chimdiadi/go-geoform/pkg/testsupport"
)

func TestMountPath(t *testing.T) {
	cases := []struct {
		name     string
		basePath string
		fns      []places.OptionFn
		want     string
	}{
		{"default", "", nil, "/api/places"},
		{"base path", "/forms", nil, "/forms/api/places"},
		{"trailing slash", "/forms/", nil, "/forms/api/places"},
		{"missing slash", "forms", nil, "/forms/api/places"},
		{"custom route", "/forms", []places.OptionFn{places.WithRoutePath("/geo/search")}, "/forms/geo/search"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := places.MountPath(tc.basePath, tc.fns...); got != tc.want {
				t.Fatalf("mount path mismatch: got %q want %q", got, tc.want)
			}
		})
	}
}

func TestRegisterRoutes(t *testing.T) {
	mux := http.NewServeMux()
	source := suggest.Static{Items: testsupport.ParisSuggestions()}

	pattern, err := places.RegisterRoutes(mux, "/forms", places.WithSource(source))
	if err != nil {
		t.Fatalf("register routes: %v", err)
	}
	if pattern != "/forms/api/places" {
		t.Fatalf("unexpected pattern: %q", pattern)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/forms/api/places?text=paris", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if got := decodePlaces(t, rec); len(got) == 0 {
		t.Fatalf("expected suggestions through mounted route")
	}
}

func TestRegisterRoutesRequiresMux(t *testing.T) {
	if _, err := places.RegisterRoutes(nil, "/forms"); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}
