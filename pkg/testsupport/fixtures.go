package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/chimdiadi/go-geoform/pkg/form"
	"github.com/chimdiadi/go-geoform/pkg/suggest"
)

// QuoteDefinition returns the freight-quote form used across the test suites:
// an origin text field wired for geocoding autocomplete plus its coordinate
// targets and a couple of routing knobs.
func QuoteDefinition(t *testing.T) *form.Definition {
	t.Helper()

	def := &form.Definition{
		Name:   "freight-quote",
		Title:  "Freight Quote",
		Action: "/quotes",
		Method: "POST",
		Fields: []form.Field{
			{Name: "origin", Type: form.FieldTypeString, Label: "Origin", Required: true},
			{Name: "origin_lat", Type: form.FieldTypeNumber},
			{Name: "origin_lon", Type: form.FieldTypeNumber},
			{
				Name: "mode",
				Type: form.FieldTypeString,
				Enum: []any{"heavy_truck", "truck", "drive"},
			},
			{Name: "avoid_tolls", Type: form.FieldTypeBoolean},
		},
	}
	err := form.ApplyAutocomplete(def, "origin", form.Autocomplete{
		Endpoint: form.Endpoint{
			URL:         "/api/places",
			ResultsPath: "data",
			DynamicParams: map[string]string{
				"text": form.SelfToken,
			},
			Mapping: form.Mapping{
				Value: "value",
				Label: "label",
				Lat:   "lat",
				Lon:   "lon",
			},
		},
	})
	if err != nil {
		t.Fatalf("testsupport: apply autocomplete: %v", err)
	}
	return def
}

// ParisSuggestions returns a small ordered suggestion fixture.
func ParisSuggestions() []suggest.Suggestion {
	return []suggest.Suggestion{
		{Label: "Paris, France", Lat: 48.8566, Lon: 2.3522, PlaceID: "fr-paris"},
		{Label: "Paris, TX, United States", Lat: 33.6609, Lon: -95.5555, PlaceID: "us-paris"},
		{Label: "Parys, Free State, South Africa", Lat: -26.9036, Lon: 27.4587, PlaceID: "za-parys"},
	}
}

// LoadDefinition reads a YAML fixture and parses it into a Definition.
func LoadDefinition(t *testing.T, path string) *form.Definition {
	t.Helper()

	def, err := LoadDefinitionFromPath(path)
	if err != nil {
		t.Fatalf("load definition: %v", err)
	}
	return def
}

// LoadDefinitionFromPath returns a Definition without requiring testing.T,
// allowing callers to wire fixtures in setup functions.
func LoadDefinitionFromPath(path string) (*form.Definition, error) {
	if path == "" {
		return nil, errors.New("testsupport: definition path is required")
	}

	def, err := form.LoadDefinitionFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: load definition: %w", err)
	}
	return def, nil
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
