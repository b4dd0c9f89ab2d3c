package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/chimdiadi/go-geoform/pkg/form"
	"github.com/chimdiadi/go-geoform/pkg/render"
)

func quoteDefinition() form.Definition {
	return form.Definition{
		Name: "freight-quote",
		Fields: []form.Field{
			{Name: "origin", Type: form.FieldTypeString},
			{Name: "origin_lat", Type: form.FieldTypeNumber},
			{Name: "origin_lon", Type: form.FieldTypeNumber},
			{Name: "mode", Type: form.FieldTypeString},
		},
	}
}

func TestMapErrorPayload_PointerPaths(t *testing.T) {
	payload := map[string][]string{
		"/body/origin":          {"Origin is required"},
		"$.data.origin_lat[0]":  {"Latitude out of range"},
		"shipment.origin_lon":   {"Longitude out of range"},
		"mode":                  {"Unknown mode"},
		"non_field_errors":      {"Form level error"},
		"request/unknown-field": {"Should fall back to form errors"},
		"":                      {"Unscoped form error"},
	}

	mapped := render.MapErrorPayload(quoteDefinition(), payload)

	wantFields := map[string][]string{
		"origin":     {"Origin is required"},
		"origin_lat": {"Latitude out of range"},
		"origin_lon": {"Longitude out of range"},
		"mode":       {"Unknown mode"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Form level error", "Should fall back to form errors", "Unscoped form error"}
	if diff := cmp.Diff(wantForm, mapped.Form, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayload_EmptyPayload(t *testing.T) {
	mapped := render.MapErrorPayload(quoteDefinition(), nil)
	if mapped.Fields != nil || mapped.Form != nil {
		t.Fatalf("expected zero mapping, got %+v", mapped)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
