package form

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRecordSetAndGetDottedPath(t *testing.T) {
	rec := NewRecord(nil, nil)

	if err := rec.SetValue("origin_lat", 48.8566); err != nil {
		t.Fatalf("set origin_lat: %v", err)
	}
	if err := rec.SetValue("shipment.weight", 1200); err != nil {
		t.Fatalf("set nested: %v", err)
	}

	got, ok := rec.GetValue("origin_lat")
	if !ok {
		t.Fatalf("expected origin_lat to resolve")
	}
	if got != 48.8566 {
		t.Fatalf("unexpected value: %v", got)
	}

	nested, ok := rec.GetValue("shipment.weight")
	if !ok || nested != 1200 {
		t.Fatalf("unexpected nested value: %v (ok=%v)", nested, ok)
	}
}

func TestRecordSetValueRejectsBadPaths(t *testing.T) {
	rec := NewRecord(nil, nil)

	if err := rec.SetValue("", 1); err == nil {
		t.Fatalf("expected error for empty path")
	}

	if err := rec.SetValue("origin", "Paris"); err != nil {
		t.Fatalf("set origin: %v", err)
	}
	if err := rec.SetValue("origin.lat", 48.8566); err == nil {
		t.Fatalf("expected error writing below a scalar")
	}

	var nilRec *Record
	if err := nilRec.SetValue("x", 1); err == nil {
		t.Fatalf("expected error on nil record")
	}
}

func TestRecordPrefillIsCopied(t *testing.T) {
	prefill := map[string]any{
		"origin": "Paris",
		"route": map[string]any{
			"mode": "heavy_truck",
		},
	}
	rec := NewRecord(prefill, nil)

	prefill["origin"] = "mutated"
	prefill["route"].(map[string]any)["mode"] = "mutated"

	if v, _ := rec.GetValue("origin"); v != "Paris" {
		t.Fatalf("prefill mutation leaked: %v", v)
	}
	if v, _ := rec.GetValue("route.mode"); v != "heavy_truck" {
		t.Fatalf("nested prefill mutation leaked: %v", v)
	}

	values := rec.Values()
	values["origin"] = "mutated-again"
	if v, _ := rec.GetValue("origin"); v != "Paris" {
		t.Fatalf("Values() exposed internal map: %v", v)
	}
}

func TestRecordErrors(t *testing.T) {
	rec := NewRecord(nil, map[string][]string{
		"origin": {"is required"},
	})

	rec.AddError("origin_lat", "must be at least -90")

	want := []string{"is required"}
	if diff := cmp.Diff(want, rec.ErrorsFor("origin")); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if got := rec.ErrorsFor("origin_lat"); len(got) != 1 {
		t.Fatalf("expected one error, got %v", got)
	}

	rec.ClearErrors()
	if len(rec.Errors()) != 0 {
		t.Fatalf("expected no errors after clear")
	}
}
