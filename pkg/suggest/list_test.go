package suggest

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestListReplaceSwapsContents(t *testing.T) {
	list := NewList(Suggestion{Label: "Paris, France", Lat: 48.8566, Lon: 2.3522})

	next := []Suggestion{
		{Label: "Paramaribo, Suriname", Lat: 5.852, Lon: -55.2038},
		{Label: "Parma, Italy", Lat: 44.8015, Lon: 10.3279},
	}
	list.Replace(next)

	want := []string{"Paramaribo, Suriname", "Parma, Italy"}
	if diff := cmp.Diff(want, list.Labels()); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if list.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", list.Len())
	}
}

func TestListReplaceCopiesInput(t *testing.T) {
	items := []Suggestion{{Label: "Lyon, France", Lat: 45.764, Lon: 4.8357}}
	list := NewList()
	list.Replace(items)

	items[0].Label = "mutated"

	got, ok := list.ByLabel("Lyon, France")
	if !ok {
		t.Fatalf("expected original label to survive caller mutation")
	}
	if got.Lat != 45.764 {
		t.Fatalf("unexpected lat: %v", got.Lat)
	}
}

func TestListByLabelReturnsFirstMatch(t *testing.T) {
	list := NewList(
		Suggestion{Label: "Springfield, USA", Lat: 39.7817, Lon: -89.6501},
		Suggestion{Label: "Springfield, USA", Lat: 37.2089, Lon: -93.2923},
	)

	got, ok := list.ByLabel("Springfield, USA")
	if !ok {
		t.Fatalf("expected match")
	}
	if got.Lat != 39.7817 {
		t.Fatalf("expected first occurrence, got lat %v", got.Lat)
	}
}

func TestListByLabelMissing(t *testing.T) {
	list := NewList(Suggestion{Label: "Paris, France", Lat: 48.8566, Lon: 2.3522})

	if _, ok := list.ByLabel("Paris, Texas"); ok {
		t.Fatalf("expected no match for absent label")
	}

	list.Clear()
	if list.Len() != 0 {
		t.Fatalf("expected empty list after clear")
	}
	if labels := list.Labels(); len(labels) != 0 {
		t.Fatalf("expected no labels after clear, got %v", labels)
	}
}

func TestStaticSourceMatchesCaseInsensitive(t *testing.T) {
	src := Static{Items: []Suggestion{
		{Label: "Paris, France", Lat: 48.8566, Lon: 2.3522},
		{Label: "Berlin, Germany", Lat: 52.52, Lon: 13.405},
	}}

	got, err := src.Suggest(context.Background(), "  paris ")
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(got) != 1 || got[0].Label != "Paris, France" {
		t.Fatalf("unexpected result: %+v", got)
	}

	empty, err := src.Suggest(context.Background(), "   ")
	if err != nil {
		t.Fatalf("suggest empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no matches for blank text, got %+v", empty)
	}
}

func TestLabelsHelperPreservesOrder(t *testing.T) {
	items := []Suggestion{
		{Label: "b"},
		{Label: "a"},
		{Label: "c"},
	}
	if diff := cmp.Diff([]string{"b", "a", "c"}, Labels(items)); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if Labels(nil) != nil {
		t.Fatalf("expected nil labels for nil input")
	}
}
