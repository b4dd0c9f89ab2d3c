package suggest

import "strings"

// Suggestion is a single geocoding candidate: a human readable label plus the
// coordinate pair it resolves to. PlaceID carries the provider's stable
// identifier when one is returned.
type Suggestion struct {
	Label   string  `json:"label"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	PlaceID string  `json:"place_id,omitempty"`
}

// Labels returns the labels of items in order.
func Labels(items []Suggestion) []string {
	if len(items) == 0 {
		return nil
	}
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	return labels
}

// Normalize trims query text the way lookup sources expect it.
func Normalize(text string) string {
	return strings.TrimSpace(text)
}
