package render

import (
	"strings"

	"github.com/chimdiadi/go-geoform/pkg/form"
)

// FieldSubset selects which fields of a definition should be rendered.
// Names match field names directly; Tags match comma or space separated
// values in a field's "tags" metadata entry. A field is kept when it matches
// either filter. An empty subset keeps everything.
type FieldSubset struct {
	Names []string
	Tags  []string
}

// ApplySubset removes fields that do not match the supplied subset filters.
// When subset is empty or def is nil, the definition is left unchanged.
// Coordinate target fields referenced by a kept autocomplete field are kept
// as well so selection writes still have inputs to land in.
func ApplySubset(def *form.Definition, subset FieldSubset) {
	if def == nil {
		return
	}

	names := normaliseTokens(subset.Names)
	tags := normaliseTokens(subset.Tags)
	if len(names) == 0 && len(tags) == 0 {
		return
	}

	keep := make(map[string]struct{}, len(def.Fields))
	for _, field := range def.Fields {
		if !subsetMatches(field, names, tags) {
			continue
		}
		keep[field.Name] = struct{}{}
		if ac, ok := form.AutocompleteFor(field); ok {
			keep[ac.LatField] = struct{}{}
			keep[ac.LonField] = struct{}{}
		}
	}

	filtered := make([]form.Field, 0, len(def.Fields))
	for _, field := range def.Fields {
		if _, ok := keep[field.Name]; ok {
			filtered = append(filtered, field)
		}
	}
	if len(filtered) == 0 {
		def.Fields = nil
		return
	}
	def.Fields = filtered
}

func subsetMatches(field form.Field, names, tags map[string]struct{}) bool {
	if len(names) > 0 {
		if _, ok := names[normaliseToken(field.Name)]; ok {
			return true
		}
	}
	if len(tags) > 0 && field.Metadata != nil {
		for _, tag := range parseTokenList(field.Metadata["tags"]) {
			if _, ok := tags[tag]; ok {
				return true
			}
		}
	}
	return false
}

func normaliseTokens(tokens []string) map[string]struct{} {
	if len(tokens) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		if normalized := normaliseToken(token); normalized != "" {
			out[normalized] = struct{}{}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func normaliseToken(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}

func parseTokenList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if normalized := normaliseToken(part); normalized != "" {
			out = append(out, normalized)
		}
	}
	return out
}
