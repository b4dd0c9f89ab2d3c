package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/chimdiadi/go-geoform/pkg/form"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetOriginAutocomplete = "origin-autocomplete"
	WidgetCoordinate         = "coordinate"
	WidgetToggle             = "toggle"
	WidgetSelect             = "select"
)

// Matcher decides whether a widget renderer should handle the supplied field.
type Matcher func(field form.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widget renderers for fields based on explicit hints or
// registered matchers. Higher priority wins; ties fall back to registration
// order. An empty registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in widget matchers
// registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence. Callers should avoid duplicate names; the
// latest registration wins during resolution.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. An explicit "widget" metadata
// entry is honoured before matcher evaluation.
func (r *Registry) Resolve(field form.Field) (string, bool) {
	if explicit := explicitWidget(field); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Decorate applies registry resolution to every field in the definition. When
// a widget is resolved, Metadata["widget"] is set to the chosen name,
// preserving existing values when present.
func (r *Registry) Decorate(def *form.Definition) error {
	if r == nil || def == nil {
		return nil
	}
	for idx, field := range def.Fields {
		widget, ok := r.Resolve(field)
		if !ok || widget == "" {
			continue
		}
		if field.Metadata == nil {
			field.Metadata = make(map[string]string)
		}
		if field.Metadata["widget"] == "" {
			field.Metadata["widget"] = widget
		}
		def.Fields[idx] = field
	}
	return nil
}

// WidgetFor returns the widget hint carried on a field, or "" when the field
// has not been decorated.
func WidgetFor(field form.Field) string {
	return explicitWidget(field)
}

func explicitWidget(field form.Field) string {
	if field.Metadata == nil {
		return ""
	}
	return strings.TrimSpace(field.Metadata["widget"])
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetOriginAutocomplete, 90, func(field form.Field) bool {
		return form.IsAutocomplete(field)
	})

	r.Register(WidgetCoordinate, 80, func(field form.Field) bool {
		if field.Type != form.FieldTypeNumber && field.Type != form.FieldTypeInteger {
			return false
		}
		return coordinateName(field.Name)
	})

	r.Register(WidgetToggle, 70, func(field form.Field) bool {
		return field.Type == form.FieldTypeBoolean
	})

	r.Register(WidgetSelect, 60, func(field form.Field) bool {
		return len(field.Enum) > 0
	})
}

func coordinateName(name string) bool {
	lowered := strings.ToLower(strings.TrimSpace(name))
	for _, suffix := range []string{"lat", "latitude", "lon", "lng", "longitude"} {
		if lowered == suffix {
			return true
		}
		if strings.HasSuffix(lowered, "_"+suffix) || strings.HasSuffix(lowered, "."+suffix) {
			return true
		}
	}
	return false
}
