package html

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/chimdiadi/go-geoform/pkg/form"
	"github.com/chimdiadi/go-geoform/pkg/render"
)

// controlID returns the DOM id for a field control. Characters outside the
// id-safe set collapse to dashes so dotted names stay addressable.
func controlID(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
	return "gf-" + mapped
}

// formatValue renders a value for an HTML attribute. Floats drop trailing
// zeros so coordinates round-trip without noise.
func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func isTruthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "on", "yes":
			return true
		}
	case int:
		return v != 0
	case float64:
		return v != 0
	}
	return false
}

func valueFor(values map[string]any, name string) any {
	if values == nil {
		return nil
	}
	return values[name]
}

// cloneFields copies the field slice and each metadata map so widget
// decoration never leaks into the caller's definition.
func cloneFields(fields []form.Field) []form.Field {
	if len(fields) == 0 {
		return fields
	}
	out := make([]form.Field, len(fields))
	copy(out, fields)
	for i := range out {
		if out[i].Metadata == nil {
			continue
		}
		meta := make(map[string]string, len(out[i].Metadata))
		for key, value := range out[i].Metadata {
			meta[key] = value
		}
		out[i].Metadata = meta
	}
	return out
}

func themePartials(cfg *theme.RendererConfig) map[string]string {
	if cfg == nil {
		return nil
	}
	return cfg.Partials
}

// themeContext exposes the resolved theme to the shell template: the theme
// name for a class hook, inline custom properties, and the stylesheet URL
// when the theme ships one.
func themeContext(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	ctx := map[string]any{
		"name": cfg.Theme,
	}
	if style := cssVarsStyle(cfg.CSSVars); style != "" {
		ctx["style"] = style
	}
	if cfg.AssetURL != nil {
		if href := cfg.AssetURL("stylesheet"); href != "" {
			ctx["stylesheet"] = href
		}
	}
	return ctx
}

// cssVarsStyle folds custom properties into a :root block for inline
// injection.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range sortedKeys(vars) {
		b.WriteString("  " + key + ": " + vars[key] + ";\n")
	}
	b.WriteString("}")
	return b.String()
}

func hiddenContext(hidden map[string]string) []map[string]string {
	fields := render.SortedHiddenFields(hidden)
	if len(fields) == 0 {
		return nil
	}
	out := make([]map[string]string, 0, len(fields))
	for _, field := range fields {
		out = append(out, map[string]string{
			"name":  field.Name,
			"value": field.Value,
		})
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func indentLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
