package html

import (
	"html"
	"strconv"
	"strings"

	"github.com/chimdiadi/go-geoform/pkg/form"
	rendertemplate "github.com/chimdiadi/go-geoform/pkg/render/template"
	"github.com/chimdiadi/go-geoform/pkg/widgets"
)

// fieldRenderer builds the control markup for a single field. A theme partial
// named "widgets.<widget>" replaces the built-in control while the chrome
// wrapper (label, help text, error list) stays the same.
type fieldRenderer struct {
	templates rendertemplate.TemplateRenderer
	partials  map[string]string
}

func (fr *fieldRenderer) render(field form.Field, value any, errs []string) (string, error) {
	widget := widgets.WidgetFor(field)
	if widget == "" {
		widget = "input"
	}

	control, err := fr.control(field, widget, value)
	if err != nil {
		return "", err
	}
	return wrapField(field, widget, control, errs), nil
}

func (fr *fieldRenderer) control(field form.Field, widget string, value any) (string, error) {
	if partial := fr.partials["widgets."+widget]; partial != "" && fr.templates != nil {
		rendered, err := fr.templates.RenderTemplate(partial, map[string]any{
			"field": fieldContext(field, widget, value),
		})
		if err != nil {
			return "", err
		}
		return strings.TrimRight(rendered, "\n"), nil
	}

	switch widget {
	case widgets.WidgetOriginAutocomplete:
		return originControl(field, value), nil
	case widgets.WidgetCoordinate:
		return coordinateControl(field, value), nil
	case widgets.WidgetToggle:
		return toggleControl(field, value), nil
	case widgets.WidgetSelect:
		return selectControl(field, value), nil
	default:
		return inputControl(field, value), nil
	}
}

// originControl renders the place search input. The data attributes mirror
// the flattened endpoint metadata so the browser runtime can attach without
// any out-of-band configuration.
func originControl(field form.Field, value any) string {
	var b strings.Builder
	id := controlID(field.Name)
	listID := id + "-list"

	b.WriteString(`<input type="text"`)
	writeAttr(&b, "id", id)
	writeAttr(&b, "name", field.Name)
	if v := formatValue(value); v != "" {
		writeAttr(&b, "value", v)
	}
	if field.Placeholder != "" {
		writeAttr(&b, "placeholder", field.Placeholder)
	}
	if field.Required {
		b.WriteString(" required")
	}
	writeAttr(&b, "list", listID)
	writeAttr(&b, "autocomplete", "off")
	writeAttr(&b, "spellcheck", "false")
	writeAttr(&b, "class", "geoform-control geoform-origin")
	for _, attr := range autocompleteAttrs(field) {
		writeAttr(&b, attr.name, attr.value)
	}
	b.WriteString(">\n")
	b.WriteString(`<datalist id="` + html.EscapeString(listID) + `"></datalist>`)
	return b.String()
}

type dataAttr struct {
	name  string
	value string
}

// autocompleteAttrs flattens the endpoint settings onto data-geoform-*
// attributes. Static params become data-geoform-param-<key>; a dynamic param
// bound to the self token marks the query parameter, anything else names its
// source field via data-geoform-bind-<key>.
func autocompleteAttrs(field form.Field) []dataAttr {
	ac, ok := form.AutocompleteFor(field)
	if !ok {
		return nil
	}

	attrs := []dataAttr{
		{"data-geoform-autocomplete", "true"},
		{"data-geoform-url", ac.Endpoint.URL},
		{"data-geoform-min-chars", strconv.Itoa(ac.MinChars)},
		{"data-geoform-quiet-ms", strconv.Itoa(ac.QuietMs)},
		{"data-geoform-lat-field", ac.LatField},
		{"data-geoform-lon-field", ac.LonField},
	}
	if ac.Endpoint.Method != "" {
		attrs = append(attrs, dataAttr{"data-geoform-method", ac.Endpoint.Method})
	}
	if ac.Endpoint.ResultsPath != "" {
		attrs = append(attrs, dataAttr{"data-geoform-results-path", ac.Endpoint.ResultsPath})
	}
	if m := ac.Endpoint.Mapping; m.Label != "" {
		attrs = append(attrs, dataAttr{"data-geoform-label-key", m.Label})
	}
	if m := ac.Endpoint.Mapping; m.Value != "" {
		attrs = append(attrs, dataAttr{"data-geoform-value-key", m.Value})
	}
	if m := ac.Endpoint.Mapping; m.Lat != "" {
		attrs = append(attrs, dataAttr{"data-geoform-lat-key", m.Lat})
	}
	if m := ac.Endpoint.Mapping; m.Lon != "" {
		attrs = append(attrs, dataAttr{"data-geoform-lon-key", m.Lon})
	}
	for _, key := range sortedKeys(ac.Endpoint.Params) {
		attrs = append(attrs, dataAttr{"data-geoform-param-" + key, ac.Endpoint.Params[key]})
	}
	for _, key := range sortedKeys(ac.Endpoint.DynamicParams) {
		value := ac.Endpoint.DynamicParams[key]
		if value == form.SelfToken {
			attrs = append(attrs, dataAttr{"data-geoform-query-param", key})
			continue
		}
		attrs = append(attrs, dataAttr{"data-geoform-bind-" + key, value})
	}
	return attrs
}

func coordinateControl(field form.Field, value any) string {
	var b strings.Builder
	b.WriteString(`<input type="number"`)
	writeAttr(&b, "id", controlID(field.Name))
	writeAttr(&b, "name", field.Name)
	if v := formatValue(value); v != "" {
		writeAttr(&b, "value", v)
	}
	writeAttr(&b, "step", "any")
	for _, rule := range field.Rules {
		switch rule.Kind {
		case form.RuleMin:
			writeAttr(&b, "min", rule.Value)
		case form.RuleMax:
			writeAttr(&b, "max", rule.Value)
		}
	}
	if field.Required {
		b.WriteString(" required")
	}
	writeAttr(&b, "class", "geoform-control geoform-coordinate")
	b.WriteString(">")
	return b.String()
}

func toggleControl(field form.Field, value any) string {
	var b strings.Builder
	b.WriteString(`<input type="checkbox"`)
	writeAttr(&b, "id", controlID(field.Name))
	writeAttr(&b, "name", field.Name)
	writeAttr(&b, "value", "true")
	if isTruthy(value) || (value == nil && isTruthy(field.Default)) {
		b.WriteString(" checked")
	}
	writeAttr(&b, "class", "geoform-toggle")
	b.WriteString(">")
	return b.String()
}

func selectControl(field form.Field, value any) string {
	var b strings.Builder
	b.WriteString("<select")
	writeAttr(&b, "id", controlID(field.Name))
	writeAttr(&b, "name", field.Name)
	if field.Required {
		b.WriteString(" required")
	}
	writeAttr(&b, "class", "geoform-control")
	b.WriteString(">\n")

	selected := formatValue(value)
	if selected == "" {
		selected = formatValue(field.Default)
	}
	if selected == "" || !field.Required {
		b.WriteString("  <option value=\"\">Select an option</option>\n")
	}
	for _, raw := range field.Enum {
		option := formatValue(raw)
		b.WriteString("  <option")
		writeAttr(&b, "value", option)
		if option != "" && option == selected {
			b.WriteString(" selected")
		}
		b.WriteString(">" + html.EscapeString(option) + "</option>\n")
	}
	b.WriteString("</select>")
	return b.String()
}

func inputControl(field form.Field, value any) string {
	if field.Type == form.FieldTypeBoolean {
		return toggleControl(field, value)
	}

	inputType := "text"
	switch field.Type {
	case form.FieldTypeInteger, form.FieldTypeNumber:
		inputType = "number"
	}
	switch field.Format {
	case "email":
		inputType = "email"
	case "uri", "url":
		inputType = "url"
	case "date":
		inputType = "date"
	case "date-time":
		inputType = "datetime-local"
	}

	var b strings.Builder
	b.WriteString(`<input type="` + inputType + `"`)
	writeAttr(&b, "id", controlID(field.Name))
	writeAttr(&b, "name", field.Name)
	if v := formatValue(value); v != "" {
		writeAttr(&b, "value", v)
	} else if d := formatValue(field.Default); d != "" {
		writeAttr(&b, "value", d)
	}
	if field.Placeholder != "" {
		writeAttr(&b, "placeholder", field.Placeholder)
	}
	if field.Type == form.FieldTypeInteger {
		writeAttr(&b, "step", "1")
	}
	for _, rule := range field.Rules {
		switch rule.Kind {
		case form.RuleMin:
			if inputType == "number" {
				writeAttr(&b, "min", rule.Value)
			}
		case form.RuleMax:
			if inputType == "number" {
				writeAttr(&b, "max", rule.Value)
			}
		case form.RuleMinLength:
			writeAttr(&b, "minlength", rule.Value)
		case form.RuleMaxLength:
			writeAttr(&b, "maxlength", rule.Value)
		}
	}
	if field.Required {
		b.WriteString(" required")
	}
	writeAttr(&b, "class", "geoform-control")
	b.WriteString(">")
	return b.String()
}

// wrapField adds the shared chrome around a control: label, help text, and
// the per-field error list when validation failed.
func wrapField(field form.Field, widget, control string, errs []string) string {
	var b strings.Builder
	b.WriteString(`<div class="geoform-field"`)
	writeAttr(&b, "data-widget", widget)
	if len(errs) > 0 {
		writeAttr(&b, "data-validation", "error")
	}
	b.WriteString(">\n")

	if label := field.DisplayLabel(); label != "" {
		b.WriteString(`  <label class="geoform-label" for="` + html.EscapeString(controlID(field.Name)) + `">`)
		b.WriteString(html.EscapeString(label))
		if field.Required {
			b.WriteString(` <span class="geoform-required">*</span>`)
		}
		b.WriteString("</label>\n")
	}

	b.WriteString(indentLines(control, "  "))
	b.WriteString("\n")

	if field.Description != "" {
		b.WriteString(`  <small class="geoform-help">` + html.EscapeString(field.Description) + "</small>\n")
	}
	if len(errs) > 0 {
		b.WriteString("  <ul class=\"geoform-field-errors\">\n")
		for _, msg := range errs {
			b.WriteString("    <li>" + html.EscapeString(msg) + "</li>\n")
		}
		b.WriteString("  </ul>\n")
	}
	b.WriteString("</div>\n")
	return b.String()
}

// fieldContext is the view model handed to theme widget partials.
func fieldContext(field form.Field, widget string, value any) map[string]any {
	ctx := map[string]any{
		"name":        field.Name,
		"id":          controlID(field.Name),
		"type":        string(field.Type),
		"widget":      widget,
		"label":       field.DisplayLabel(),
		"placeholder": field.Placeholder,
		"description": field.Description,
		"required":    field.Required,
		"value":       formatValue(value),
	}
	if len(field.Enum) > 0 {
		options := make([]string, 0, len(field.Enum))
		for _, raw := range field.Enum {
			options = append(options, formatValue(raw))
		}
		ctx["options"] = options
	}
	if attrs := autocompleteAttrs(field); len(attrs) > 0 {
		data := make(map[string]string, len(attrs))
		for _, attr := range attrs {
			data[attr.name] = attr.value
		}
		ctx["data"] = data
	}
	return ctx
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(value))
	b.WriteString(`"`)
}
