package form

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// AutocompleteExtension is the OpenAPI extension key that marks a request
// property as geocoding-aware. Its value is an object with optional latField,
// lonField, and minChars members.
const AutocompleteExtension = "x-geo-autocomplete"

// FromOpenAPI builds a Definition from the request schema of one operation in
// an OpenAPI 3 document. Properties become fields sorted by name; required
// flags, descriptions, enums, and numeric bounds carry over. Properties
// tagged with the x-geo-autocomplete extension gain the geocoding marker
// metadata so wiring helpers can attach an endpoint later.
func FromOpenAPI(ctx context.Context, data []byte, operationID string) (*Definition, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("form: openapi document is empty")
	}
	if strings.TrimSpace(operationID) == "" {
		return nil, fmt.Errorf("form: operation id is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("form: load openapi document: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, fmt.Errorf("form: openapi document has no paths")
	}

	method, path, op := findOperation(spec, operationID)
	if op == nil {
		return nil, fmt.Errorf("form: operation %q not found", operationID)
	}

	def := &Definition{
		Name:        operationID,
		Title:       op.Summary,
		Description: op.Description,
		Action:      path,
		Method:      method,
	}

	schema := requestSchema(op.RequestBody)
	if schema == nil {
		return def, nil
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		def.Fields = append(def.Fields, fieldFromSchema(name, ref.Value, required[name]))
	}
	return def, nil
}

func findOperation(spec *openapi3.T, operationID string) (string, string, *openapi3.Operation) {
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return method, path, op
			}
		}
	}
	return "", "", nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func fieldFromSchema(name string, src *openapi3.Schema, required bool) Field {
	field := Field{
		Name:        name,
		Type:        fieldType(src.Type),
		Format:      src.Format,
		Required:    required,
		Description: src.Description,
		Default:     src.Default,
	}
	if src.Title != "" {
		field.Label = src.Title
	}
	if len(src.Enum) > 0 {
		field.Enum = append([]any(nil), src.Enum...)
	}

	if src.Min != nil {
		field.Rules = append(field.Rules, Rule{Kind: RuleMin, Value: formatFloat(*src.Min)})
	}
	if src.Max != nil {
		field.Rules = append(field.Rules, Rule{Kind: RuleMax, Value: formatFloat(*src.Max)})
	}
	if src.MinLength > 0 {
		field.Rules = append(field.Rules, Rule{Kind: RuleMinLength, Value: strconv.FormatUint(src.MinLength, 10)})
	}
	if src.MaxLength != nil {
		field.Rules = append(field.Rules, Rule{Kind: RuleMaxLength, Value: strconv.FormatUint(*src.MaxLength, 10)})
	}

	applyAutocompleteExtension(&field, src.Extensions)
	return field
}

func applyAutocompleteExtension(field *Field, extensions map[string]any) {
	raw, ok := extensions[AutocompleteExtension]
	if !ok {
		return
	}
	if field.Metadata == nil {
		field.Metadata = make(map[string]string)
	}
	field.Metadata[MetaAutocomplete] = "true"

	settings, ok := raw.(map[string]any)
	if !ok {
		return
	}
	if v, ok := stringValue(settings["latField"]); ok {
		field.Metadata[MetaLatField] = v
	}
	if v, ok := stringValue(settings["lonField"]); ok {
		field.Metadata[MetaLonField] = v
	}
	if v, ok := intValue(settings["minChars"]); ok {
		field.Metadata[MetaMinChars] = strconv.Itoa(v)
	}
	if v, ok := intValue(settings["quietMs"]); ok {
		field.Metadata[MetaQuietMs] = strconv.Itoa(v)
	}
}

func fieldType(types *openapi3.Types) FieldType {
	if types == nil || len(*types) == 0 {
		return FieldTypeString
	}
	switch (*types)[0] {
	case "integer":
		return FieldTypeInteger
	case "number":
		return FieldTypeNumber
	case "boolean":
		return FieldTypeBoolean
	default:
		return FieldTypeString
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func stringValue(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return strings.TrimSpace(s), true
}

func intValue(v any) (int, bool) {
	switch typed := v.(type) {
	case int:
		return typed, true
	case int64:
		return int(typed), true
	case float64:
		return int(typed), true
	case string:
		parsed, err := strconv.Atoi(typed)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
