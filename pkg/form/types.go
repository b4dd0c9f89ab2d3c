package form

import "strings"

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
)

const (
	RuleMin       = "min"
	RuleMax       = "max"
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
)

// Rule is a single validation constraint. Numeric bounds and length limits
// carry their threshold in Value as a string so definitions round-trip through
// YAML and JSON without type drift.
type Rule struct {
	Kind  string `yaml:"kind" json:"kind"`
	Value string `yaml:"value,omitempty" json:"value,omitempty"`
}

// Field models an individual input inside a form definition.
type Field struct {
	Name        string            `yaml:"name" json:"name"`
	Type        FieldType         `yaml:"type,omitempty" json:"type"`
	Format      string            `yaml:"format,omitempty" json:"format,omitempty"`
	Required    bool              `yaml:"required,omitempty" json:"required"`
	Label       string            `yaml:"label,omitempty" json:"label,omitempty"`
	Placeholder string            `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
	Default     any               `yaml:"default,omitempty" json:"default,omitempty"`
	Enum        []any             `yaml:"enum,omitempty" json:"enum,omitempty"`
	Rules       []Rule            `yaml:"rules,omitempty" json:"rules,omitempty"`
	Metadata    map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// Definition is the top-level form description renderers and binders consume.
type Definition struct {
	Name        string            `yaml:"name" json:"name"`
	Title       string            `yaml:"title,omitempty" json:"title,omitempty"`
	Action      string            `yaml:"action,omitempty" json:"action,omitempty"`
	Method      string            `yaml:"method,omitempty" json:"method,omitempty"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
	Fields      []Field           `yaml:"fields" json:"fields"`
	Metadata    map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// Field returns a pointer to the named field so callers can attach metadata
// in place. It returns nil when the field does not exist.
func (d *Definition) Field(name string) *Field {
	if d == nil {
		return nil
	}
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i]
		}
	}
	return nil
}

// HasField reports whether the definition declares the named field.
func (d *Definition) HasField(name string) bool {
	return d.Field(name) != nil
}

// DisplayLabel returns the field label, falling back to a title-cased name.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return labelFromName(f.Name)
}

func labelFromName(name string) string {
	if name == "" {
		return ""
	}
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}
