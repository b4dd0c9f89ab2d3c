package form

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadDefinition parses a YAML form definition from r.
func LoadDefinition(r io.Reader) (*Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("form: read definition: %w", err)
	}
	return ParseDefinition(data)
}

// LoadDefinitionFile parses a YAML form definition from disk.
func LoadDefinitionFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("form: read %s: %w", path, err)
	}
	def, err := ParseDefinition(data)
	if err != nil {
		return nil, fmt.Errorf("form: file %s: %w", path, err)
	}
	return def, nil
}

// LoadDefinitionFS parses a YAML form definition from a filesystem entry.
func LoadDefinitionFS(fsys fs.FS, path string) (*Definition, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("form: read %s: %w", path, err)
	}
	def, err := ParseDefinition(data)
	if err != nil {
		return nil, fmt.Errorf("form: file %s: %w", path, err)
	}
	return def, nil
}

// ParseDefinition decodes a YAML document into a Definition and normalizes
// it: every field needs a name, duplicate names are rejected, and missing
// field types default to string.
func ParseDefinition(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("form: parse definition: %w", err)
	}
	if err := normalizeDefinition(&def); err != nil {
		return nil, err
	}
	return &def, nil
}

func normalizeDefinition(def *Definition) error {
	if strings.TrimSpace(def.Name) == "" {
		return fmt.Errorf("form: definition missing name")
	}
	if def.Method == "" {
		def.Method = "POST"
	}
	def.Method = strings.ToUpper(def.Method)

	seen := make(map[string]struct{}, len(def.Fields))
	for i := range def.Fields {
		field := &def.Fields[i]
		field.Name = strings.TrimSpace(field.Name)
		if field.Name == "" {
			return fmt.Errorf("form: definition %q has a field without a name", def.Name)
		}
		if _, dup := seen[field.Name]; dup {
			return fmt.Errorf("form: definition %q declares field %q twice", def.Name, field.Name)
		}
		seen[field.Name] = struct{}{}
		if field.Type == "" {
			field.Type = FieldTypeString
		}
	}
	return nil
}
