package form

import "testing"

func validateDefinition() *Definition {
	return &Definition{
		Name: "freight-quote",
		Fields: []Field{
			{Name: "origin", Type: FieldTypeString, Required: true},
			{
				Name: "origin_lat",
				Type: FieldTypeNumber,
				Rules: []Rule{
					{Kind: RuleMin, Value: "-90"},
					{Kind: RuleMax, Value: "90"},
				},
			},
			{
				Name: "mode",
				Type: FieldTypeString,
				Enum: []any{"heavy_truck", "truck"},
			},
			{
				Name:  "reference",
				Type:  FieldTypeString,
				Rules: []Rule{{Kind: RuleMaxLength, Value: "8"}},
			},
			{Name: "axles", Type: FieldTypeInteger},
		},
	}
}

func TestValidatePassesCleanRecord(t *testing.T) {
	rec := NewRecord(map[string]any{
		"origin":     "Paris, France",
		"origin_lat": 48.8566,
		"mode":       "heavy_truck",
		"reference":  "FQ-1",
		"axles":      5,
	}, nil)

	issues := Validate(validateDefinition(), rec)
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestValidateRequired(t *testing.T) {
	rec := NewRecord(map[string]any{"origin": "   "}, nil)

	issues := Validate(validateDefinition(), rec)
	if got := issues["origin"]; len(got) != 1 || got[0] != "is required" {
		t.Fatalf("unexpected issues for origin: %v", got)
	}
}

func TestValidateNumericBounds(t *testing.T) {
	rec := NewRecord(map[string]any{
		"origin":     "Paris",
		"origin_lat": 123.0,
	}, nil)

	issues := Validate(validateDefinition(), rec)
	if got := issues["origin_lat"]; len(got) != 1 || got[0] != "must be at most 90" {
		t.Fatalf("unexpected issues for origin_lat: %v", got)
	}

	rec = NewRecord(map[string]any{
		"origin":     "Paris",
		"origin_lat": "not-a-number",
	}, nil)
	issues = Validate(validateDefinition(), rec)
	if got := issues["origin_lat"]; len(got) != 1 || got[0] != "must be a number" {
		t.Fatalf("unexpected issues for non-numeric lat: %v", got)
	}
}

func TestValidateStringNumbersAccepted(t *testing.T) {
	rec := NewRecord(map[string]any{
		"origin":     "Paris",
		"origin_lat": "48.8566",
	}, nil)

	issues := Validate(validateDefinition(), rec)
	if len(issues["origin_lat"]) != 0 {
		t.Fatalf("string-encoded number rejected: %v", issues["origin_lat"])
	}
}

func TestValidateEnumAndLength(t *testing.T) {
	rec := NewRecord(map[string]any{
		"origin":    "Paris",
		"mode":      "bicycle",
		"reference": "FQ-123456789",
	}, nil)

	issues := Validate(validateDefinition(), rec)
	if got := issues["mode"]; len(got) != 1 || got[0] != "is not an allowed value" {
		t.Fatalf("unexpected issues for mode: %v", got)
	}
	if got := issues["reference"]; len(got) != 1 || got[0] != "must be at most 8 characters" {
		t.Fatalf("unexpected issues for reference: %v", got)
	}
}

func TestValidateIntegerField(t *testing.T) {
	rec := NewRecord(map[string]any{
		"origin": "Paris",
		"axles":  2.5,
	}, nil)

	issues := Validate(validateDefinition(), rec)
	if got := issues["axles"]; len(got) != 1 || got[0] != "must be a whole number" {
		t.Fatalf("unexpected issues for axles: %v", got)
	}
}
