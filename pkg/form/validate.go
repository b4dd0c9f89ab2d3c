package form

import (
	"fmt"
	"strconv"
	"strings"
)

// Validate checks the values in rec against def and returns messages keyed by
// field name, shaped for direct use as render error input. An empty map means
// the record passes.
func Validate(def *Definition, rec *Record) map[string][]string {
	issues := make(map[string][]string)
	if def == nil {
		return issues
	}

	for _, field := range def.Fields {
		value, _ := lookupValue(rec, field.Name)

		if isEmptyValue(value) {
			if field.Required {
				issues[field.Name] = append(issues[field.Name], "is required")
			}
			continue
		}

		switch field.Type {
		case FieldTypeNumber, FieldTypeInteger:
			number, ok := numberValue(value)
			if !ok {
				issues[field.Name] = append(issues[field.Name], "must be a number")
				continue
			}
			if field.Type == FieldTypeInteger && number != float64(int64(number)) {
				issues[field.Name] = append(issues[field.Name], "must be a whole number")
				continue
			}
			applyNumberRules(field, number, issues)
		case FieldTypeBoolean:
			if _, ok := value.(bool); !ok {
				issues[field.Name] = append(issues[field.Name], "must be true or false")
			}
		default:
			applyStringRules(field, value, issues)
		}

		if len(field.Enum) > 0 && !enumContains(field.Enum, value) {
			issues[field.Name] = append(issues[field.Name], "is not an allowed value")
		}
	}
	return issues
}

func lookupValue(rec *Record, name string) (any, bool) {
	if rec == nil {
		return nil, false
	}
	return rec.GetValue(name)
}

func isEmptyValue(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(typed) == ""
	default:
		return false
	}
}

func applyNumberRules(field Field, number float64, issues map[string][]string) {
	for _, rule := range field.Rules {
		bound, err := strconv.ParseFloat(rule.Value, 64)
		if err != nil {
			continue
		}
		switch rule.Kind {
		case RuleMin:
			if number < bound {
				issues[field.Name] = append(issues[field.Name], fmt.Sprintf("must be at least %s", rule.Value))
			}
		case RuleMax:
			if number > bound {
				issues[field.Name] = append(issues[field.Name], fmt.Sprintf("must be at most %s", rule.Value))
			}
		}
	}
}

func applyStringRules(field Field, value any, issues map[string][]string) {
	text, ok := value.(string)
	if !ok {
		return
	}
	length := len([]rune(text))
	for _, rule := range field.Rules {
		bound, err := strconv.Atoi(rule.Value)
		if err != nil {
			continue
		}
		switch rule.Kind {
		case RuleMinLength:
			if length < bound {
				issues[field.Name] = append(issues[field.Name], fmt.Sprintf("must be at least %d characters", bound))
			}
		case RuleMaxLength:
			if length > bound {
				issues[field.Name] = append(issues[field.Name], fmt.Sprintf("must be at most %d characters", bound))
			}
		}
	}
}

func numberValue(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func enumContains(enum []any, value any) bool {
	for _, candidate := range enum {
		if fmt.Sprintf("%v", candidate) == fmt.Sprintf("%v", value) {
			return true
		}
	}
	return false
}
