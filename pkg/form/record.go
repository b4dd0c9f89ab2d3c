package form

import (
	"fmt"
	"strings"
)

// Record tracks collected values and validation errors keyed by dotted paths.
// It is the mutable half of a rendered form: binders write coordinates into
// it, renderers echo its values and errors back into markup.
type Record struct {
	values map[string]any
	errors map[string][]string
}

// NewRecord seeds a record with prefilled values and errors. Inputs are deep
// copied so later mutation of the arguments cannot leak into the record.
func NewRecord(prefill map[string]any, errs map[string][]string) *Record {
	return &Record{
		values: cloneValues(prefill),
		errors: cloneErrors(errs),
	}
}

// Values returns a deep copy of the current value map.
func (r *Record) Values() map[string]any {
	if r == nil {
		return nil
	}
	return cloneValues(r.values)
}

// Errors returns a copy of the current error map.
func (r *Record) Errors() map[string][]string {
	if r == nil {
		return nil
	}
	return cloneErrors(r.errors)
}

// ErrorsFor returns the messages attached to a dotted path.
func (r *Record) ErrorsFor(path string) []string {
	if r == nil || len(r.errors) == 0 {
		return nil
	}
	return append([]string(nil), r.errors[path]...)
}

// AddError appends a validation message for a dotted path.
func (r *Record) AddError(path, message string) {
	if r == nil || path == "" || message == "" {
		return
	}
	if r.errors == nil {
		r.errors = make(map[string][]string)
	}
	r.errors[path] = append(r.errors[path], message)
}

// ClearErrors removes all stored messages.
func (r *Record) ClearErrors() {
	if r == nil {
		return
	}
	r.errors = make(map[string][]string)
}

// GetValue resolves a dotted path into the value map.
func (r *Record) GetValue(path string) (any, bool) {
	if r == nil {
		return nil, false
	}
	return getPath(r.values, path)
}

// SetValue writes a value at a dotted path, creating intermediate maps as
// needed. Paths address nested maps only; a non-map intermediate is an error.
func (r *Record) SetValue(path string, value any) error {
	if r == nil {
		return fmt.Errorf("form: record is nil")
	}
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("form: value path is empty")
	}
	if r.values == nil {
		r.values = make(map[string]any)
	}
	return setPath(r.values, path, value)
}

func cloneValues(src map[string]any) map[string]any {
	if len(src) == 0 {
		return make(map[string]any)
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = deepCopy(v)
	}
	return out
}

func cloneErrors(src map[string][]string) map[string][]string {
	if len(src) == 0 {
		return make(map[string][]string)
	}
	out := make(map[string][]string, len(src))
	for k, v := range src {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	default:
		return typed
	}
}

func getPath(root map[string]any, path string) (any, bool) {
	if root == nil || path == "" {
		return nil, false
	}
	current := any(root)
	for _, segment := range strings.Split(path, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		next, ok := node[segment]
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

func setPath(root map[string]any, path string, value any) error {
	segments := strings.Split(path, ".")
	current := root
	for i, segment := range segments {
		if segment == "" {
			return fmt.Errorf("form: empty segment in path %q", path)
		}
		if i == len(segments)-1 {
			current[segment] = value
			return nil
		}
		child, ok := current[segment].(map[string]any)
		if !ok {
			if existing, present := current[segment]; present && existing != nil {
				return fmt.Errorf("form: segment %q in path %q is not a map", segment, path)
			}
			child = make(map[string]any)
			current[segment] = child
		}
		current = child
	}
	return nil
}
