package suggest

import (
	"context"
	"strings"
)

// Source produces ordered suggestions for free text. Implementations decide
// how short or empty text is handled; returning an empty slice with a nil
// error means "no suggestions".
type Source interface {
	Suggest(ctx context.Context, text string) ([]Suggestion, error)
}

// Func adapts a plain function to the Source interface.
type Func func(ctx context.Context, text string) ([]Suggestion, error)

func (f Func) Suggest(ctx context.Context, text string) ([]Suggestion, error) {
	return f(ctx, text)
}

// Static is a fixed-content Source used by examples and tests. It performs a
// case-insensitive substring match on labels and preserves item order.
type Static struct {
	Items []Suggestion
}

func (s Static) Suggest(_ context.Context, text string) ([]Suggestion, error) {
	text = strings.ToLower(Normalize(text))
	if text == "" {
		return nil, nil
	}
	var out []Suggestion
	for _, item := range s.Items {
		if strings.Contains(strings.ToLower(item.Label), text) {
			out = append(out, item)
		}
	}
	return out, nil
}
