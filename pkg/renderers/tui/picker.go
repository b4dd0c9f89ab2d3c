package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/chimdiadi/go-geoform/pkg/binder"
	"github.com/chimdiadi/go-geoform/pkg/form"
	"github.com/chimdiadi/go-geoform/pkg/suggest"
)

// Picker runs an interactive place search for one autocomplete field. It
// prompts for search text, resolves suggestions through a binder, and writes
// the accepted coordinates into the record the same way a browser selection
// would.
type Picker struct {
	driver   PromptDriver
	source   suggest.Source
	field    string
	pageSize int
}

// NewPicker constructs a picker backed by the survey driver unless an option
// swaps it out.
func NewPicker(source suggest.Source, options ...Option) (*Picker, error) {
	driver, err := newSurveyDriver()
	if err != nil {
		return nil, err
	}

	p := &Picker{
		driver:   driver,
		source:   source,
		pageSize: defaultPageSize,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}

	if p.driver == nil {
		p.driver, err = newSurveyDriver()
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Run loops prompt, lookup, select, confirm until the user accepts a
// suggestion or aborts. On accept the coordinates land in rec under the
// field's configured coordinate paths and the search field itself receives
// the chosen label. Declining the retry prompt after an empty lookup returns
// ErrAborted.
func (p *Picker) Run(ctx context.Context, def *form.Definition, rec *form.Record) (suggest.Suggestion, error) {
	var chosen suggest.Suggestion
	if ctx == nil {
		return chosen, errors.New("tui: context is required")
	}
	if p.driver == nil {
		return chosen, errors.New("tui: prompt driver is nil")
	}
	if def == nil {
		return chosen, errors.New("tui: definition is nil")
	}
	if rec == nil {
		return chosen, errors.New("tui: record is nil")
	}

	field, ac, err := p.resolveField(def)
	if err != nil {
		return chosen, err
	}

	b := binder.New(
		binder.WithSource(p.source),
		binder.WithCoordinateFields(ac.LatField, ac.LonField),
		binder.WithMinChars(ac.MinChars),
		binder.WithQuietInterval(time.Duration(ac.QuietMs)*time.Millisecond),
	)
	if !b.Attach(field.Name, rec) {
		return chosen, fmt.Errorf("tui: attach input %q", field.Name)
	}
	defer b.Detach()

	text := ""
	for {
		if err := ctx.Err(); err != nil {
			return chosen, err
		}

		text, err = p.driver.Input(ctx, InputConfig{
			Message:     field.DisplayLabel(),
			Default:     text,
			Help:        field.Description,
			Placeholder: field.Placeholder,
			Validator:   minLengthValidator(ac.MinChars),
		})
		if err != nil {
			return chosen, err
		}

		// The prompt returns a whole line; flush the debounce instead of
		// waiting out the quiet interval.
		b.OnInput(text)
		b.Flush()

		items := b.Suggestions()
		if len(items) == 0 {
			notice := fmt.Sprintf("No places match %q.", strings.TrimSpace(text))
			if err := p.driver.Info(ctx, notice); err != nil {
				return chosen, err
			}
			again, err := p.driver.Confirm(ctx, ConfirmConfig{Message: "Search again?", Default: true})
			if err != nil {
				return chosen, err
			}
			if !again {
				return chosen, ErrAborted
			}
			continue
		}

		idx, err := p.driver.Select(ctx, SelectConfig{
			Message:  "Pick a place",
			Options:  suggest.Labels(items),
			PageSize: p.pageSize,
		})
		if err != nil {
			return chosen, err
		}
		if idx < 0 || idx >= len(items) {
			continue
		}

		accept, err := p.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Use %q?", items[idx].Label),
			Default: true,
		})
		if err != nil {
			return chosen, err
		}
		if !accept {
			continue
		}

		chosen = items[idx]
		b.OnSelect(chosen.Label)
		if err := rec.SetValue(field.Name, chosen.Label); err != nil {
			return chosen, err
		}
		return chosen, nil
	}
}

// resolveField locates the field the picker should drive: the configured one,
// or the first autocomplete field in the definition.
func (p *Picker) resolveField(def *form.Definition) (form.Field, form.Autocomplete, error) {
	name := p.field
	if name == "" {
		for _, f := range def.Fields {
			if form.IsAutocomplete(f) {
				name = f.Name
				break
			}
		}
	}
	if name == "" {
		return form.Field{}, form.Autocomplete{}, errors.New("tui: definition has no autocomplete field")
	}

	field := def.Field(name)
	if field == nil {
		return form.Field{}, form.Autocomplete{}, fmt.Errorf("tui: field %q not found", name)
	}
	ac, ok := form.AutocompleteFor(*field)
	if !ok {
		return form.Field{}, form.Autocomplete{}, fmt.Errorf("tui: field %q is not wired for autocomplete", name)
	}
	return *field, ac, nil
}

func minLengthValidator(min int) func(string) error {
	if min <= 0 {
		return nil
	}
	return func(text string) error {
		if utf8.RuneCountInString(strings.TrimSpace(text)) < min {
			return fmt.Errorf("enter at least %d characters", min)
		}
		return nil
	}
}
