package binder

import (
	"context"
	"sync"

	"github.com/chimdiadi/go-geoform/pkg/binder/debounce"
	"github.com/chimdiadi/go-geoform/pkg/suggest"
)

// Binder mediates between one text input and a suggestion source. All state
// it mutates lives on the instance: the attach flag, the owned suggestion
// list, the pending debounce task, and the lookup sequence counter.
type Binder struct {
	opts Options
	list *suggest.List
	task *debounce.Task

	mu       sync.Mutex
	attached bool
	input    string
	store    ValueStore
	seq      uint64
}

// New constructs a binder with default options plus any overrides.
func New(fns ...OptionFn) *Binder {
	opts := NewOptions(fns...)
	return &Binder{
		opts: opts,
		list: suggest.NewList(),
		task: debounce.NewWithClock(opts.QuietInterval, opts.Clock),
	}
}

// Options returns a copy of the binder configuration.
func (b *Binder) Options() Options {
	if b == nil {
		return DefaultOptions()
	}
	return b.opts
}

// Attach binds the binder to the named input for the current render and
// remembers where selections are written. It is idempotent: once attached,
// later calls no-op. An empty input name or nil store is a silent skip so
// forms without the field render unchanged. The return reports whether this
// call performed the attach.
func (b *Binder) Attach(input string, store ValueStore) bool {
	if b == nil || input == "" || store == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.attached {
		return false
	}
	b.attached = true
	b.input = input
	b.store = store
	return true
}

// Attached reports whether the binder is bound to an input.
func (b *Binder) Attached() bool {
	if b == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attached
}

// Input returns the name of the bound input, empty when detached.
func (b *Binder) Input() string {
	if b == nil {
		return ""
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.input
}

// Detach releases the input, cancels any pending lookup, and empties the
// suggestion list so a re-created view starts clean.
func (b *Binder) Detach() {
	if b == nil {
		return
	}
	b.task.Cancel()
	b.mu.Lock()
	b.attached = false
	b.input = ""
	b.store = nil
	b.seq++
	b.list.Replace(nil)
	widget := b.opts.Widget
	if widget != nil {
		widget.SetOptions(nil)
	}
	b.mu.Unlock()
}

// OnInput feeds one keystroke's worth of text. Each call re-arms the quiet
// interval; only the final text of a burst reaches the lookup, and only after
// the interval passes with no further input. Ignored while detached.
func (b *Binder) OnInput(text string) {
	if b == nil {
		return
	}
	b.mu.Lock()
	attached := b.attached
	b.mu.Unlock()
	if !attached {
		return
	}
	b.task.Schedule(func() { b.lookup(text) })
}

// Flush forces a pending debounced lookup to run now. It reports whether one
// was pending.
func (b *Binder) Flush() bool {
	if b == nil {
		return false
	}
	return b.task.Flush()
}

// Pending reports whether a debounced lookup is armed.
func (b *Binder) Pending() bool {
	if b == nil {
		return false
	}
	return b.task.Pending()
}

// Suggestions returns a copy of the currently offered suggestions.
func (b *Binder) Suggestions() []suggest.Suggestion {
	if b == nil {
		return nil
	}
	return b.list.Items()
}

// OnSelect resolves the chosen label against the current suggestion list and
// writes the matching coordinates into the host form. A label missing from
// the list, which happens when a fast keystroke raced a slow response, does
// nothing.
func (b *Binder) OnSelect(label string) {
	if b == nil {
		return
	}
	item, ok := b.list.ByLabel(label)
	if !ok {
		return
	}
	b.mu.Lock()
	store := b.store
	b.mu.Unlock()
	if store == nil {
		return
	}
	_ = store.SetValue(b.opts.LatField, item.Lat)
	_ = store.SetValue(b.opts.LonField, item.Lon)
}

// lookup runs on the trailing edge of the debounce. Text below the minimum
// length short-circuits to an empty list without touching the source. Each
// issued lookup takes a fresh sequence number; a response whose number is no
// longer current is discarded, so overlapping lookups cannot publish stale
// suggestions.
func (b *Binder) lookup(text string) {
	text = suggest.Normalize(text)
	if len([]rune(text)) < b.opts.MinChars {
		b.apply(b.nextSeq(), nil)
		return
	}

	seq := b.nextSeq()
	source := b.opts.Source
	if source == nil {
		b.apply(seq, nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.opts.LookupTimeout)
	defer cancel()

	items, err := source.Suggest(ctx, text)
	if err != nil {
		items = nil
	}
	b.apply(seq, items)
}

func (b *Binder) nextSeq() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	return b.seq
}

// apply publishes a lookup result: list contents and widget options change
// together under the lock, keeping the displayed labels and the selection
// lookup in step.
func (b *Binder) apply(seq uint64, items []suggest.Suggestion) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if seq != b.seq {
		return
	}
	b.list.Replace(items)
	if b.opts.Widget != nil {
		b.opts.Widget.SetOptions(suggest.Labels(items))
	}
}
