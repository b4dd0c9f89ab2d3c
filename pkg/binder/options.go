package binder

import (
	"time"

	"github.com/chimdiadi/go-geoform/pkg/binder/debounce"
	"github.com/chimdiadi/go-geoform/pkg/suggest"
)

// ValueStore is the field-update surface of the host form. form.Record
// satisfies it.
type ValueStore interface {
	SetValue(path string, value any) error
}

// Widget is the dropdown surface the binder keeps in sync with its suggestion
// list. Implementations must not call back into the Binder from SetOptions;
// the binder invokes it while holding its own state lock.
type Widget interface {
	SetOptions(labels []string)
}

type Options struct {
	QuietInterval time.Duration
	MinChars      int
	LatField      string
	LonField      string
	LookupTimeout time.Duration
	Source        suggest.Source
	Widget        Widget
	Clock         debounce.Clock
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		QuietInterval: 250 * time.Millisecond,
		MinChars:      3,
		LatField:      "origin_lat",
		LonField:      "origin_lon",
		LookupTimeout: 5 * time.Second,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.QuietInterval <= 0 {
		opts.QuietInterval = 250 * time.Millisecond
	}
	if opts.MinChars <= 0 {
		opts.MinChars = 3
	}
	if opts.LatField == "" {
		opts.LatField = "origin_lat"
	}
	if opts.LonField == "" {
		opts.LonField = "origin_lon"
	}
	if opts.LookupTimeout <= 0 {
		opts.LookupTimeout = 5 * time.Second
	}
	return opts
}

func WithQuietInterval(d time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.QuietInterval = d
	}
}

func WithMinChars(n int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MinChars = n
	}
}

func WithCoordinateFields(latField, lonField string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if latField != "" {
			o.LatField = latField
		}
		if lonField != "" {
			o.LonField = lonField
		}
	}
}

func WithLookupTimeout(d time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LookupTimeout = d
	}
}

func WithSource(source suggest.Source) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Source = source
	}
}

func WithWidget(widget Widget) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Widget = widget
	}
}

func WithClock(clock debounce.Clock) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Clock = clock
	}
}
