package places

import (
	"net/http"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/chimdiadi/go-geoform/pkg/suggest"
)

// GuardFunc runs before a request is served. Returning an error rejects the
// request; errors implementing HTTPError pick the response status.
type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath    string
	SearchParam  string
	LimitParam   string
	DefaultLimit int
	MaxLimit     int
	MinChars     int

	Source    suggest.Source
	Guard     GuardFunc
	Sanitizer *bluemonday.Policy
	Logger    *zap.SugaredLogger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    "/api/places",
		SearchParam:  "text",
		LimitParam:   "limit",
		DefaultLimit: 10,
		MaxLimit:     50,
		MinChars:     3,
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
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/places"
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "text"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 10
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 50
	}
	if opts.MinChars < 0 {
		opts.MinChars = 0
	}
	if opts.Sanitizer == nil {
		opts.Sanitizer = bluemonday.StrictPolicy()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LimitParam = name
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

// WithMinChars sets the minimum query length served from the source. Shorter
// queries answer with an empty option list without a lookup.
func WithMinChars(chars int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MinChars = chars
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

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithSanitizer overrides the HTML sanitiser applied to option labels.
func WithSanitizer(policy *bluemonday.Policy) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Sanitizer = policy
	}
}

func WithLogger(logger *zap.SugaredLogger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
