package geoapify

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

type Options struct {
	APIKey        string
	BaseURL       string
	HTTPClient    *http.Client
	MaxResults    int
	MinChars      int
	RetryAttempts int
	UserAgent     string
	Limiter       *rate.Limiter
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		BaseURL:       "https://api.geoapify.com",
		HTTPClient:    &http.Client{Timeout: 10 * time.Second},
		MaxResults:    10,
		MinChars:      3,
		RetryAttempts: 1,
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
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.geoapify.com"
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 10
	}
	if opts.MaxResults > 50 {
		opts.MaxResults = 50
	}
	if opts.MinChars <= 0 {
		opts.MinChars = 3
	}
	if opts.RetryAttempts <= 0 {
		opts.RetryAttempts = 1
	}
	return opts
}

func WithAPIKey(key string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.APIKey = key
	}
}

func WithBaseURL(baseURL string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.BaseURL = baseURL
	}
}

func WithHTTPClient(client *http.Client) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.HTTPClient = client
	}
}

func WithMaxResults(n int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxResults = n
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

func WithRetryAttempts(n int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RetryAttempts = n
	}
}

func WithUserAgent(agent string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.UserAgent = agent
	}
}

func WithLimiter(limiter *rate.Limiter) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Limiter = limiter
	}
}
