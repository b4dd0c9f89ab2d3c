package geoapify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Client talks to the Geoapify HTTP API. The zero value is not usable; build
// one with New.
type Client struct {
	opts Options
}

// New constructs a client with default options plus any overrides. The API
// key is only required once a live call is made, so tests can point the
// client at a fake server without one.
func New(fns ...OptionFn) *Client {
	return &Client{opts: NewOptions(fns...)}
}

// Options returns a copy of the client configuration.
func (c *Client) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return c.opts
}

// endpoint joins the base URL with an API path and the query values. The API
// key is appended last so callers never carry it in their params.
func (c *Client) endpoint(path string, query url.Values) (string, error) {
	u, err := url.Parse(c.opts.BaseURL)
	if err != nil {
		return "", fmt.Errorf("geoapify: parse base url: %w", err)
	}
	u.Path = path
	if c.opts.APIKey == "" {
		return "", fmt.Errorf("geoapify: api key is required")
	}
	query.Set("apiKey", c.opts.APIKey)
	u.RawQuery = query.Encode()
	return u.String(), nil
}

// get performs a GET with optional rate limiting and retry. Transport errors
// and 5xx responses are retried up to the configured attempts; 4xx responses
// fail immediately. Error text never includes the request URL because it
// carries the API key.
func (c *Client) get(ctx context.Context, name, endpoint string) ([]byte, error) {
	if c.opts.Limiter != nil {
		if err := c.opts.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("geoapify: %s rate limit: %w", name, err)
		}
	}

	var lastErr error
	for attempt := 0; attempt < c.opts.RetryAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("geoapify: build %s request: %w", name, err)
		}
		if c.opts.UserAgent != "" {
			req.Header.Set("User-Agent", c.opts.UserAgent)
		}

		resp, err := c.opts.HTTPClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("geoapify: %s request: %w", name, err)
			if ctx.Err() != nil {
				return nil, lastErr
			}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			lastErr = fmt.Errorf("geoapify: %s returned status %d", name, resp.StatusCode)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return nil, lastErr
			}
			continue
		}
		if readErr != nil {
			lastErr = fmt.Errorf("geoapify: read %s response: %w", name, readErr)
			continue
		}
		return body, nil
	}
	return nil, lastErr
}
