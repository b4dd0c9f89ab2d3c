package places

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/chimdiadi/go-geoform/pkg/suggest"
)

const defaultCacheTTL = 10 * time.Minute

// CachedSource decorates a Source with a Redis lookaside cache keyed on the
// normalised query text. Cache failures are logged and tolerated; the wrapped
// source always remains the fallback.
type CachedSource struct {
	source suggest.Source
	client redis.UniversalClient
	ttl    time.Duration
	prefix string
	logger *zap.SugaredLogger
}

type CacheOption func(*CachedSource)

func WithCacheTTL(ttl time.Duration) CacheOption {
	return func(c *CachedSource) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithCachePrefix(prefix string) CacheOption {
	return func(c *CachedSource) {
		if prefix != "" {
			c.prefix = prefix
		}
	}
}

func WithCacheLogger(logger *zap.SugaredLogger) CacheOption {
	return func(c *CachedSource) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCachedSource wraps source with a Redis cache. A nil client returns the
// source unchanged.
func NewCachedSource(source suggest.Source, client redis.UniversalClient, fns ...CacheOption) suggest.Source {
	if source == nil || client == nil {
		return source
	}
	cached := &CachedSource{
		source: source,
		client: client,
		ttl:    defaultCacheTTL,
		prefix: "places:",
		logger: zap.NewNop().Sugar(),
	}
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(cached)
	}
	return cached
}

func (c *CachedSource) Suggest(ctx context.Context, text string) ([]suggest.Suggestion, error) {
	text = suggest.Normalize(text)
	if text == "" {
		return c.source.Suggest(ctx, text)
	}

	key := c.prefix + strings.ToLower(text)
	if cached, err := c.client.Get(ctx, key).Result(); err == nil {
		var items []suggest.Suggestion
		if jsonErr := json.Unmarshal([]byte(cached), &items); jsonErr == nil {
			return items, nil
		}
		c.logger.Debugw("discarding bad cache entry", "key", key)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Debugw("cache read failed", "key", key, "error", err)
	}

	items, err := c.source.Suggest(ctx, text)
	if err != nil {
		return nil, err
	}

	if payload, jsonErr := json.Marshal(items); jsonErr == nil {
		if setErr := c.client.Set(ctx, key, payload, c.ttl).Err(); setErr != nil {
			c.logger.Debugw("cache write failed", "key", key, "error", setErr)
		}
	}
	return items, nil
}
