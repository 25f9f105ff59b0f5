package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"pet-sitter.com/pet-sitter/internal/cache"
)

const (
	profileCacheTTL   = time.Minute
	sitterProfileKeyP = "sitter:profile:"
	userProfileKeyP   = "user:profile:"
)

// cachedJSON returns the cached value under key, loading and storing it on a
// miss. Cache failures fall through to load.
func cachedJSON[T any](ctx context.Context, c cache.Cache, key string, load func() (*T, error)) (*T, error) {
	if c != nil {
		if raw, ok, err := c.Get(ctx, key); err == nil && ok {
			var v T
			if err := json.Unmarshal(raw, &v); err == nil {
				return &v, nil
			}
		}
	}

	v, err := load()
	if err != nil {
		return nil, err
	}

	if c != nil {
		if raw, err := json.Marshal(v); err == nil {
			if err := c.Set(ctx, key, raw, profileCacheTTL); err != nil {
				slog.WarnContext(ctx, "failed to cache value", "key", key, "error", err)
			}
		}
	}
	return v, nil
}

func evict(ctx context.Context, c cache.Cache, keys ...string) {
	if c == nil {
		return
	}
	for _, key := range keys {
		if err := c.Delete(ctx, key); err != nil {
			slog.WarnContext(ctx, "failed to evict cache key", "key", key, "error", err)
		}
	}
}
