// Package cache holds short lived byte values keyed by string.
package cache

import (
	"context"
	"log/slog"
	"time"
)

type Cache interface {
	// Get returns the value and true on a hit. Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

// New returns a Redis cache when redisURL is set, otherwise an in-process one.
func New(redisURL string) (Cache, error) {
	if redisURL == "" {
		slog.Info("initializing in-memory cache")
		return NewMemory(), nil
	}
	slog.Info("initializing redis cache")
	return NewRedis(redisURL)
}
