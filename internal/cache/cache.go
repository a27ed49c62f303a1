// Package cache provides the key/value store behind sessions, the public page
// cache and rate limiting. Redis is used in deployments; Memory serves local
// runs and tests.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
	// IsRateLimited counts one hit for key and reports whether the count in
	// the current window exceeds limit.
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) bool
	Close() error
}

var (
	_ Store = (*Client)(nil)
	_ Store = (*Memory)(nil)
)
