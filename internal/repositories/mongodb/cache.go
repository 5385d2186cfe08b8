package mongodb

import (
	"context"
	"time"
)

// CacheService is the slice of the Redis cache the repositories use for
// read-through caching. Nil-safe: every repository works without a cache.
type CacheService interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
}
