// Package redis defines the cache service interface. The service layer
// depends on this interface rather than the concrete client, so tests can
// substitute an in-memory implementation.
package redis

import (
	"context"
	"time"
)

// CacheService abstracts cache reads and writes.
type CacheService interface {
	// Set stores a key with a ttl.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Get returns the value, or "" with nil error when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	// GetOrError returns the value, or a CodeNotFound error when absent.
	GetOrError(ctx context.Context, key string) (string, error)
	// Delete removes a key if it exists.
	Delete(ctx context.Context, key string) error
	// DeleteByPattern removes every key matching the glob pattern.
	DeleteByPattern(ctx context.Context, pattern string) error
	// DeleteByPatterns removes keys for each of the patterns.
	DeleteByPatterns(ctx context.Context, patterns []string) error
}

// AsyncCacheService adds non-blocking task submission for cache
// invalidation that should not sit on the request path.
type AsyncCacheService interface {
	CacheService
	// SubmitTask queues an asynchronous cache task.
	SubmitTask(action func())
}
