// Package cache provides storage backends for rendered markup.
//
// Rendering is deterministic - the same tree, profile, and field
// renderer always produce byte-identical output - so cached results
// never go stale on their own; TTLs only bound storage growth. The
// render service uses a cache keyed by a hash of the raw request body.
//
// Three backends are provided:
//   - [FileCache]: file-based, for single-host deployments and the CLI
//   - [RedisCache]: Redis-backed, for multi-instance deployments
//   - [NullCache]: no-op, for tests and disabling caching
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when a cache backend cannot be reached
// (e.g. Redis connection failures). Callers should treat it as a miss
// and render fresh rather than failing the request.
var ErrUnavailable = errors.New("cache unavailable")

// Cache is the interface for render result storage backends.
type Cache interface {
	// Get retrieves a value. The second result reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A ttl of 0 means the
	// entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// RenderKey returns the cache key for a render request, derived from a
// hash of the raw request payload. Two requests with byte-identical
// payloads always map to the same key.
func RenderKey(payload []byte) string {
	return "render:" + Hash(payload)
}
