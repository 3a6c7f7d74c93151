// Package cache provides byte-level caching backends for GitHub API responses.
//
// Three implementations satisfy [Cache]:
//   - [FileCache]: JSON entries on disk, used by the CLI (~/.cache/ecoscout/)
//   - [RedisCache]: shared cache for multi-instance server deployments
//   - [NullCache]: caching disabled
//
// Keys are built with [HTTPKey] and may be namespaced per credential with
// [NewScoped] so that two tokens never observe each other's responses.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads with an optional time-to-live.
type Cache interface {
	// Get returns the cached payload for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// HTTPKey builds the cache key for an HTTP response in the given namespace.
func HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}
