// Package cache provides pluggable storage for fetched HTTP bodies.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance
//   - [NullCache]: stores nothing; used when caching is disabled
//
// Keys are produced by a [Keyer] so that backends shared between tools or
// users can be namespaced with [NewScopedKeyer].
package cache

import (
	"context"
	"time"
)

// TTLPage is the default time-to-live for fetched pages and license bodies.
const TTLPage = 24 * time.Hour

// Cache stores opaque byte values by key.
//
// Get reports a miss with (nil, false, nil); errors are reserved for backend
// failures. A ttl of zero passed to Set means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
