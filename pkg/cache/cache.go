// Package cache provides a byte-oriented cache with pluggable backends,
// used by the server and CLI to avoid re-rendering artifacts (DOT, SVG)
// for unchanged graphs.
//
// Keys are derived from the graph's canonical signature via [Key], so
// entries are content-addressed: a stale entry can never be served for
// a changed graph. Backends:
//   - memory: in-process map with TTL, for single-instance servers and tests
//   - redis: shared cache for multi-instance deployments
//   - null: disables caching
//
// This cache is distinct from pkg/validation's verdict memo, which is
// part of the engine proper and always in-memory.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by backends for operations that require an
// existing entry.
var ErrNotFound = errors.New("not found")

// Cache is the interface for byte-cache backends. Implementations must
// be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no
	// expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
