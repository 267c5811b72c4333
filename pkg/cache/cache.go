// Package cache stores resolved layout profiles between runs.
//
// Resolving a profile is cheap, but the HTTP server and batch commands answer
// the same (spec, device, preferences) question many times. Entries are keyed
// by a [Keyer] so that every input that changes the profile changes the key.
//
// Three backends are provided:
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: JSON files under a directory (CLI)
//   - [RedisCache]: a shared Redis instance (server deployments)
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long resolved profiles are kept.
const DefaultTTL = 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}
