// Package cache provides TTL-bound response caching for the serving
// layer. Two backends exist: an in-memory map for tests and small
// deployments, and a Badger-backed store that survives restarts.
package cache

import (
	"errors"
	"time"
)

// ErrNotFound indicates a missing or expired key.
var ErrNotFound = errors.New("cache: key not found")

// DefaultTTL is the cache lifetime applied when a caller passes zero.
const DefaultTTL = 5 * time.Minute

// Cache stores byte values under string keys with a time-to-live.
type Cache interface {
	// Get returns the value for key, or ErrNotFound if missing or
	// expired.
	Get(key string) ([]byte, error)

	// Set stores value under key for ttl. A zero ttl means DefaultTTL.
	Set(key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	// Close releases backend resources.
	Close() error
}
