// Package store defines the string key-value store consumed by the Remote
// backend, with adapters for Redis (store/redis) and two in-process stores
// (store/ristretto, store/bigcache).
//
// Implementations MUST be transparent: Get returns exactly the string that
// was passed to Set for a key. Values may be binary (msgpack, CBOR and
// protobuf codecs produce non-UTF-8 strings).
//
// The keyspace "cache:<name>:" is owned by the cache named <name>. External
// code writing under that prefix will see its values decoded (and possibly
// rejected as corrupt) by the cache.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrRejected is returned by Set when an in-process store refused the write
// under memory pressure. It is not an outage; the cache logs it and moves on.
var ErrRejected = errors.New("store: write rejected")

// Store is a minimal string store with per-entry TTLs.
// Must be safe for concurrent use.
type Store interface {
	// Get returns (value, true, nil) on hit; ("", false, nil) on miss.
	// If an IO/remote error happens, return ("", false, err).
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value with the given TTL; ttl <= 0 means no expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Del removes key and reports whether it existed.
	Del(ctx context.Context, key string) (bool, error)

	// Exists reports whether key is currently live.
	Exists(ctx context.Context, key string) (bool, error)

	// Close releases resources.
	Close(ctx context.Context) error
}
