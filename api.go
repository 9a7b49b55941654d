package loadcache

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/loadcache/codec"
	st "github.com/unkn0wn-root/loadcache/store"
)

// Reloader computes a fresh value for a key on a miss. ok=false is the
// "no value" signal: nothing is cached and Get reports a miss. A non-nil
// error is returned to the caller of Get as-is.
//
// Reloads are not deduplicated unless CoalesceReloads is set, so a Reloader
// must be safe to call several times for the same key at once.
type Reloader[K comparable, V any] func(ctx context.Context, key K) (v V, ok bool, err error)

// Cache is the contract shared by the Local and Remote backends.
type Cache[K comparable, V any] interface {
	Name() string

	// Get returns the live value for key. On a miss it runs the Reloader,
	// writes the result back and returns it; ok=false when there is no
	// Reloader or it had no value.
	Get(ctx context.Context, key K) (v V, ok bool, err error)
	// Set inserts or overwrites key and resets its expiry to now+TTL.
	Set(ctx context.Context, key K, value V) error
	// Invalidate removes key and reports whether an entry was removed.
	Invalidate(ctx context.Context, key K) (removed bool, err error)
	// Expired reports whether key is absent or past its TTL.
	// Get does not consult it.
	Expired(ctx context.Context, key K) (bool, error)

	Close(context.Context) error
}

// LocalOptions configure an in-process cache. Every field is optional.
type LocalOptions[K comparable, V any] struct {
	Name     string        // "" => "local"
	TTL      time.Duration // 0 => entries never expire
	Reloader Reloader[K, V]

	// CoalesceReloads shares one Reloader call between concurrent misses
	// on the same key.
	CoalesceReloads bool
	// Janitor starts a background goroutine that deletes entries as they
	// expire. Without it expired entries are only skipped on read and
	// replaced on the next write. Close stops it.
	Janitor bool

	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used
}

// RemoteOptions configure a cache over a string key-value store.
// Name and Store are required.
type RemoteOptions[K comparable, V any] struct {
	Name     string // key namespace: cache:<Name>:<key>
	Store    st.Store
	Reloader Reloader[K, V]

	// TTL is passed to the store on every write; 0 => no expiry at the
	// store. store/bigcache ignores it in favour of its LifeWindow, so the
	// two must match there.
	TTL time.Duration

	// Structured encodes V when it is not a scalar type; nil => JSON.
	Structured c.Codec[V]
	// MaxValueSize > 0 caps the encoded size of a value. Larger values fail
	// Set (and the write-back of a reload) with ErrCodec and are not stored;
	// larger stored strings fail Get with ErrCodec.
	MaxValueSize int

	CoalesceReloads bool

	Logger Logger
	Hooks  Hooks
}

func NewLocal[K comparable, V any](opts LocalOptions[K, V]) (Cache[K, V], error) {
	return newLocal[K, V](opts)
}

func NewRemote[K comparable, V any](opts RemoteOptions[K, V]) (Cache[K, V], error) {
	return newRemote[K, V](opts)
}
