package loadcache

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// fillFunc writes a reloaded value into the backend and returns what the
// caller of Get should observe.
type fillFunc[V any] func(v V) (out V, ok bool, err error)

type reloader[K comparable, V any] struct {
	ns    string
	fn    Reloader[K, V]
	group *singleflight.Group // nil => every miss reloads on its own
	log   Logger
	hooks Hooks
}

type loaded[V any] struct {
	v  V
	ok bool
}

func newReloader[K comparable, V any](ns string, fn Reloader[K, V], coalesce bool, log Logger, hooks Hooks) *reloader[K, V] {
	r := &reloader[K, V]{ns: ns, fn: fn, log: log, hooks: hooks}
	if coalesce && fn != nil {
		r.group = new(singleflight.Group)
	}
	return r
}

// coalescing reports whether concurrent misses share one reloader call.
func (r *reloader[K, V]) coalescing() bool { return r.group != nil }

// load runs the reload protocol for a missed key. flightKey must be equal
// for two keys exactly when they name the same entry; callers with the same
// flightKey share one reloader call when coalescing is on.
func (r *reloader[K, V]) load(ctx context.Context, key K, flightKey string, fill fillFunc[V]) (V, bool, error) {
	var zero V
	if r.fn == nil {
		return zero, false, nil
	}
	if r.group == nil {
		return r.loadOnce(ctx, key, fill)
	}

	res, err, shared := r.group.Do(flightKey, func() (any, error) {
		v, ok, err := r.loadOnce(ctx, key, fill)
		return loaded[V]{v: v, ok: ok}, err
	})
	if shared {
		r.log.Debug("reload shared", Fields{"ns": r.ns, "key": flightKey})
	}
	if err != nil {
		return zero, false, err
	}
	l := res.(loaded[V])
	return l.v, l.ok, nil
}

func (r *reloader[K, V]) loadOnce(ctx context.Context, key K, fill fillFunc[V]) (V, bool, error) {
	var zero V
	v, ok, err := r.fn(ctx, key)
	if err != nil {
		r.hooks.ReloadFailed(r.ns, err)
		r.log.Warn("reload failed", Fields{"ns": r.ns, "key": key, "err": err})
		return zero, false, err
	}
	if !ok {
		r.hooks.Reloaded(r.ns, false)
		return zero, false, nil
	}
	out, ok, err := fill(v)
	if err != nil {
		return zero, false, err
	}
	r.hooks.Reloaded(r.ns, ok)
	return out, ok, nil
}

// flightIDs hands out singleflight keys for keys that have no faithful
// string form. Equal keys get the same id while any caller holds it, so
// distinct keys never share a flight however they print.
type flightIDs[K comparable] struct {
	mu   sync.Mutex
	next uint64
	live map[K]*flightID
}

type flightID struct {
	s    string
	refs int
}

func newFlightIDs[K comparable]() *flightIDs[K] {
	return &flightIDs[K]{live: make(map[K]*flightID)}
}

// acquire returns the id for key. Call release once the flight returns.
func (f *flightIDs[K]) acquire(key K) (string, func()) {
	f.mu.Lock()
	if key != key {
		// NaN-like keys never match a map entry; give each its own flight
		f.next++
		s := strconv.FormatUint(f.next, 10)
		f.mu.Unlock()
		return s, func() {}
	}
	id, ok := f.live[key]
	if !ok {
		f.next++
		id = &flightID{s: strconv.FormatUint(f.next, 10)}
		f.live[key] = id
	}
	id.refs++
	f.mu.Unlock()

	return id.s, func() {
		f.mu.Lock()
		if id.refs--; id.refs == 0 {
			delete(f.live, key)
		}
		f.mu.Unlock()
	}
}
