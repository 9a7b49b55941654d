package loadcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	c "github.com/unkn0wn-root/loadcache/codec"
	"github.com/unkn0wn-root/loadcache/internal/util"
	st "github.com/unkn0wn-root/loadcache/store"
)

// remote is a stateless facade over a string store. Expiry is the store's
// job: values are written with the cache TTL and nothing is tracked locally.
type remote[K comparable, V any] struct {
	ns     string
	store  st.Store
	wire   *c.Wire[V]
	ttl    time.Duration
	reload *reloader[K, V]
	log    Logger
	hooks  Hooks
}

func newRemote[K comparable, V any](opts RemoteOptions[K, V]) (*remote[K, V], error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("%w: store is required", ErrInvalidOptions)
	}
	if opts.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidOptions)
	}
	if opts.TTL < 0 {
		return nil, fmt.Errorf("%w: negative ttl %s", ErrInvalidOptions, opts.TTL)
	}

	rc := &remote[K, V]{
		ns:    opts.Name,
		store: opts.Store,
		ttl:   opts.TTL,
		wire: c.New(c.Config[V]{
			Structured: opts.Structured,
			MaxSize:    opts.MaxValueSize,
		}),
	}
	rc.log = coalesce[Logger](opts.Logger, NopLogger{})
	rc.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	rc.reload = newReloader(rc.ns, opts.Reloader, opts.CoalesceReloads, rc.log, rc.hooks)
	return rc, nil
}

func (rc *remote[K, V]) Name() string { return rc.ns }

func (rc *remote[K, V]) Get(ctx context.Context, key K) (V, bool, error) {
	var zero V
	k := rc.storageKey(key)
	raw, ok, err := rc.store.Get(ctx, k)
	if err != nil {
		return zero, false, rc.storeErr(k, "get", err)
	}
	if !ok {
		rc.hooks.Miss(rc.ns)
		return rc.reload.load(ctx, key, k, func(v V) (V, bool, error) {
			s, ok, err := rc.put(ctx, k, v)
			if err != nil || !ok {
				return zero, false, err
			}
			// hand back what a later hit would decode, without a round trip
			return rc.decode(k, s)
		})
	}
	v, ok, err := rc.decode(k, raw)
	if err != nil {
		return v, false, err
	}
	if !ok {
		// present but empty: no value, and no reload either
		rc.hooks.Miss(rc.ns)
		return v, false, nil
	}
	rc.hooks.Hit(rc.ns)
	return v, true, nil
}

func (rc *remote[K, V]) Set(ctx context.Context, key K, value V) error {
	_, _, err := rc.put(ctx, rc.storageKey(key), value)
	return err
}

func (rc *remote[K, V]) Invalidate(ctx context.Context, key K) (bool, error) {
	k := rc.storageKey(key)
	removed, err := rc.store.Del(ctx, k)
	if err != nil {
		return false, rc.storeErr(k, "del", err)
	}
	rc.log.Debug("invalidated key", Fields{"key": k, "removed": removed})
	return removed, nil
}

func (rc *remote[K, V]) Expired(ctx context.Context, key K) (bool, error) {
	k := rc.storageKey(key)
	live, err := rc.store.Exists(ctx, k)
	if err != nil {
		return false, rc.storeErr(k, "exists", err)
	}
	return !live, nil
}

// Close closes the store. Stores shared between caches (store/redis without
// CloseClient) treat this as a no-op.
func (rc *remote[K, V]) Close(ctx context.Context) error {
	return rc.store.Close(ctx)
}

// put encodes and writes v. A value that encodes to "no value" (nil pointer,
// map, slice) removes the key instead; ok=false reports that case.
func (rc *remote[K, V]) put(ctx context.Context, k string, v V) (string, bool, error) {
	s, ok, err := rc.wire.Encode(v)
	if err != nil {
		rc.hooks.CodecFailed(k, "encode", err)
		return "", false, err
	}
	if !ok {
		if _, err := rc.store.Del(ctx, k); err != nil {
			return "", false, rc.storeErr(k, "del", err)
		}
		return "", false, nil
	}
	if err := rc.store.Set(ctx, k, s, rc.ttl); err != nil {
		if errors.Is(err, st.ErrRejected) {
			rc.log.Debug("set rejected by store (pressure)", Fields{"key": k})
			return s, true, nil
		}
		return "", false, rc.storeErr(k, "set", err)
	}
	return s, true, nil
}

func (rc *remote[K, V]) decode(k, s string) (V, bool, error) {
	v, ok, err := rc.wire.Decode(s)
	if err != nil {
		rc.hooks.CodecFailed(k, "decode", err)
		rc.log.Warn("stored value does not decode", Fields{"key": k, "type": rc.wire.Type(), "err": err})
		return v, false, err
	}
	return v, ok, nil
}

func (rc *remote[K, V]) storeErr(k, op string, err error) error {
	rc.hooks.StoreFailed(k, op, err)
	rc.log.Debug("store call failed", Fields{"key": k, "op": op, "err": err})
	return &StoreError{Op: op, Key: k, Err: err}
}

func (rc *remote[K, V]) storageKey(key K) string {
	return util.StorageKey(keyPrefix, rc.ns, key)
}
