package loadcache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// local keeps values in process memory. Expiry is enforced on read: an entry
// past now+TTL is treated as missing and reloaded.
type local[K comparable, V any] struct {
	name    string
	ttl     time.Duration
	items   *ttlcache.Cache[K, V]
	reload  *reloader[K, V]
	flights *flightIDs[K] // nil unless reloads are coalesced
	log     Logger
	hooks   Hooks

	janitor   bool
	stopped   chan struct{}
	closeOnce sync.Once
}

func newLocal[K comparable, V any](opts LocalOptions[K, V]) (*local[K, V], error) {
	if opts.TTL < 0 {
		return nil, fmt.Errorf("%w: negative ttl %s", ErrInvalidOptions, opts.TTL)
	}

	c := &local[K, V]{
		name: coalesce(opts.Name, defaultLocalName),
		ttl:  opts.TTL,
		items: ttlcache.New[K, V](
			// reads must not push expiry forward; only Set does
			ttlcache.WithDisableTouchOnHit[K, V](),
		),
	}
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	c.reload = newReloader(c.name, opts.Reloader, opts.CoalesceReloads, c.log, c.hooks)
	if c.reload.coalescing() {
		c.flights = newFlightIDs[K]()
	}

	if opts.Janitor {
		c.janitor = true
		c.stopped = make(chan struct{})
		go func() {
			defer close(c.stopped)
			c.items.Start()
		}()
	}
	return c, nil
}

func (c *local[K, V]) Name() string { return c.name }

func (c *local[K, V]) Get(ctx context.Context, key K) (V, bool, error) {
	if it := c.items.Get(key); it != nil && !it.IsExpired() {
		c.hooks.Hit(c.name)
		return it.Value(), true, nil
	}
	c.hooks.Miss(c.name)

	var flightKey string
	if c.flights != nil {
		var release func()
		flightKey, release = c.flights.acquire(key)
		defer release()
	}
	return c.reload.load(ctx, key, flightKey, func(v V) (V, bool, error) {
		return v, true, c.Set(ctx, key, v)
	})
}

// Set never fails.
func (c *local[K, V]) Set(_ context.Context, key K, value V) error {
	c.items.Set(key, value, c.itemTTL())
	return nil
}

func (c *local[K, V]) Invalidate(_ context.Context, key K) (bool, error) {
	_, removed := c.items.GetAndDelete(key)
	if removed {
		c.log.Debug("invalidated key", Fields{"ns": c.name, "key": key})
	}
	return removed, nil
}

func (c *local[K, V]) Expired(_ context.Context, key K) (bool, error) {
	it := c.items.Get(key)
	return it == nil || it.IsExpired(), nil
}

// Close stops the cleanup loop (if any) and drops every entry.
func (c *local[K, V]) Close(_ context.Context) error {
	c.closeOnce.Do(func() {
		if c.janitor {
			c.items.Stop()
			<-c.stopped
		}
		c.items.DeleteAll()
	})
	return nil
}

func (c *local[K, V]) itemTTL() time.Duration {
	if c.ttl <= 0 {
		return ttlcache.NoTTL
	}
	return c.ttl
}
