// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    MissEvery: 100, // sample logs: ~every 100th miss
//	})
//
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	users, _ := loadcache.NewRemote(loadcache.RemoteOptions[string, User]{
//	    Name:  "user",
//	    Store: store,
//	    Hooks: hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/loadcache"
)

// Hooks moves event delivery off the caller's goroutine. Events that do
// not fit in the queue are dropped and counted.
type Hooks struct {
	inner   loadcache.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
}

var _ loadcache.Hooks = (*Hooks)(nil)

func New(inner loadcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Events sent after
// Close are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped reports how many events were discarded.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default: // drop
		h.dropped.Add(1)
	}
}

func (h *Hooks) Hit(ns string)                     { h.try(func() { h.inner.Hit(ns) }) }
func (h *Hooks) Miss(ns string)                    { h.try(func() { h.inner.Miss(ns) }) }
func (h *Hooks) Reloaded(ns string, loaded bool)   { h.try(func() { h.inner.Reloaded(ns, loaded) }) }
func (h *Hooks) ReloadFailed(ns string, err error) { h.try(func() { h.inner.ReloadFailed(ns, err) }) }
func (h *Hooks) CodecFailed(k, op string, err error) {
	h.try(func() { h.inner.CodecFailed(k, op, err) })
}
func (h *Hooks) StoreFailed(k, op string, err error) {
	h.try(func() { h.inner.StoreFailed(k, op, err) })
}
