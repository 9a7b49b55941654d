package loadcache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	st "github.com/unkn0wn-root/loadcache/store"
)

type memEntry struct {
	v   string
	exp time.Time // zero => no TTL
}

// memStore is a map-backed store.Store with an injectable outage.
type memStore struct {
	mu   sync.Mutex
	m    map[string]memEntry
	fail error
	ttls map[string]time.Duration // last ttl passed to Set per key
}

var _ st.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{m: make(map[string]memEntry), ttls: make(map[string]time.Duration)}
}

func (s *memStore) down(err error) {
	s.mu.Lock()
	s.fail = err
	s.mu.Unlock()
}

func (s *memStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return "", false, s.fail
	}
	e, ok := s.m[key]
	if !ok {
		return "", false, nil
	}
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		delete(s.m, key)
		return "", false, nil
	}
	return e.v, true, nil
}

func (s *memStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	s.m[key] = memEntry{v: value, exp: exp}
	s.ttls[key] = ttl
	return nil
}

func (s *memStore) Del(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return false, s.fail
	}
	_, ok := s.m[key]
	delete(s.m, key)
	return ok, nil
}

func (s *memStore) Exists(ctx context.Context, key string) (bool, error) {
	_, ok, err := s.Get(ctx, key)
	return ok, err
}

func (s *memStore) Close(context.Context) error { return nil }

func (s *memStore) raw(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[key]
	return e.v, ok
}

func (s *memStore) put(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = memEntry{v: value}
}

type user struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
}

// countingReloader returns v for every key and counts calls.
type countingReloader[K comparable, V any] struct {
	calls atomic.Int64
	v     V
	ok    bool
	err   error
	delay time.Duration
}

func (r *countingReloader[K, V]) fn(ctx context.Context, _ K) (V, bool, error) {
	r.calls.Add(1)
	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			var zero V
			return zero, false, ctx.Err()
		}
	}
	return r.v, r.ok, r.err
}

var errBackend = errors.New("backend down")

// recHooks records events for assertions.
type recHooks struct {
	mu     sync.Mutex
	events []string
}

func (h *recHooks) add(e string) {
	h.mu.Lock()
	h.events = append(h.events, e)
	h.mu.Unlock()
}

func (h *recHooks) Hit(string)  { h.add("hit") }
func (h *recHooks) Miss(string) { h.add("miss") }
func (h *recHooks) Reloaded(_ string, loaded bool) {
	if loaded {
		h.add("reloaded")
		return
	}
	h.add("reloaded-empty")
}
func (h *recHooks) ReloadFailed(string, error)              { h.add("reload-failed") }
func (h *recHooks) CodecFailed(_ string, op string, _ error) { h.add("codec-" + op) }
func (h *recHooks) StoreFailed(_ string, op string, _ error) { h.add("store-" + op) }

func (h *recHooks) got(t *testing.T, want ...string) {
	t.Helper()
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.events) != len(want) {
		t.Fatalf("events=%v want %v", h.events, want)
	}
	for i := range want {
		if h.events[i] != want[i] {
			t.Fatalf("events=%v want %v", h.events, want)
		}
	}
}
