package bigcache

import (
	"context"
	"errors"
	"sync"
	"time"

	bc "github.com/allegro/bigcache/v3"

	"github.com/unkn0wn-root/loadcache"
	"github.com/unkn0wn-root/loadcache/store"
)

// Store keeps strings in a BigCache shard set.
//
// BigCache has no per-entry TTL: every entry lives for Config.LifeWindow and
// the ttl passed to Set is ignored. Pick LifeWindow equal to the cache TTL;
// the first Set with a different ttl is reported to Config.Logger.
type Store struct {
	c          *bc.BigCache
	lifeWindow time.Duration
	log        loadcache.Logger
	warnOnce   sync.Once
	closeOnce  sync.Once
}

var _ store.Store = (*Store)(nil)

type Config struct {
	LifeWindow         time.Duration
	CleanWindow        time.Duration
	MaxEntriesInWindow int
	MaxEntrySize       int
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited

	Logger loadcache.Logger // if nil, NopLogger is used
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	conf := bc.DefaultConfig(cfg.LifeWindow)
	conf.Verbose = false
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.New(ctx, conf)
	if err != nil {
		return nil, err
	}
	s := &Store{c: c, lifeWindow: cfg.LifeWindow, log: cfg.Logger}
	if s.log == nil {
		s.log = loadcache.NopLogger{}
	}
	return s, nil
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	b, resp, err := s.c.GetWithInfo(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	// entries past LifeWindow linger until the next CleanWindow sweep
	if resp.EntryStatus == bc.Expired {
		return "", false, nil
	}
	return string(b), true, nil
}

func (s *Store) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if ttl > 0 && ttl != s.lifeWindow {
		s.warnOnce.Do(func() {
			s.log.Warn("bigcache ignores per-entry ttl", loadcache.Fields{
				"ttl":         ttl.String(),
				"life_window": s.lifeWindow.String(),
				"key":         key,
			})
		})
	}
	return s.c.Set(key, []byte(value))
}

func (s *Store) Del(_ context.Context, key string) (bool, error) {
	err := s.c.Delete(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	_, ok, err := s.Get(ctx, key)
	return ok, err
}

// Close stops the cleanup goroutine. Repeated calls are no-ops.
func (s *Store) Close(_ context.Context) error {
	var err error
	s.closeOnce.Do(func() { err = s.c.Close() })
	return err
}
