package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/unkn0wn-root/loadcache"
	"github.com/unkn0wn-root/loadcache/store"
	"github.com/unkn0wn-root/loadcache/store/bigcache"
	"github.com/unkn0wn-root/loadcache/store/redis"
	"github.com/unkn0wn-root/loadcache/store/ristretto"
)

var errUnknownStore = errors.New("unknown store")

type config struct {
	Store    string
	Addr     string
	TTL      time.Duration
	LogLevel string
	Timeout  time.Duration
}

func bindConfig(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("CACHECTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}
	return v, nil
}

func loadConfig(v *viper.Viper) (config, error) {
	cfg := config{
		Store:    v.GetString("store"),
		Addr:     v.GetString("addr"),
		TTL:      v.GetDuration("ttl"),
		LogLevel: v.GetString("log-level"),
		Timeout:  v.GetDuration("timeout"),
	}
	if cfg.TTL < 0 {
		return cfg, fmt.Errorf("ttl must not be negative: %s", cfg.TTL)
	}
	switch cfg.Store {
	case "redis", "ristretto", "bigcache":
	default:
		return cfg, fmt.Errorf("%w %q (want redis, ristretto or bigcache)", errUnknownStore, cfg.Store)
	}
	return cfg, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.DisableStacktrace = true
	return zc.Build()
}

// openStore builds the backing store. In-process stores only live as long
// as the command, so they are mostly useful for demo.
func openStore(ctx context.Context, cfg config, log loadcache.Logger) (store.Store, error) {
	switch cfg.Store {
	case "ristretto":
		s, err := ristretto.New(ristretto.Config{NumCounters: 1e5, MaxCost: 64 << 20, BufferItems: 64})
		if err != nil {
			return nil, err
		}
		return s, nil
	case "bigcache":
		life := cfg.TTL
		if life <= 0 {
			life = time.Hour
		}
		s, err := bigcache.New(ctx, bigcache.Config{LifeWindow: life, CleanWindow: time.Second, Logger: log})
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		rdb := goredis.NewClient(&goredis.Options{
			Addr:        cfg.Addr,
			DialTimeout: cfg.Timeout,
			ReadTimeout: cfg.Timeout,
		})
		s, err := redis.New(redis.Config{Client: rdb, CloseClient: true})
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}
