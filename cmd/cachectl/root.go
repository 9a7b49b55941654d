package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/unkn0wn-root/loadcache"
	zapadapter "github.com/unkn0wn-root/loadcache/log/zap"
	"github.com/unkn0wn-root/loadcache/store"
)

// env holds what subcommands share. The root's PersistentPreRunE fills it;
// the caller of Execute closes it.
type env struct {
	cfg   config
	zl    *zap.Logger
	log   loadcache.Logger
	store store.Store
}

func (e *env) close(ctx context.Context) {
	if e.store != nil {
		if err := e.store.Close(ctx); err != nil {
			e.zl.Warn("closing store", zap.Error(err))
		}
	}
	if e.zl != nil {
		_ = e.zl.Sync()
	}
}

func newRootCmd() (*cobra.Command, *env) {
	e := &env{}

	root := &cobra.Command{
		Use:          "cachectl",
		Short:        "Inspect and exercise loadcache caches",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			v, err := bindConfig(cmd.Flags())
			if err != nil {
				return err
			}
			if e.cfg, err = loadConfig(v); err != nil {
				return err
			}
			if e.zl, err = newLogger(e.cfg.LogLevel); err != nil {
				return err
			}
			e.log = zapadapter.New(e.zl)
			e.store, err = openStore(cmd.Context(), e.cfg, e.log)
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.String("store", "redis", `Backing store: "redis", "ristretto" or "bigcache".`)
	pf.String("addr", "localhost:6379", "Redis address (store=redis).")
	pf.Duration("ttl", 0, "Entry TTL; 0 means entries never expire.")
	pf.Duration("timeout", 3*time.Second, "Redis dial and read timeout.")
	pf.String("log-level", "info", "debug, info, warn or error.")

	root.AddCommand(
		newGetCmd(e),
		newSetCmd(e),
		newDelCmd(e),
		newProbeCmd(e),
		newDemoCmd(e),
	)
	return root, e
}

// stringCache opens a string-valued Remote cache; keys and values pass
// through unchanged.
func stringCache(e *env, name string) (loadcache.Cache[string, string], error) {
	return loadcache.NewRemote(loadcache.RemoteOptions[string, string]{
		Name:   name,
		Store:  e.store,
		TTL:    e.cfg.TTL,
		Logger: e.log,
	})
}
