package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/unkn0wn-root/loadcache"
	"github.com/unkn0wn-root/loadcache/codec"
	asynchook "github.com/unkn0wn-root/loadcache/hooks/async"
	"github.com/unkn0wn-root/loadcache/hooks/prom"
)

const demoTTL = 3 * time.Second

type User struct {
	Name     string `json:"name" msgpack:"name" cbor:"name"`
	LastName string `json:"lastName" msgpack:"lastName" cbor:"lastName"`
}

func newDemoCmd(e *env) *cobra.Command {
	var (
		backend  string
		codecArg string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Load a user through the cache, wait past the ttl and load it again",
		Long: `Builds a cache of User values whose reloader always returns the same user,
reads it twice, sleeps past the ttl (3s unless --ttl is set) and reads it
again so the reloader runs a second time.

With --store bigcache, entries live for the store's life window, which is
only set from --ttl.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ttl := e.cfg.TTL
			if ttl == 0 {
				ttl = demoTTL
			}

			reg := prometheus.NewRegistry()
			hooks := asynchook.New(prom.New(prom.Options{Registerer: reg, Namespace: "cachectl"}), 1, 256)

			users, err := demoCache(e, backend, codecArg, ttl, hooks)
			if err != nil {
				return err
			}
			defer func() { _ = users.Close(context.Background()) }()

			out := cmd.OutOrStdout()
			for _, step := range []string{"first", "second", "after ttl"} {
				if step == "after ttl" {
					fmt.Fprintf(out, "waiting %s\n", ttl+time.Second)
					time.Sleep(ttl + time.Second)
					expired, err := users.Expired(cmd.Context(), "u1")
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "expired: %v\n", expired)
				}
				u, ok, err := users.Get(cmd.Context(), "u1")
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s get: %+v (found=%v)\n", step, u, ok)
			}

			hooks.Close()
			return printCounters(out, reg)
		},
	}

	cmd.Flags().StringVar(&backend, "backend", "remote", `"remote" (uses --store) or "local".`)
	cmd.Flags().StringVar(&codecArg, "codec", "json", `Structured codec for remote: "json", "msgpack" or "cbor".`)
	return cmd
}

func demoCache(e *env, backend, codecArg string, ttl time.Duration, hooks loadcache.Hooks) (loadcache.Cache[string, User], error) {
	reload := func(_ context.Context, id string) (User, bool, error) {
		e.zl.Info("reloading user", zap.String("id", id))
		return User{Name: "shubham", LastName: "ivane"}, true, nil
	}

	if backend == "local" {
		return loadcache.NewLocal(loadcache.LocalOptions[string, User]{
			Name:            "user",
			TTL:             ttl,
			Reloader:        reload,
			CoalesceReloads: true,
			Janitor:         true,
			Logger:          e.log,
			Hooks:           hooks,
		})
	}

	var structured codec.Codec[User]
	switch codecArg {
	case "json":
		structured = codec.JSON[User]{}
	case "msgpack":
		structured = codec.Msgpack[User]{}
	case "cbor":
		cb, err := codec.NewCBOR[User](true)
		if err != nil {
			return nil, err
		}
		structured = cb
	default:
		return nil, fmt.Errorf("unknown codec %q", codecArg)
	}

	return loadcache.NewRemote(loadcache.RemoteOptions[string, User]{
		Name:            "user",
		Store:           e.store,
		TTL:             ttl,
		Reloader:        reload,
		Structured:      structured,
		CoalesceReloads: true,
		Logger:          e.log,
		Hooks:           hooks,
	})
}

func printCounters(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}

	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %g", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	return nil
}
