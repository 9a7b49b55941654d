package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newGetCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "get <cache> <key>",
		Short:   "Print the value stored for key",
		Example: "cachectl get session 9f1c",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := stringCache(e, args[0])
			if err != nil {
				return err
			}
			v, ok, err := c.Get(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "(nil)")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func newSetCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "set <cache> <key> <value>",
		Short:   "Store value under key with the configured ttl",
		Example: "cachectl set session 9f1c alice --ttl 30m",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := stringCache(e, args[0])
			if err != nil {
				return err
			}
			if err := c.Set(cmd.Context(), args[1], args[2]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}
}

func newDelCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "del <cache> <key>",
		Short: "Invalidate key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := stringCache(e, args[0])
			if err != nil {
				return err
			}
			removed, err := c.Invalidate(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			if removed {
				fmt.Fprintln(cmd.OutOrStdout(), "1")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "0")
			}
			return nil
		},
	}
}

// probe does a write, read and delete under its own namespace and reports
// how long the round trip took.
func newProbeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Check that the store accepts writes and returns them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			c, err := stringCache(e, "cachectl-probe")
			if err != nil {
				return err
			}

			start := time.Now()
			want := strconv.FormatInt(start.UnixNano(), 10)
			if err := c.Set(ctx, "ping", want); err != nil {
				return err
			}
			got, ok, err := c.Get(ctx, "ping")
			if err != nil {
				return err
			}
			if !ok || got != want {
				return fmt.Errorf("probe read back %q (found=%v), wrote %q", got, ok, want)
			}
			if _, err := c.Invalidate(ctx, "ping"); err != nil {
				return err
			}
			expired, err := c.Expired(ctx, "ping")
			if err != nil {
				return err
			}
			if !expired {
				return fmt.Errorf("probe key survived invalidation")
			}

			e.zl.Debug("probe done")
			fmt.Fprintf(cmd.OutOrStdout(), "ok store=%s rtt=%s\n", e.cfg.Store, time.Since(start).Round(time.Microsecond))
			return nil
		},
	}
}
