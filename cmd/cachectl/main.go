// Command cachectl operates loadcache Remote caches from the shell.
//
//	cachectl set user 42 ada --ttl 1m
//	cachectl get user 42
//	cachectl demo --store ristretto
//
// Flags can also be set through CACHECTL_* environment variables
// (CACHECTL_ADDR, CACHECTL_LOG_LEVEL, ...).
package main

import (
	"context"
	"os"
)

func main() {
	root, e := newRootCmd()
	err := root.Execute()
	e.close(context.Background())
	if err != nil {
		os.Exit(1)
	}
}
