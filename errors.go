package loadcache

import (
	"errors"
	"fmt"

	"github.com/unkn0wn-root/loadcache/codec"
)

var (
	// ErrStoreUnreachable matches every failed call to the backing store.
	ErrStoreUnreachable = errors.New("loadcache: store unreachable")
	// ErrCodec matches encode/decode failures of the Remote backend.
	ErrCodec = codec.ErrCodec
	// ErrInvalidOptions is returned by NewLocal/NewRemote.
	ErrInvalidOptions = errors.New("loadcache: invalid options")
)

// StoreError reports a failed store call. It is never retried by the cache.
type StoreError struct {
	Op  string // get, set, del, exists
	Key string // storage key
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("loadcache: store %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() []error {
	return []error{ErrStoreUnreachable, e.Err}
}
