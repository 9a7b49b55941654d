package loadcache

// Hooks are lightweight callbacks for cache events.
// Implementations MUST be cheap and non-blocking: they run on the caller's
// goroutine, inside Get/Set. Wrap slow sinks with hooks/async.
type Hooks interface {
	// Get returned a live value.
	Hit(namespace string)
	// Get found no value. A reload follows unless the Remote store held an
	// empty entry. Entries that fail to decode report CodecFailed instead.
	Miss(namespace string)

	// The reloader returned. loaded=false means it signalled "no value".
	Reloaded(namespace string, loaded bool)
	// The reloader returned an error; nothing was cached.
	ReloadFailed(namespace string, err error)

	// op ∈ {"encode", "decode"}
	CodecFailed(storageKey, op string, err error)
	// op ∈ {"get", "set", "del", "exists"}
	StoreFailed(storageKey, op string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Hit(string)                        {}
func (NopHooks) Miss(string)                       {}
func (NopHooks) Reloaded(string, bool)             {}
func (NopHooks) ReloadFailed(string, error)        {}
func (NopHooks) CodecFailed(string, string, error) {}
func (NopHooks) StoreFailed(string, string, error) {}
