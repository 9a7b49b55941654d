package loadcache

const (
	// remote storage keys are keyPrefix + name + ":" + key
	keyPrefix = "cache:"

	defaultLocalName = "local"
)

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
