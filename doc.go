// Package loadcache implements a read-through cache with one contract and two
// backends. Callers ask for a value by key; on a miss the cache calls a
// caller-supplied Reloader, stores the result and returns it.
//
// Backends:
//   - Local: in-process map with per-entry expiry (jellydator/ttlcache).
//     Keys are used as-is.
//   - Remote: any string key-value store (see package store; Redis via
//     store/redis). Values are turned into strings by package codec, and
//     the store enforces TTLs natively.
//
// Keys (Remote):
//
//	cache:<name>:<key>   - key is rendered with fmt.Sprint
//
// Read-through pattern:
//
//	users, _ := loadcache.NewRemote(loadcache.RemoteOptions[string, User]{
//	    Name:  "user",
//	    Store: redisStore,
//	    TTL:   time.Minute,
//	    Reloader: func(ctx context.Context, id string) (User, bool, error) {
//	        return repo.FindUser(ctx, id)
//	    },
//	})
//	u, ok, err := users.Get(ctx, "42")
//
// Concurrent misses on one key each call the Reloader unless
// CoalesceReloads is set.
package loadcache
