package util

import (
	"fmt"
	"strconv"
)

// StorageKey returns prefix + ns + ":" + the text form of key.
// Strings and integers skip fmt; everything else uses fmt.Sprint, so a key
// type implementing fmt.Stringer controls its own form.
func StorageKey(prefix, ns string, key any) string {
	var k string
	switch v := key.(type) {
	case string:
		k = v
	case int:
		k = strconv.Itoa(v)
	case int64:
		k = strconv.FormatInt(v, 10)
	case int32:
		k = strconv.FormatInt(int64(v), 10)
	case uint64:
		k = strconv.FormatUint(v, 10)
	default:
		k = fmt.Sprint(key)
	}
	return prefix + ns + ":" + k
}
