package codec

import "github.com/vmihailenco/msgpack/v5"

// Msgpack is a Codec that serializes values using vmihailenco/msgpack/v5.
// The zero value is ready to use.
//
// Output is binary. Only use it with stores that keep strings byte for byte.
// Use `msgpack:"fieldName"` tags if you need explicit control over field names.
type Msgpack[V any] struct{}

func (Msgpack[V]) Encode(v V) (string, error) {
	b, err := msgpack.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (Msgpack[V]) Decode(s string) (V, error) {
	var v V
	err := msgpack.Unmarshal([]byte(s), &v)
	return v, err
}
