// Package codec converts typed values to and from the string form held by
// string-oriented key-value stores.
//
// Scalar types (string, int32, int64, int, float32, float64, bool, []byte) use
// textual formatters from strconv. Every other type goes through a structured
// codec (JSON by default; Msgpack, CBOR and Protobuf are available). The rule
// for a value type is picked once by New, not per call.
package codec

// Codec encodes/decodes values V to their string wire form.
type Codec[V any] interface {
	Encode(V) (string, error)
	Decode(string) (V, error)
}
