package codec

// Bytes is an identity codec for []byte values. The bytes are stored as-is,
// which is fine for stores whose strings are binary safe (Redis is).
type Bytes struct{}

func (Bytes) Encode(b []byte) (string, error) { return string(b), nil }
func (Bytes) Decode(s string) ([]byte, error) { return []byte(s), nil }

// String is the identity codec for Go strings. No quoting, no validation.
type String struct{}

func (String) Encode(s string) (string, error) { return s, nil }
func (String) Decode(s string) (string, error) { return s, nil }
