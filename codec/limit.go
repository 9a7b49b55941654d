package codec

import "fmt"

// Limit wraps another codec and refuses strings longer than MaxSize bytes
// in both directions: an oversized value is never produced by Encode, and
// an oversized input (foreign or corrupted entry) is never handed to the
// inner Decode. MaxSize <= 0 disables the check.
type Limit[V any] struct {
	Inner   Codec[V]
	MaxSize int
}

func (c Limit[V]) Encode(v V) (string, error) {
	s, err := c.Inner.Encode(v)
	if err != nil {
		return "", err
	}
	if err := c.check(s); err != nil {
		return "", err
	}
	return s, nil
}

func (c Limit[V]) Decode(s string) (V, error) {
	if err := c.check(s); err != nil {
		var zero V
		return zero, err
	}
	return c.Inner.Decode(s)
}

func (c Limit[V]) check(s string) error {
	if c.MaxSize > 0 && len(s) > c.MaxSize {
		return fmt.Errorf("payload too large: %d > %d", len(s), c.MaxSize)
	}
	return nil
}
