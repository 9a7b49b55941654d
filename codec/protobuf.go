package codec

import "google.golang.org/protobuf/proto"

// Protobuf stores messages in their binary wire format.
type Protobuf[T proto.Message] struct {
	new func() T // constructor for a concrete message (e.g., func() *mypb.User { return &mypb.User{} })
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) (string, error) {
	b, err := proto.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (c Protobuf[T]) Decode(s string) (T, error) {
	m := c.new()
	err := proto.Unmarshal([]byte(s), m)
	return m, err
}
