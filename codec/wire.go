package codec

import (
	"reflect"
)

// Config selects how New builds a Wire.
type Config[V any] struct {
	// Structured is used when V is not one of the scalar types.
	// nil => JSON[V].
	Structured Codec[V]
	// MaxSize, when > 0, wraps the resolved codec in Limit.
	MaxSize int
}

// Wire is the codec a cache uses for one value type. It adds the notion of
// "no value" on top of a Codec: nil inputs do not encode, and the empty
// string does not decode.
type Wire[V any] struct {
	c       Codec[V]
	typ     string
	nilable bool
}

// New resolves the codec for V. Scalars win over Structured: a Wire[int64]
// always stores base-10 text, whatever Structured says.
func New[V any](cfg Config[V]) *Wire[V] {
	t := reflect.TypeOf((*V)(nil)).Elem() // == reflect.TypeFor[V]() (Go 1.22+)

	c := scalarFor[V]()
	if c == nil {
		c = cfg.Structured
	}
	if c == nil {
		c = JSON[V]{}
	}
	if cfg.MaxSize > 0 {
		c = Limit[V]{Inner: c, MaxSize: cfg.MaxSize}
	}

	return &Wire[V]{c: c, typ: t.String(), nilable: nilableKind(t.Kind())}
}

// Encode returns ok=false, with no error, when v is nil.
func (w *Wire[V]) Encode(v V) (s string, ok bool, err error) {
	if w.nilable && isNil(v) {
		return "", false, nil
	}
	s, err = w.c.Encode(v)
	if err != nil {
		return "", false, &Error{Op: "encode", Type: w.typ, Err: err}
	}
	return s, true, nil
}

// Decode returns ok=false, with no error, for the empty string.
func (w *Wire[V]) Decode(s string) (v V, ok bool, err error) {
	if s == "" {
		return v, false, nil
	}
	v, err = w.c.Decode(s)
	if err != nil {
		var zero V
		return zero, false, &Error{Op: "decode", Type: w.typ, Err: err}
	}
	return v, true, nil
}

// Type names the value type this Wire was built for.
func (w *Wire[V]) Type() string { return w.typ }

// scalarFor returns nil when V has no scalar rule. The order of the cases is
// the priority order.
func scalarFor[V any]() Codec[V] {
	var zero V
	var c any
	switch any(zero).(type) {
	case string:
		c = String{}
	case int32:
		c = Int32{}
	case int64:
		c = Int64{}
	case int:
		c = Int{}
	case float32:
		c = Float32{}
	case float64:
		c = Float64{}
	case bool:
		c = Bool{}
	case []byte:
		c = Bytes{}
	default:
		return nil
	}
	return c.(Codec[V])
}

func nilableKind(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		return true
	}
	return false
}

func isNil[V any](v V) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true // nil interface
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}
