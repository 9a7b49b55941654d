package codec

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type address struct {
	Street string `json:"street" msgpack:"street" cbor:"street"`
	Zip    int    `json:"zip" msgpack:"zip" cbor:"zip"`
}

type user struct {
	Name     string   `json:"name" msgpack:"name" cbor:"name"`
	LastName string   `json:"lastName" msgpack:"lastName" cbor:"lastName"`
	Tags     []string `json:"tags" msgpack:"tags" cbor:"tags"`
	Home     address  `json:"home" msgpack:"home" cbor:"home"`
}

func roundTrip[V comparable](t *testing.T, w *Wire[V], vals ...V) {
	t.Helper()
	for _, v := range vals {
		s, ok, err := w.Encode(v)
		if err != nil || !ok {
			t.Fatalf("Encode(%v): ok=%v err=%v", v, ok, err)
		}
		got, ok, err := w.Decode(s)
		if err != nil || !ok {
			t.Fatalf("Decode(%q): ok=%v err=%v", s, ok, err)
		}
		if got != v {
			t.Fatalf("round trip %T: got %v want %v (wire %q)", v, got, v, s)
		}
	}
}

func TestScalarRoundTrip(t *testing.T) {
	roundTrip(t, New(Config[string]{}), "a", "hello world", "ü€𝄞", " ")
	roundTrip(t, New(Config[int32]{}), 0, 1, -1, math.MaxInt32, math.MinInt32)
	roundTrip(t, New(Config[int64]{}), 0, 42, math.MaxInt64, math.MinInt64)
	roundTrip(t, New(Config[int]{}), 0, -7, math.MaxInt, math.MinInt)
	roundTrip(t, New(Config[float32]{}), 0, 1.5, -3.25, math.MaxFloat32, math.SmallestNonzeroFloat32, 0.1)
	roundTrip(t, New(Config[float64]{}), 0, 0.1, math.Pi, math.MaxFloat64, -math.SmallestNonzeroFloat64)
	roundTrip(t, New(Config[bool]{}), true, false)
}

func TestScalarEmptyStringCodec(t *testing.T) {
	// The bare codec keeps "" as a value; only Wire treats it as absent.
	s, err := String{}.Encode("")
	if err != nil {
		t.Fatal(err)
	}
	got, err := String{}.Decode(s)
	if err != nil || got != "" {
		t.Fatalf("got %q err=%v", got, err)
	}
}

func TestScalarWireForm(t *testing.T) {
	cases := []struct {
		name string
		enc  func() (string, bool, error)
		want string
	}{
		{"string is not quoted", func() (string, bool, error) { return New(Config[string]{}).Encode("x") }, "x"},
		{"int32", func() (string, bool, error) { return New(Config[int32]{}).Encode(-12) }, "-12"},
		{"int64", func() (string, bool, error) { return New(Config[int64]{}).Encode(1 << 40) }, "1099511627776"},
		{"float64", func() (string, bool, error) { return New(Config[float64]{}).Encode(2.5) }, "2.5"},
		{"bool", func() (string, bool, error) { return New(Config[bool]{}).Encode(true) }, "true"},
		{"bytes", func() (string, bool, error) { return New(Config[[]byte]{}).Encode([]byte{0, 'a', 0xff}) }, "\x00a\xff"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, ok, err := tc.enc()
			if err != nil || !ok {
				t.Fatalf("ok=%v err=%v", ok, err)
			}
			if s != tc.want {
				t.Fatalf("got %q want %q", s, tc.want)
			}
		})
	}
}

// A structured codec passed for a scalar type is ignored.
func TestScalarBeatsStructured(t *testing.T) {
	w := New(Config[int64]{Structured: Msgpack[int64]{}})
	s, _, err := w.Encode(99)
	if err != nil {
		t.Fatal(err)
	}
	if s != "99" {
		t.Fatalf("expected textual form, got %q", s)
	}
}

func TestStructuredRoundTrip(t *testing.T) {
	in := user{
		Name:     "shubham",
		LastName: "ivane",
		Tags:     []string{"a", "b"},
		Home:     address{Street: "Main", Zip: 12345},
	}
	codecs := map[string]Codec[user]{
		"json":    JSON[user]{},
		"msgpack": Msgpack[user]{},
		"cbor":    MustCBOR[user](true),
	}
	for name, c := range codecs {
		t.Run(name, func(t *testing.T) {
			w := New(Config[user]{Structured: c})
			s, ok, err := w.Encode(in)
			if err != nil || !ok {
				t.Fatalf("Encode: ok=%v err=%v", ok, err)
			}
			got, ok, err := w.Decode(s)
			if err != nil || !ok {
				t.Fatalf("Decode: ok=%v err=%v", ok, err)
			}
			if !reflect.DeepEqual(got, in) {
				t.Fatalf("got %+v want %+v", got, in)
			}
		})
	}
}

func TestStructuredDefaultsToJSON(t *testing.T) {
	w := New(Config[user]{})
	s, _, err := w.Encode(user{Name: "n"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(s, "{") || !strings.Contains(s, `"name":"n"`) {
		t.Fatalf("expected JSON object, got %q", s)
	}
}

func TestPointerRoundTripAndNil(t *testing.T) {
	w := New(Config[*user]{})

	s, ok, err := w.Encode(nil)
	if err != nil || ok || s != "" {
		t.Fatalf("nil pointer should be no value: s=%q ok=%v err=%v", s, ok, err)
	}

	in := &user{Name: "a", Home: address{Zip: 1}}
	s, ok, err = w.Encode(in)
	if err != nil || !ok {
		t.Fatalf("Encode: ok=%v err=%v", ok, err)
	}
	got, ok, err := w.Decode(s)
	if err != nil || !ok || !reflect.DeepEqual(got, in) {
		t.Fatalf("Decode: got=%+v ok=%v err=%v", got, ok, err)
	}
}

func TestNilMapSliceInterfaceAreNoValue(t *testing.T) {
	if _, ok, _ := New(Config[map[string]int]{}).Encode(nil); ok {
		t.Fatal("nil map encoded")
	}
	if _, ok, _ := New(Config[[]string]{}).Encode(nil); ok {
		t.Fatal("nil slice encoded")
	}
	if _, ok, _ := New(Config[any]{}).Encode(nil); ok {
		t.Fatal("nil interface encoded")
	}
	if _, ok, _ := New(Config[[]byte]{}).Encode(nil); ok {
		t.Fatal("nil bytes encoded")
	}
}

func TestDecodeEmptyIsAbsent(t *testing.T) {
	if v, ok, err := New(Config[int32]{}).Decode(""); ok || err != nil || v != 0 {
		t.Fatalf("int32: v=%v ok=%v err=%v", v, ok, err)
	}
	if v, ok, err := New(Config[user]{}).Decode(""); ok || err != nil || v.Name != "" {
		t.Fatalf("struct: v=%v ok=%v err=%v", v, ok, err)
	}
}

func TestEmptyEncodingsReadBackAsAbsent(t *testing.T) {
	// "" and []byte{} are values, but their wire form is the empty string,
	// which a store read reports as "no value".
	s, ok, err := New(Config[string]{}).Encode("")
	if err != nil || !ok || s != "" {
		t.Fatalf("encode empty string: s=%q ok=%v err=%v", s, ok, err)
	}
	if v, ok, err := New(Config[string]{}).Decode(s); ok || err != nil || v != "" {
		t.Fatalf("decode empty string: v=%q ok=%v err=%v", v, ok, err)
	}

	b, ok, err := New(Config[[]byte]{}).Encode([]byte{})
	if err != nil || !ok || b != "" {
		t.Fatalf("encode empty bytes: s=%q ok=%v err=%v", b, ok, err)
	}
	if v, ok, err := New(Config[[]byte]{}).Decode(b); ok || err != nil || v != nil {
		t.Fatalf("decode empty bytes: v=%v ok=%v err=%v", v, ok, err)
	}

	// nil bytes never reach the store at all
	if _, ok, err := New(Config[[]byte]{}).Encode(nil); ok || err != nil {
		t.Fatalf("encode nil bytes: ok=%v err=%v", ok, err)
	}
}

func TestDecodeErrorsAreCodecErrors(t *testing.T) {
	cases := []struct {
		name string
		dec  func() error
	}{
		{"int32 overflow", func() error { _, _, err := New(Config[int32]{}).Decode("2147483648"); return err }},
		{"int64 junk", func() error { _, _, err := New(Config[int64]{}).Decode("12x"); return err }},
		{"bool junk", func() error { _, _, err := New(Config[bool]{}).Decode("yes"); return err }},
		{"float junk", func() error { _, _, err := New(Config[float64]{}).Decode("1.2.3"); return err }},
		{"json malformed", func() error { _, _, err := New(Config[user]{}).Decode("{not json"); return err }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.dec()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrCodec) {
				t.Fatalf("expected ErrCodec, got %v", err)
			}
			var ce *Error
			if !errors.As(err, &ce) || ce.Op != "decode" {
				t.Fatalf("expected *Error with op decode, got %#v", err)
			}
		})
	}
}

func TestEncodeErrorIsCodecError(t *testing.T) {
	w := New(Config[map[string]any]{})
	_, _, err := w.Encode(map[string]any{"ch": make(chan int)})
	if !errors.Is(err, ErrCodec) {
		t.Fatalf("expected ErrCodec, got %v", err)
	}
}

func TestLimit(t *testing.T) {
	w := New(Config[string]{MaxSize: 4})
	if _, _, err := w.Decode("abcd"); err != nil {
		t.Fatalf("decode at limit: %v", err)
	}
	if _, _, err := w.Decode("abcde"); !errors.Is(err, ErrCodec) {
		t.Fatalf("decode over limit should fail with ErrCodec, got %v", err)
	}
	if s, ok, err := w.Encode("abcd"); err != nil || !ok || s != "abcd" {
		t.Fatalf("encode at limit: s=%q ok=%v err=%v", s, ok, err)
	}

	s, ok, err := w.Encode("abcdefgh")
	if ok || s != "" || !errors.Is(err, ErrCodec) {
		t.Fatalf("encode over limit: s=%q ok=%v err=%v", s, ok, err)
	}
	var ce *Error
	if !errors.As(err, &ce) || ce.Op != "encode" {
		t.Fatalf("expected *Error with op encode, got %#v", err)
	}

	// the limit applies to the encoded form, not the Go value
	js := New(Config[[]string]{MaxSize: 8})
	if _, _, err := js.Encode([]string{"abcdef"}); !errors.Is(err, ErrCodec) {
		t.Fatalf(`["abcdef"] is 10 bytes of JSON, got %v`, err)
	}
}

func TestProtobuf(t *testing.T) {
	pc := NewProtobuf(func() *wrapperspb.StringValue { return &wrapperspb.StringValue{} })
	w := New(Config[*wrapperspb.StringValue]{Structured: pc})

	s, ok, err := w.Encode(wrapperspb.String("hello"))
	if err != nil || !ok {
		t.Fatalf("Encode: ok=%v err=%v", ok, err)
	}
	got, ok, err := w.Decode(s)
	if err != nil || !ok {
		t.Fatalf("Decode: ok=%v err=%v", ok, err)
	}
	if !proto.Equal(got, wrapperspb.String("hello")) {
		t.Fatalf("got %v", got)
	}
}

func TestWireType(t *testing.T) {
	if got := New(Config[user]{}).Type(); got != "codec.user" {
		t.Fatalf("Type() = %q", got)
	}
}
