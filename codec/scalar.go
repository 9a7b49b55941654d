package codec

import "strconv"

type Int32 struct{}

func (Int32) Encode(v int32) (string, error) { return strconv.FormatInt(int64(v), 10), nil }
func (Int32) Decode(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	return int32(n), err
}

type Int64 struct{}

func (Int64) Encode(v int64) (string, error) { return strconv.FormatInt(v, 10), nil }
func (Int64) Decode(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }

// Int handles the platform int; values are written in base 10 like Int64.
type Int struct{}

func (Int) Encode(v int) (string, error) { return strconv.Itoa(v), nil }
func (Int) Decode(s string) (int, error) { return strconv.Atoi(s) }

// Float32 writes the shortest representation that parses back to the same
// float32, so finite values survive the round trip bit for bit.
type Float32 struct{}

func (Float32) Encode(v float32) (string, error) {
	return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
}
func (Float32) Decode(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	return float32(f), err
}

type Float64 struct{}

func (Float64) Encode(v float64) (string, error) { return strconv.FormatFloat(v, 'g', -1, 64), nil }
func (Float64) Decode(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

// Bool accepts what strconv.ParseBool accepts ("1", "t", "TRUE", ...) and
// always writes "true" or "false".
type Bool struct{}

func (Bool) Encode(v bool) (string, error) { return strconv.FormatBool(v), nil }
func (Bool) Decode(s string) (bool, error) { return strconv.ParseBool(s) }
