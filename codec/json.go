package codec

import json "github.com/goccy/go-json"

// JSON is the default structured codec. The zero value is ready to use.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (JSON[V]) Decode(s string) (V, error) {
	var v V
	err := json.Unmarshal([]byte(s), &v)
	return v, err
}
