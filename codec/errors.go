package codec

import (
	"errors"
	"fmt"
)

// ErrCodec matches every *Error returned by Wire.
var ErrCodec = errors.New("codec: conversion failed")

type Error struct {
	Op   string // "encode" or "decode"
	Type string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("codec: %s %s: %v", e.Op, e.Type, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{ErrCodec, e.Err}
}
