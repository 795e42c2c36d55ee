package registry

import (
	"errors"
	"fmt"
)

// ErrDecode matches every *DecodeError with errors.Is.
var ErrDecode = errors.New("decode error")

// ErrNilContract is returned by Register when given no contract.
var ErrNilContract = errors.New("contract must not be nil")

var (
	errInvalidUTF8 = errors.New("invalid UTF-8")
	errInvalidJSON = errors.New("invalid JSON")
)

// DecodeError is returned when bytes cannot be interpreted as a wire message,
// UTF-8 JSON text, or 0x-prefixed hex.
type DecodeError struct {
	// Field names the message or value that failed to decode.
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("could not decode %s: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
