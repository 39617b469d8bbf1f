package domain

import (
	"errors"
	"fmt"
)

// ErrTraceNotFound is returned when a trace ID cannot be found in the store.
var ErrTraceNotFound = errors.New("trace not found")

// ErrInvalidTraceID is returned when a trace ID cannot name a stored trace.
var ErrInvalidTraceID = errors.New("invalid trace id")

// ErrInvalidInput is the parent of every input rejection.
// Callers treat it as "no valid array" and keep their previous trace.
var ErrInvalidInput = errors.New("no valid array")

var (
	// ErrMalformedEntry is returned when an entry does not parse as an integer.
	ErrMalformedEntry = fmt.Errorf("%w: malformed entry", ErrInvalidInput)

	// ErrOversizeInput is returned when the list has too many entries.
	ErrOversizeInput = fmt.Errorf("%w: too many entries", ErrInvalidInput)

	// ErrEmptyInput is returned when the list has no entries.
	ErrEmptyInput = fmt.Errorf("%w: empty input", ErrInvalidInput)
)
