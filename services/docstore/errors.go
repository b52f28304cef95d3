package docstore

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a slug is absent from every source consulted.
// Callers map it to a 404; it is an expected outcome, not a failure.
var ErrNotFound = errors.New("document not found")

// ValidationError reports a document that failed required-field or
// constraint checks. The write is never attempted.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("document validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// DecodeError reports stored bytes that do not parse as the expected
// document shape. It indicates a data-integrity problem in the bucket and is
// logged distinctly from transport failures.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode document at %s: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// StoreError reports a failed blob operation (network, permissions).
type StoreError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed for %s: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// IsNotFound reports whether err means the document is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
