package service

import (
	"errors"
	"fmt"

	"taxonomy-browser/internal/storage"
)

var (
	// ErrInvalidInput is returned when a request fails validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a requested node does not exist.
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable is returned when the record store fails for any
	// reason other than a missing record. It is never retried here.
	ErrStoreUnavailable = errors.New("record store unavailable")
)

// ErrorKind classifies service errors for transport layers.
type ErrorKind string

const (
	KindInvalidInput     ErrorKind = "invalid_input"
	KindNotFound         ErrorKind = "not_found"
	KindStoreUnavailable ErrorKind = "store_unavailable"
	KindInternal         ErrorKind = "internal"
)

// Kind reports which error kind err belongs to. A nil error is internal.
func Kind(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrStoreUnavailable):
		return KindStoreUnavailable
	default:
		return KindInternal
	}
}

// ValidationError names the request field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match validation failures against ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// storeError maps a store failure onto the service error kinds, keeping the
// original error in the chain.
func storeError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to %s: %w: %w", op, ErrNotFound, err)
	}
	return fmt.Errorf("failed to %s: %w: %w", op, ErrStoreUnavailable, err)
}
