package featureflags

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed store lookup.
type ErrorKind string

const (
	ErrorKindNone             ErrorKind = ""
	ErrorKindStoreUnavailable ErrorKind = "STORE_UNAVAILABLE"
	ErrorKindRecordMissing    ErrorKind = "RECORD_MISSING"
	ErrorKindRecordMalformed  ErrorKind = "RECORD_MALFORMED"
)

var (
	// ErrStoreUnavailable covers transport, timeout and connection failures.
	ErrStoreUnavailable = errors.New("flag store unavailable")
	// ErrRecordMissing means the store answered but knows no such flag.
	ErrRecordMissing = errors.New("flag record missing")
	// ErrRecordMalformed means the store answered with an unusable record.
	ErrRecordMalformed = errors.New("flag record malformed")
)

// StoreError is returned by FlagStore implementations.
type StoreError struct {
	Kind ErrorKind
	Key  string
	Err  error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("flag %q: %s", e.Key, e.sentinel())
	}
	return fmt.Sprintf("flag %q: %s: %s", e.Key, e.sentinel(), e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *StoreError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *StoreError) sentinel() error {
	switch e.Kind {
	case ErrorKindRecordMissing:
		return ErrRecordMissing
	case ErrorKindRecordMalformed:
		return ErrRecordMalformed
	default:
		return ErrStoreUnavailable
	}
}

func unavailableError(key string, err error) *StoreError {
	return &StoreError{Kind: ErrorKindStoreUnavailable, Key: key, Err: err}
}

func missingError(key string) *StoreError {
	return &StoreError{Kind: ErrorKindRecordMissing, Key: key}
}

func malformedError(key string, err error) *StoreError {
	return &StoreError{Kind: ErrorKindRecordMalformed, Key: key, Err: err}
}

// NewStoreError builds a StoreError for store implementations outside this package.
func NewStoreError(kind ErrorKind, key string, err error) *StoreError {
	return &StoreError{Kind: kind, Key: key, Err: err}
}

// KindOf returns the kind of a store failure. Errors that are not a
// StoreError are treated as the store being unavailable.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ErrorKindNone
	}
	var se *StoreError
	if errors.As(err, &se) {
		if se.Kind == ErrorKindNone {
			return ErrorKindStoreUnavailable
		}
		return se.Kind
	}
	switch {
	case errors.Is(err, ErrRecordMissing):
		return ErrorKindRecordMissing
	case errors.Is(err, ErrRecordMalformed):
		return ErrorKindRecordMalformed
	default:
		return ErrorKindStoreUnavailable
	}
}
