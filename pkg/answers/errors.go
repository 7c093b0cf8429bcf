package answers

import (
	"errors"
	"fmt"
)

var (
	// ErrRecordNotFound is returned when no answer record exists for the user.
	ErrRecordNotFound = errors.New("answer record not found")

	// ErrRevisionMismatch is returned by a store when the conditional
	// replace found a newer revision than the one the caller read.
	ErrRevisionMismatch = errors.New("answer record revision mismatch")

	// ErrSaveConflict is returned when a save could not be committed within
	// the configured number of attempts under contention.
	ErrSaveConflict = errors.New("answer record save conflict could not be resolved")

	// ErrStoreUnavailable wraps store timeouts and transport failures.
	ErrStoreUnavailable = errors.New("answer store unavailable")
)

// ValidationError reports a rejected input with a field level message.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func newValidationError(field string, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
