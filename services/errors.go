package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: the order (or variant) does not exist. Never retried.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition: the requested status is not reachable from the
	// current one, or equals it. Rejected before any side effect.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrWindowExpired: the 24h undo window for a confirmation has passed.
	ErrWindowExpired = errors.New("confirmation undo window expired")

	// ErrConflict: another admin changed the order between our read and our
	// write. Transition retries once on this, then surfaces it.
	ErrConflict = errors.New("order was modified concurrently")

	// ErrStorageUnavailable: the database did not answer within the bounded
	// timeout after the retry budget was spent. Fatal for this request.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationError rejects malformed input before any side effect occurs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func validationErr(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
