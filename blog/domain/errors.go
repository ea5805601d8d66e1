package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals an id that is absent from the collection.
	ErrNotFound = errors.New("post not found")
	// ErrNotAuthorized signals a write attempted without a valid session.
	ErrNotAuthorized = errors.New("authentication required")
	// ErrInvalidCredentials signals a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrRemoteUnavailable signals that the remote blob store is
	// unreachable or returned a malformed body. It is always recovered
	// locally and never surfaces as a failed user operation.
	ErrRemoteUnavailable = errors.New("remote store unavailable")
)

// ValidationError reports a missing or invalid required post field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("missing required field %q", e.Field)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
