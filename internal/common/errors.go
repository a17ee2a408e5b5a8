package common

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a record could not be resolved within the caller's
// tenant scope.
var ErrNotFound = errors.New("record not found")

// ErrInvalidTimezone indicates a tenant carries an unrecognized IANA
// time-zone name. Date bucketing must fail rather than default silently.
var ErrInvalidTimezone = errors.New("invalid timezone")

// ValidationError represents rejected caller input. It is surfaced to the
// caller directly, never retried and never logged as exceptional.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a specific field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
