package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// ErrStorageUnavailable wraps any failure of the underlying database.
	// It is always returned to the caller and never retried.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrMalformedData marks stored data that could not be decoded. Stores
	// recover from it by treating the collection as empty.
	ErrMalformedData = errors.New("malformed stored data")
)

// ValidationError reports a missing or invalid field before a write.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
