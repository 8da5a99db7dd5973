package model

import (
	"errors"
	"fmt"
)

var (
	// ErrBountyExists indicates that a bounty is already bound to the issue.
	ErrBountyExists = errors.New("a bounty already exists for this GitHub issue")
	// ErrBountyNotFound indicates that the requested bounty does not exist.
	ErrBountyNotFound = errors.New("bounty not found")
	// ErrBountyArchived indicates that the bounty is already archived.
	ErrBountyArchived = errors.New("this bounty is already archived")
	// ErrBountyNotArchived indicates that restore was attempted on an active bounty.
	ErrBountyNotArchived = errors.New("bounty is not archived")
	// ErrForbidden indicates that the actor may not perform the operation.
	ErrForbidden = errors.New("operation not allowed")
	// ErrSubmissionExists indicates that the user already submitted to this bounty.
	ErrSubmissionExists = errors.New("you have already submitted to this bounty")
)

// ValidationError is a field-scoped input validation failure.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a field-scoped validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AsValidationError extracts a ValidationError from err, if any.
func AsValidationError(err error) (*ValidationError, bool) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr, true
	}
	return nil, false
}
