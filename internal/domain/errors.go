package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrMalformedDate = errors.New("malformed date")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// DuplicateTagError is returned by Insert when an event with the same tag exists.
type DuplicateTagError struct {
	Tag string
}

func (e *DuplicateTagError) Error() string {
	return fmt.Sprintf("an event with tag %q already exists", e.Tag)
}

func (e *DuplicateTagError) Unwrap() error { return ErrAlreadyExists }

// DateError reports a value that is not an ISO calendar date.
type DateError struct {
	Value string
	Err   error
}

func (e *DateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed date %q: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("malformed date %q", e.Value)
}

func (e *DateError) Unwrap() error { return ErrMalformedDate }
