package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation is wrapped by every ValidationError.
	ErrValidation = errors.New("validation failed")
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
