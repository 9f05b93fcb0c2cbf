package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation signals invalid client input.
	ErrValidation = errors.New("validation failed")
	// ErrConfig signals an endpoint misconfiguration (an owner bug, not
	// client input).
	ErrConfig = errors.New("invalid endpoint configuration")
)

// ValidationError wraps ErrValidation with the offending field and a
// machine-readable code.
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidation creates a field-level validation error.
func NewValidation(field, code, message string) error {
	return &ValidationError{Field: field, Code: code, Message: message}
}
