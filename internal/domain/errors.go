package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the domain layer.
var (
	ErrNotFound     = errors.New("domain: not found")
	ErrConflict     = errors.New("domain: conflict")
	ErrStorage      = errors.New("domain: storage failure")
	ErrUnauthorized = errors.New("domain: unauthorized")
	ErrInvalidInput = errors.New("domain: invalid input")
)

// ValidationError carries a human-readable message plus structured context
// about the field or rule that failed. It matches ErrInvalidInput under
// errors.Is so callers can branch on the taxonomy without inspecting text.
type ValidationError struct {
	Message string
	Details map[string]any
}

func NewValidationError(message string, details map[string]any) *ValidationError {
	return &ValidationError{Message: message, Details: details}
}

func (e *ValidationError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s | details: %v", e.Message, e.Details)
	}
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
