package agent

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when the incoming turn is unusable.
	ErrInvalidInput = errors.New("invalid input")
	// ErrModelNotConfigured is returned when no model credentials are available.
	ErrModelNotConfigured = errors.New("model not configured")
	// ErrCatalog is returned when the project catalog cannot be queried.
	// The caller must fall back to the no-data reply, never to invented data.
	ErrCatalog = errors.New("catalog query failed")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrInvalidInput) match validation failures.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
