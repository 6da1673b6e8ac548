package config

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedConfig indicates the source is not a valid object literal,
	// YAML or JSON document, or a value has the wrong shape.
	ErrMalformedConfig = errors.New("malformed config")

	// ErrMissingField indicates a required key is absent.
	ErrMissingField = errors.New("missing field")
)

// FieldError names the required field that was absent.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("config: %s: %q is required", ErrMissingField, e.Field)
}

func (e *FieldError) Is(target error) bool {
	return target == ErrMissingField
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("config: %w: %s", ErrMalformedConfig, fmt.Sprintf(format, args...))
}
