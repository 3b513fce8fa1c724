package scope

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is returned when a context builder is finalised without a required scope.
	ErrMissingField = errors.New("missing context field")
	// ErrInvalidID is returned when a session or connection id cannot be parsed.
	ErrInvalidID = errors.New("invalid scope id")
)

// MissingFieldError names the context and the field a builder was missing.
type MissingFieldError struct {
	Context string
	Field   string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s.%s", ErrMissingField, e.Context, e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

func missing(context, field string) error {
	return &MissingFieldError{Context: context, Field: field}
}
