package model

import (
	"errors"
	"fmt"
)

// Sentinel error kinds shared by the domain packages. Callers classify with errors.Is.
var (
	// ErrInvalidInput marks a value outside its documented domain.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMissingField marks a required field that is absent or not finite.
	ErrMissingField = errors.New("missing field")
	// ErrUpstreamFailure marks a failed or malformed scoring service response.
	ErrUpstreamFailure = errors.New("upstream failure")
)

// FieldError reports which field violated a contract.
type FieldError struct {
	Field  string
	Kind   error
	Reason string
}

func (e *FieldError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Field)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return e.Kind }

// Invalid builds an ErrInvalidInput FieldError.
func Invalid(field, format string, args ...any) error {
	return &FieldError{Field: field, Kind: ErrInvalidInput, Reason: fmt.Sprintf(format, args...)}
}

// Missing builds an ErrMissingField FieldError.
func Missing(field string) error {
	return &FieldError{Field: field, Kind: ErrMissingField}
}
