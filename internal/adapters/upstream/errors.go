package upstream

import (
	"errors"
	"fmt"

	"github.com/okian/loanscope/internal/domain/model"
)

// Category is the normalized failure class of a scoring call.
type Category string

const (
	// CategoryStatus means the service answered with a non-200 status.
	CategoryStatus Category = "status"
	// CategoryTransport means no response arrived: dial, timeout or cancellation.
	CategoryTransport Category = "transport"
	// CategoryBadBody means a 200 response without a usable prediction.
	CategoryBadBody Category = "bad_body"
)

// Error is a failed scoring call. It matches model.ErrUpstreamFailure.
type Error struct {
	Category   Category
	StatusCode int
	Message    string
	Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("scoring service [%s]", e.Category)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" status %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Underlying != nil {
		msg += ": " + e.Underlying.Error()
	}
	return msg
}

// Unwrap supports error unwrapping.
func (e *Error) Unwrap() error { return e.Underlying }

// Is reports a match against model.ErrUpstreamFailure.
func (e *Error) Is(target error) bool { return target == model.ErrUpstreamFailure }

// CategoryOf returns the category of an upstream failure, or "" for other errors.
func CategoryOf(err error) Category {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Category
	}
	return ""
}
