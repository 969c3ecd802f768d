// Package apperr carries the error taxonomy used across services and
// controllers: every error that reaches a handler knows its kind, a
// message safe to show the customer, and (optionally) the wrapped cause
// for the logs.
package apperr

import (
	"github.com/pkg/errors"
)

type Kind int

const (
	// Validation: malformed or missing input, user-correctable.
	Validation Kind = iota
	// NotFound: a referenced product/coupon/table no longer exists.
	NotFound
	// BusinessRule: store closed, quantity out of range, minimum unmet.
	BusinessRule
	// Conflict: concurrent state change detected at commit time.
	Conflict
	// Throttled: rate limit hit before any business work.
	Throttled
	// Forbidden: authenticated but not allowed (wrong owner, plan gate).
	Forbidden
	// Unexpected: storage failure or programming error; message to the
	// client stays generic, the cause goes to the logs.
	Unexpected
)

type Error struct {
	Kind    Kind
	Message string // user-facing
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: errors.WithStack(cause)}
}

// KindOf extracts the kind from err, defaulting to Unexpected so a raw
// gorm/stdlib error can never leak its text to the client.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Unexpected
}

// UserMessage returns the message safe to send to the client.
func UserMessage(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "Something went wrong processing your request. Please try again later."
}
