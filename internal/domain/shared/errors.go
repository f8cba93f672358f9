package shared

import (
	"errors"
	"fmt"
)

// ErrorKind is the abstract error taxonomy from the specification. Each
// kind maps to exactly one HTTP status/code pair at the adapters boundary.
type ErrorKind string

const (
	// ErrInvalidLocation marks an address that could not be resolved, or
	// that resolved outside the USA. Not retried.
	ErrInvalidLocation ErrorKind = "invalid_location"

	// ErrNoRouteFound marks a router refusal or degenerate geometry. Not retried.
	ErrNoRouteFound ErrorKind = "no_route"

	// ErrNoFeasibleFuelPlan marks a route gap larger than the vehicle's
	// effective range, or insufficient starting fuel to reach the first stop.
	ErrNoFeasibleFuelPlan ErrorKind = "no_feasible_plan"

	// ErrExternalService marks a transient HTTP/transport failure with
	// retries exhausted.
	ErrExternalService ErrorKind = "upstream_error"

	// ErrValidation marks a malformed request body or constraint violation.
	ErrValidation ErrorKind = "validation_error"
)

// Error is the concrete error type carried across every component
// boundary. Components raise a Kind; the orchestrator propagates it
// without wrapping; the HTTP boundary maps Kind to status + code.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New constructs an Error of the given kind with a message.
func New(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf constructs an Error of the given kind with a formatted message.
func Newf(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap constructs an Error of the given kind, preserving cause for errors.Is/As chains.
func Wrap(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf extracts the ErrorKind from err, defaulting to ErrExternalService
// for plain errors that never passed through New/Newf/Wrap.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrExternalService
}

// Is reports whether err (or any error it wraps) carries the given kind.
func Is(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
