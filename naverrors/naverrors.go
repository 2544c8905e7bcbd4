// Package naverrors defines the error kinds the navigation core surfaces
// from route construction and route adapters: a kind, a message, and an
// optional wrapped cause.
package naverrors

import "fmt"

// Kind identifies which of the documented error conditions a NavError
// represents.
type Kind string

const (
	// KindRouteInvariantViolation means a Route or RouteStep failed one
	// of its construction-time invariants (spec section 3).
	KindRouteInvariantViolation Kind = "ROUTE_INVARIANT_VIOLATION"
	// KindParseError means a route adapter failed to parse provider
	// bytes into Route values.
	KindParseError Kind = "PARSE_ERROR"
	// KindRequestGenerationError means a route adapter could not build a
	// request, e.g. because no waypoints were supplied. httpadapter also
	// reports a failed HTTP round trip or an error status with this kind.
	KindRequestGenerationError Kind = "REQUEST_GENERATION_ERROR"
	// KindNoUserLocation identifies an ill-formed location (negative
	// accuracy). navigation.Controller.InitialState has no error result
	// and does not check accuracy, so it never returns this kind.
	KindNoUserLocation Kind = "NO_USER_LOCATION"
)

// NavError is the error type returned by route construction and route
// adapters. It is never returned by navigation.Controller.UpdateUserLocation
// or AdvanceToNextStep, which degrade instead of failing (spec section 7).
type NavError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *NavError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error, if any.
func (e *NavError) Unwrap() error {
	return e.Err
}

// New creates a NavError with no wrapped cause.
func New(kind Kind, message string) *NavError {
	return &NavError{Kind: kind, Message: message}
}

// Wrap creates a NavError wrapping an underlying cause.
func Wrap(err error, kind Kind, message string) *NavError {
	return &NavError{Kind: kind, Message: message, Err: err}
}
