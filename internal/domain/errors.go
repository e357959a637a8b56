package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidStateTransition is returned for status changes outside the
	// shipment or vehicle transition tables.
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrInsufficientCapacity is returned when a vehicle cannot carry a shipment.
	ErrInsufficientCapacity = errors.New("insufficient vehicle capacity")

	// ErrInsufficientFuel reports a move that needs more fuel than the vehicle
	// carries. Motion only returns it when strict fuel checks are enabled.
	ErrInsufficientFuel = errors.New("insufficient fuel")

	// ErrUnknownLocation is used when a location code can't be found.
	ErrUnknownLocation = errors.New("unknown location")
)

// ValidationError describes a request field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// RouteUnavailableError is returned when no transport mode satisfies the
// route constraints. Reason carries the analyzer's truck explanation.
type RouteUnavailableError struct {
	Origin      string
	Destination string
	WeightKg    float64
	Reason      string
}

func (e *RouteUnavailableError) Error() string {
	return fmt.Sprintf(
		"route unavailable %s -> %s (%.1f kg): %s",
		e.Origin, e.Destination, e.WeightKg, e.Reason,
	)
}

// IsValidation reports whether err wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsRouteUnavailable reports whether err wraps a *RouteUnavailableError.
func IsRouteUnavailable(err error) bool {
	var re *RouteUnavailableError
	return errors.As(err, &re)
}
