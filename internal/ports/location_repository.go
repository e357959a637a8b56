package ports

import (
	"context"
	"errors"

	"freight-planner-service/internal/domain"
)

// ErrNotFound is returned by repositories when a lookup key has no record.
var ErrNotFound = errors.New("not found")

// Port: a boundary for retrieving annotated locations from a data source.
type LocationRepository interface {
	// Return the location stored under code. Unknown codes wrap domain.ErrUnknownLocation.
	FindLocation(ctx context.Context, code string) (domain.ExtendedLocation, error)
	// Return every known location ordered by code.
	ListLocations(ctx context.Context) ([]domain.ExtendedLocation, error)
}
