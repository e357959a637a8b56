package ports

import (
	"time"

	"freight-planner-service/internal/domain"
)

// IDGenerator hands out identifiers and timestamps. Implementations must be
// safe for concurrent use since planning calls may run in parallel.
type IDGenerator interface {
	NextVehicleID(t domain.VehicleType) string
	NextLicense(t domain.VehicleType) string
	NextShipmentID() string
	NextTrackingID() string
	Now() time.Time
}
