package ports

import (
	"context"

	"freight-planner-service/internal/domain"
)

// Port: durable storage for shipments. The engine never deletes shipments.
type ShipmentRepository interface {
	// Insert or replace the shipment keyed by its tracking id.
	SaveShipment(ctx context.Context, s *domain.Shipment) error
	// Return the shipment with trackingID, or an error wrapping ErrNotFound.
	FindShipment(ctx context.Context, trackingID string) (*domain.Shipment, error)
}
