package repositories

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"freight-planner-service/internal/domain"
	"freight-planner-service/internal/ports"
)

var _ ports.ShipmentRepository = (*MemoryShipmentRepository)(nil)

// In-process ShipmentRepository used by the CLI and tests. Shipments are
// copied on the way in and out so callers never share state with the store.
type MemoryShipmentRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.Shipment
}

func NewMemoryShipmentRepository() *MemoryShipmentRepository {
	return &MemoryShipmentRepository{byID: make(map[string]domain.Shipment)}
}

func (r *MemoryShipmentRepository) SaveShipment(_ context.Context, s *domain.Shipment) error {
	if s == nil || s.TrackingID == "" {
		return fmt.Errorf("save shipment: shipment must have a tracking id")
	}
	cp := *s
	cp.History = slices.Clone(s.History)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[s.TrackingID] = cp
	return nil
}

func (r *MemoryShipmentRepository) FindShipment(_ context.Context, trackingID string) (*domain.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[trackingID]
	if !ok {
		return nil, fmt.Errorf("find shipment %q: %w", trackingID, ports.ErrNotFound)
	}
	s.History = slices.Clone(s.History)
	return &s, nil
}
