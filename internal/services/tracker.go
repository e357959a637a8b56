package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"freight-planner-service/internal/domain"
	"freight-planner-service/internal/motion"
	"freight-planner-service/internal/ports"
)

// Tracker drives shipments toward their destination one tick at a time and
// publishes a TrackingUpdate after each tick. The caller owns scheduling.
type Tracker struct {
	svc       Service
	publisher ports.TrackingPublisher
	ids       ports.IDGenerator
	steps     int
	logger    log.Logger

	mu        sync.Mutex
	remaining map[string]int
}

// NewTracker spreads each journey over steps ticks.
func NewTracker(svc Service, publisher ports.TrackingPublisher, ids ports.IDGenerator, steps int, logger log.Logger) *Tracker {
	if steps < 1 {
		steps = 1
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Tracker{
		svc:       svc,
		publisher: publisher,
		ids:       ids,
		steps:     steps,
		logger:    logger,
		remaining: make(map[string]int),
	}
}

// Tick advances one shipment. An ASSIGNED shipment departs on its first tick;
// the tick that reaches the destination marks it DELIVERED.
func (t *Tracker) Tick(ctx context.Context, trackingID string) (domain.TrackingUpdate, error) {
	shp, err := t.svc.Shipment(ctx, trackingID)
	if err != nil {
		return domain.TrackingUpdate{}, fmt.Errorf("tick: %w", err)
	}

	switch shp.Status {
	case domain.ShipmentAssigned:
		if shp, err = t.svc.TransitionShipment(ctx, trackingID, domain.ShipmentInTransit); err != nil {
			return domain.TrackingUpdate{}, fmt.Errorf("tick: depart: %w", err)
		}
	case domain.ShipmentInTransit:
	default:
		return domain.TrackingUpdate{}, fmt.Errorf(
			"tick: shipment %s is %s: %w", trackingID, shp.Status, domain.ErrInvalidStateTransition,
		)
	}

	v, err := t.svc.Vehicle(ctx, shp.VehicleID)
	if err != nil {
		return domain.TrackingUpdate{}, fmt.Errorf("tick: %w", err)
	}

	left := t.stepsLeft(trackingID)
	next := motion.Waypoints(v.CurrentLocation, shp.Destination.Location, left)[1]

	if _, err := t.svc.AdvanceVehicle(ctx, trackingID, next); err != nil {
		return domain.TrackingUpdate{}, fmt.Errorf("tick: %w", err)
	}
	left = t.consumeStep(trackingID)

	if left == 0 {
		if shp, err = t.svc.TransitionShipment(ctx, trackingID, domain.ShipmentDelivered); err != nil {
			return domain.TrackingUpdate{}, fmt.Errorf("tick: deliver: %w", err)
		}
		t.forget(trackingID)
	}

	if v, err = t.svc.Vehicle(ctx, shp.VehicleID); err != nil {
		return domain.TrackingUpdate{}, fmt.Errorf("tick: %w", err)
	}

	u := domain.TrackingUpdate{
		TrackingID:     trackingID,
		VehicleID:      v.ID,
		VehicleType:    v.Type,
		ShipmentStatus: shp.Status,
		VehicleStatus:  v.Status,
		Position:       v.CurrentLocation,
		FuelRemaining:  v.Fuel,
		Progress:       float64(t.steps-left) / float64(t.steps),
		At:             t.ids.Now(),
	}

	if t.publisher != nil {
		if err := t.publisher.PublishTracking(ctx, u); err != nil {
			// The move already happened; a lost broadcast is not fatal.
			level.Error(t.logger).Log("msg", "publish tracking update", "tracking_id", trackingID, "err", err)
		}
	}
	return u, nil
}

// Run ticks trackingID until it is delivered or ctx is done.
func (t *Tracker) Run(ctx context.Context, trackingID string) ([]domain.TrackingUpdate, error) {
	var updates []domain.TrackingUpdate
	for {
		if err := ctx.Err(); err != nil {
			return updates, err
		}
		u, err := t.Tick(ctx, trackingID)
		if err != nil {
			return updates, err
		}
		updates = append(updates, u)
		if u.ShipmentStatus == domain.ShipmentDelivered {
			return updates, nil
		}
	}
}

func (t *Tracker) stepsLeft(id string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	left, ok := t.remaining[id]
	if !ok {
		left = t.steps
		t.remaining[id] = left
	}
	return left
}

func (t *Tracker) consumeStep(id string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.remaining[id]--
	return t.remaining[id]
}

func (t *Tracker) forget(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.remaining, id)
}
