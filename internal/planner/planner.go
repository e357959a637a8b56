// Package planner picks one transport mode and pricing strategy for a
// shipment request and estimates delivery time.
package planner

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"freight-planner-service/internal/domain"
	"freight-planner-service/internal/ports"
	"freight-planner-service/internal/pricing"
	"freight-planner-service/internal/routing"
)

var baseDays = map[domain.Urgency]int{
	domain.Critical:      1,
	domain.High:          2,
	domain.StandardSpeed: 5,
	domain.Low:           14,
}

// Weight thresholds of the decision matrix.
const (
	criticalDroneMaxKg = 10.0
	highDroneMaxKg     = 50.0
	bulkShipMinKg      = 5000.0
)

// Plan is the planner's decision for one request. Vehicle and Strategy are
// fresh instances owned by the caller.
type Plan struct {
	VehicleType   domain.VehicleType
	Kind          pricing.Kind
	EstimatedDays int
	// Planar distance used for the day estimate.
	DistanceKm   float64
	Availability routing.TransportAvailability
	Vehicle      *domain.Vehicle
	Strategy     pricing.Strategy
}

type Planner struct {
	ids    ports.IDGenerator
	logger log.Logger
}

// New returns a planner that draws vehicle identities from ids. A nil logger
// discards output.
func New(ids ports.IDGenerator, logger log.Logger) *Planner {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Planner{ids: ids, logger: logger}
}

// ModeStrategy maps a vehicle type to the pricing strategy that serves it.
func ModeStrategy(vt domain.VehicleType) (pricing.Kind, error) {
	switch vt {
	case domain.Drone:
		return pricing.Air, nil
	case domain.Truck:
		return pricing.Ground, nil
	case domain.Ship:
		return pricing.Sea, nil
	}
	return "", fmt.Errorf("mode strategy: unknown vehicle type %q", vt)
}

// EstimateDays adds one day per full 1000 km to the urgency's base.
// Unknown urgencies use the standard base.
func EstimateDays(u domain.Urgency, distanceKm float64) int {
	base, ok := baseDays[u]
	if !ok {
		base = baseDays[domain.StandardSpeed]
	}
	return base + int(math.Floor(max(0, distanceKm)/1000))
}

// Decide applies the decision matrix to an availability report. The rules are
// evaluated in order and the first match wins.
func Decide(weightKg float64, u domain.Urgency, av routing.TransportAvailability) (domain.VehicleType, error) {
	drone, truck, ship := av.Drone.Available, av.Truck.Available, av.Ship.Available

	switch {
	case u == domain.Critical && weightKg <= criticalDroneMaxKg && drone:
		return domain.Drone, nil
	case u == domain.High && weightKg <= highDroneMaxKg && drone:
		return domain.Drone, nil
	case (weightKg > bulkShipMinKg || u == domain.Low) && ship:
		return domain.Ship, nil
	case truck:
		return domain.Truck, nil
	case ship:
		return domain.Ship, nil
	case drone && weightKg <= routing.DroneMaxWeightKg:
		return domain.Drone, nil
	}
	return "", &domain.RouteUnavailableError{WeightKg: weightKg, Reason: av.Truck.Reason}
}

// Plan chooses a vehicle type and pricing strategy for carrying weightKg from
// origin to destination at the given urgency.
func (p *Planner) Plan(weightKg float64, origin, destination domain.ExtendedLocation, u domain.Urgency) (*Plan, error) {
	if weightKg <= 0 || math.IsNaN(weightKg) {
		return nil, fmt.Errorf("plan: %w", domain.NewValidationError("weight", "must be positive, got %v", weightKg))
	}
	if _, ok := baseDays[u]; !ok {
		return nil, fmt.Errorf("plan: %w", domain.NewValidationError("urgency", "unknown urgency %q", u))
	}

	distance := routing.PlanarKm(origin.Location, destination.Location)
	av := routing.AnalyzeRoute(origin, destination, weightKg)

	vt, err := Decide(weightKg, u, av)
	if err != nil {
		var ru *domain.RouteUnavailableError
		if errors.As(err, &ru) {
			ru.Origin, ru.Destination = origin.Label(), destination.Label()
		}
		level.Warn(p.logger).Log(
			"msg", "no transport mode",
			"origin", origin.Label(),
			"destination", destination.Label(),
			"weight_kg", weightKg,
			"urgency", u,
			"reason", av.Truck.Reason,
		)
		return nil, fmt.Errorf("plan: %w", err)
	}

	kind, err := ModeStrategy(vt)
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}
	strategy, err := pricing.New(kind)
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}

	vehicle, err := domain.NewVehicle(vt, p.ids.NextVehicleID(vt), p.ids.NextLicense(vt), origin.Location)
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}

	plan := &Plan{
		VehicleType:   vt,
		Kind:          kind,
		EstimatedDays: EstimateDays(u, distance),
		DistanceKm:    distance,
		Availability:  av,
		Vehicle:       vehicle,
		Strategy:      strategy,
	}

	level.Debug(p.logger).Log(
		"msg", "planned",
		"origin", origin.Label(),
		"destination", destination.Label(),
		"vehicle", vt,
		"strategy", kind,
		"days", plan.EstimatedDays,
	)
	return plan, nil
}
