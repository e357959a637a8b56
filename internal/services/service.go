// Package services wires the planning, pricing and motion engine behind a
// single Service used by the HTTP API, the CLI and the tick tracker.
package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/shopspring/decimal"

	"freight-planner-service/internal/domain"
	"freight-planner-service/internal/geography"
	"freight-planner-service/internal/motion"
	"freight-planner-service/internal/planner"
	"freight-planner-service/internal/platform/obs"
	"freight-planner-service/internal/ports"
	"freight-planner-service/internal/pricing"
	"freight-planner-service/internal/routing"
)

// Service is the engine boundary.
type Service interface {
	Locations(ctx context.Context) ([]domain.ExtendedLocation, error)
	AnalyzeRoute(ctx context.Context, origin, destination LocationRef, weightKg float64) (routing.TransportAvailability, error)
	QuoteShipment(ctx context.Context, req ShipmentRequest) (*Quote, error)
	ComparePricing(ctx context.Context, weightKg, distanceKm float64) ([]pricing.Comparison, error)
	Shipment(ctx context.Context, trackingID string) (*domain.Shipment, error)
	Vehicle(ctx context.Context, vehicleID string) (*domain.Vehicle, error)
	AssignVehicle(ctx context.Context, trackingID, vehicleID string) (*domain.Shipment, error)
	TransitionShipment(ctx context.Context, trackingID string, status domain.ShipmentStatus) (*domain.Shipment, error)
	TransitionVehicle(ctx context.Context, vehicleID string, status domain.VehicleStatus) (*domain.Vehicle, error)
	AdvanceVehicle(ctx context.Context, trackingID string, to domain.Location) (domain.Movement, error)
}

// LocationRef names an endpoint either by catalog code or by raw coordinates.
type LocationRef struct {
	Code string
	Lat  *float64
	Lng  *float64
}

func Code(code string) LocationRef { return LocationRef{Code: code} }

func Coordinates(lat, lng float64) LocationRef { return LocationRef{Lat: &lat, Lng: &lng} }

func (r LocationRef) String() string {
	switch {
	case r.Code != "":
		return r.Code
	case r.Lat != nil && r.Lng != nil:
		return fmt.Sprintf("(%.4f,%.4f)", *r.Lat, *r.Lng)
	}
	return "<none>"
}

func (r LocationRef) empty() bool {
	return strings.TrimSpace(r.Code) == "" && (r.Lat == nil || r.Lng == nil)
}

func (r LocationRef) validate(field string) error {
	if r.empty() {
		return domain.NewValidationError(field, "code or lat/lng is required")
	}
	if r.Code != "" {
		return nil
	}
	if *r.Lat < -90 || *r.Lat > 90 || math.IsNaN(*r.Lat) {
		return domain.NewValidationError(field, "latitude %v out of range", *r.Lat)
	}
	if *r.Lng < -180 || *r.Lng > 180 || math.IsNaN(*r.Lng) {
		return domain.NewValidationError(field, "longitude %v out of range", *r.Lng)
	}
	return nil
}

type ShipmentRequest struct {
	CustomerID     string
	WeightKg       float64
	Origin         LocationRef
	Destination    LocationRef
	Urgency        domain.Urgency
	ShipmentType   domain.ShipmentType
	InsuranceValue float64
	// Assign attaches the planned vehicle right away.
	Assign bool
}

// Validate checks the request and fills defaults for urgency and type.
func (r *ShipmentRequest) Validate() error {
	if r.WeightKg <= 0 || math.IsNaN(r.WeightKg) || math.IsInf(r.WeightKg, 0) {
		return domain.NewValidationError("weight", "must be positive, got %v", r.WeightKg)
	}
	if err := r.Origin.validate("origin"); err != nil {
		return err
	}
	if err := r.Destination.validate("destination"); err != nil {
		return err
	}

	u, err := domain.ParseUrgency(string(r.Urgency))
	if err != nil {
		return err
	}
	r.Urgency = u

	t, err := domain.ParseShipmentType(string(r.ShipmentType))
	if err != nil {
		return err
	}
	r.ShipmentType = t

	if r.InsuranceValue < 0 {
		return domain.NewValidationError("insurance_value", "must not be negative, got %v", r.InsuranceValue)
	}
	return nil
}

// Quote is the engine's answer to a shipment request.
type Quote struct {
	Shipment              *domain.Shipment
	Vehicle               *domain.Vehicle
	Strategy              pricing.Strategy
	EstimatedCost         decimal.Decimal
	EstimatedDeliveryDays int
	Availability          routing.TransportAvailability
	// Great-circle distance the price is based on.
	DistanceKm float64
}

type service struct {
	locations ports.LocationRepository
	shipments ports.ShipmentRepository
	ids       ports.IDGenerator
	planner   *planner.Planner
	sim       *motion.Simulator
	logger    log.Logger

	mu    sync.Mutex
	fleet map[string]*domain.Vehicle
}

// NewService wires the engine. A nil logger discards output.
func NewService(
	locations ports.LocationRepository,
	shipments ports.ShipmentRepository,
	ids ports.IDGenerator,
	sim *motion.Simulator,
	logger log.Logger,
) Service {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if sim == nil {
		sim = motion.NewSimulator(motion.WithLogger(logger))
	}
	return &service{
		locations: locations,
		shipments: shipments,
		ids:       ids,
		planner:   planner.New(ids, logger),
		sim:       sim,
		logger:    logger,
		fleet:     make(map[string]*domain.Vehicle),
	}
}

func (s *service) Locations(ctx context.Context) (locs []domain.ExtendedLocation, err error) {
	defer obs.Time(ctx, s.logger, "locations")(&err)
	return s.locations.ListLocations(ctx)
}

// resolve looks a reference up by code, then by exact coordinates, and finally
// falls back to the continent heuristic.
func (s *service) resolve(ctx context.Context, field string, ref LocationRef) (domain.ExtendedLocation, error) {
	if err := ref.validate(field); err != nil {
		return domain.ExtendedLocation{}, err
	}

	if ref.Code != "" {
		l, err := s.locations.FindLocation(ctx, ref.Code)
		if errors.Is(err, domain.ErrUnknownLocation) {
			return domain.ExtendedLocation{}, domain.NewValidationError(field, "unknown location code %q", ref.Code)
		}
		if err != nil {
			return domain.ExtendedLocation{}, fmt.Errorf("resolve %s: %w", field, err)
		}
		return l, nil
	}

	point := domain.Location{Lat: *ref.Lat, Lng: *ref.Lng}
	known, err := s.locations.ListLocations(ctx)
	if err != nil {
		return domain.ExtendedLocation{}, fmt.Errorf("resolve %s: %w", field, err)
	}
	for _, l := range known {
		if l.SameCoordinates(point) {
			return l, nil
		}
	}
	return geography.Annotate(point), nil
}

func (s *service) AnalyzeRoute(ctx context.Context, origin, destination LocationRef, weightKg float64) (av routing.TransportAvailability, err error) {
	defer obs.Time(ctx, s.logger, "analyze_route")(&err)

	if weightKg < 0 || math.IsNaN(weightKg) {
		return av, domain.NewValidationError("weight", "must not be negative, got %v", weightKg)
	}
	o, err := s.resolve(ctx, "origin", origin)
	if err != nil {
		return av, err
	}
	d, err := s.resolve(ctx, "destination", destination)
	if err != nil {
		return av, err
	}
	return routing.AnalyzeRoute(o, d, weightKg), nil
}

func (s *service) QuoteShipment(ctx context.Context, req ShipmentRequest) (q *Quote, err error) {
	defer obs.Time(ctx, s.logger, "quote_shipment")(&err)

	if err := req.Validate(); err != nil {
		return nil, err
	}
	origin, err := s.resolve(ctx, "origin", req.Origin)
	if err != nil {
		return nil, err
	}
	destination, err := s.resolve(ctx, "destination", req.Destination)
	if err != nil {
		return nil, err
	}

	plan, err := s.planner.Plan(req.WeightKg, origin, destination, req.Urgency)
	if err != nil {
		return nil, fmt.Errorf("quote shipment: %w", err)
	}

	now := s.ids.Now()
	shp, err := domain.NewShipment(
		s.ids.NextShipmentID(), s.ids.NextTrackingID(), req.CustomerID,
		req.WeightKg, origin, destination, req.ShipmentType, req.InsuranceValue, now,
	)
	if err != nil {
		return nil, fmt.Errorf("quote shipment: %w", err)
	}

	distance := plan.Availability.DistanceKm
	cost, err := shp.CalculateCost(plan.Strategy, distance)
	if err != nil {
		return nil, fmt.Errorf("quote shipment: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.fleet[plan.Vehicle.ID] = plan.Vehicle
	if req.Assign {
		if err := s.assignLocked(shp, plan.Vehicle, now); err != nil {
			return nil, fmt.Errorf("quote shipment: %w", err)
		}
	}
	if err := s.shipments.SaveShipment(ctx, shp); err != nil {
		return nil, fmt.Errorf("quote shipment: save: %w", err)
	}

	return &Quote{
		Shipment:              shp,
		Vehicle:               plan.Vehicle,
		Strategy:              plan.Strategy,
		EstimatedCost:         cost,
		EstimatedDeliveryDays: plan.EstimatedDays,
		Availability:          plan.Availability,
		DistanceKm:            distance,
	}, nil
}

func (s *service) ComparePricing(ctx context.Context, weightKg, distanceKm float64) (rows []pricing.Comparison, err error) {
	defer obs.Time(ctx, s.logger, "compare_pricing")(&err)

	if weightKg <= 0 || math.IsNaN(weightKg) {
		return nil, domain.NewValidationError("weight", "must be positive, got %v", weightKg)
	}
	if distanceKm < 0 || math.IsNaN(distanceKm) {
		return nil, domain.NewValidationError("distance", "must not be negative, got %v", distanceKm)
	}
	return pricing.CompareAll(weightKg, distanceKm), nil
}

func (s *service) Shipment(ctx context.Context, trackingID string) (*domain.Shipment, error) {
	shp, err := s.shipments.FindShipment(ctx, trackingID)
	if err != nil {
		return nil, fmt.Errorf("shipment %q: %w", trackingID, err)
	}
	return shp, nil
}

func (s *service) Vehicle(_ context.Context, vehicleID string) (*domain.Vehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.vehicleLocked(vehicleID)
	if err != nil {
		return nil, err
	}
	cp := *v
	return &cp, nil
}

func (s *service) vehicleLocked(id string) (*domain.Vehicle, error) {
	v, ok := s.fleet[id]
	if !ok {
		return nil, fmt.Errorf("vehicle %q: %w", id, ports.ErrNotFound)
	}
	return v, nil
}

func (s *service) AssignVehicle(ctx context.Context, trackingID, vehicleID string) (shp *domain.Shipment, err error) {
	defer obs.Time(ctx, s.logger, "assign_vehicle")(&err)

	s.mu.Lock()
	defer s.mu.Unlock()

	shp, err = s.shipments.FindShipment(ctx, trackingID)
	if err != nil {
		return nil, fmt.Errorf("assign vehicle: %w", err)
	}
	v, err := s.vehicleLocked(vehicleID)
	if err != nil {
		return nil, fmt.Errorf("assign vehicle: %w", err)
	}
	if err := s.assignLocked(shp, v, s.ids.Now()); err != nil {
		return nil, fmt.Errorf("assign vehicle: %w", err)
	}
	if err := s.shipments.SaveShipment(ctx, shp); err != nil {
		return nil, fmt.Errorf("assign vehicle: save: %w", err)
	}
	return shp, nil
}

func (s *service) assignLocked(shp *domain.Shipment, v *domain.Vehicle, at time.Time) error {
	if v.Status != domain.VehicleIdle && v.Status != domain.VehicleAssigned {
		return fmt.Errorf("vehicle %s is %s: %w", v.ID, v.Status, domain.ErrInvalidStateTransition)
	}
	previous := shp.VehicleID
	if err := shp.AssignVehicle(v, at); err != nil {
		return err
	}
	if old, ok := s.fleet[previous]; ok && previous != v.ID {
		if err := s.syncVehicle(old, domain.VehicleIdle, at); err != nil {
			level.Warn(s.logger).Log("msg", "previous vehicle not released", "vehicle", old.ID, "err", err)
		}
	}
	return s.syncVehicle(v, domain.VehicleAssigned, at)
}

// syncVehicle moves v to status unless it is already there.
func (s *service) syncVehicle(v *domain.Vehicle, status domain.VehicleStatus, at time.Time) error {
	if v.Status == status {
		return nil
	}
	return v.TransitionTo(status, at)
}

func (s *service) TransitionShipment(ctx context.Context, trackingID string, status domain.ShipmentStatus) (shp *domain.Shipment, err error) {
	defer obs.Time(ctx, s.logger, "transition_shipment")(&err)

	s.mu.Lock()
	defer s.mu.Unlock()

	shp, err = s.shipments.FindShipment(ctx, trackingID)
	if err != nil {
		return nil, fmt.Errorf("transition shipment: %w", err)
	}

	now := s.ids.Now()
	if err := shp.TransitionTo(status, now, ""); err != nil {
		return nil, fmt.Errorf("transition shipment: %w", err)
	}

	if v, ok := s.fleet[shp.VehicleID]; ok {
		var next domain.VehicleStatus
		switch status {
		case domain.ShipmentInTransit:
			next = domain.VehicleInTransit
		case domain.ShipmentDelivered, domain.ShipmentCancelled:
			next = domain.VehicleIdle
		}
		if next != "" {
			if err := s.syncVehicle(v, next, now); err != nil {
				level.Warn(s.logger).Log("msg", "vehicle status not synced", "vehicle", v.ID, "err", err)
			}
		}
	}

	if err := s.shipments.SaveShipment(ctx, shp); err != nil {
		return nil, fmt.Errorf("transition shipment: save: %w", err)
	}
	return shp, nil
}

func (s *service) TransitionVehicle(ctx context.Context, vehicleID string, status domain.VehicleStatus) (v *domain.Vehicle, err error) {
	defer obs.Time(ctx, s.logger, "transition_vehicle")(&err)

	if !status.Valid() {
		return nil, domain.NewValidationError("status", "unknown vehicle status %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, err = s.vehicleLocked(vehicleID)
	if err != nil {
		return nil, fmt.Errorf("transition vehicle: %w", err)
	}
	if err := v.TransitionTo(status, s.ids.Now()); err != nil {
		return nil, fmt.Errorf("transition vehicle: %w", err)
	}
	cp := *v
	return &cp, nil
}

func (s *service) AdvanceVehicle(ctx context.Context, trackingID string, to domain.Location) (mv domain.Movement, err error) {
	defer obs.Time(ctx, s.logger, "advance_vehicle")(&err)

	s.mu.Lock()
	defer s.mu.Unlock()

	shp, err := s.shipments.FindShipment(ctx, trackingID)
	if err != nil {
		return mv, fmt.Errorf("advance vehicle: %w", err)
	}
	if shp.Status != domain.ShipmentInTransit {
		return mv, fmt.Errorf(
			"advance vehicle: shipment %s is %s: %w",
			trackingID, shp.Status, domain.ErrInvalidStateTransition,
		)
	}
	v, err := s.vehicleLocked(shp.VehicleID)
	if err != nil {
		return mv, fmt.Errorf("advance vehicle: %w", err)
	}

	mv, err = s.sim.Move(v, to)
	if err != nil {
		return mv, fmt.Errorf("advance vehicle: %w", err)
	}

	shp.RecordPosition(s.ids.Now(), to, fmt.Sprintf("%s %s moved %.1f km", v.Type, v.ID, mv.DistanceKm))
	if err := s.shipments.SaveShipment(ctx, shp); err != nil {
		return mv, fmt.Errorf("advance vehicle: save: %w", err)
	}
	return mv, nil
}
