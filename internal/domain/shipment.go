package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

type ShipmentStatus string

const (
	ShipmentPending   ShipmentStatus = "PENDING"
	ShipmentAssigned  ShipmentStatus = "ASSIGNED"
	ShipmentInTransit ShipmentStatus = "IN_TRANSIT"
	ShipmentDelivered ShipmentStatus = "DELIVERED"
	ShipmentCancelled ShipmentStatus = "CANCELLED"
)

func ParseShipmentStatus(s string) (ShipmentStatus, error) {
	switch st := ShipmentStatus(s); st {
	case ShipmentPending, ShipmentAssigned, ShipmentInTransit, ShipmentDelivered, ShipmentCancelled:
		return st, nil
	}
	return "", NewValidationError("status", "unknown shipment status %q", s)
}

// Terminal reports whether no further transitions are possible.
func (s ShipmentStatus) Terminal() bool {
	return s == ShipmentDelivered || s == ShipmentCancelled
}

var shipmentTransitions = map[ShipmentStatus][]ShipmentStatus{
	ShipmentPending:   {ShipmentAssigned, ShipmentCancelled},
	ShipmentAssigned:  {ShipmentInTransit, ShipmentCancelled},
	ShipmentInTransit: {ShipmentDelivered, ShipmentCancelled},
}

func CanShipmentTransition(from, to ShipmentStatus) bool {
	for _, s := range shipmentTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ShipmentType is a handling category. Each carries a cost multiplier.
type ShipmentType string

const (
	Standard  ShipmentType = "STANDARD"
	Express   ShipmentType = "EXPRESS"
	Overnight ShipmentType = "OVERNIGHT"
	Fragile   ShipmentType = "FRAGILE"
	Hazardous ShipmentType = "HAZARDOUS"
)

var typeMultipliers = map[ShipmentType]float64{
	Standard:  1.0,
	Express:   1.5,
	Overnight: 2.0,
	Fragile:   1.3,
	Hazardous: 2.5,
}

func ParseShipmentType(s string) (ShipmentType, error) {
	if s == "" {
		return Standard, nil
	}
	t := ShipmentType(s)
	if _, ok := typeMultipliers[t]; !ok {
		return "", NewValidationError("shipment_type", "unknown shipment type %q", s)
	}
	return t, nil
}

// Multiplier returns the cost multiplier, 1.0 for unknown types.
func (t ShipmentType) Multiplier() float64 {
	if m, ok := typeMultipliers[t]; ok {
		return m
	}
	return 1.0
}

type Urgency string

const (
	Critical      Urgency = "critical"
	High          Urgency = "high"
	StandardSpeed Urgency = "standard"
	Low           Urgency = "low"
)

func ParseUrgency(s string) (Urgency, error) {
	switch u := Urgency(s); u {
	case Critical, High, StandardSpeed, Low:
		return u, nil
	case "":
		return StandardSpeed, nil
	}
	return "", NewValidationError("urgency", "unknown urgency %q", s)
}

// Share of the insured value added to the shipping cost.
const InsuranceRate = 0.02

// TrackingEvent is one entry of a shipment or vehicle history log.
type TrackingEvent struct {
	At       time.Time `json:"at"`
	Status   string    `json:"status"`
	Location *Location `json:"location,omitempty"`
	Note     string    `json:"note,omitempty"`
}

type Shipment struct {
	ID             string
	TrackingID     string
	CustomerID     string
	WeightKg       float64
	Origin         ExtendedLocation
	Destination    ExtendedLocation
	Status         ShipmentStatus
	Type           ShipmentType
	Cost           decimal.Decimal
	VehicleID      string
	Insured        bool
	InsuranceValue float64
	History        []TrackingEvent
	CreatedAt      time.Time
}

// NewShipment builds a PENDING shipment and records its creation event.
func NewShipment(
	id, trackingID, customerID string,
	weightKg float64,
	origin, destination ExtendedLocation,
	t ShipmentType,
	insuranceValue float64,
	at time.Time,
) (*Shipment, error) {
	if weightKg <= 0 || math.IsNaN(weightKg) || math.IsInf(weightKg, 0) {
		return nil, NewValidationError("weight", "must be positive, got %v", weightKg)
	}
	if insuranceValue < 0 {
		return nil, NewValidationError("insurance_value", "must not be negative, got %v", insuranceValue)
	}
	if t == "" {
		t = Standard
	}

	s := &Shipment{
		ID:             id,
		TrackingID:     trackingID,
		CustomerID:     customerID,
		WeightKg:       weightKg,
		Origin:         origin,
		Destination:    destination,
		Status:         ShipmentPending,
		Type:           t,
		Cost:           decimal.Zero,
		Insured:        insuranceValue > 0,
		InsuranceValue: insuranceValue,
		CreatedAt:      at,
	}
	o := origin.Location
	s.record(at, ShipmentPending, &o, "shipment created")
	return s, nil
}

// TransitionTo moves the shipment along the status graph.
func (s *Shipment) TransitionTo(status ShipmentStatus, at time.Time, note string) error {
	if !CanShipmentTransition(s.Status, status) {
		return fmt.Errorf("shipment %s: %w: %s -> %s", s.TrackingID, ErrInvalidStateTransition, s.Status, status)
	}
	if note == "" {
		note = "status changed"
	}

	s.Status = status
	s.record(at, status, nil, note)
	return nil
}

// AssignVehicle attaches v to the shipment. Reassignment of an already
// assigned shipment is allowed.
func (s *Shipment) AssignVehicle(v *Vehicle, at time.Time) error {
	if v == nil {
		return fmt.Errorf("assign vehicle: vehicle is nil")
	}
	if s.Status != ShipmentPending && s.Status != ShipmentAssigned {
		return fmt.Errorf(
			"assign vehicle %s to %s: %w: status is %s",
			v.ID, s.TrackingID, ErrInvalidStateTransition, s.Status,
		)
	}
	if !v.CanCarry(s.WeightKg) {
		return fmt.Errorf(
			"assign vehicle %s to %s: %w: %.1f kg > %.1f kg",
			v.ID, s.TrackingID, ErrInsufficientCapacity, s.WeightKg, v.CapacityKg,
		)
	}

	s.VehicleID = v.ID
	s.Status = ShipmentAssigned
	loc := v.CurrentLocation
	s.record(at, ShipmentAssigned, &loc, fmt.Sprintf("assigned to %s %s", v.Type, v.ID))
	return nil
}

// Pricer is the part of a pricing strategy a shipment needs to cost itself.
type Pricer interface {
	Calculate(weightKg, distanceKm float64) (float64, error)
}

// CalculateCost prices the shipment with p over distanceKm, applies the type
// multiplier and the insurance premium, and stores the result in Cost.
func (s *Shipment) CalculateCost(p Pricer, distanceKm float64) (decimal.Decimal, error) {
	base, err := p.Calculate(s.WeightKg, distanceKm)
	if err != nil {
		return decimal.Zero, fmt.Errorf("calculate cost %s: %w", s.TrackingID, err)
	}

	cost := decimal.NewFromFloat(base).Mul(decimal.NewFromFloat(s.Type.Multiplier()))
	if s.Insured {
		premium := decimal.NewFromFloat(s.InsuranceValue).Mul(decimal.NewFromFloat(InsuranceRate))
		cost = cost.Add(premium)
	}
	if cost.IsNegative() {
		cost = decimal.Zero
	}

	s.Cost = cost.Round(2)
	return s.Cost, nil
}

func (s *Shipment) record(at time.Time, status ShipmentStatus, loc *Location, note string) {
	s.History = append(s.History, TrackingEvent{At: at, Status: string(status), Location: loc, Note: note})
}

// RecordPosition logs a position update without changing status.
func (s *Shipment) RecordPosition(at time.Time, loc Location, note string) {
	s.record(at, s.Status, &loc, note)
}
