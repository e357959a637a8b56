package domain

import (
	"errors"
	"testing"
	"time"
)

type fixedPricer float64

func (p fixedPricer) Calculate(float64, float64) (float64, error) { return float64(p), nil }

type failingPricer struct{}

func (failingPricer) Calculate(float64, float64) (float64, error) { return 0, errors.New("not eligible") }

var testTime = time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

func newTestShipment(t *testing.T, weight float64, st ShipmentType, insured float64) *Shipment {
	t.Helper()
	s, err := NewShipment("id-1", "TRK-20260101-ABCDEF12", "cust-1", weight,
		ExtendedLocation{Location: Location{Lat: 40.7128, Lng: -74.0060}},
		ExtendedLocation{Location: Location{Lat: 51.5074, Lng: -0.1278}},
		st, insured, testTime)
	if err != nil {
		t.Fatalf("new shipment: %v", err)
	}
	return s
}

func TestNewShipmentValidation(t *testing.T) {
	origin := ExtendedLocation{}
	if _, err := NewShipment("a", "b", "c", 0, origin, origin, Standard, 0, testTime); !IsValidation(err) {
		t.Fatalf("zero weight: expected validation error, got %v", err)
	}
	if _, err := NewShipment("a", "b", "c", 10, origin, origin, Standard, -1, testTime); !IsValidation(err) {
		t.Fatalf("negative insurance: expected validation error, got %v", err)
	}

	s := newTestShipment(t, 10, "", 0)
	if s.Status != ShipmentPending || s.Type != Standard || s.Insured {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if len(s.History) != 1 {
		t.Fatalf("history = %d, want 1 creation event", len(s.History))
	}
}

func TestShipmentPendingToDeliveredIsInvalid(t *testing.T) {
	s := newTestShipment(t, 10, Standard, 0)

	err := s.TransitionTo(ShipmentDelivered, testTime, "")
	if !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if s.Status != ShipmentPending {
		t.Fatalf("status changed to %s on failed transition", s.Status)
	}
}

func TestShipmentTransitionGraph(t *testing.T) {
	all := []ShipmentStatus{ShipmentPending, ShipmentAssigned, ShipmentInTransit, ShipmentDelivered, ShipmentCancelled}
	allowed := map[[2]ShipmentStatus]bool{
		{ShipmentPending, ShipmentAssigned}:    true,
		{ShipmentPending, ShipmentCancelled}:   true,
		{ShipmentAssigned, ShipmentInTransit}:  true,
		{ShipmentAssigned, ShipmentCancelled}:  true,
		{ShipmentInTransit, ShipmentDelivered}: true,
		{ShipmentInTransit, ShipmentCancelled}: true,
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]ShipmentStatus{from, to}]
			if got := CanShipmentTransition(from, to); got != want {
				t.Fatalf("%s -> %s = %v, want %v", from, to, got, want)
			}
		}
		if from.Terminal() && len(shipmentTransitions[from]) != 0 {
			t.Fatalf("terminal status %s has outgoing transitions", from)
		}
	}
}

func TestShipmentAssignVehicle(t *testing.T) {
	s := newTestShipment(t, 80, Standard, 0)
	drone, _ := NewVehicle(Drone, "VEH-000001", "DRN-000001", Location{})
	truck, _ := NewVehicle(Truck, "VEH-000002", "TRU-000001", Location{})

	if err := s.AssignVehicle(drone, testTime); !errors.Is(err, ErrInsufficientCapacity) {
		t.Fatalf("expected insufficient capacity, got %v", err)
	}
	if s.Status != ShipmentPending {
		t.Fatalf("status = %s after failed assignment", s.Status)
	}

	if err := s.AssignVehicle(truck, testTime); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Status != ShipmentAssigned || s.VehicleID != truck.ID {
		t.Fatalf("assignment not applied: status=%s vehicle=%s", s.Status, s.VehicleID)
	}

	// Reassignment while ASSIGNED is allowed.
	other, _ := NewVehicle(Truck, "VEH-000003", "TRU-000002", Location{})
	if err := s.AssignVehicle(other, testTime); err != nil {
		t.Fatalf("reassign: unexpected error: %v", err)
	}

	if err := s.TransitionTo(ShipmentInTransit, testTime, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AssignVehicle(truck, testTime); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("assign in transit: expected invalid transition, got %v", err)
	}
}

func TestShipmentCalculateCost(t *testing.T) {
	tests := []struct {
		name    string
		st      ShipmentType
		insured float64
		base    float64
		want    string
	}{
		{"standard", Standard, 0, 100, "100"},
		{"express", Express, 0, 100, "150"},
		{"overnight", Overnight, 0, 100, "200"},
		{"fragile", Fragile, 0, 100, "130"},
		{"hazardous", Hazardous, 0, 100, "250"},
		{"insured", Standard, 1000, 100, "120"},
		{"rounded", Express, 0, 33.333, "50"},
	}

	for _, tt := range tests {
		s := newTestShipment(t, 10, tt.st, tt.insured)
		got, err := s.CalculateCost(fixedPricer(tt.base), 100)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if got.String() != tt.want {
			t.Fatalf("%s: cost = %s, want %s", tt.name, got, tt.want)
		}
		if !s.Cost.Equal(got) {
			t.Fatalf("%s: stored cost %s != returned %s", tt.name, s.Cost, got)
		}
	}

	s := newTestShipment(t, 10, Standard, 0)
	if _, err := s.CalculateCost(failingPricer{}, 100); err == nil {
		t.Fatalf("expected pricer error to propagate")
	}
}
