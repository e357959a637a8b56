package motion

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/zoobzio/clockz"

	"freight-planner-service/internal/domain"
)

var (
	origin = domain.Location{Lat: 0, Lng: 0}
	dest   = domain.Location{Lat: 0.3, Lng: 0.4}
)

func newVehicle(t *testing.T, vt domain.VehicleType) *domain.Vehicle {
	t.Helper()
	v, err := domain.NewVehicle(vt, "VEH-000001", "LIC-000001", origin)
	if err != nil {
		t.Fatalf("new vehicle: %v", err)
	}
	return v
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestPreviewPerType(t *testing.T) {
	tests := []struct {
		vt       domain.VehicleType
		distance float64
		fuel     float64
		minutes  float64
		points   int
	}{
		{domain.Drone, 55.5, 27.75, 55.5, 2},
		{domain.Truck, 77.7, 23.31, 51.8, 3},
		{domain.Ship, 72.15, 360.75, 72.15 / 35 * 60, 2},
	}

	sim := NewSimulator()
	for _, tt := range tests {
		v := newVehicle(t, tt.vt)
		mv, err := sim.Preview(v, dest)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.vt, err)
		}
		if !near(mv.DistanceKm, tt.distance) || !near(mv.FuelUsed, tt.fuel) || !near(mv.EstimatedMinutes, tt.minutes) {
			t.Fatalf("%s: got distance=%v fuel=%v minutes=%v", tt.vt, mv.DistanceKm, mv.FuelUsed, mv.EstimatedMinutes)
		}
		if len(mv.Path) != tt.points {
			t.Fatalf("%s: path has %d points, want %d", tt.vt, len(mv.Path), tt.points)
		}
		if v.CurrentLocation != origin || v.Fuel != v.MaxFuel {
			t.Fatalf("%s: preview mutated the vehicle", tt.vt)
		}
	}
}

func TestTruckPathIsLShaped(t *testing.T) {
	mv, _ := NewSimulator().Preview(newVehicle(t, domain.Truck), dest)

	corner := mv.Path[1]
	if corner.Lat != dest.Lat || corner.Lng != origin.Lng {
		t.Fatalf("corner = %+v, want (%v, %v)", corner, dest.Lat, origin.Lng)
	}
}

func TestLoadedVehiclesBurnMore(t *testing.T) {
	sim := NewSimulator()

	drone := newVehicle(t, domain.Drone)
	if err := drone.Drone.SetAltitude(120); err != nil {
		t.Fatalf("set altitude: %v", err)
	}
	if mv, _ := sim.Preview(drone, dest); !near(mv.FuelUsed, 27.75*1.2) {
		t.Fatalf("drone at max altitude fuel = %v", mv.FuelUsed)
	}

	truck := newVehicle(t, domain.Truck)
	_ = truck.Truck.AttachTrailer()
	mv, _ := sim.Preview(truck, dest)
	if !near(mv.FuelUsed, 23.31*1.5) || !near(mv.EstimatedMinutes, 77.7/70*60) {
		t.Fatalf("truck with trailer fuel=%v minutes=%v", mv.FuelUsed, mv.EstimatedMinutes)
	}

	ship := newVehicle(t, domain.Ship)
	_ = ship.Ship.LoadContainers(1000)
	if mv, _ := sim.Preview(ship, dest); !near(mv.FuelUsed, 360.75*1.25) {
		t.Fatalf("half-loaded ship fuel = %v", mv.FuelUsed)
	}
}

func TestMoveUpdatesVehicle(t *testing.T) {
	clock := clockz.NewFakeClock()
	sim := NewSimulator(WithClock(clock))
	v := newVehicle(t, domain.Truck)

	mv, err := sim.Move(v, dest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.CurrentLocation != dest {
		t.Fatalf("location = %+v, want %+v", v.CurrentLocation, dest)
	}
	if !near(v.Fuel, v.MaxFuel-mv.FuelUsed) {
		t.Fatalf("fuel = %v, want %v", v.Fuel, v.MaxFuel-mv.FuelUsed)
	}
	if !near(v.Truck.MileageKm, mv.DistanceKm) {
		t.Fatalf("mileage = %v, want %v", v.Truck.MileageKm, mv.DistanceKm)
	}
	if len(v.History) != 1 || !v.History[0].At.Equal(clock.Now()) {
		t.Fatalf("history = %+v", v.History)
	}
}

func TestMoveWithoutFuelIsPermissive(t *testing.T) {
	var buf bytes.Buffer
	sim := NewSimulator(WithLogger(log.NewLogfmtLogger(&buf)))

	v := newVehicle(t, domain.Drone)
	far := domain.Location{Lat: 3, Lng: 4}

	mv, err := sim.Move(v, far)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mv.FuelSufficient {
		t.Fatalf("expected insufficient fuel for %.1f km", mv.DistanceKm)
	}
	if v.Fuel != 0 || v.CurrentLocation != far {
		t.Fatalf("vehicle should have moved on an empty tank: fuel=%v loc=%+v", v.Fuel, v.CurrentLocation)
	}
	if !strings.Contains(buf.String(), "insufficient fuel") {
		t.Fatalf("expected warning, log was %q", buf.String())
	}
}

func TestMoveWithStrictFuel(t *testing.T) {
	sim := NewSimulator(WithStrictFuel())
	v := newVehicle(t, domain.Drone)

	_, err := sim.Move(v, domain.Location{Lat: 3, Lng: 4})
	if !errors.Is(err, domain.ErrInsufficientFuel) {
		t.Fatalf("expected insufficient fuel, got %v", err)
	}
	if v.Fuel != v.MaxFuel || v.CurrentLocation != origin {
		t.Fatalf("strict failure mutated the vehicle")
	}
}

func TestWaypoints(t *testing.T) {
	pts := Waypoints(origin, domain.Location{Lat: 10, Lng: 20}, 4)
	if len(pts) != 5 {
		t.Fatalf("got %d points, want 5", len(pts))
	}
	if pts[2].Lat != 5 || pts[2].Lng != 10 {
		t.Fatalf("midpoint = %+v", pts[2])
	}
	if len(Waypoints(origin, dest, 0)) != 2 {
		t.Fatalf("zero steps should still return both ends")
	}
}

func TestUnknownVehicleType(t *testing.T) {
	v := &domain.Vehicle{ID: "x", Type: "BALLOON"}
	if _, err := NewSimulator().Preview(v, dest); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}
