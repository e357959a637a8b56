package domain

import (
	"fmt"
	"time"
)

type VehicleType string

const (
	Drone VehicleType = "DRONE"
	Truck VehicleType = "TRUCK"
	Ship  VehicleType = "SHIP"
)

// VehicleTypes lists the vehicle types in the order used when a choice must
// fall back to "first available".
func VehicleTypes() []VehicleType { return []VehicleType{Truck, Ship, Drone} }

func ParseVehicleType(s string) (VehicleType, error) {
	switch t := VehicleType(s); t {
	case Drone, Truck, Ship:
		return t, nil
	}
	return "", NewValidationError("vehicle_type", "unknown vehicle type %q", s)
}

type VehicleStatus string

const (
	VehicleIdle         VehicleStatus = "IDLE"
	VehicleInTransit    VehicleStatus = "IN_TRANSIT"
	VehicleAssigned     VehicleStatus = "ASSIGNED"
	VehicleMaintenance  VehicleStatus = "MAINTENANCE"
	VehicleOutOfService VehicleStatus = "OUT_OF_SERVICE"
)

func (s VehicleStatus) Valid() bool {
	switch s {
	case VehicleIdle, VehicleInTransit, VehicleAssigned, VehicleMaintenance, VehicleOutOfService:
		return true
	}
	return false
}

// Fleet defaults applied to freshly built vehicles.
const (
	DroneCapacityKg  = 50
	DroneMaxFuel     = 100
	DroneMaxAltitude = 120

	TruckCapacityKg = 25_000
	TruckMaxFuel    = 800
	TruckAxles      = 5

	ShipCapacityKg        = 50_000_000
	ShipMaxFuel           = 500_000
	ShipContainerCapacity = 2_000
	ShipBaseDraftM        = 8.0
)

// Vehicle is the shared record for every vehicle type. Exactly one of the
// type profiles is set and it matches Type.
type Vehicle struct {
	ID              string
	License         string
	Type            VehicleType
	CapacityKg      float64
	Fuel            float64
	MaxFuel         float64
	Status          VehicleStatus
	CurrentLocation Location
	History         []TrackingEvent

	Drone *DroneProfile
	Truck *TruckProfile
	Ship  *ShipProfile
}

// NewVehicle builds an idle, fully fuelled vehicle of the given type with the
// fleet defaults.
func NewVehicle(t VehicleType, id, license string, at Location) (*Vehicle, error) {
	v := &Vehicle{
		ID:              id,
		License:         license,
		Type:            t,
		Status:          VehicleIdle,
		CurrentLocation: at,
	}

	switch t {
	case Drone:
		v.CapacityKg = DroneCapacityKg
		v.MaxFuel = DroneMaxFuel
		v.Drone = &DroneProfile{MaxAltitudeM: DroneMaxAltitude, BatteryHealth: 100}
	case Truck:
		v.CapacityKg = TruckCapacityKg
		v.MaxFuel = TruckMaxFuel
		v.Truck = &TruckProfile{AxleCount: TruckAxles}
	case Ship:
		v.CapacityKg = ShipCapacityKg
		v.MaxFuel = ShipMaxFuel
		v.Ship = &ShipProfile{ContainerCapacity: ShipContainerCapacity, DraftDepthM: ShipBaseDraftM}
	default:
		return nil, fmt.Errorf("new vehicle: %w", NewValidationError("vehicle_type", "unknown vehicle type %q", t))
	}
	v.Fuel = v.MaxFuel

	return v, nil
}

// CanCarry reports whether the vehicle capacity covers weightKg.
func (v *Vehicle) CanCarry(weightKg float64) bool {
	return v.CapacityKg >= weightKg
}

// ConsumeFuel subtracts amount from the tank. It returns false when the tank
// held less than amount, in which case the tank is emptied.
func (v *Vehicle) ConsumeFuel(amount float64) bool {
	if amount <= 0 {
		return true
	}
	if amount > v.Fuel {
		v.Fuel = 0
		return false
	}
	v.Fuel -= amount
	return true
}

// Refuel adds fuel up to MaxFuel and returns the amount actually added.
func (v *Vehicle) Refuel(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	before := v.Fuel
	v.Fuel = min(v.MaxFuel, v.Fuel+amount)
	return v.Fuel - before
}

// FuelLevel returns remaining fuel as a fraction of MaxFuel.
func (v *Vehicle) FuelLevel() float64 {
	if v.MaxFuel <= 0 {
		return 0
	}
	return v.Fuel / v.MaxFuel
}

var vehicleTransitions = map[VehicleStatus][]VehicleStatus{
	VehicleIdle:         {VehicleInTransit, VehicleAssigned, VehicleMaintenance, VehicleOutOfService},
	VehicleInTransit:    {VehicleIdle, VehicleAssigned, VehicleMaintenance, VehicleOutOfService},
	VehicleAssigned:     {VehicleIdle, VehicleInTransit, VehicleMaintenance, VehicleOutOfService},
	VehicleMaintenance:  {VehicleIdle, VehicleInTransit, VehicleAssigned, VehicleOutOfService},
	VehicleOutOfService: {VehicleMaintenance},
}

// CanVehicleTransition reports whether from -> to is an allowed vehicle
// status change. An out-of-service vehicle must pass through maintenance.
func CanVehicleTransition(from, to VehicleStatus) bool {
	for _, s := range vehicleTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// TransitionTo moves the vehicle to status and records the change.
func (v *Vehicle) TransitionTo(status VehicleStatus, at time.Time) error {
	if !CanVehicleTransition(v.Status, status) {
		return fmt.Errorf("vehicle %s: %w: %s -> %s", v.ID, ErrInvalidStateTransition, v.Status, status)
	}

	v.Status = status
	v.Record(TrackingEvent{At: at, Status: string(status), Note: "status changed"})
	return nil
}

// Record appends a tracking event to the vehicle history.
func (v *Vehicle) Record(e TrackingEvent) {
	v.History = append(v.History, e)
}
