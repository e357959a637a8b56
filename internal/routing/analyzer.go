// Package routing decides which transport modes can physically serve a route.
package routing

import (
	"fmt"

	"freight-planner-service/internal/domain"
	"freight-planner-service/internal/geography"
)

// Route limits used by the eligibility rules.
const (
	DefaultWeightKg = 10.0

	TruckMaxWeightKg   = 25_000.0
	TruckMaxDistanceKm = 15_000.0
	ShipMinDistanceKm  = 100.0
	DroneMaxWeightKg   = 50.0
	DroneDirectRangeKm = 500.0

	// A route this short with a parcel this light goes by drone when it can.
	droneShortHopKm    = 300.0
	droneShortHopMaxKg = 30.0
)

// ModeAvailability is the verdict for a single transport mode.
type ModeAvailability struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason"`
}

// TransportAvailability is the outcome of analyzing one route at one weight.
type TransportAvailability struct {
	Truck          ModeAvailability     `json:"truck"`
	Ship           ModeAvailability     `json:"ship"`
	Drone          ModeAvailability     `json:"drone"`
	AvailableModes []domain.VehicleType `json:"available_modes"`
	// Recommended is always set. With no available mode it holds Ship as a
	// marker; check HasRecommendation before using it.
	Recommended  domain.VehicleType `json:"recommended"`
	CrossesWater bool               `json:"crosses_water"`
	DistanceKm   float64            `json:"distance_km"`
}

// HasRecommendation reports whether Recommended names an available mode.
func (t TransportAvailability) HasRecommendation() bool {
	return len(t.AvailableModes) > 0
}

// Mode returns the verdict for vt.
func (t TransportAvailability) Mode(vt domain.VehicleType) ModeAvailability {
	switch vt {
	case domain.Truck:
		return t.Truck
	case domain.Ship:
		return t.Ship
	case domain.Drone:
		return t.Drone
	}
	return ModeAvailability{Reason: fmt.Sprintf("unknown vehicle type %q", vt)}
}

// CrossesWater reports whether a route needs a sea or air leg: the endpoints
// sit on different continents with no land bridge between them.
func CrossesWater(origin, destination domain.ExtendedLocation) bool {
	if origin.Continent == destination.Continent {
		return false
	}
	return !geography.Adjacent(origin.Continent, destination.Continent)
}

// AnalyzeRoute evaluates truck, ship and drone eligibility for carrying
// weightKg from origin to destination and picks a recommended mode.
// A non-positive weight is treated as DefaultWeightKg.
func AnalyzeRoute(origin, destination domain.ExtendedLocation, weightKg float64) TransportAvailability {
	if weightKg <= 0 {
		weightKg = DefaultWeightKg
	}

	res := TransportAvailability{
		DistanceKm:   HaversineKm(origin.Location, destination.Location),
		CrossesWater: CrossesWater(origin, destination),
	}

	res.Truck = truckAvailability(res.DistanceKm, weightKg, res.CrossesWater)
	res.Ship = shipAvailability(origin, destination, res.DistanceKm)
	res.Drone = droneAvailability(origin, destination, res.DistanceKm, weightKg)

	res.AvailableModes = make([]domain.VehicleType, 0, 3)
	for _, vt := range domain.VehicleTypes() {
		if res.Mode(vt).Available {
			res.AvailableModes = append(res.AvailableModes, vt)
		}
	}

	res.Recommended = recommend(res, weightKg)
	return res
}

func truckAvailability(distanceKm, weightKg float64, crossesWater bool) ModeAvailability {
	switch {
	case weightKg > TruckMaxWeightKg:
		return ModeAvailability{Reason: fmt.Sprintf("weight %.1f kg exceeds truck limit of %.0f kg", weightKg, TruckMaxWeightKg)}
	case crossesWater:
		return ModeAvailability{Reason: "route crosses water with no land bridge"}
	case distanceKm > TruckMaxDistanceKm:
		return ModeAvailability{Reason: fmt.Sprintf("distance %.0f km exceeds truck range of %.0f km", distanceKm, TruckMaxDistanceKm)}
	}
	return ModeAvailability{Available: true, Reason: "overland route available"}
}

func shipAvailability(origin, destination domain.ExtendedLocation, distanceKm float64) ModeAvailability {
	switch {
	case !origin.IsCoastal || !destination.IsCoastal:
		return ModeAvailability{Reason: "both endpoints need coastal access"}
	case distanceKm < ShipMinDistanceKm:
		return ModeAvailability{Reason: fmt.Sprintf("distance %.0f km too short for sea freight (min %.0f km)", distanceKm, ShipMinDistanceKm)}
	}
	return ModeAvailability{Available: true, Reason: "sea lane between coastal endpoints"}
}

func droneAvailability(origin, destination domain.ExtendedLocation, distanceKm, weightKg float64) ModeAvailability {
	switch {
	case weightKg > DroneMaxWeightKg:
		return ModeAvailability{Reason: fmt.Sprintf("weight %.1f kg exceeds drone limit of %.0f kg", weightKg, DroneMaxWeightKg)}
	case !origin.HasAirport || !destination.HasAirport:
		return ModeAvailability{Reason: "both endpoints need airport access"}
	case distanceKm > DroneDirectRangeKm:
		return ModeAvailability{Available: true, Reason: "long-range air-freight with drone last-mile"}
	}
	return ModeAvailability{Available: true, Reason: "direct drone delivery"}
}

// Rules are evaluated in order and the first match wins.
func recommend(res TransportAvailability, weightKg float64) domain.VehicleType {
	switch len(res.AvailableModes) {
	case 0:
		return domain.Ship
	case 1:
		return res.AvailableModes[0]
	}

	if res.DistanceKm < droneShortHopKm && weightKg <= droneShortHopMaxKg && res.Drone.Available {
		return domain.Drone
	}

	if res.CrossesWater {
		if weightKg > DroneMaxWeightKg && res.Ship.Available {
			return domain.Ship
		}
		if res.Drone.Available {
			return domain.Drone
		}
		return domain.Ship
	}

	if res.Truck.Available {
		return domain.Truck
	}
	return res.AvailableModes[0]
}
