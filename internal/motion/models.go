// Package motion holds the per-vehicle-type path, speed and fuel formulas and
// a simulator that applies them to vehicles.
package motion

import (
	"fmt"

	"freight-planner-service/internal/domain"
	"freight-planner-service/internal/routing"
)

// Model is the kinematics of one vehicle type.
type Model interface {
	Distance(from, to domain.Location) float64
	Path(from, to domain.Location) []domain.Location
	MaxSpeedKmh(v *domain.Vehicle) float64
	FuelConsumption(v *domain.Vehicle, distanceKm float64) float64
}

var models = map[domain.VehicleType]Model{
	domain.Drone: droneModel{},
	domain.Truck: truckModel{},
	domain.Ship:  shipModel{},
}

// ModelFor returns the motion model registered for vt.
func ModelFor(vt domain.VehicleType) (Model, error) {
	m, ok := models[vt]
	if !ok {
		return nil, fmt.Errorf("motion model: unknown vehicle type %q", vt)
	}
	return m, nil
}

const (
	droneSpeedKmh        = 60.0
	truckSpeedKmh        = 90.0
	truckTrailerSpeedKmh = 70.0
	shipSpeedKmh         = 35.0

	droneFuelPerKm = 0.5
	truckFuelPerKm = 0.3
	shipFuelPerKm  = 5.0

	trailerFuelFactor = 1.5
	// Ships follow sea lanes rather than the straight line.
	seaLanePenalty = 1.3
)

type droneModel struct{}

func (droneModel) Distance(from, to domain.Location) float64 { return routing.PlanarKm(from, to) }

func (droneModel) Path(from, to domain.Location) []domain.Location {
	return []domain.Location{from, to}
}

func (droneModel) MaxSpeedKmh(*domain.Vehicle) float64 { return droneSpeedKmh }

// Flying higher costs up to 20% more fuel at maximum altitude.
func (droneModel) FuelConsumption(v *domain.Vehicle, distanceKm float64) float64 {
	var ratio float64
	if v.Drone != nil {
		ratio = v.Drone.AltitudeRatio()
	}
	return distanceKm * droneFuelPerKm * (1 + ratio*0.2)
}

type truckModel struct{}

func (truckModel) Distance(from, to domain.Location) float64 { return routing.ManhattanKm(from, to) }

// Trucks drive an L: north/south first, then east/west.
func (truckModel) Path(from, to domain.Location) []domain.Location {
	corner := domain.Location{Lat: to.Lat, Lng: from.Lng}
	return []domain.Location{from, corner, to}
}

func (truckModel) MaxSpeedKmh(v *domain.Vehicle) float64 {
	if v.Truck != nil && v.Truck.TrailerAttached {
		return truckTrailerSpeedKmh
	}
	return truckSpeedKmh
}

func (truckModel) FuelConsumption(v *domain.Vehicle, distanceKm float64) float64 {
	fuel := distanceKm * truckFuelPerKm
	if v.Truck != nil && v.Truck.TrailerAttached {
		fuel *= trailerFuelFactor
	}
	return fuel
}

type shipModel struct{}

func (shipModel) Distance(from, to domain.Location) float64 {
	return routing.PlanarKm(from, to) * seaLanePenalty
}

func (shipModel) Path(from, to domain.Location) []domain.Location {
	return []domain.Location{from, to}
}

func (shipModel) MaxSpeedKmh(*domain.Vehicle) float64 { return shipSpeedKmh }

// A fully loaded ship burns 50% more than an empty one.
func (shipModel) FuelConsumption(v *domain.Vehicle, distanceKm float64) float64 {
	var load float64
	if v.Ship != nil {
		load = v.Ship.LoadRatio()
	}
	return distanceKm * shipFuelPerKm * (1 + load*0.5)
}

// Waypoints splits the straight segment from -> to into steps equal legs and
// returns the steps+1 points including both ends.
func Waypoints(from, to domain.Location, steps int) []domain.Location {
	if steps < 1 {
		steps = 1
	}
	out := make([]domain.Location, 0, steps+1)
	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		out = append(out, domain.Location{
			Lat: from.Lat + (to.Lat-from.Lat)*f,
			Lng: from.Lng + (to.Lng-from.Lng)*f,
		})
	}
	out[0], out[steps] = from, to
	return out
}
