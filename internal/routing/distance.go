package routing

import (
	"math"

	"freight-planner-service/internal/domain"
)

const (
	EarthRadiusKm = 6371.0
	// Rough length of one degree of latitude.
	KmPerDegree = 111.0
)

// HaversineKm returns the great-circle distance between a and b.
func HaversineKm(a, b domain.Location) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// PlanarKm treats degrees as a flat grid. Cheap, and increasingly wrong away
// from the equator.
func PlanarKm(a, b domain.Location) float64 {
	return math.Hypot(b.Lat-a.Lat, b.Lng-a.Lng) * KmPerDegree
}

// ManhattanKm sums the axis-aligned legs on the same flat grid.
func ManhattanKm(a, b domain.Location) float64 {
	return (math.Abs(b.Lat-a.Lat) + math.Abs(b.Lng-a.Lng)) * KmPerDegree
}
