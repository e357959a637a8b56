// Package geography holds the static reference data the route analyzer works
// from: annotated locations, the continent land-bridge graph and a coarse
// continent inference for unknown coordinates.
package geography

import "freight-planner-service/internal/domain"

// Continents reachable from each other by land. The table is symmetric by
// construction; Oceania has no entry because it is never land-connected.
var landBridges = map[domain.Continent][]domain.Continent{
	domain.NorthAmerica: {domain.SouthAmerica},
	domain.SouthAmerica: {domain.NorthAmerica},
	domain.Europe:       {domain.Asia, domain.Africa},
	domain.Asia:         {domain.Europe, domain.Africa},
	domain.Africa:       {domain.Europe, domain.Asia},
}

// LandBridges returns the continents reachable by land from c.
func LandBridges(c domain.Continent) []domain.Continent {
	out := make([]domain.Continent, len(landBridges[c]))
	copy(out, landBridges[c])
	return out
}

// Adjacent reports whether b is listed as a land bridge of a.
func Adjacent(a, b domain.Continent) bool {
	for _, c := range landBridges[a] {
		if c == b {
			return true
		}
	}
	return false
}

type box struct {
	continent       domain.Continent
	minLat, maxLat  float64
	minLng, maxLng  float64
	maxLatExclusive bool
}

func (b box) contains(lat, lng float64) bool {
	if lat < b.minLat || lng < b.minLng || lng > b.maxLng {
		return false
	}
	if b.maxLatExclusive {
		return lat < b.maxLat
	}
	return lat <= b.maxLat
}

// Checked in order; the first hit wins and anything left over is Asia.
var boxes = []box{
	{continent: domain.NorthAmerica, minLat: 7, maxLat: 84, minLng: -170, maxLng: -50},
	{continent: domain.SouthAmerica, minLat: -56, maxLat: 13, minLng: -92, maxLng: -32, maxLatExclusive: true},
	{continent: domain.Europe, minLat: 35, maxLat: 72, minLng: -25, maxLng: 45},
	{continent: domain.Africa, minLat: -35, maxLat: 37, minLng: -20, maxLng: 52},
	{continent: domain.Oceania, minLat: -50, maxLat: 0, minLng: 110, maxLng: 180},
}

// InferContinent guesses a continent from rectangular bounding boxes.
//
// This is a rough heuristic, not a geographic authority. It is known to be
// wrong near basin boundaries (the Caribbean, the Mediterranean rim, the
// Arabian peninsula) and across the antimeridian. Keep the boxes as they are
// unless the product owners sign off on tighter ones.
func InferContinent(lat, lng float64) domain.Continent {
	for _, b := range boxes {
		if b.contains(lat, lng) {
			return b.continent
		}
	}
	return domain.Asia
}

// Annotate builds an ExtendedLocation for a point that is not in any catalog.
// Coastal and airport access are assumed.
func Annotate(loc domain.Location) domain.ExtendedLocation {
	return domain.ExtendedLocation{
		Location:   loc,
		Continent:  InferContinent(loc.Lat, loc.Lng),
		IsCoastal:  true,
		HasAirport: true,
	}
}
