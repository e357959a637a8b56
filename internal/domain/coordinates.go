package domain

import "fmt"

// Continent is one of the six land masses the geography model knows about.
type Continent string

const (
	NorthAmerica Continent = "NORTH_AMERICA"
	SouthAmerica Continent = "SOUTH_AMERICA"
	Europe       Continent = "EUROPE"
	Africa       Continent = "AFRICA"
	Asia         Continent = "ASIA"
	Oceania      Continent = "OCEANIA"
)

// Continents lists every continent in a stable order.
func Continents() []Continent {
	return []Continent{NorthAmerica, SouthAmerica, Europe, Africa, Asia, Oceania}
}

func (c Continent) Valid() bool {
	switch c {
	case NorthAmerica, SouthAmerica, Europe, Africa, Asia, Oceania:
		return true
	}
	return false
}

// Immutable geographic point (latitude, longitude in degrees) with optional
// postal details.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
	City    string  `json:"city,omitempty"`
	Country string  `json:"country,omitempty"`
}

// Return coordinates as [lng, lat] for GeoJSON compatibility.
func (l Location) CoordsToList() []float64 { return []float64{l.Lng, l.Lat} }

// SameCoordinates reports whether both points share latitude and longitude.
func (l Location) SameCoordinates(o Location) bool {
	return l.Lat == o.Lat && l.Lng == o.Lng
}

func (l Location) String() string {
	if l.City != "" {
		return fmt.Sprintf("%s (%.4f,%.4f)", l.City, l.Lat, l.Lng)
	}
	return fmt.Sprintf("(%.4f,%.4f)", l.Lat, l.Lng)
}

// ExtendedLocation is a Location annotated with the geography flags the route
// analyzer needs. Code is the catalog key and stays empty for locations whose
// flags were inferred.
type ExtendedLocation struct {
	Location
	Code       string    `json:"code,omitempty"`
	Continent  Continent `json:"continent"`
	IsCoastal  bool      `json:"is_coastal"`
	HasAirport bool      `json:"has_airport"`
}

// Label returns the catalog code when known, otherwise the coordinates.
func (l ExtendedLocation) Label() string {
	if l.Code != "" {
		return l.Code
	}
	return l.Location.String()
}
