package dto

import "freight-planner-service/internal/domain"

// LocationRef is a catalog code or a raw coordinate pair.
type LocationRef struct {
	Code string   `json:"code,omitempty"`
	Lat  *float64 `json:"lat,omitempty"`
	Lng  *float64 `json:"lng,omitempty"`
}

type LocationResponse struct {
	Code       string  `json:"code,omitempty"`
	City       string  `json:"city,omitempty"`
	Country    string  `json:"country,omitempty"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Continent  string  `json:"continent"`
	IsCoastal  bool    `json:"is_coastal"`
	HasAirport bool    `json:"has_airport"`
}

type ListLocationsResponse struct {
	Locations []LocationResponse `json:"locations"`
}

func NewLocationResponse(l domain.ExtendedLocation) LocationResponse {
	return LocationResponse{
		Code:       l.Code,
		City:       l.City,
		Country:    l.Country,
		Lat:        l.Lat,
		Lng:        l.Lng,
		Continent:  string(l.Continent),
		IsCoastal:  l.IsCoastal,
		HasAirport: l.HasAirport,
	}
}
