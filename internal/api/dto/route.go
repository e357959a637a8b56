package dto

import (
	"freight-planner-service/internal/pricing"
	"freight-planner-service/internal/routing"
)

type AnalyzeRouteRequest struct {
	Origin      LocationRef `json:"origin"`
	Destination LocationRef `json:"destination"`
	WeightKg    float64     `json:"weight_kg"`
}

type AnalyzeRouteResponse struct {
	routing.TransportAvailability
	HasRecommendation bool `json:"has_recommendation"`
}

type ComparePricingResponse struct {
	WeightKg   float64              `json:"weight_kg"`
	DistanceKm float64              `json:"distance_km"`
	Options    []pricing.Comparison `json:"options"`
}
