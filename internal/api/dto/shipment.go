package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"freight-planner-service/internal/domain"
	"freight-planner-service/internal/routing"
)

type QuoteRequest struct {
	CustomerID     string      `json:"customer_id"`
	WeightKg       float64     `json:"weight_kg"`
	Origin         LocationRef `json:"origin"`
	Destination    LocationRef `json:"destination"`
	Urgency        string      `json:"urgency"`
	ShipmentType   string      `json:"shipment_type"`
	InsuranceValue float64     `json:"insurance_value"`
	Assign         bool        `json:"assign"`
}

type QuoteResponse struct {
	Shipment              ShipmentResponse              `json:"shipment"`
	Vehicle               VehicleResponse               `json:"vehicle"`
	Strategy              string                        `json:"strategy"`
	EstimatedCost         decimal.Decimal               `json:"estimated_cost"`
	EstimatedDeliveryDays int                           `json:"estimated_delivery_days"`
	DistanceKm            float64                       `json:"distance_km"`
	Availability          routing.TransportAvailability `json:"availability"`
}

type ShipmentResponse struct {
	ID             string                 `json:"id"`
	TrackingID     string                 `json:"tracking_id"`
	CustomerID     string                 `json:"customer_id,omitempty"`
	WeightKg       float64                `json:"weight_kg"`
	Origin         LocationResponse       `json:"origin"`
	Destination    LocationResponse       `json:"destination"`
	Status         string                 `json:"status"`
	ShipmentType   string                 `json:"shipment_type"`
	Cost           decimal.Decimal        `json:"cost"`
	VehicleID      string                 `json:"vehicle_id,omitempty"`
	Insured        bool                   `json:"insured"`
	InsuranceValue float64                `json:"insurance_value"`
	History        []domain.TrackingEvent `json:"history"`
	CreatedAt      time.Time              `json:"created_at"`
}

func NewShipmentResponse(s *domain.Shipment) ShipmentResponse {
	history := s.History
	if history == nil {
		history = []domain.TrackingEvent{}
	}
	return ShipmentResponse{
		ID:             s.ID,
		TrackingID:     s.TrackingID,
		CustomerID:     s.CustomerID,
		WeightKg:       s.WeightKg,
		Origin:         NewLocationResponse(s.Origin),
		Destination:    NewLocationResponse(s.Destination),
		Status:         string(s.Status),
		ShipmentType:   string(s.Type),
		Cost:           s.Cost,
		VehicleID:      s.VehicleID,
		Insured:        s.Insured,
		InsuranceValue: s.InsuranceValue,
		History:        history,
		CreatedAt:      s.CreatedAt,
	}
}

type VehicleResponse struct {
	ID              string          `json:"id"`
	License         string          `json:"license"`
	Type            string          `json:"type"`
	Status          string          `json:"status"`
	CapacityKg      float64         `json:"capacity_kg"`
	Fuel            float64         `json:"fuel"`
	MaxFuel         float64         `json:"max_fuel"`
	CurrentLocation domain.Location `json:"current_location"`
}

func NewVehicleResponse(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:              v.ID,
		License:         v.License,
		Type:            string(v.Type),
		Status:          string(v.Status),
		CapacityKg:      v.CapacityKg,
		Fuel:            v.Fuel,
		MaxFuel:         v.MaxFuel,
		CurrentLocation: v.CurrentLocation,
	}
}

type StatusRequest struct {
	Status string `json:"status"`
}

type AssignRequest struct {
	VehicleID string `json:"vehicle_id"`
}
