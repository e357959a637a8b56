package domain

import "time"

// Movement is the result of moving one vehicle between two points.
// Path holds the waypoints actually followed, including both ends.
type Movement struct {
	VehicleID        string
	VehicleType      VehicleType
	Path             []Location
	DistanceKm       float64
	EstimatedMinutes float64
	FuelUsed         float64
	// False when the tank held less than FuelUsed before the move.
	FuelSufficient bool
}

// Duration converts EstimatedMinutes to a time.Duration.
func (m Movement) Duration() time.Duration {
	return time.Duration(m.EstimatedMinutes * float64(time.Minute))
}

// TrackingUpdate is broadcast after every simulation tick.
type TrackingUpdate struct {
	TrackingID     string         `json:"tracking_id"`
	VehicleID      string         `json:"vehicle_id"`
	VehicleType    VehicleType    `json:"vehicle_type"`
	ShipmentStatus ShipmentStatus `json:"shipment_status"`
	VehicleStatus  VehicleStatus  `json:"vehicle_status"`
	Position       Location       `json:"position"`
	FuelRemaining  float64        `json:"fuel_remaining"`
	Progress       float64        `json:"progress"`
	At             time.Time      `json:"at"`
}
