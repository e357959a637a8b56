package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"freight-planner-service/internal/domain"
	"freight-planner-service/internal/ports"
)

var _ ports.ShipmentRepository = (*SQLShipmentRepository)(nil)

// SQL-backed implementation of the ShipmentRepository port. Endpoints and
// history are stored as JSON text, cost as a decimal string.
type SQLShipmentRepository struct{ DB *sql.DB }

func NewSQLShipmentRepository(db *sql.DB) *SQLShipmentRepository {
	return &SQLShipmentRepository{DB: db}
}

func (s *SQLShipmentRepository) SaveShipment(ctx context.Context, shp *domain.Shipment) error {
	if s.DB == nil {
		return errors.New("sql shipment repository: DB is nil")
	}

	origin, err := json.Marshal(shp.Origin)
	if err != nil {
		return fmt.Errorf("save shipment %s: encode origin: %w", shp.TrackingID, err)
	}
	destination, err := json.Marshal(shp.Destination)
	if err != nil {
		return fmt.Errorf("save shipment %s: encode destination: %w", shp.TrackingID, err)
	}
	history, err := json.Marshal(shp.History)
	if err != nil {
		return fmt.Errorf("save shipment %s: encode history: %w", shp.TrackingID, err)
	}

	query := `
	INSERT INTO shipments (
		tracking_id,
		shipment_id,
		customer_id,
		weight_kg,
		origin,
		destination,
		status,
		shipment_type,
		cost,
		vehicle_id,
		insurance_value,
		history,
		created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	ON CONFLICT (tracking_id) DO UPDATE SET
		status = excluded.status,
		cost = excluded.cost,
		vehicle_id = excluded.vehicle_id,
		history = excluded.history;
	`
	_, err = s.DB.ExecContext(ctx, query,
		shp.TrackingID,
		shp.ID,
		shp.CustomerID,
		shp.WeightKg,
		string(origin),
		string(destination),
		string(shp.Status),
		string(shp.Type),
		shp.Cost,
		shp.VehicleID,
		shp.InsuranceValue,
		string(history),
		shp.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save shipment %s: upsert: %w", shp.TrackingID, err)
	}
	return nil
}

func (s *SQLShipmentRepository) FindShipment(ctx context.Context, trackingID string) (*domain.Shipment, error) {
	if s.DB == nil {
		return nil, errors.New("sql shipment repository: DB is nil")
	}

	query := `
	SELECT
		tracking_id,
		shipment_id,
		customer_id,
		weight_kg,
		origin,
		destination,
		status,
		shipment_type,
		cost,
		vehicle_id,
		insurance_value,
		history,
		created_at
	FROM shipments
	WHERE tracking_id = $1;
	`

	var (
		shp                          domain.Shipment
		origin, destination, history string
		status, shipmentType         string
		cost                         decimal.Decimal
		createdAt                    string
	)
	err := s.DB.QueryRowContext(ctx, query, trackingID).Scan(
		&shp.TrackingID,
		&shp.ID,
		&shp.CustomerID,
		&shp.WeightKg,
		&origin,
		&destination,
		&status,
		&shipmentType,
		&cost,
		&shp.VehicleID,
		&shp.InsuranceValue,
		&history,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find shipment %q: %w", trackingID, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find shipment %q: scan row: %w", trackingID, err)
	}

	if err := json.Unmarshal([]byte(origin), &shp.Origin); err != nil {
		return nil, fmt.Errorf("find shipment %q: decode origin: %w", trackingID, err)
	}
	if err := json.Unmarshal([]byte(destination), &shp.Destination); err != nil {
		return nil, fmt.Errorf("find shipment %q: decode destination: %w", trackingID, err)
	}
	if err := json.Unmarshal([]byte(history), &shp.History); err != nil {
		return nil, fmt.Errorf("find shipment %q: decode history: %w", trackingID, err)
	}
	if shp.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("find shipment %q: parse created_at: %w", trackingID, err)
	}

	shp.Status = domain.ShipmentStatus(status)
	shp.Type = domain.ShipmentType(shipmentType)
	shp.Cost = cost
	shp.Insured = shp.InsuranceValue > 0

	return &shp, nil
}
