package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"freight-planner-service/internal/domain"
)

// Initialize the database schema. The statements run on both SQLite and
// Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createLocationsQuery := `
	CREATE TABLE IF NOT EXISTS locations (
		code TEXT PRIMARY KEY,
		city TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		continent TEXT NOT NULL,
		is_coastal BOOLEAN NOT NULL,
		has_airport BOOLEAN NOT NULL
	);
	`

	createShipmentsQuery := `
	CREATE TABLE IF NOT EXISTS shipments (
		tracking_id TEXT PRIMARY KEY,
		shipment_id TEXT NOT NULL,
		customer_id TEXT NOT NULL DEFAULT '',
		weight_kg REAL NOT NULL,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		status TEXT NOT NULL,
		shipment_type TEXT NOT NULL,
		cost TEXT NOT NULL,
		vehicle_id TEXT NOT NULL DEFAULT '',
		insurance_value REAL NOT NULL DEFAULT 0,
		history TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_shipments_status
	ON shipments(status);
	`

	statements := []string{
		createLocationsQuery,
		createShipmentsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type LocationSeed struct {
	Code       string  `json:"code"`
	City       string  `json:"city"`
	Country    string  `json:"country"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Continent  string  `json:"continent"`
	IsCoastal  bool    `json:"is_coastal"`
	HasAirport bool    `json:"has_airport"`
}

// LoadLocationSeed reads and validates a JSON array of locations.
func LoadLocationSeed(jsonPath string) ([]domain.ExtendedLocation, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load location seed: read %q: %w", jsonPath, err)
	}

	var data []LocationSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("load location seed: parse json: %w", err)
	}

	locs := make([]domain.ExtendedLocation, 0, len(data))
	for i, item := range data {
		code := strings.ToLower(strings.TrimSpace(item.Code))
		if code == "" {
			return nil, fmt.Errorf("load location seed: item at index %d: code cannot be empty", i+1)
		}
		c := domain.Continent(item.Continent)
		if !c.Valid() {
			return nil, fmt.Errorf("load location seed: %q: unknown continent %q", code, item.Continent)
		}
		if item.Lat < -90 || item.Lat > 90 || item.Lng < -180 || item.Lng > 180 {
			return nil, fmt.Errorf("load location seed: %q: coordinates out of range", code)
		}

		locs = append(locs, domain.ExtendedLocation{
			Location:   domain.Location{Lat: item.Lat, Lng: item.Lng, City: item.City, Country: item.Country},
			Code:       code,
			Continent:  c,
			IsCoastal:  item.IsCoastal,
			HasAirport: item.HasAirport,
		})
	}

	return locs, nil
}

// SeedLocations upserts locs into the locations table.
func SeedLocations(ctx context.Context, db *sql.DB, locs []domain.ExtendedLocation) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed locations: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO locations (
		code,
		city,
		country,
		lat,
		lng,
		continent,
		is_coastal,
		has_airport
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (code) DO UPDATE SET
		city = excluded.city,
		country = excluded.country,
		lat = excluded.lat,
		lng = excluded.lng,
		continent = excluded.continent,
		is_coastal = excluded.is_coastal,
		has_airport = excluded.has_airport;
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed locations: prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, l := range locs {
		if _, err := stmt.ExecContext(ctx,
			l.Code, l.City, l.Country, l.Lat, l.Lng, string(l.Continent), l.IsCoastal, l.HasAirport,
		); err != nil {
			return fmt.Errorf("seed locations: upsert code=%s: %w", l.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed locations: commit tx: %w", err)
	}

	return nil
}
