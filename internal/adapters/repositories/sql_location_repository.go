package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"freight-planner-service/internal/domain"
	"freight-planner-service/internal/ports"
)

var _ ports.LocationRepository = (*SQLLocationRepository)(nil)

// SQL-backed implementation of the LocationRepository port.
type SQLLocationRepository struct{ DB *sql.DB }

func NewSQLLocationRepository(db *sql.DB) *SQLLocationRepository {
	return &SQLLocationRepository{DB: db}
}

const selectLocationColumns = `
	SELECT
		code,
		city,
		country,
		lat,
		lng,
		continent,
		is_coastal,
		has_airport
	FROM locations
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLocation(row rowScanner) (domain.ExtendedLocation, error) {
	var (
		l         domain.ExtendedLocation
		continent string
	)
	err := row.Scan(&l.Code, &l.City, &l.Country, &l.Lat, &l.Lng, &continent, &l.IsCoastal, &l.HasAirport)
	if err != nil {
		return l, err
	}
	l.Continent = domain.Continent(continent)
	if !l.Continent.Valid() {
		return l, fmt.Errorf("location %q: unknown continent %q", l.Code, continent)
	}
	return l, nil
}

func (s *SQLLocationRepository) FindLocation(ctx context.Context, code string) (domain.ExtendedLocation, error) {
	if s.DB == nil {
		return domain.ExtendedLocation{}, errors.New("sql location repository: DB is nil")
	}

	code = strings.ToLower(strings.TrimSpace(code))
	row := s.DB.QueryRowContext(ctx, selectLocationColumns+`WHERE code = $1;`, code)

	l, err := scanLocation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return l, fmt.Errorf("find location %q: %w", code, domain.ErrUnknownLocation)
	}
	if err != nil {
		return l, fmt.Errorf("find location %q: scan row: %w", code, err)
	}
	return l, nil
}

// Return all locations stored in the database.
func (s *SQLLocationRepository) ListLocations(ctx context.Context) ([]domain.ExtendedLocation, error) {
	if s.DB == nil {
		return nil, errors.New("sql location repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, selectLocationColumns+`ORDER BY code;`)
	if err != nil {
		return nil, fmt.Errorf("list locations: query locations table: %w", err)
	}
	defer rows.Close()

	locs := make([]domain.ExtendedLocation, 0, 32)
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("list locations: scan row: %w", err)
		}
		locs = append(locs, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list locations: row iteration: %w", err)
	}

	return locs, nil
}
