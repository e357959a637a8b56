package repositories

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"freight-planner-service/internal/domain"
	"freight-planner-service/internal/geography"
	"freight-planner-service/internal/platform/db"
)

func TestSQLiteRoundTrip(t *testing.T) {
	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "freight.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ctx := context.Background()
	if err := InitSchema(conn); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}
	// Schema creation is idempotent.
	if err := InitSchema(conn); err != nil {
		t.Fatalf("InitSchema again: %v", err)
	}

	builtin := geography.Builtin()
	if err := SeedLocations(ctx, conn, builtin); err != nil {
		t.Fatalf("SeedLocations: %v", err)
	}
	if err := SeedLocations(ctx, conn, builtin); err != nil {
		t.Fatalf("SeedLocations upsert: %v", err)
	}

	locs := NewSQLLocationRepository(conn)
	all, err := locs.ListLocations(ctx)
	if err != nil {
		t.Fatalf("ListLocations: %v", err)
	}
	if len(all) != len(builtin) {
		t.Fatalf("expected %d locations, got %d", len(builtin), len(all))
	}

	denver, err := locs.FindLocation(ctx, "denver")
	if err != nil {
		t.Fatalf("FindLocation: %v", err)
	}
	if denver.IsCoastal || !denver.HasAirport || denver.Continent != domain.NorthAmerica {
		t.Fatalf("unexpected denver: %+v", denver)
	}
	if _, err := locs.FindLocation(ctx, "atlantis"); !errors.Is(err, domain.ErrUnknownLocation) {
		t.Fatalf("expected ErrUnknownLocation, got %v", err)
	}

	shipments := NewSQLShipmentRepository(conn)
	shp := sampleShipment(t)
	if err := shipments.SaveShipment(ctx, shp); err != nil {
		t.Fatalf("SaveShipment: %v", err)
	}

	shp.Status = domain.ShipmentCancelled
	shp.Cost = decimal.RequireFromString("99.10")
	if err := shipments.SaveShipment(ctx, shp); err != nil {
		t.Fatalf("SaveShipment update: %v", err)
	}

	got, err := shipments.FindShipment(ctx, shp.TrackingID)
	if err != nil {
		t.Fatalf("FindShipment: %v", err)
	}
	if got.Status != domain.ShipmentCancelled || !got.Cost.Equal(shp.Cost) {
		t.Fatalf("update not persisted: %+v", got)
	}
	if !got.CreatedAt.Equal(shp.CreatedAt) || got.Origin.Code != "new-york" {
		t.Fatalf("unexpected shipment: %+v", got)
	}
}
