package geography

import (
	"context"
	"errors"
	"testing"

	"freight-planner-service/internal/domain"
)

func TestLandBridgesSymmetric(t *testing.T) {
	for _, a := range domain.Continents() {
		for _, b := range LandBridges(a) {
			if !Adjacent(b, a) {
				t.Fatalf("%s -> %s has no reverse bridge", a, b)
			}
		}
	}
	if len(LandBridges(domain.Oceania)) != 0 {
		t.Fatalf("oceania must have no land bridges")
	}
}

func TestInferContinent(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng float64
		want     domain.Continent
	}{
		{"new york", 40.7, -74.0, domain.NorthAmerica},
		{"bogota", 4.7, -74.1, domain.SouthAmerica},
		{"warsaw", 52.2, 21.0, domain.Europe},
		{"kinshasa", -4.3, 15.3, domain.Africa},
		{"perth", -31.9, 115.9, domain.Oceania},
		{"beijing", 39.9, 116.4, domain.Asia},
		{"mid-pacific", 0, -150, domain.Asia},
	}

	for _, tt := range tests {
		if got := InferContinent(tt.lat, tt.lng); got != tt.want {
			t.Fatalf("%s: continent = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestAnnotateDefaults(t *testing.T) {
	l := Annotate(domain.Location{Lat: 48.1, Lng: 11.6})
	if l.Continent != domain.Europe || !l.IsCoastal || !l.HasAirport || l.Code != "" {
		t.Fatalf("unexpected annotation: %+v", l)
	}
}

func TestCatalog(t *testing.T) {
	c := Default()
	ctx := context.Background()

	ny, err := c.FindLocation(ctx, "New-York")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ny.Continent != domain.NorthAmerica || !ny.IsCoastal || !ny.HasAirport {
		t.Fatalf("unexpected new-york: %+v", ny)
	}

	if _, err := c.FindLocation(ctx, "atlantis"); !errors.Is(err, domain.ErrUnknownLocation) {
		t.Fatalf("expected unknown location, got %v", err)
	}

	all, _ := c.ListLocations(ctx)
	if len(all) != c.Len() {
		t.Fatalf("list = %d, len = %d", len(all), c.Len())
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Code >= all[i].Code {
			t.Fatalf("list not sorted at %d: %s >= %s", i, all[i-1].Code, all[i].Code)
		}
	}

	if got := c.Resolve(ny.Location); got.Code != "new-york" {
		t.Fatalf("resolve by coordinates = %q, want new-york", got.Code)
	}
	if got := c.Resolve(domain.Location{Lat: 10, Lng: 10}); got.Code != "" || got.Continent != domain.Africa {
		t.Fatalf("resolve fallback = %+v", got)
	}
}

func TestNewCatalogRejectsBadInput(t *testing.T) {
	good := domain.ExtendedLocation{Code: "a", Continent: domain.Asia}

	if _, err := NewCatalog([]domain.ExtendedLocation{good, good}); err == nil {
		t.Fatalf("expected duplicate code error")
	}
	if _, err := NewCatalog([]domain.ExtendedLocation{{Continent: domain.Asia}}); err == nil {
		t.Fatalf("expected empty code error")
	}
	if _, err := NewCatalog([]domain.ExtendedLocation{{Code: "x", Continent: "MARS"}}); err == nil {
		t.Fatalf("expected bad continent error")
	}
}
