package pricing

import (
	"fmt"
	"math"
)

const (
	groundWeightRate     = 0.5
	groundDistanceRate   = 0.8
	groundMaxWeightKg    = 25_000.0
	groundMaxDistanceKm  = 15_000.0
	groundWeekendCharge  = 8.0
	groundHeavyStepKg    = 100.0
	groundHeavyStepPrice = 10.0
)

// GroundStrategy prices truck legs. Zone multipliers scale the distance
// component only.
type GroundStrategy struct {
	tariff
	weekend bool
	zones   map[string]float64
	zone    string
}

func NewGround() *GroundStrategy {
	return &GroundStrategy{
		tariff: tariff{
			kind:         Ground,
			name:         "Ground Shipping",
			weightRate:   groundWeightRate,
			distanceRate: groundDistanceRate,
			surcharges:   map[string]float64{"handling": 2.5},
		},
		zones: map[string]float64{},
	}
}

func (s *GroundStrategy) SetWeekend(on bool) { s.weekend = on }

// SetZoneMultiplier registers or updates a named delivery zone.
func (s *GroundStrategy) SetZoneMultiplier(zone string, m float64) error {
	if m <= 0 || !finite(m) {
		return fmt.Errorf("ground pricing: zone %q multiplier must be positive, got %v", zone, m)
	}
	s.zones[zone] = m
	return nil
}

// UseZone selects the zone applied to subsequent calculations. An empty name
// clears the selection.
func (s *GroundStrategy) UseZone(zone string) error {
	if zone != "" {
		if _, ok := s.zones[zone]; !ok {
			return fmt.Errorf("ground pricing: unknown zone %q", zone)
		}
	}
	s.zone = zone
	return nil
}

func (s *GroundStrategy) zoneMultiplier() float64 {
	if m, ok := s.zones[s.zone]; ok {
		return m
	}
	return 1
}

func (s *GroundStrategy) IsEligible(weightKg, distanceKm float64) bool {
	return finite(weightKg, distanceKm) &&
		weightKg > 0 && weightKg <= groundMaxWeightKg &&
		distanceKm >= 0 && distanceKm <= groundMaxDistanceKm
}

func (s *GroundStrategy) Calculate(weightKg, distanceKm float64) (float64, error) {
	if !s.IsEligible(weightKg, distanceKm) {
		return 0, s.notEligible(weightKg, distanceKm)
	}

	base := weightKg*s.weightRate + distanceKm*s.distanceRate*s.zoneMultiplier()

	surcharges := s.fixedSurcharges()
	if weightKg > groundHeavyStepKg {
		surcharges += math.Floor((weightKg-groundHeavyStepKg)/groundHeavyStepKg) * groundHeavyStepPrice
	}
	if s.weekend {
		surcharges += groundWeekendCharge
	}

	var discount float64
	switch {
	case weightKg > 500:
		discount = base * 0.10
	case weightKg > 200:
		discount = base * 0.05
	}

	return clampPrice(base + surcharges - discount), nil
}
