package pricing

const (
	airWeightRate       = 2.5
	airDistanceRate     = 1.5
	airMaxWeightKg      = 500.0
	airDefaultFuelPct   = 0.15
	airPriorityBonus    = 15.0
	airLongHaulKm       = 1000.0
	airLongHaulDiscount = 0.05
)

// AirStrategy prices drone and air-freight legs.
type AirStrategy struct {
	tariff
	fuelSurchargePct float64
	priority         bool
}

func NewAir() *AirStrategy {
	return &AirStrategy{
		tariff: tariff{
			kind:         Air,
			name:         "Air Freight",
			weightRate:   airWeightRate,
			distanceRate: airDistanceRate,
			surcharges:   map[string]float64{"handling": 5, "insurance": 2},
		},
		fuelSurchargePct: airDefaultFuelPct,
	}
}

// SetFuelSurchargePct changes the fuel surcharge, a fraction of the distance
// component. Negative values are treated as zero.
func (s *AirStrategy) SetFuelSurchargePct(pct float64) {
	s.fuelSurchargePct = max(0, pct)
}

// SetPriority toggles the priority handling bonus.
func (s *AirStrategy) SetPriority(on bool) { s.priority = on }

func (s *AirStrategy) IsEligible(weightKg, distanceKm float64) bool {
	return finite(weightKg, distanceKm) && weightKg > 0 && weightKg <= airMaxWeightKg && distanceKm >= 0
}

func (s *AirStrategy) Calculate(weightKg, distanceKm float64) (float64, error) {
	if !s.IsEligible(weightKg, distanceKm) {
		return 0, s.notEligible(weightKg, distanceKm)
	}

	distancePart := distanceKm * s.distanceRate
	base := weightKg*s.weightRate + distancePart

	surcharges := s.fixedSurcharges() + distancePart*s.fuelSurchargePct
	if s.priority {
		surcharges += airPriorityBonus
	}

	var discount float64
	if distanceKm > airLongHaulKm {
		discount = base * airLongHaulDiscount
	}

	return clampPrice(base + surcharges - discount), nil
}
