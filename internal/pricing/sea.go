package pricing

import "fmt"

type ContainerSize string

const (
	StandardContainer ContainerSize = "standard"
	LargeContainer    ContainerSize = "large"
)

const (
	seaWeightRate        = 0.1
	seaDistanceRate      = 0.2
	seaMinDistanceKm     = 100.0
	seaLargeContainer    = 200.0
	seaHazmatRatePerKg   = 0.5
	seaHazmatCertificate = 100.0

	originPortFee      = "origin_port"
	destinationPortFee = "destination_port"
)

// SeaStrategy prices container shipping between ports.
type SeaStrategy struct {
	tariff
	container ContainerSize
	hazmat    bool
}

func NewSea() *SeaStrategy {
	return &SeaStrategy{
		tariff: tariff{
			kind:         Sea,
			name:         "Sea Freight",
			weightRate:   seaWeightRate,
			distanceRate: seaDistanceRate,
			surcharges: map[string]float64{
				"documentation":    25,
				originPortFee:      50,
				destinationPortFee: 50,
			},
		},
		container: StandardContainer,
	}
}

func (s *SeaStrategy) SetContainerSize(size ContainerSize) error {
	switch size {
	case StandardContainer, LargeContainer:
		s.container = size
		return nil
	}
	return fmt.Errorf("sea pricing: unknown container size %q", size)
}

// SetHazmat toggles hazardous-material handling, which adds a per-kg charge
// and a certification fee.
func (s *SeaStrategy) SetHazmat(on bool) { s.hazmat = on }

// SetPortFees replaces the origin and destination port fees.
func (s *SeaStrategy) SetPortFees(origin, destination float64) error {
	if origin < 0 || destination < 0 {
		return fmt.Errorf("sea pricing: port fees must not be negative, got %v/%v", origin, destination)
	}
	s.surcharges[originPortFee] = origin
	s.surcharges[destinationPortFee] = destination
	return nil
}

func (s *SeaStrategy) IsEligible(weightKg, distanceKm float64) bool {
	return finite(weightKg, distanceKm) && weightKg > 0 && distanceKm >= seaMinDistanceKm
}

func (s *SeaStrategy) Calculate(weightKg, distanceKm float64) (float64, error) {
	if !s.IsEligible(weightKg, distanceKm) {
		return 0, s.notEligible(weightKg, distanceKm)
	}

	base := weightKg*s.weightRate + distanceKm*s.distanceRate

	surcharges := s.fixedSurcharges()
	if s.container == LargeContainer {
		surcharges += seaLargeContainer
	}
	if s.hazmat {
		surcharges += weightKg*seaHazmatRatePerKg + seaHazmatCertificate
	}

	var discount float64
	switch {
	case weightKg > 10_000:
		discount = base * 0.20
	case weightKg > 5_000:
		discount = base * 0.15
	case weightKg > 1_000:
		discount = base * 0.10
	}

	return clampPrice(base + surcharges - discount), nil
}
