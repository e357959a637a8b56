// Package pricing implements the per-mode price calculators and the factory
// that builds, recommends and compares them.
package pricing

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"sort"
)

// ErrNotEligible is returned by Calculate when the strategy cannot price the
// given weight and distance.
var ErrNotEligible = errors.New("shipment not eligible for strategy")

type Kind string

const (
	Air    Kind = "air"
	Ground Kind = "ground"
	Sea    Kind = "sea"
)

// Strategy prices a shipment for one transport mode. Instances carry their own
// mutable configuration and are not safe for concurrent mutation.
type Strategy interface {
	Kind() Kind
	Name() string
	Calculate(weightKg, distanceKm float64) (float64, error)
	IsEligible(weightKg, distanceKm float64) bool
	Rates() Rates
	AddSurcharge(name string, amount float64)
	RemoveSurcharge(name string)
}

// Rates is a snapshot of a strategy's tariff.
type Rates struct {
	Name         string             `json:"name"`
	WeightRate   float64            `json:"weight_rate"`
	DistanceRate float64            `json:"distance_rate"`
	Surcharges   map[string]float64 `json:"surcharges"`
}

// SurchargeNames returns the surcharge keys in sorted order.
func (r Rates) SurchargeNames() []string {
	names := make([]string, 0, len(r.Surcharges))
	for n := range r.Surcharges {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// tariff holds the state every strategy shares.
type tariff struct {
	kind         Kind
	name         string
	weightRate   float64
	distanceRate float64
	surcharges   map[string]float64
}

func (t *tariff) Kind() Kind   { return t.kind }
func (t *tariff) Name() string { return t.name }

func (t *tariff) Rates() Rates {
	return Rates{
		Name:         t.name,
		WeightRate:   t.weightRate,
		DistanceRate: t.distanceRate,
		Surcharges:   maps.Clone(t.surcharges),
	}
}

// AddSurcharge sets a fixed named add-on, replacing any previous amount.
func (t *tariff) AddSurcharge(name string, amount float64) {
	t.surcharges[name] = amount
}

func (t *tariff) RemoveSurcharge(name string) {
	delete(t.surcharges, name)
}

func (t *tariff) fixedSurcharges() float64 {
	var sum float64
	for _, v := range t.surcharges {
		sum += v
	}
	return sum
}

func (t *tariff) notEligible(weightKg, distanceKm float64) error {
	return fmt.Errorf("%s pricing: %w: weight=%.1fkg distance=%.1fkm", t.kind, ErrNotEligible, weightKg, distanceKm)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// floor at zero so stacked discounts or negative custom surcharges never
// produce a negative price.
func clampPrice(p float64) float64 {
	return math.Max(0, p)
}
