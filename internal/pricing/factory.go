package pricing

import (
	"fmt"
	"strings"
)

var constructors = map[Kind]func() Strategy{
	Air:    func() Strategy { return NewAir() },
	Ground: func() Strategy { return NewGround() },
	Sea:    func() Strategy { return NewSea() },
}

// Kinds returns every strategy kind in comparison order.
func Kinds() []Kind { return []Kind{Air, Ground, Sea} }

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := constructors[k]; !ok {
		return "", fmt.Errorf("parse pricing kind: unknown kind %q", s)
	}
	return k, nil
}

// New returns a fresh strategy with default configuration.
func New(kind Kind) (Strategy, error) {
	ctor, ok := constructors[kind]
	if !ok {
		return nil, fmt.Errorf("new pricing strategy: unknown kind %q", kind)
	}
	return ctor(), nil
}

// Recommend returns the cheapest eligible strategy and its price. Ties go to
// the kind listed first in Kinds.
func Recommend(weightKg, distanceKm float64) (Strategy, float64, error) {
	var (
		best      Strategy
		bestPrice float64
	)

	for _, k := range Kinds() {
		s, _ := New(k)
		if !s.IsEligible(weightKg, distanceKm) {
			continue
		}
		p, err := s.Calculate(weightKg, distanceKm)
		if err != nil {
			return nil, 0, fmt.Errorf("recommend pricing: %w", err)
		}
		if best == nil || p < bestPrice {
			best, bestPrice = s, p
		}
	}

	if best == nil {
		return nil, 0, fmt.Errorf(
			"recommend pricing: %w: no strategy accepts weight=%.1fkg distance=%.1fkm",
			ErrNotEligible, weightKg, distanceKm,
		)
	}
	return best, bestPrice, nil
}

// Comparison is one row of CompareAll. Price is -1 when the strategy is not
// eligible.
type Comparison struct {
	Kind     Kind    `json:"kind"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Eligible bool    `json:"eligible"`
}

// CompareAll prices the shipment with every strategy in Kinds order.
func CompareAll(weightKg, distanceKm float64) []Comparison {
	out := make([]Comparison, 0, len(constructors))
	for _, k := range Kinds() {
		s, _ := New(k)
		c := Comparison{Kind: k, Name: s.Name(), Price: -1}
		if p, err := s.Calculate(weightKg, distanceKm); err == nil {
			c.Price, c.Eligible = p, true
		}
		out = append(out, c)
	}
	return out
}
