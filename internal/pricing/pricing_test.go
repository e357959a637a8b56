package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAirCalculate(t *testing.T) {
	s := NewAir()

	// base 10*2.5 + 100*1.5 = 175, fixed 7, fuel 150*0.15 = 22.5
	p, err := s.Calculate(10, 100)
	require.NoError(t, err)
	assert.InDelta(t, 204.5, p, 1e-9)

	s.SetPriority(true)
	p, err = s.Calculate(10, 100)
	require.NoError(t, err)
	assert.InDelta(t, 219.5, p, 1e-9)

	// long haul: base 25 + 3000 = 3025, discount 151.25, fuel 450
	s.SetPriority(false)
	p, err = s.Calculate(10, 2000)
	require.NoError(t, err)
	assert.InDelta(t, 3025+7+450-151.25, p, 1e-9)

	s.SetFuelSurchargePct(0)
	p, err = s.Calculate(10, 100)
	require.NoError(t, err)
	assert.InDelta(t, 182, p, 1e-9)
}

func TestAirEligibility(t *testing.T) {
	s := NewAir()
	assert.True(t, s.IsEligible(500, 0))
	assert.False(t, s.IsEligible(501, 10))
	assert.False(t, s.IsEligible(0, 10))

	_, err := s.Calculate(501, 10)
	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestGroundCalculate(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		dist   float64
		want   float64
	}{
		{"light", 50, 100, 25 + 80 + 2.5},
		{"just over 100kg", 199, 100, 99.5 + 80 + 2.5},
		{"two steps, 5% off", 300, 100, (150+80)*0.95 + 2.5 + 20},
		{"bulk, 10% off", 600, 100, (300+80)*0.90 + 2.5 + 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewGround().Calculate(tt.weight, tt.dist)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, p, 1e-9)
		})
	}
}

func TestGroundZonesAndWeekend(t *testing.T) {
	s := NewGround()
	require.NoError(t, s.SetZoneMultiplier("remote", 1.5))
	require.Error(t, s.SetZoneMultiplier("bad", 0))
	require.Error(t, s.UseZone("unknown"))
	require.NoError(t, s.UseZone("remote"))
	s.SetWeekend(true)

	// zone scales the distance component only: 25 + 80*1.5 + 2.5 + 8
	p, err := s.Calculate(50, 100)
	require.NoError(t, err)
	assert.InDelta(t, 155.5, p, 1e-9)

	require.NoError(t, s.UseZone(""))
	s.SetWeekend(false)
	p, err = s.Calculate(50, 100)
	require.NoError(t, err)
	assert.InDelta(t, 107.5, p, 1e-9)
}

func TestGroundEligibility(t *testing.T) {
	s := NewGround()
	assert.True(t, s.IsEligible(25_000, 15_000))
	assert.False(t, s.IsEligible(25_001, 10))
	assert.False(t, s.IsEligible(10, 15_001))
	assert.False(t, s.IsEligible(10, -1))
}

func TestGroundBulkDiscountRatio(t *testing.T) {
	// The ratio only holds once distance moves past a couple of km.
	for _, d := range []float64{10, 100, 1000, 5000} {
		heavy, err := NewGround().Calculate(600, d)
		require.NoError(t, err)
		light, err := NewGround().Calculate(100, d)
		require.NoError(t, err)
		assert.Less(t, heavy/light, 6.0, "distance %v", d)
	}
}

func TestSeaCalculate(t *testing.T) {
	s := NewSea()

	// base 50 + 1000, fees 125
	p, err := s.Calculate(500, 5000)
	require.NoError(t, err)
	assert.InDelta(t, 1175, p, 1e-9)

	// base 1000 + 1000 at 15% off
	p, err = s.Calculate(10_000, 5000)
	require.NoError(t, err)
	assert.InDelta(t, 2000*0.85+125, p, 1e-9)

	require.NoError(t, s.SetContainerSize(LargeContainer))
	s.SetHazmat(true)
	require.NoError(t, s.SetPortFees(10, 20))
	p, err = s.Calculate(500, 5000)
	require.NoError(t, err)
	assert.InDelta(t, 1050+25+30+200+250+100, p, 1e-9)

	assert.Error(t, s.SetContainerSize("huge"))
	assert.Error(t, s.SetPortFees(-1, 0))
}

func TestSeaVolumeRatio(t *testing.T) {
	heavy, err := NewSea().Calculate(10_000, 5000)
	require.NoError(t, err)
	light, err := NewSea().Calculate(500, 5000)
	require.NoError(t, err)
	assert.Less(t, heavy/light, 20.0)
}

func TestSeaEligibility(t *testing.T) {
	s := NewSea()
	assert.False(t, s.IsEligible(10, 99))
	assert.True(t, s.IsEligible(10, 100))
	_, err := s.Calculate(10, 50)
	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestSurchargesNeverGoNegative(t *testing.T) {
	s := NewGround()
	s.AddSurcharge("promo", -1_000)
	p, err := s.Calculate(10, 10)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p)

	s.RemoveSurcharge("promo")
	assert.NotContains(t, s.Rates().Surcharges, "promo")
	assert.Equal(t, []string{"handling"}, s.Rates().SurchargeNames())
}

func TestRatesSnapshotIsCopy(t *testing.T) {
	s := NewAir()
	r := s.Rates()
	r.Surcharges["handling"] = 999

	assert.Equal(t, 5.0, s.Rates().Surcharges["handling"])
	assert.Equal(t, "Air Freight", r.Name)
}

func TestFactory(t *testing.T) {
	for _, k := range Kinds() {
		a, err := New(k)
		require.NoError(t, err)
		b, _ := New(k)
		assert.Equal(t, k, a.Kind())
		assert.NotSame(t, a, b)
	}

	_, err := New("rail")
	assert.Error(t, err)

	k, err := ParseKind(" Ground ")
	require.NoError(t, err)
	assert.Equal(t, Ground, k)
}

func TestRecommend(t *testing.T) {
	// Sea undercuts ground for 1000 kg over 500 km; air rejects the weight.
	s, price, err := Recommend(1000, 500)
	require.NoError(t, err)
	assert.Equal(t, Sea, s.Kind(), "price %v", price)

	s, _, err = Recommend(10, 50)
	require.NoError(t, err)
	assert.Equal(t, Ground, s.Kind())

	_, _, err = Recommend(30_000, 50)
	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestCompareAll(t *testing.T) {
	rows := CompareAll(1000, 50)
	require.Len(t, rows, 3)

	assert.Equal(t, []Kind{Air, Ground, Sea}, []Kind{rows[0].Kind, rows[1].Kind, rows[2].Kind})
	assert.Equal(t, -1.0, rows[0].Price)
	assert.False(t, rows[0].Eligible)
	assert.True(t, rows[1].Eligible)
	assert.Equal(t, -1.0, rows[2].Price)
}
