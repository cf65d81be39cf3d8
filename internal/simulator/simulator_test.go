package simulator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestRun(t *testing.T) {
	sim := New(DefaultTables(), language.English)

	tests := []struct {
		name     string
		hectares float64
		variety  string
		yield    float64
		income   float64
		market   string
	}{
		{"small pardo", 1, "pardo", 420, 11760, "1-3 marcas"},
		{"medium crema", 2, "crema", 760, 24320, "3-6 marcas"},
		{"large fifo", 5, "fifo", 1750, 42000, "8-12 marcas"},
		{"fractional area rounds yield", 1.3, "crema", 494, 15808, "1-3 marcas"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := sim.Run(tt.hectares, tt.variety)
			require.NoError(t, err)
			assert.Equal(t, tt.yield, r.YieldKg)
			assert.Equal(t, tt.income, r.Income)
			assert.Equal(t, tt.market, r.Market)
		})
	}
}

func TestRunRejectsInput(t *testing.T) {
	sim := New(DefaultTables(), language.English)

	for _, h := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := sim.Run(h, "pardo")
		assert.ErrorIs(t, err, ErrInvalidHectares, "hectares %v", h)
	}

	_, err := sim.Run(3, "blanco")
	assert.ErrorIs(t, err, ErrUnknownVariety)
}

func TestFormat(t *testing.T) {
	sim := New(DefaultTables(), language.English)
	r, err := sim.Run(1.2, "crema")
	require.NoError(t, err)
	assert.Equal(t, "456 kg", sim.FormatYield(r))
	assert.Equal(t, "S/ 14,592", sim.FormatIncome(r))
}

func TestMarketReachBoundaries(t *testing.T) {
	assert.Equal(t, "1-3 marcas", MarketReach(1.99))
	assert.Equal(t, "3-6 marcas", MarketReach(2))
	assert.Equal(t, "3-6 marcas", MarketReach(4.99))
	assert.Equal(t, "8-12 marcas", MarketReach(5))
}

func TestVarieties(t *testing.T) {
	assert.Equal(t, []string{"pardo", "crema", "fifo"}, DefaultTables().Varieties())

	tables := Tables{
		YieldPerHa: map[string]float64{"crema": 1, "verde": 2, "solo_yield": 3},
		PricePerKg: map[string]float64{"crema": 1, "verde": 2},
	}
	assert.Equal(t, []string{"crema", "verde"}, tables.Varieties())
}

func TestForm(t *testing.T) {
	t0 := time.Unix(0, 0)
	f := NewForm(New(DefaultTables(), language.English))
	assert.Equal(t, 1.0, f.Hectares)
	assert.Equal(t, "pardo", f.Variety)
	_, ok := f.Result()
	assert.False(t, ok)

	f.Increase()
	f.CycleVariety()
	require.NoError(t, f.Submit(t0))
	r, ok := f.Result()
	require.True(t, ok)
	assert.Equal(t, 570.0, r.YieldKg)
	assert.Equal(t, "crema", r.Variety)
	assert.InDelta(t, 0.5, f.Opacity(t0.Add(200*time.Millisecond)), 1e-9)

	// Invalid input keeps the last result.
	f.Decrease()
	f.Decrease()
	f.Decrease()
	f.Decrease()
	assert.Zero(t, f.Hectares)
	assert.ErrorIs(t, f.Submit(t0.Add(time.Second)), ErrInvalidHectares)
	r, ok = f.Result()
	require.True(t, ok)
	assert.Equal(t, 570.0, r.YieldKg)

	f.CycleVariety()
	f.CycleVariety()
	assert.Equal(t, "pardo", f.Variety)
}
