package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLayoutSampleIncome(t *testing.T) {
	plot := Layout(SampleIncome(), 500, 200, 5)

	require.Len(t, plot.Points, 6)
	require.Len(t, plot.Ticks, 5)

	// 6200 rounds up to 10000, so ticks are every 2500.
	assert.Equal(t, 0.0, plot.Ticks[0].Value)
	assert.Equal(t, 200.0, plot.Ticks[0].Y)
	assert.Equal(t, 10000.0, plot.Ticks[4].Value)
	assert.Equal(t, 0.0, plot.Ticks[4].Y)
	assert.Equal(t, "S/ 2.5k", plot.Ticks[1].Label)

	assert.Equal(t, 0.0, plot.Points[0].X)
	assert.Equal(t, 500.0, plot.Points[5].X)
	assert.Equal(t, "Jun", plot.Points[5].Label)
	assert.InDelta(t, 200-0.62*200, plot.Points[5].Y, 1e-9)
}

func TestLayoutDegenerate(t *testing.T) {
	assert.Empty(t, Layout(Series{}, 100, 100, 5).Points)
	assert.Empty(t, Layout(SampleIncome(), 0, 100, 5).Points)

	one := Layout(Series{Values: []float64{0}}, 100, 50, 1)
	require.Len(t, one.Points, 1)
	assert.Equal(t, 50.0, one.Points[0].X)
	assert.Len(t, one.Ticks, 2)
}

func TestNearest(t *testing.T) {
	plot := Layout(SampleIncome(), 500, 200, 5)
	assert.Equal(t, 0, plot.Nearest(-30))
	assert.Equal(t, 2, plot.Nearest(210))
	assert.Equal(t, 5, plot.Nearest(1000))
	assert.Equal(t, -1, Plot{}.Nearest(10))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "S/ 2k", AxisLabel(2000))
	assert.Equal(t, "S/ 0k", AxisLabel(0))
	assert.Equal(t, "S/ 6,200", TooltipLabel(6200, language.English))
}

func TestNiceCeil(t *testing.T) {
	assert.Equal(t, 1.0, niceCeil(0))
	assert.Equal(t, 10000.0, niceCeil(6200))
	assert.Equal(t, 5000.0, niceCeil(4100))
	assert.Equal(t, 2500.0, niceCeil(2200))
	assert.Equal(t, 100.0, niceCeil(100))
}
