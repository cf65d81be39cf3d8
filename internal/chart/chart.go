// Package chart lays out the dashboard income line chart. Drawing happens in
// the ui package; this package only computes geometry and labels.
package chart

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Series is a labelled sequence of values.
type Series struct {
	Name   string    `yaml:"name"`
	Labels []string  `yaml:"labels"`
	Values []float64 `yaml:"values"`
}

// SampleIncome is the monthly income shown until real data is wired in.
func SampleIncome() Series {
	return Series{
		Name:   "Ingresos (S/)",
		Labels: []string{"Ene", "Feb", "Mar", "Abr", "May", "Jun"},
		Values: []float64{2200, 3800, 2900, 4100, 5400, 6200},
	}
}

// Point is a plotted sample in plot-area pixels.
type Point struct {
	X, Y  float64
	Label string
	Value float64
}

// Tick is a horizontal grid line on the y axis.
type Tick struct {
	Y     float64
	Value float64
	Label string
}

// Plot is the laid-out chart.
type Plot struct {
	Width, Height float64
	Points        []Point
	Ticks         []Tick
}

// Layout places the series in a width×height area with the y axis starting at zero.
func Layout(s Series, width, height float64, tickCount int) Plot {
	plot := Plot{Width: width, Height: height}
	n := len(s.Values)
	if n == 0 || width <= 0 || height <= 0 {
		return plot
	}
	if tickCount < 2 {
		tickCount = 2
	}

	top := niceCeil(maxValue(s.Values))
	step := top / float64(tickCount-1)
	for i := 0; i < tickCount; i++ {
		v := step * float64(i)
		plot.Ticks = append(plot.Ticks, Tick{
			Y:     height - v/top*height,
			Value: v,
			Label: AxisLabel(v),
		})
	}

	for i, v := range s.Values {
		x := width / 2
		if n > 1 {
			x = width * float64(i) / float64(n-1)
		}
		label := ""
		if i < len(s.Labels) {
			label = s.Labels[i]
		}
		plot.Points = append(plot.Points, Point{
			X:     x,
			Y:     height - math.Max(v, 0)/top*height,
			Label: label,
			Value: v,
		})
	}
	return plot
}

// Nearest returns the index of the point closest to x, for index-mode tooltips.
func (p Plot) Nearest(x float64) int {
	best, bestD := -1, math.Inf(1)
	for i, pt := range p.Points {
		if d := math.Abs(pt.X - x); d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

// AxisLabel renders a tick value in thousands, e.g. "S/ 2k" or "S/ 1.5k".
func AxisLabel(v float64) string {
	return fmt.Sprintf("S/ %gk", v/1000)
}

// TooltipLabel renders a sample value with locale grouping, e.g. "S/ 6,200".
func TooltipLabel(v float64, locale language.Tag) string {
	return message.NewPrinter(locale).Sprintf("S/ %d", int64(math.Round(v)))
}

func maxValue(values []float64) float64 {
	m := 0.0
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}

// niceCeil rounds up to 1, 2, 2.5, 5 or 10 times a power of ten.
func niceCeil(v float64) float64 {
	if v <= 0 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if v <= m*mag {
			return m * mag
		}
	}
	return 10 * mag
}
