package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/text/language"

	"github.com/wari-market/wari/internal/chart"
	"github.com/wari-market/wari/internal/gesture"
)

const (
	chartTicks  = 5
	axisMargin  = 64
	labelMargin = 24
	pointRadius = 4
)

// ChartView draws the income line chart. The plot is only recomputed when
// Rerender is called, which the dashboard schedules after it becomes visible.
type ChartView struct {
	series chart.Series
	locale language.Tag

	area  gesture.Rect
	plot  chart.Plot
	ready bool
}

// NewChartView creates a chart for the series.
func NewChartView(series chart.Series, locale language.Tag) *ChartView {
	return &ChartView{series: series, locale: locale}
}

// SetArea places the chart on screen. A rendered chart is laid out again when its size changes.
func (cv *ChartView) SetArea(r gesture.Rect) {
	resized := r.W != cv.area.W || r.H != cv.area.H
	cv.area = r
	if resized && cv.ready {
		cv.Rerender()
	}
}

// Rerender lays the series out for the current area.
func (cv *ChartView) Rerender() {
	cv.plot = chart.Layout(cv.series, cv.area.W-axisMargin, cv.area.H-labelMargin, chartTicks)
	cv.ready = true
}

// Rendered reports whether the chart has been laid out at least once.
func (cv *ChartView) Rendered() bool {
	return cv.ready
}

// Draw renders the chart. The point nearest the cursor gets a tooltip.
func (cv *ChartView) Draw(screen *ebiten.Image, mouseX, mouseY float64) {
	Panel(screen, cv.area)
	Text(screen, cv.series.Name, cv.area.X+12, cv.area.Y-LineHeight-4, ColorDark)
	if !cv.ready {
		return
	}
	ox, oy := cv.area.X+axisMargin, cv.area.Y

	for _, t := range cv.plot.Ticks {
		y := float32(oy + t.Y)
		vector.StrokeLine(screen, float32(ox), y, float32(ox+cv.plot.Width), y, 1, ColorCream, false)
		Text(screen, t.Label, cv.area.X+8, oy+t.Y-LineHeight/2, ColorGrey)
	}

	for i, p := range cv.plot.Points {
		if i > 0 {
			prev := cv.plot.Points[i-1]
			vector.StrokeLine(screen, float32(ox+prev.X), float32(oy+prev.Y), float32(ox+p.X), float32(oy+p.Y), 3, ColorTerracotta, true)
		}
		Text(screen, p.Label, ox+p.X-TextWidth(p.Label)/2, oy+cv.plot.Height+4, ColorGrey)
	}
	for _, p := range cv.plot.Points {
		vector.DrawFilledCircle(screen, float32(ox+p.X), float32(oy+p.Y), pointRadius, ColorTerracotta, true)
	}

	if !cv.area.Contains(mouseX, mouseY) {
		return
	}
	i := cv.plot.Nearest(mouseX - ox)
	if i < 0 {
		return
	}
	p := cv.plot.Points[i]
	vector.DrawFilledCircle(screen, float32(ox+p.X), float32(oy+p.Y), pointRadius+2, ColorDark, true)
	label := p.Label + ": " + chart.TooltipLabel(p.Value, cv.locale)
	box := gesture.Rect{X: ox + p.X - (TextWidth(label)+16)/2, Y: oy + p.Y - 36, W: TextWidth(label) + 16, H: 24}
	FillRect(screen, box, ColorDark)
	TextCentered(screen, label, box, ColorWhite)
}
