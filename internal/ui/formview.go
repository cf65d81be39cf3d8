package ui

import (
	"strconv"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/wari-market/wari/internal/gesture"
	"github.com/wari-market/wari/internal/logging"
	"github.com/wari-market/wari/internal/simulator"
)

// FormView draws a simulator form and routes clicks on its controls.
type FormView struct {
	logger *zap.Logger
	form   *simulator.Form
	area   gesture.Rect
	err    error
}

// NewFormView wraps a form.
func NewFormView(logger *zap.Logger, form *simulator.Form) *FormView {
	return &FormView{logger: logging.OrNop(logger), form: form}
}

// SetArea places the form on screen.
func (fv *FormView) SetArea(r gesture.Rect) {
	fv.area = r
}

type formControls struct {
	decrease, increase, variety, submit Button
}

func (fv *FormView) controls() formControls {
	x, y := fv.area.X+20, fv.area.Y+40
	return formControls{
		decrease: Button{Rect: gesture.Rect{X: x, Y: y, W: 36, H: 36}, Label: "-"},
		increase: Button{Rect: gesture.Rect{X: x + 136, Y: y, W: 36, H: 36}, Label: "+"},
		variety:  Button{Rect: gesture.Rect{X: x, Y: y + 76, W: 172, H: 36}, Label: "Variedad: " + fv.form.Variety},
		submit:   Button{Rect: gesture.Rect{X: x, Y: y + 132, W: 172, H: 40}, Label: "Calcular", Primary: true},
	}
}

// Click handles a click and reports whether it hit one of the controls.
func (fv *FormView) Click(x, y float64, now time.Time) bool {
	c := fv.controls()
	switch {
	case c.decrease.Hit(x, y):
		fv.form.Decrease()
	case c.increase.Hit(x, y):
		fv.form.Increase()
	case c.variety.Hit(x, y):
		fv.form.CycleVariety()
	case c.submit.Hit(x, y):
		fv.err = fv.form.Submit(now)
		if fv.err != nil {
			fv.logger.Debug("simulation rejected", zap.Error(fv.err))
		}
	default:
		return false
	}
	return true
}

// Draw renders the inputs on the left and the last result on the right.
func (fv *FormView) Draw(screen *ebiten.Image, now time.Time) {
	Panel(screen, fv.area)
	c := fv.controls()
	Text(screen, "Hectareas", c.decrease.Rect.X, c.decrease.Rect.Y-LineHeight-4, ColorGrey)
	c.decrease.Draw(screen)
	c.increase.Draw(screen)
	ha := strconv.FormatFloat(fv.form.Hectares, 'f', -1, 64) + " ha"
	TextCentered(screen, ha, gesture.Rect{X: c.decrease.Rect.X + 36, Y: c.decrease.Rect.Y, W: 100, H: 36}, ColorDark)
	c.variety.Draw(screen)
	c.submit.Draw(screen)
	if fv.err != nil {
		Text(screen, "Ingresa un area mayor a cero.", c.submit.Rect.X, c.submit.Rect.Y+48, ColorTerracotta)
	}

	r, ok := fv.form.Result()
	if !ok {
		return
	}
	alpha := fv.form.Opacity(now)
	if alpha <= 0 {
		return
	}
	sim := fv.form.Simulator()
	box := gesture.Rect{X: fv.area.X + 230, Y: fv.area.Y + 20, W: fv.area.W - 250, H: fv.area.H - 40}
	FillRect(screen, box, Fade(ColorCream, alpha))
	rows := [][2]string{
		{"Produccion estimada", sim.FormatYield(r)},
		{"Ingreso estimado", sim.FormatIncome(r)},
		{"Alcance de mercado", r.Market},
	}
	for i, row := range rows {
		y := box.Y + 16 + float64(i)*2*LineHeight
		Text(screen, row[0], box.X+16, y, Fade(ColorGrey, alpha))
		Text(screen, row[1], box.X+16, y+LineHeight, Fade(ColorTerracotta, alpha))
	}
}
