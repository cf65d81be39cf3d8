// Package ui draws the landing page and dashboard widgets with Ebiten.
// Widget state lives in the domain packages; the types here only lay out,
// hit-test and render it.
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/wari-market/wari/internal/gesture"
	"github.com/wari-market/wari/internal/glyph"
)

// Palette used across the views.
var (
	ColorTerracotta = color.RGBA{R: 0xc2, G: 0x71, B: 0x4f, A: 0xff}
	ColorDark       = color.RGBA{R: 0x2c, G: 0x2c, B: 0x2c, A: 0xff}
	ColorGrey       = color.RGBA{R: 0x6b, G: 0x6b, B: 0x6b, A: 0xff}
	ColorGreenDark  = color.RGBA{R: 0x3d, G: 0x5a, B: 0x3d, A: 0xff}
	ColorCream      = color.RGBA{R: 0xf7, G: 0xf1, B: 0xe8, A: 0xff}
	ColorWhite      = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	ColorShadow     = color.RGBA{A: 0x40}
	ColorOverlay    = color.RGBA{A: 0x99}
)

const (
	// CharWidth and LineHeight are the metrics of the bitmap face.
	CharWidth  = 7
	LineHeight = 16
	ascent     = 11
)

var face = basicfont.Face7x13

// drawable reports whether the face has a glyph for r.
func drawable(r rune) bool {
	for _, rg := range face.Ranges {
		if r >= rg.Low && r < rg.High {
			return true
		}
	}
	return false
}

// Button is a labelled clickable rectangle.
type Button struct {
	Rect  gesture.Rect
	Label string
	// Primary buttons are filled, flat ones are bare text, the rest are outlined.
	Primary bool
	Flat    bool
}

// Hit reports whether the point is on the button.
func (b Button) Hit(x, y float64) bool {
	return b.Rect.Contains(x, y)
}

// Draw renders the button with its label centered.
func (b Button) Draw(dst *ebiten.Image) {
	r := b.Rect
	if b.Flat {
		TextCentered(dst, b.Label, r, ColorDark)
		return
	}
	if b.Primary {
		FillRect(dst, r, ColorTerracotta)
		TextCentered(dst, b.Label, r, ColorWhite)
		return
	}
	FillRect(dst, r, ColorWhite)
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, ColorTerracotta, false)
	TextCentered(dst, b.Label, r, ColorTerracotta)
}

// FillRect fills a rectangle with a solid color.
func FillRect(dst *ebiten.Image, r gesture.Rect, clr color.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}

// Panel draws a white card with a drop shadow.
func Panel(dst *ebiten.Image, r gesture.Rect) {
	FillRect(dst, gesture.Rect{X: r.X + 3, Y: r.Y + 3, W: r.W, H: r.H}, ColorShadow)
	FillRect(dst, r, ColorWhite)
}

// Text prints s with the top of its line box at (x, y). Accented letters
// are folded to their base form since the face only covers ASCII.
func Text(dst *ebiten.Image, s string, x, y float64, clr color.Color) {
	text.Draw(dst, glyph.Fold(s, drawable), face, int(x), int(y)+ascent+2, clr)
}

// TextCentered prints a single line centered in r.
func TextCentered(dst *ebiten.Image, s string, r gesture.Rect, clr color.Color) {
	Text(dst, s, r.X+(r.W-TextWidth(s))/2, r.Y+(r.H-LineHeight)/2, clr)
}

// TextWidth returns the rendered width of s.
func TextWidth(s string) float64 {
	return float64(len([]rune(s)) * CharWidth)
}

// Fade scales a color's alpha, premultiplying as ebiten expects.
func Fade(c color.RGBA, alpha float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}
