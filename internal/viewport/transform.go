package viewport

import (
	"fmt"
	"strconv"
	"time"
)

// Transform is a translate-then-scale applied about the centre of the content area.
type Transform struct {
	X, Y  float64
	Scale float64
}

// Identity is the rest transform.
var Identity = Transform{Scale: 1}

// String formats the transform the way a style attribute would carry it.
func (t Transform) String() string {
	return fmt.Sprintf("translate(%spx, %spx) scale(%s)", num(t.X), num(t.Y), num(t.Scale))
}

// Zoomed reports whether the transform magnifies the content.
func (t Transform) Zoomed() bool {
	return t.Scale > 1
}

// Apply maps a point in content coordinates to screen coordinates, given the
// content size. The origin of both spaces is the top-left corner of the content area.
func (t Transform) Apply(p Point, width, height float64) Point {
	cx, cy := width/2, height/2
	return Point{
		X: cx + t.X + t.Scale*(p.X-cx),
		Y: cy + t.Y + t.Scale*(p.Y-cy),
	}
}

// Invert maps a screen point back into content coordinates.
func (t Transform) Invert(p Point, width, height float64) Point {
	if t.Scale == 0 {
		return p
	}
	cx, cy := width/2, height/2
	return Point{
		X: cx + (p.X-cx-t.X)/t.Scale,
		Y: cy + (p.Y-cy-t.Y)/t.Scale,
	}
}

// Lerp interpolates between two transforms; f is clamped to [0, 1].
func Lerp(a, b Transform, f float64) Transform {
	f = clamp(f, 0, 1)
	return Transform{
		X:     a.X + (b.X-a.X)*f,
		Y:     a.Y + (b.Y-a.Y)*f,
		Scale: a.Scale + (b.Scale-a.Scale)*f,
	}
}

// EaseInOut approximates the default CSS "ease" timing curve.
func EaseInOut(f float64) float64 {
	f = clamp(f, 0, 1)
	if f < 0.5 {
		return 4 * f * f * f
	}
	g := -2*f + 2
	return 1 - g*g*g/2
}

// Tween animates the displayed transform towards a target.
type Tween struct {
	from, to Transform
	start    time.Time
	duration time.Duration
}

// NewTween starts resting at t.
func NewTween(t Transform) *Tween {
	return &Tween{from: t, to: t}
}

// Retarget starts a new animation from wherever the tween is at now.
// A zero duration or Instant mode jumps straight to the target.
func (tw *Tween) Retarget(target Transform, mode TransitionMode, d time.Duration, now time.Time) {
	if mode == Instant || d <= 0 {
		tw.from, tw.to = target, target
		tw.duration = 0
		return
	}
	tw.from = tw.At(now)
	tw.to = target
	tw.start = now
	tw.duration = d
}

// At returns the displayed transform at the given time.
func (tw *Tween) At(now time.Time) Transform {
	if tw.duration <= 0 {
		return tw.to
	}
	f := float64(now.Sub(tw.start)) / float64(tw.duration)
	if f >= 1 {
		return tw.to
	}
	return Lerp(tw.from, tw.to, EaseInOut(f))
}

// Target returns the transform the tween is heading to.
func (tw *Tween) Target() Transform {
	return tw.to
}

// Animating reports whether the tween has not yet reached its target.
func (tw *Tween) Animating(now time.Time) bool {
	return tw.duration > 0 && now.Sub(tw.start) < tw.duration
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
