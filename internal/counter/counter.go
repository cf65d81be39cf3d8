// Package counter animates an integer counting up from zero to a target.
package counter

import (
	"math"
	"strconv"
	"time"
)

// DefaultDuration is how long a count-up takes.
const DefaultDuration = 2 * time.Second

// EaseOutCubic decelerates towards the end: 1 - (1-f)^3.
func EaseOutCubic(f float64) float64 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 1
	}
	g := 1 - f
	return 1 - g*g*g
}

// Animator produces the displayed value of one counter over time.
type Animator struct {
	target   int
	suffix   string
	duration time.Duration
	start    time.Time
	started  bool
}

// New creates an animator that has not started yet.
func New(target int, suffix string, duration time.Duration) *Animator {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Animator{target: target, suffix: suffix, duration: duration}
}

// Start begins the animation. Later calls are ignored so the counter only runs once.
func (a *Animator) Start(now time.Time) {
	if a.started {
		return
	}
	a.started = true
	a.start = now
}

// Started reports whether Start has been called.
func (a *Animator) Started() bool {
	return a.started
}

// Progress returns the linear progress in [0, 1].
func (a *Animator) Progress(now time.Time) float64 {
	if !a.started {
		return 0
	}
	f := float64(now.Sub(a.start)) / float64(a.duration)
	return math.Min(math.Max(f, 0), 1)
}

// Value returns the eased, rounded count at the given time.
func (a *Animator) Value(now time.Time) int {
	return int(math.Round(EaseOutCubic(a.Progress(now)) * float64(a.target)))
}

// Text returns the value followed by the suffix, e.g. "350+".
func (a *Animator) Text(now time.Time) string {
	return strconv.Itoa(a.Value(now)) + a.suffix
}

// Done reports whether the counter has reached its target.
func (a *Animator) Done(now time.Time) bool {
	return a.Progress(now) >= 1
}
