// Package gesture turns polled per-frame input into viewport operations.
package gesture

import "math"

// Touch is one active touch point.
type Touch struct {
	ID   int
	X, Y float64
}

// InputState holds the polled state of inputs for a single frame.
// This separates input polling from input handling logic.
type InputState struct {
	Quit             bool
	ToggleFullscreen bool
	Escape           bool
	ZoomInKey        bool
	ZoomOutKey       bool
	ResetKey         bool

	// Mouse state
	WheelY         float64 // Positive when the wheel is rolled away from the user
	LeftClickStart bool    // Left mouse button just pressed
	LeftHeld       bool    // Left mouse button is being held down
	MouseX, MouseY float64

	// Touches active this frame, in a stable order.
	Touches []Touch
}

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Distance returns the distance between the first two touches, or 0 with fewer than two.
func Distance(touches []Touch) float64 {
	if len(touches) < 2 {
		return 0
	}
	return math.Hypot(touches[0].X-touches[1].X, touches[0].Y-touches[1].Y)
}
