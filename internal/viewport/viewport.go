// Package viewport owns the zoom and pan state of the interactive map widget.
package viewport

import (
	"math"
	"time"
)

// TransitionMode tells the renderer whether to animate towards a new transform.
type TransitionMode int

const (
	// Smooth animates over the configured duration. Used for discrete actions.
	Smooth TransitionMode = iota
	// Instant applies the transform immediately. Used for continuous gestures.
	Instant
)

func (m TransitionMode) String() string {
	switch m {
	case Smooth:
		return "smooth"
	case Instant:
		return "instant"
	default:
		return "unknown"
	}
}

// Source identifies which input device owns an active drag.
type Source int

const (
	SourceNone Source = iota
	SourceMouse
	SourceTouch
)

// Config holds the tunable constants of the controller.
type Config struct {
	MinScale         float64
	MaxScale         float64
	Step             float64
	PinchSensitivity float64
	// TransitionDuration is how long Smooth renders take.
	TransitionDuration time.Duration
}

// DefaultConfig returns the values the map widget ships with.
func DefaultConfig() Config {
	return Config{
		MinScale:           1,
		MaxScale:           4,
		Step:               0.5,
		PinchSensitivity:   0.01,
		TransitionDuration: 300 * time.Millisecond,
	}
}

// Bounds reports the current rendered size of the content area.
// It is queried on every clamp because the area may be resized at any time.
type Bounds interface {
	Size() (width, height float64)
}

// Renderer receives the output of the controller.
type Renderer interface {
	Render(t Transform, mode TransitionMode)
	SetDragging(dragging bool)
}

// Point is a 2D position in device pixels.
type Point struct {
	X, Y float64
}

// State is a snapshot of the viewport.
type State struct {
	Scale      float64
	PanX, PanY float64
	Dragging   bool
	// DragSource is SourceNone unless Dragging.
	DragSource Source
	// DragAnchor is only meaningful while Dragging.
	DragAnchor Point
	// Pinching reports whether LastPinchDistance holds a sample.
	Pinching          bool
	LastPinchDistance float64
}

// Controller translates discrete actions and gesture input into a clamped
// transform. It is not safe for concurrent use; all calls are expected on the
// UI goroutine.
type Controller struct {
	cfg      Config
	bounds   Bounds
	renderer Renderer
	state    State
}

// New creates a controller at rest scale with no pan.
func New(cfg Config, bounds Bounds, renderer Renderer) *Controller {
	if cfg.MinScale <= 0 {
		cfg.MinScale = 1
	}
	if cfg.MaxScale < cfg.MinScale {
		cfg.MaxScale = cfg.MinScale
	}
	return &Controller{
		cfg:      cfg,
		bounds:   bounds,
		renderer: renderer,
		state:    State{Scale: cfg.MinScale},
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state
}

// Config returns the controller's configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// Transform returns the transform matching the current state.
func (c *Controller) Transform() Transform {
	return Transform{X: c.state.PanX, Y: c.state.PanY, Scale: c.state.Scale}
}

// Zoomed reports whether the view is magnified beyond rest scale.
func (c *Controller) Zoomed() bool {
	return c.state.Scale > c.cfg.MinScale
}

// ZoomIn increases the scale by one step.
func (c *Controller) ZoomIn() {
	c.setScale(c.state.Scale + c.cfg.Step)
	c.render(Smooth)
}

// ZoomOut decreases the scale by one step. Returning to rest scale recentres the view.
func (c *Controller) ZoomOut() {
	c.setScale(c.state.Scale - c.cfg.Step)
	c.render(Smooth)
}

// ResetView returns to rest scale with no pan.
func (c *Controller) ResetView() {
	c.state.Scale = c.cfg.MinScale
	c.state.PanX, c.state.PanY = 0, 0
	c.render(Smooth)
}

// Wheel zooms one step per event: negative deltaY zooms in, positive zooms out.
func (c *Controller) Wheel(deltaY float64) {
	if deltaY == 0 || !finite(deltaY) {
		return
	}
	if deltaY < 0 {
		c.setScale(c.state.Scale + c.cfg.Step)
	} else {
		c.setScale(c.state.Scale - c.cfg.Step)
	}
	c.render(Instant)
}

// DragStart begins a mouse drag. Panning is disabled at rest scale.
func (c *Controller) DragStart(x, y float64) {
	c.startDrag(SourceMouse, x, y)
}

// DragMove pans the view while a mouse drag is active.
func (c *Controller) DragMove(x, y float64) {
	c.moveDrag(SourceMouse, x, y)
}

// DragEnd finishes a mouse drag.
func (c *Controller) DragEnd() {
	c.endDrag(SourceMouse)
}

// TouchStart begins a single-finger drag.
func (c *Controller) TouchStart(x, y float64) {
	c.startDrag(SourceTouch, x, y)
}

// TouchMove pans the view while a single-finger drag is active.
func (c *Controller) TouchMove(x, y float64) {
	c.moveDrag(SourceTouch, x, y)
}

// TouchEnd finishes the touch sequence, clearing both drag and pinch tracking.
func (c *Controller) TouchEnd() {
	c.endDrag(SourceTouch)
	c.PinchEnd()
}

// PinchStart records the distance between two touch points.
func (c *Controller) PinchStart(distance float64) {
	if !finite(distance) {
		return
	}
	c.state.Pinching = true
	c.state.LastPinchDistance = math.Max(0, distance)
}

// PinchMove scales by the change in distance since the last sample.
func (c *Controller) PinchMove(distance float64) {
	if !c.state.Pinching || !finite(distance) {
		return
	}
	distance = math.Max(0, distance)
	delta := (distance - c.state.LastPinchDistance) * c.cfg.PinchSensitivity
	c.state.LastPinchDistance = distance
	c.setScale(c.state.Scale + delta)
	c.render(Instant)
}

// PinchEnd clears pinch tracking.
func (c *Controller) PinchEnd() {
	c.state.Pinching = false
	c.state.LastPinchDistance = 0
}

func (c *Controller) startDrag(src Source, x, y float64) {
	if c.state.Scale <= c.cfg.MinScale || !finite(x) || !finite(y) {
		return
	}
	// Another device already owns the drag.
	if c.state.Dragging && c.state.DragSource != src {
		return
	}
	c.state.Dragging = true
	c.state.DragSource = src
	c.state.DragAnchor = Point{X: x - c.state.PanX, Y: y - c.state.PanY}
	if c.renderer != nil {
		c.renderer.SetDragging(true)
	}
}

func (c *Controller) moveDrag(src Source, x, y float64) {
	if !c.state.Dragging || c.state.DragSource != src || !finite(x) || !finite(y) {
		return
	}
	c.state.PanX = x - c.state.DragAnchor.X
	c.state.PanY = y - c.state.DragAnchor.Y
	c.clampPan()
	c.render(Instant)
}

func (c *Controller) endDrag(src Source) {
	if !c.state.Dragging || c.state.DragSource != src {
		return
	}
	c.state.Dragging = false
	c.state.DragSource = SourceNone
	c.state.DragAnchor = Point{}
	if c.renderer != nil {
		c.renderer.SetDragging(false)
	}
}

// setScale clamps the scale and then the pan against the bounds of the new scale.
func (c *Controller) setScale(s float64) {
	if finite(s) {
		c.state.Scale = clamp(s, c.cfg.MinScale, c.cfg.MaxScale)
	}
	c.clampPan()
}

func (c *Controller) clampPan() {
	if c.state.Scale <= c.cfg.MinScale {
		c.state.PanX, c.state.PanY = 0, 0
		return
	}
	maxX, maxY := c.maxPan()
	c.state.PanX = clamp(c.state.PanX, -maxX, maxX)
	c.state.PanY = clamp(c.state.PanY, -maxY, maxY)
}

// maxPan derives the pan limits from the content size at the current scale.
func (c *Controller) maxPan() (float64, float64) {
	var w, h float64
	if c.bounds != nil {
		w, h = c.bounds.Size()
	}
	if !finite(w) || w < 0 {
		w = 0
	}
	if !finite(h) || h < 0 {
		h = 0
	}
	grow := math.Max(0, c.state.Scale-1)
	return w * grow / 2, h * grow / 2
}

func (c *Controller) render(mode TransitionMode) {
	if c.renderer != nil {
		c.renderer.Render(c.Transform(), mode)
	}
}

// clamp restricts a value to a given range.
func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
