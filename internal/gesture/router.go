package gesture

// Target is the set of viewport operations the router drives.
// *viewport.Controller satisfies it.
type Target interface {
	ZoomIn()
	ZoomOut()
	ResetView()
	Wheel(deltaY float64)
	DragStart(x, y float64)
	DragMove(x, y float64)
	DragEnd()
	PinchStart(distance float64)
	PinchMove(distance float64)
	TouchStart(x, y float64)
	TouchMove(x, y float64)
	TouchEnd()
}

// Layout locates the map widget on screen for the current frame.
type Layout struct {
	Frame   Rect
	ZoomIn  Rect
	ZoomOut Rect
	Reset   Rect
}

type sequence int

const (
	seqNone sequence = iota
	seqDrag
	seqPinch
)

// Result reports which parts of a frame's input the router used.
type Result struct {
	// WheelConsumed is true when the wheel zoomed the map and must not scroll the page.
	WheelConsumed bool
	// ButtonClicked is true when a zoom button took a click or a one-finger tap.
	ButtonClicked bool
	// FrameClicked is true when a click landed on the map frame outside the buttons.
	FrameClicked bool
}

// Router keeps the touch-sequence bookkeeping between frames.
type Router struct {
	target      Target
	layout      Layout
	touchCount  int
	seq         sequence
	mouseActive bool
}

// NewRouter creates a router feeding the given target.
func NewRouter(target Target) *Router {
	return &Router{target: target}
}

// SetLayout updates where the map and its buttons are drawn.
func (r *Router) SetLayout(l Layout) {
	r.layout = l
}

// Layout returns the current layout.
func (r *Router) Layout() Layout {
	return r.layout
}

// Handle applies one frame of input.
func (r *Router) Handle(in InputState) Result {
	var res Result

	// --- Keyboard shortcuts ---
	if in.ZoomInKey {
		r.target.ZoomIn()
	}
	if in.ZoomOutKey {
		r.target.ZoomOut()
	}
	if in.ResetKey {
		r.target.ResetView()
	}

	// --- Buttons and mouse drag ---
	if in.LeftClickStart {
		switch {
		case r.pressButton(in.MouseX, in.MouseY):
			res.ButtonClicked = true
		case r.layout.Frame.Contains(in.MouseX, in.MouseY) && len(in.Touches) == 0:
			// Press only starts on the frame; move and release are tracked anywhere.
			r.target.DragStart(in.MouseX, in.MouseY)
			r.mouseActive = true
			res.FrameClicked = true
		}
	}
	if r.mouseActive {
		if in.LeftHeld {
			r.target.DragMove(in.MouseX, in.MouseY)
		} else {
			r.target.DragEnd()
			r.mouseActive = false
		}
	}

	// --- Wheel ---
	if in.WheelY != 0 && r.layout.Frame.Contains(in.MouseX, in.MouseY) {
		r.target.Wheel(-in.WheelY)
		res.WheelConsumed = true
	}

	if r.handleTouches(in.Touches) {
		res.ButtonClicked = true
	}
	return res
}

// pressButton runs the zoom button under the point, if any.
func (r *Router) pressButton(x, y float64) bool {
	switch {
	case r.layout.ZoomIn.Contains(x, y):
		r.target.ZoomIn()
	case r.layout.ZoomOut.Contains(x, y):
		r.target.ZoomOut()
	case r.layout.Reset.Contains(x, y):
		r.target.ResetView()
	default:
		return false
	}
	return true
}

// handleTouches classifies each touch sequence as a pinch or a drag. Any change
// in the number of fingers ends the current tracking and starts a new sequence.
// A single finger landing on a zoom button presses it instead, and it reports true.
func (r *Router) handleTouches(touches []Touch) bool {
	n := len(touches)
	if n != r.touchCount {
		if r.seq != seqNone {
			r.target.TouchEnd()
			r.seq = seqNone
		}
		fromIdle := r.touchCount == 0
		r.touchCount = n
		if n == 0 || !r.layout.Frame.Contains(touches[0].X, touches[0].Y) {
			return false
		}
		switch {
		case n >= 2:
			r.target.PinchStart(Distance(touches))
			r.seq = seqPinch
		case fromIdle && r.pressButton(touches[0].X, touches[0].Y):
			return true
		default:
			r.target.TouchStart(touches[0].X, touches[0].Y)
			r.seq = seqDrag
		}
		return false
	}

	switch r.seq {
	case seqPinch:
		r.target.PinchMove(Distance(touches))
	case seqDrag:
		r.target.TouchMove(touches[0].X, touches[0].Y)
	}
	return false
}
