package viewport

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedBounds struct{ w, h float64 }

func (b *fixedBounds) Size() (float64, float64) { return b.w, b.h }

type recorder struct {
	renders  []Transform
	modes    []TransitionMode
	dragging []bool
}

func (r *recorder) Render(t Transform, mode TransitionMode) {
	r.renders = append(r.renders, t)
	r.modes = append(r.modes, mode)
}

func (r *recorder) SetDragging(d bool) { r.dragging = append(r.dragging, d) }

func newTestController(w, h float64) (*Controller, *fixedBounds, *recorder) {
	b := &fixedBounds{w: w, h: h}
	r := &recorder{}
	return New(DefaultConfig(), b, r), b, r
}

func TestNewStartsAtRest(t *testing.T) {
	c, _, _ := newTestController(400, 300)
	s := c.State()
	assert.Equal(t, 1.0, s.Scale)
	assert.Zero(t, s.PanX)
	assert.Zero(t, s.PanY)
	assert.False(t, s.Dragging)
	assert.False(t, s.Pinching)
}

func TestZoomInSteps(t *testing.T) {
	c, _, r := newTestController(400, 300)
	want := []float64{1.5, 2, 2.5, 3, 3.5, 4, 4}
	for i, w := range want {
		c.ZoomIn()
		assert.Equal(t, w, c.State().Scale, "call %d", i+1)
	}
	require.Len(t, r.modes, len(want))
	for _, m := range r.modes {
		assert.Equal(t, Smooth, m)
	}
}

func TestZoomOutReturnsToRestAndRecentres(t *testing.T) {
	c, _, _ := newTestController(400, 300)
	c.ZoomIn()
	c.DragStart(0, 0)
	c.DragMove(80, -60)
	c.DragEnd()
	require.Equal(t, 80.0, c.State().PanX)

	c.ZoomOut()
	s := c.State()
	assert.Equal(t, 1.0, s.Scale)
	assert.Zero(t, s.PanX)
	assert.Zero(t, s.PanY)

	c.ZoomOut()
	assert.Equal(t, 1.0, c.State().Scale)
}

func TestZoomOutReclampsPan(t *testing.T) {
	c, _, _ := newTestController(400, 300)
	c.ZoomIn()
	c.ZoomIn() // scale 2, max pan (200, 150)
	c.DragStart(0, 0)
	c.DragMove(500, 500)
	c.DragEnd()
	require.Equal(t, 200.0, c.State().PanX)
	require.Equal(t, 150.0, c.State().PanY)

	c.ZoomOut() // scale 1.5, max pan (100, 75)
	assert.Equal(t, 100.0, c.State().PanX)
	assert.Equal(t, 75.0, c.State().PanY)
}

func TestResetViewFromAnyState(t *testing.T) {
	c, _, r := newTestController(400, 300)
	c.ZoomIn()
	c.ZoomIn()
	c.ZoomIn()
	c.DragStart(10, 10)
	c.DragMove(90, 40)
	c.PinchStart(50)

	c.ResetView()
	s := c.State()
	assert.Equal(t, 1.0, s.Scale)
	assert.Zero(t, s.PanX)
	assert.Zero(t, s.PanY)
	assert.Equal(t, Smooth, r.modes[len(r.modes)-1])

	c.ResetView()
	assert.Equal(t, Transform{Scale: 1}, c.Transform())
}

func TestWheel(t *testing.T) {
	c, _, r := newTestController(400, 300)
	c.Wheel(-120)
	assert.Equal(t, 1.5, c.State().Scale)
	assert.Equal(t, Instant, r.modes[len(r.modes)-1])

	c.Wheel(120)
	assert.Equal(t, 1.0, c.State().Scale)

	renders := len(r.renders)
	c.Wheel(0)
	c.Wheel(math.NaN())
	assert.Len(t, r.renders, renders)

	for i := 0; i < 20; i++ {
		c.Wheel(-1)
	}
	assert.Equal(t, 4.0, c.State().Scale)
}

func TestDragDisabledAtRest(t *testing.T) {
	c, _, r := newTestController(400, 300)
	c.DragStart(100, 100)
	assert.False(t, c.State().Dragging)
	assert.Empty(t, r.dragging)

	c.DragMove(200, 200)
	assert.Zero(t, c.State().PanX)
	assert.Empty(t, r.renders)
}

func TestDragContainment(t *testing.T) {
	c, _, r := newTestController(400, 300)
	c.ZoomIn()
	c.ZoomIn()
	require.Equal(t, 2.0, c.State().Scale)

	c.DragStart(100, 100)
	require.True(t, c.State().Dragging)
	assert.Equal(t, Point{X: 100, Y: 100}, c.State().DragAnchor)

	c.DragMove(500, 100)
	assert.Equal(t, 200.0, c.State().PanX)
	assert.Zero(t, c.State().PanY)
	assert.Equal(t, Instant, r.modes[len(r.modes)-1])

	c.DragMove(-500, -1000)
	assert.Equal(t, -200.0, c.State().PanX)
	assert.Equal(t, -150.0, c.State().PanY)

	c.DragEnd()
	assert.False(t, c.State().Dragging)
	assert.Equal(t, []bool{true, false}, r.dragging)
}

func TestDragAnchorAccountsForExistingPan(t *testing.T) {
	c, _, _ := newTestController(400, 300)
	c.ZoomIn()
	c.ZoomIn()
	c.DragStart(0, 0)
	c.DragMove(50, 20)
	c.DragEnd()

	c.DragStart(100, 100)
	assert.Equal(t, Point{X: 50, Y: 80}, c.State().DragAnchor)
	c.DragMove(110, 100)
	assert.Equal(t, 60.0, c.State().PanX)
	assert.Equal(t, 20.0, c.State().PanY)
}

func TestDragEndWithoutStartIsNoop(t *testing.T) {
	c, _, r := newTestController(400, 300)
	c.DragEnd()
	c.TouchEnd()
	assert.Empty(t, r.dragging)
}

func TestDragSourcesAreExclusive(t *testing.T) {
	c, _, _ := newTestController(400, 300)
	c.ZoomIn()
	c.ZoomIn()

	c.DragStart(0, 0)
	c.TouchStart(300, 300)
	assert.Equal(t, SourceMouse, c.State().DragSource)
	assert.Equal(t, Point{}, c.State().DragAnchor)

	c.TouchMove(100, 100)
	assert.Zero(t, c.State().PanX)

	c.TouchEnd()
	assert.True(t, c.State().Dragging, "touch end must not end a mouse drag")

	c.DragEnd()
	c.TouchStart(10, 10)
	assert.Equal(t, SourceTouch, c.State().DragSource)
	c.TouchMove(40, 30)
	assert.Equal(t, 30.0, c.State().PanX)
	assert.Equal(t, 20.0, c.State().PanY)
	c.TouchEnd()
	assert.False(t, c.State().Dragging)
}

func TestPinch(t *testing.T) {
	c, _, r := newTestController(400, 300)
	c.PinchStart(100)
	c.PinchMove(150)
	assert.InDelta(t, 1.5, c.State().Scale, 1e-9)
	assert.Equal(t, 150.0, c.State().LastPinchDistance)
	assert.Equal(t, Instant, r.modes[len(r.modes)-1])

	c.PinchMove(100)
	assert.InDelta(t, 1.0, c.State().Scale, 1e-9)

	c.PinchMove(5000)
	assert.Equal(t, 4.0, c.State().Scale)

	c.TouchEnd()
	assert.False(t, c.State().Pinching)
	renders := len(r.renders)
	c.PinchMove(9000)
	assert.Len(t, r.renders, renders)
}

func TestPinchClampsNegativeDistance(t *testing.T) {
	c, _, _ := newTestController(400, 300)
	c.PinchStart(-40)
	assert.Zero(t, c.State().LastPinchDistance)
	c.PinchMove(50)
	assert.InDelta(t, 1.5, c.State().Scale, 1e-9)
}

func TestPanBoundsFollowResize(t *testing.T) {
	c, b, _ := newTestController(400, 300)
	c.ZoomIn()
	c.ZoomIn()
	c.DragStart(0, 0)
	c.DragMove(200, 150)
	require.Equal(t, 200.0, c.State().PanX)

	b.w, b.h = 100, 50
	c.DragMove(200, 150)
	assert.Equal(t, 50.0, c.State().PanX)
	assert.Equal(t, 25.0, c.State().PanY)
}

func TestZoomThenResetScenario(t *testing.T) {
	c, _, _ := newTestController(400, 300)
	c.ZoomIn()
	c.ZoomIn()
	assert.Equal(t, Transform{X: 0, Y: 0, Scale: 2}, c.Transform())

	c.DragStart(200, 200)
	c.DragMove(350, 250)
	c.DragEnd()
	assert.Equal(t, Transform{X: 150, Y: 50, Scale: 2}, c.Transform())

	c.ResetView()
	assert.Equal(t, Transform{X: 0, Y: 0, Scale: 1}, c.Transform())
}

func TestInvariantsHoldForRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	c, b, _ := newTestController(400, 300)
	cfg := c.Config()

	for i := 0; i < 5000; i++ {
		x, y := rng.Float64()*1600-800, rng.Float64()*1200-600
		switch rng.Intn(13) {
		case 0:
			c.ZoomIn()
		case 1:
			c.ZoomOut()
		case 2:
			c.ResetView()
		case 3:
			c.Wheel(rng.Float64()*240 - 120)
		case 4:
			c.DragStart(x, y)
		case 5:
			c.DragMove(x, y)
		case 6:
			c.DragEnd()
		case 7:
			c.PinchStart(rng.Float64()*400 - 50)
		case 8:
			c.PinchMove(rng.Float64()*400 - 50)
		case 9:
			c.TouchStart(x, y)
		case 10:
			c.TouchMove(x, y)
		case 11:
			c.TouchEnd()
		case 12:
			b.w, b.h = rng.Float64()*800, rng.Float64()*600
			c.DragMove(x, y)
		}

		s := c.State()
		require.GreaterOrEqual(t, s.Scale, cfg.MinScale, "step %d", i)
		require.LessOrEqual(t, s.Scale, cfg.MaxScale, "step %d", i)
		if s.Scale <= cfg.MinScale {
			require.Zero(t, s.PanX, "step %d", i)
			require.Zero(t, s.PanY, "step %d", i)
		}
		if s.Dragging {
			require.NotEqual(t, SourceNone, s.DragSource)
		}
	}
}

func TestNewNormalisesConfig(t *testing.T) {
	c := New(Config{MinScale: 0, MaxScale: -1, Step: 1}, nil, nil)
	assert.Equal(t, 1.0, c.Config().MinScale)
	assert.Equal(t, 1.0, c.Config().MaxScale)
	c.ZoomIn()
	assert.Equal(t, 1.0, c.State().Scale)
}
