package viewport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransformString(t *testing.T) {
	assert.Equal(t, "translate(0px, 0px) scale(1)", Identity.String())
	assert.Equal(t, "translate(150px, -50.5px) scale(2.5)", Transform{X: 150, Y: -50.5, Scale: 2.5}.String())
}

func TestTransformZoomed(t *testing.T) {
	assert.False(t, Identity.Zoomed())
	assert.True(t, Transform{Scale: 1.5}.Zoomed())
}

func TestTransformApplyInvert(t *testing.T) {
	tr := Transform{X: 30, Y: -20, Scale: 2}
	// The centre of a 400x300 area only moves by the pan.
	assert.Equal(t, Point{X: 230, Y: 130}, tr.Apply(Point{X: 200, Y: 150}, 400, 300))
	assert.Equal(t, Point{X: 30, Y: -20}, tr.Apply(Point{X: 100, Y: 75}, 400, 300))

	for _, p := range []Point{{0, 0}, {400, 300}, {123, 45}} {
		got := tr.Invert(tr.Apply(p, 400, 300), 400, 300)
		assert.InDelta(t, p.X, got.X, 1e-9)
		assert.InDelta(t, p.Y, got.Y, 1e-9)
	}
}

func TestEaseInOutEndpoints(t *testing.T) {
	assert.Equal(t, 0.0, EaseInOut(0))
	assert.Equal(t, 1.0, EaseInOut(1))
	assert.Equal(t, 0.5, EaseInOut(0.5))
	assert.Equal(t, 1.0, EaseInOut(3))
	assert.Less(t, EaseInOut(0.25), 0.25)
	assert.Greater(t, EaseInOut(0.75), 0.75)
}

func TestTweenSmooth(t *testing.T) {
	now := time.Unix(0, 0)
	tw := NewTween(Identity)
	target := Transform{X: 100, Y: 0, Scale: 3}
	tw.Retarget(target, Smooth, 300*time.Millisecond, now)

	assert.Equal(t, Identity, tw.At(now))
	assert.True(t, tw.Animating(now.Add(100*time.Millisecond)))

	mid := tw.At(now.Add(150 * time.Millisecond))
	assert.InDelta(t, 50, mid.X, 1e-9)
	assert.InDelta(t, 2, mid.Scale, 1e-9)

	assert.Equal(t, target, tw.At(now.Add(300*time.Millisecond)))
	assert.False(t, tw.Animating(now.Add(300*time.Millisecond)))
	assert.Equal(t, target, tw.Target())
}

func TestTweenInstantJumps(t *testing.T) {
	now := time.Unix(0, 0)
	tw := NewTween(Identity)
	tw.Retarget(Transform{Scale: 2}, Smooth, time.Second, now)
	tw.Retarget(Transform{X: 10, Scale: 2}, Instant, time.Second, now.Add(10*time.Millisecond))

	assert.Equal(t, Transform{X: 10, Scale: 2}, tw.At(now.Add(10*time.Millisecond)))
	assert.False(t, tw.Animating(now.Add(10*time.Millisecond)))
}

func TestTweenRetargetMidFlight(t *testing.T) {
	now := time.Unix(0, 0)
	tw := NewTween(Identity)
	tw.Retarget(Transform{Scale: 3}, Smooth, 200*time.Millisecond, now)
	half := now.Add(100 * time.Millisecond)
	tw.Retarget(Transform{Scale: 1}, Smooth, 200*time.Millisecond, half)

	assert.InDelta(t, 2, tw.At(half).Scale, 1e-9)
	assert.Equal(t, Transform{Scale: 1}, tw.At(half.Add(200*time.Millisecond)))
}
