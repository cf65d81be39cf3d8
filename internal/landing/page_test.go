package landing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPage() *Page {
	p := NewPage(3000, []Element{
		{ID: "hero", Top: 0, Height: 600},
		{ID: "impacto", Top: 600, Height: 400},
		{ID: "stat-1", Top: 700, Height: 200, Counter: true},
		{ID: "catalogo", Top: 1000, Height: 800},
		{ID: "mapa", Top: 1800, Height: 700},
		{ID: "simulador", Top: 2500, Height: 500},
	})
	p.SetViewport(800)
	return p
}

func TestScrollClampsAndTracksHeader(t *testing.T) {
	p := testPage()
	assert.Equal(t, 2200.0, p.MaxScroll())

	p.Scroll(-50, false)
	assert.Zero(t, p.ScrollY())
	assert.False(t, p.HeaderScrolled())

	p.Scroll(20, false)
	assert.False(t, p.HeaderScrolled())
	p.Scroll(1, false)
	assert.True(t, p.HeaderScrolled())

	p.Scroll(10000, false)
	assert.Equal(t, 2200.0, p.ScrollY())
}

func TestScrollLocked(t *testing.T) {
	p := testPage()
	p.Scroll(300, true)
	assert.Zero(t, p.ScrollY())
}

func TestScrollToAnchor(t *testing.T) {
	t0 := time.Unix(0, 0)
	p := testPage()

	require.True(t, p.ScrollTo("#catalogo", t0))
	assert.True(t, p.Animating())
	p.Update(t0.Add(250 * time.Millisecond))
	assert.Greater(t, p.ScrollY(), 0.0)
	assert.Less(t, p.ScrollY(), 920.0)

	p.Update(t0.Add(time.Second))
	assert.Equal(t, 920.0, p.ScrollY())
	assert.False(t, p.Animating())

	assert.False(t, p.ScrollTo("#", t0))
	assert.False(t, p.ScrollTo("#nowhere", t0))
	assert.False(t, p.ScrollTo("", t0))
}

func TestScrollToClampsTarget(t *testing.T) {
	t0 := time.Unix(0, 0)
	p := testPage()
	require.True(t, p.ScrollTo("simulador", t0))
	p.Update(t0.Add(time.Second))
	assert.Equal(t, p.MaxScroll(), p.ScrollY())

	p.ScrollToTop(t0)
	p.Update(t0.Add(time.Second))
	assert.Zero(t, p.ScrollY())
}

func TestWheelCancelsSmoothScroll(t *testing.T) {
	t0 := time.Unix(0, 0)
	p := testPage()
	p.ScrollTo("mapa", t0)
	p.Scroll(10, false)
	assert.False(t, p.Animating())
	assert.Equal(t, 10.0, p.ScrollY())
}

func TestMenu(t *testing.T) {
	p := testPage()
	p.ToggleMenu()
	assert.True(t, p.MenuOpen())
	p.ToggleMenu()
	assert.False(t, p.MenuOpen())
	p.ToggleMenu()
	p.CloseMenu()
	assert.False(t, p.MenuOpen())
}

func TestObserveRevealsOnce(t *testing.T) {
	t0 := time.Unix(0, 0)
	p := testPage()

	revealed, counters := p.Observe(t0)
	// Viewport 0..750 for reveal: hero, impacto (150 of 400) and stat-1 (50 of 200).
	assert.Equal(t, []string{"hero", "impacto", "stat-1"}, revealed)
	// stat-1 is 100 of 200 visible in the full viewport.
	assert.Equal(t, []string{"stat-1"}, counters)

	revealed, counters = p.Observe(t0)
	assert.Empty(t, revealed)
	assert.Empty(t, counters)

	p.Scroll(400, false)
	revealed, _ = p.Observe(t0.Add(time.Second))
	assert.Equal(t, []string{"catalogo"}, revealed)
}

func TestCounterNeedsHalfVisible(t *testing.T) {
	p := testPage()
	p.SetViewport(790)
	_, counters := p.Observe(time.Unix(0, 0))
	assert.Empty(t, counters)
	p.Scroll(10, false)
	_, counters = p.Observe(time.Unix(0, 0))
	assert.Equal(t, []string{"stat-1"}, counters)
}

func TestRevealProgress(t *testing.T) {
	t0 := time.Unix(0, 0)
	p := testPage()
	assert.Zero(t, p.RevealProgress("hero", t0))
	p.Observe(t0)
	assert.InDelta(t, 0.5, p.RevealProgress("hero", t0.Add(300*time.Millisecond)), 1e-9)
	assert.Equal(t, 1.0, p.RevealProgress("hero", t0.Add(time.Second)))
}
