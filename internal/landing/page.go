// Package landing models the scrollable landing page: header state, anchor
// navigation, the mobile menu, and the one-shot triggers that fire when
// elements scroll into view.
package landing

import (
	"math"
	"time"
)

const (
	// HeaderOffset keeps anchor targets clear of the fixed header.
	HeaderOffset = 80
	// ScrolledThreshold is how far the page must scroll before the header casts a shadow.
	ScrolledThreshold = 20

	// RevealThreshold is the visible fraction that reveals an element.
	RevealThreshold = 0.1
	// RevealBottomMargin shrinks the viewport at the bottom for reveal checks.
	RevealBottomMargin = 50
	// RevealDuration is the fade-in time of a revealed element.
	RevealDuration = 600 * time.Millisecond

	// CounterThreshold is the visible fraction that starts an impact counter.
	CounterThreshold = 0.5

	scrollDuration = 500 * time.Millisecond
)

// Element is a vertical span of the page, in page coordinates.
type Element struct {
	ID     string
	Top    float64
	Height float64
	// Counter marks impact cards whose numbers count up when shown.
	Counter bool
}

type scrollAnim struct {
	from, to float64
	start    time.Time
}

// Page is the scroll model of the landing view.
type Page struct {
	elements  []Element
	byID      map[string]Element
	height    float64
	viewportH float64

	scrollY  float64
	anim     *scrollAnim
	menuOpen bool

	revealed map[string]time.Time
	counted  map[string]bool
}

// NewPage lays out a page of the given total height.
func NewPage(height float64, elements []Element) *Page {
	p := &Page{
		elements: elements,
		byID:     make(map[string]Element, len(elements)),
		height:   height,
		revealed: map[string]time.Time{},
		counted:  map[string]bool{},
	}
	for _, e := range elements {
		p.byID[e.ID] = e
	}
	return p
}

// SetViewport updates the visible height, e.g. after a window resize.
func (p *Page) SetViewport(h float64) {
	p.viewportH = math.Max(0, h)
	p.scrollY = p.clampScroll(p.scrollY)
}

// ScrollY returns the current scroll offset.
func (p *Page) ScrollY() float64 { return p.scrollY }

// MaxScroll returns the largest valid scroll offset.
func (p *Page) MaxScroll() float64 {
	return math.Max(0, p.height-p.viewportH)
}

// HeaderScrolled reports whether the header should show its shadow.
func (p *Page) HeaderScrolled() bool {
	return p.scrollY > ScrolledThreshold
}

// Element returns a laid-out element by id.
func (p *Page) Element(id string) (Element, bool) {
	e, ok := p.byID[id]
	return e, ok
}

// Scroll moves the page by dy immediately. It is ignored while locked, which
// is the case whenever a dialog is open.
func (p *Page) Scroll(dy float64, locked bool) {
	if locked || dy == 0 || math.IsNaN(dy) {
		return
	}
	p.anim = nil
	p.scrollY = p.clampScroll(p.scrollY + dy)
}

// ScrollTo smoothly scrolls so the anchor sits just below the header.
// "#", empty and unknown anchors are ignored.
func (p *Page) ScrollTo(anchor string, now time.Time) bool {
	if len(anchor) > 0 && anchor[0] == '#' {
		anchor = anchor[1:]
	}
	e, ok := p.byID[anchor]
	if anchor == "" || !ok {
		return false
	}
	p.animateTo(e.Top-HeaderOffset, now)
	return true
}

// ScrollToTop smoothly returns to the top of the page.
func (p *Page) ScrollToTop(now time.Time) {
	p.animateTo(0, now)
}

// Animating reports whether a smooth scroll is running.
func (p *Page) Animating() bool { return p.anim != nil }

// Update advances any smooth scroll.
func (p *Page) Update(now time.Time) {
	if p.anim == nil {
		return
	}
	f := float64(now.Sub(p.anim.start)) / float64(scrollDuration)
	if f >= 1 {
		p.scrollY = p.anim.to
		p.anim = nil
		return
	}
	f = math.Max(0, f)
	eased := 1 - math.Pow(1-f, 3)
	p.scrollY = p.anim.from + (p.anim.to-p.anim.from)*eased
}

// ToggleMenu opens or closes the mobile menu.
func (p *Page) ToggleMenu() { p.menuOpen = !p.menuOpen }

// CloseMenu closes the mobile menu.
func (p *Page) CloseMenu() { p.menuOpen = false }

// MenuOpen reports whether the mobile menu is showing.
func (p *Page) MenuOpen() bool { return p.menuOpen }

// Observe checks every element against the viewport and returns the ids that
// were revealed and the counters that should start on this call. Each element
// triggers at most once.
func (p *Page) Observe(now time.Time) (revealed, counters []string) {
	for _, e := range p.elements {
		if _, done := p.revealed[e.ID]; !done && p.visibleFraction(e, RevealBottomMargin) >= RevealThreshold {
			p.revealed[e.ID] = now
			revealed = append(revealed, e.ID)
		}
		if e.Counter && !p.counted[e.ID] && p.visibleFraction(e, 0) >= CounterThreshold {
			p.counted[e.ID] = true
			counters = append(counters, e.ID)
		}
	}
	return revealed, counters
}

// RevealProgress returns the fade-in progress of an element in [0, 1].
func (p *Page) RevealProgress(id string, now time.Time) float64 {
	at, ok := p.revealed[id]
	if !ok {
		return 0
	}
	f := float64(now.Sub(at)) / float64(RevealDuration)
	return math.Min(math.Max(f, 0), 1)
}

// ToScreen converts a page y coordinate into a viewport y coordinate.
func (p *Page) ToScreen(y float64) float64 {
	return y - p.scrollY
}

func (p *Page) visibleFraction(e Element, bottomMargin float64) float64 {
	if e.Height <= 0 {
		return 0
	}
	top := math.Max(e.Top, p.scrollY)
	bottom := math.Min(e.Top+e.Height, p.scrollY+p.viewportH-bottomMargin)
	if bottom <= top {
		return 0
	}
	return (bottom - top) / e.Height
}

func (p *Page) animateTo(target float64, now time.Time) {
	target = p.clampScroll(target)
	p.anim = &scrollAnim{from: p.scrollY, to: target, start: now}
}

func (p *Page) clampScroll(y float64) float64 {
	return math.Min(math.Max(y, 0), p.MaxScroll())
}
