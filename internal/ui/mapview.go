package ui

import (
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/wari-market/wari/internal/gesture"
	"github.com/wari-market/wari/internal/logging"
	"github.com/wari-market/wari/internal/service"
	"github.com/wari-market/wari/internal/viewport"
)

const (
	mapButtonSize    = 32
	mapButtonSpacing = 8
	regionRadius     = 8
	regionHitRadius  = 14
)

// outline is a rough coastline in map-relative coordinates, drawn when no
// backdrop image is available.
var outline = []viewport.Point{
	{X: 0.30, Y: 0.05}, {X: 0.45, Y: 0.08}, {X: 0.62, Y: 0.20}, {X: 0.78, Y: 0.30},
	{X: 0.85, Y: 0.48}, {X: 0.80, Y: 0.66}, {X: 0.72, Y: 0.80}, {X: 0.66, Y: 0.95},
	{X: 0.52, Y: 0.88}, {X: 0.40, Y: 0.72}, {X: 0.28, Y: 0.52}, {X: 0.16, Y: 0.30},
	{X: 0.20, Y: 0.14},
}

// MapView renders the zoomable production map. It is the Bounds and Renderer
// of a viewport.Controller: the controller decides the transform and the view
// animates towards it.
type MapView struct {
	logger   *zap.Logger
	regions  []service.Region
	duration time.Duration
	clock    func() time.Time

	frame    gesture.Rect
	tween    *viewport.Tween
	dragging bool
	selected string

	backdrop *ebiten.Image
	content  *ebiten.Image
	canvas   *ebiten.Image
}

// NewMapView creates a map showing the given regions. duration is the length
// of smooth transitions.
func NewMapView(logger *zap.Logger, regions []service.Region, duration time.Duration) *MapView {
	return &MapView{
		logger:   logging.OrNop(logger),
		regions:  regions,
		duration: duration,
		clock:    time.Now,
		tween:    viewport.NewTween(viewport.Identity),
	}
}

// Size implements viewport.Bounds.
func (mv *MapView) Size() (float64, float64) {
	return mv.frame.W, mv.frame.H
}

// Render implements viewport.Renderer.
func (mv *MapView) Render(t viewport.Transform, mode viewport.TransitionMode) {
	mv.tween.Retarget(t, mode, mv.duration, mv.clock())
	mv.logger.Debug("map transform",
		zap.String("transform", t.String()),
		zap.Stringer("mode", mode))
}

// SetDragging implements viewport.Renderer.
func (mv *MapView) SetDragging(dragging bool) {
	mv.dragging = dragging
	if dragging {
		ebiten.SetCursorShape(ebiten.CursorShapeMove)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// Dragging reports whether a pan is in progress.
func (mv *MapView) Dragging() bool {
	return mv.dragging
}

// SetFrame places the map on screen. Offscreen buffers are reallocated when the size changes.
func (mv *MapView) SetFrame(r gesture.Rect) {
	if r.W != mv.frame.W || r.H != mv.frame.H {
		for _, img := range []*ebiten.Image{mv.content, mv.canvas} {
			if img != nil {
				img.Deallocate()
			}
		}
		mv.content, mv.canvas = nil, nil
	}
	mv.frame = r
}

// Frame returns the on-screen rectangle of the map.
func (mv *MapView) Frame() gesture.Rect {
	return mv.frame
}

// SetBackdrop replaces the backdrop image and returns the previous one so the
// caller can deallocate it once it is no longer drawn.
func (mv *MapView) SetBackdrop(img *ebiten.Image) *ebiten.Image {
	old := mv.backdrop
	mv.backdrop = img
	return old
}

// Layout returns the frame and the zoom buttons stacked at its top-right corner.
func (mv *MapView) Layout() gesture.Layout {
	x := mv.frame.X + mv.frame.W - mapButtonSize - mapButtonSpacing
	y := mv.frame.Y + mapButtonSpacing
	step := float64(mapButtonSize + mapButtonSpacing)
	button := func(i int) gesture.Rect {
		return gesture.Rect{X: x, Y: y + float64(i)*step, W: mapButtonSize, H: mapButtonSize}
	}
	return gesture.Layout{Frame: mv.frame, ZoomIn: button(0), ZoomOut: button(1), Reset: button(2)}
}

// Select picks the region under a screen point. Clicking empty map clears the selection.
func (mv *MapView) Select(x, y float64) (service.Region, bool) {
	if !mv.frame.Contains(x, y) {
		return service.Region{}, false
	}
	t := mv.tween.At(mv.clock())
	p := t.Invert(viewport.Point{X: x - mv.frame.X, Y: y - mv.frame.Y}, mv.frame.W, mv.frame.H)
	radius := regionHitRadius / math.Max(t.Scale, 1)
	for _, r := range mv.regions {
		if math.Hypot(p.X-r.X*mv.frame.W, p.Y-r.Y*mv.frame.H) <= radius {
			mv.selected = r.ID
			mv.logger.Debug("region selected", zap.String("region", r.ID))
			return r, true
		}
	}
	mv.selected = ""
	return service.Region{}, false
}

// Selected returns the id of the highlighted region, if any.
func (mv *MapView) Selected() string {
	return mv.selected
}

// Draw renders the map into its frame.
func (mv *MapView) Draw(screen *ebiten.Image, now time.Time) {
	w, h := int(mv.frame.W), int(mv.frame.H)
	if w <= 0 || h <= 0 {
		return
	}
	if mv.content == nil {
		mv.content = ebiten.NewImage(w, h)
		mv.canvas = ebiten.NewImage(w, h)
	}
	mv.drawContent()

	t := mv.tween.At(now)
	cx, cy := mv.frame.W/2, mv.frame.H/2
	mv.canvas.Clear()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-cx, -cy)
	op.GeoM.Scale(t.Scale, t.Scale)
	op.GeoM.Translate(cx+t.X, cy+t.Y)
	op.Filter = ebiten.FilterLinear
	mv.canvas.DrawImage(mv.content, op)

	placed := &ebiten.DrawImageOptions{}
	placed.GeoM.Translate(mv.frame.X, mv.frame.Y)
	screen.DrawImage(mv.canvas, placed)

	border := ColorGrey
	hint := "Usa la rueda o los botones para acercar"
	if mv.tween.Target().Zoomed() {
		border = ColorTerracotta
		hint = "Arrastra para mover el mapa"
	}
	f := mv.frame
	vector.StrokeRect(screen, float32(f.X), float32(f.Y), float32(f.W), float32(f.H), 2, border, false)
	Text(screen, hint, f.X+8, f.Y+f.H-LineHeight-6, ColorDark)

	l := mv.Layout()
	Button{Rect: l.ZoomIn, Label: "+"}.Draw(screen)
	Button{Rect: l.ZoomOut, Label: "-"}.Draw(screen)
	Button{Rect: l.Reset, Label: "o"}.Draw(screen)

	mv.drawTooltip(screen, t)
}

func (mv *MapView) drawContent() {
	mv.content.Fill(ColorCream)
	w, h := mv.frame.W, mv.frame.H

	if mv.backdrop != nil {
		bw, bh := mv.backdrop.Bounds().Dx(), mv.backdrop.Bounds().Dy()
		s := math.Max(w/float64(bw), h/float64(bh))
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(s, s)
		op.GeoM.Translate((w-float64(bw)*s)/2, (h-float64(bh)*s)/2)
		op.Filter = ebiten.FilterLinear
		mv.content.DrawImage(mv.backdrop, op)
	} else {
		for i := range outline {
			a, b := outline[i], outline[(i+1)%len(outline)]
			vector.StrokeLine(mv.content, float32(a.X*w), float32(a.Y*h), float32(b.X*w), float32(b.Y*h), 2, ColorGreenDark, true)
		}
	}

	for _, r := range mv.regions {
		x, y := float32(r.X*w), float32(r.Y*h)
		if r.ID == mv.selected {
			vector.DrawFilledCircle(mv.content, x, y, regionRadius+4, ColorDark, true)
		}
		vector.DrawFilledCircle(mv.content, x, y, regionRadius, ColorTerracotta, true)
	}
}

func (mv *MapView) drawTooltip(screen *ebiten.Image, t viewport.Transform) {
	var region *service.Region
	for i := range mv.regions {
		if mv.regions[i].ID == mv.selected {
			region = &mv.regions[i]
		}
	}
	if region == nil {
		return
	}
	p := t.Apply(viewport.Point{X: region.X * mv.frame.W, Y: region.Y * mv.frame.H}, mv.frame.W, mv.frame.H)
	lines := []string{
		region.Name,
		fmt.Sprintf("%d ha cultivadas", region.Hectares),
		fmt.Sprintf("%d productores", region.Producers),
	}
	box := gesture.Rect{W: 180, H: float64(len(lines)*LineHeight + 12)}
	box.X = clampRange(mv.frame.X+p.X-box.W/2, mv.frame.X, mv.frame.X+mv.frame.W-box.W)
	box.Y = clampRange(mv.frame.Y+p.Y-box.H-regionRadius-6, mv.frame.Y, mv.frame.Y+mv.frame.H-box.H)
	Panel(screen, box)
	for i, line := range lines {
		clr := ColorGrey
		if i == 0 {
			clr = ColorDark
		}
		Text(screen, line, box.X+8, box.Y+6+float64(i*LineHeight), clr)
	}
}

func clampRange(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}
