package main

import (
	"fmt"
	"image"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/wari-market/wari/internal/catalog"
	"github.com/wari-market/wari/internal/config"
	"github.com/wari-market/wari/internal/counter"
	"github.com/wari-market/wari/internal/dashboard"
	"github.com/wari-market/wari/internal/gesture"
	"github.com/wari-market/wari/internal/landing"
	"github.com/wari-market/wari/internal/modal"
	"github.com/wari-market/wari/internal/service"
	"github.com/wari-market/wari/internal/simulator"
	"github.com/wari-market/wari/internal/ui"
	"github.com/wari-market/wari/internal/viewport"
)

// Game wires the domain models to Ebiten's update and draw loop.
type Game struct {
	cfg     *config.Config
	logger  *zap.Logger
	content *service.Content
	locale  language.Tag
	clock   func() time.Time

	width, height int

	modals   *modal.Manager
	shell    *dashboard.Shell
	page     *landing.Page
	counters map[string]*counter.Animator

	controller *viewport.Controller
	router     *gesture.Router
	mapView    *ui.MapView

	imageService *service.ImageService
	catalogState *catalog.State
	catalogView  *ui.CatalogView
	landingForm  *ui.FormView
	dashForm     *ui.FormView
	chartView    *ui.ChartView

	// selected is the product shown in the detail dialog.
	selected catalog.Product

	mapImageJobChan    chan string
	mapImageResultChan chan mapImageResult
	imageToDeallocate  *ebiten.Image

	touchIDs []ebiten.TouchID
}

// mapImageResult holds the result of a background backdrop load.
type mapImageResult struct {
	img  image.Image
	path string
	err  error
}

// NewGame builds every view from the loaded content and starts the background loaders.
func NewGame(cfg *config.Config, logger *zap.Logger, content *service.Content, locale language.Tag) *Game {
	g := &Game{
		cfg:                cfg,
		logger:             logger,
		content:            content,
		locale:             locale,
		clock:              time.Now,
		width:              cfg.Window.Width,
		height:             cfg.Window.Height,
		modals:             modal.NewManager(modal.Login, modal.Register, modal.Detail),
		counters:           make(map[string]*counter.Animator),
		imageService:       service.NewImageService(cfg.Content.AssetsDir),
		catalogState:       catalog.NewState(),
		mapImageJobChan:    make(chan string, 1),
		mapImageResultChan: make(chan mapImageResult, 1),
	}

	g.chartView = ui.NewChartView(content.Income, locale)
	g.shell = dashboard.NewShell(g.modals, func() {
		g.chartView.Rerender()
		g.logger.Debug("income chart rendered")
	})
	g.page = landing.NewPage(pageHeight, pageElements(len(content.Impact)))
	for i, stat := range content.Impact {
		g.counters[impactID(i)] = counter.New(stat.Count, stat.Suffix, counter.DefaultDuration)
	}

	vp := cfg.Viewport()
	g.mapView = ui.NewMapView(logger.Named("map"), content.Regions, vp.TransitionDuration)
	g.controller = viewport.New(vp, g.mapView, g.mapView)
	g.router = gesture.NewRouter(g.controller)

	g.catalogState.Replace(content.Products)
	g.catalogView = ui.NewCatalogView(logger.Named("catalog"), g.catalogState, g.imageService)

	sim := simulator.New(content.Simulator, locale)
	g.landingForm = ui.NewFormView(logger.Named("simulator"), simulator.NewForm(sim))
	g.dashForm = ui.NewFormView(logger.Named("simulator"), simulator.NewForm(sim))

	go g.mapImageLoader()
	if path := g.imageService.Resolve(cfg.Map.Image); path != "" {
		g.mapImageJobChan <- path
	}

	g.layout()
	return g
}

// Close stops the background loaders.
func (g *Game) Close() {
	close(g.mapImageJobChan)
	g.catalogView.Close()
}

// pollInput gathers all raw input events for the current frame.
func (g *Game) pollInput() gesture.InputState {
	_, wheelY := ebiten.Wheel()
	mx, my := ebiten.CursorPosition()

	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	sort.Slice(g.touchIDs, func(i, j int) bool { return g.touchIDs[i] < g.touchIDs[j] })
	touches := make([]gesture.Touch, 0, len(g.touchIDs))
	for _, id := range g.touchIDs {
		x, y := ebiten.TouchPosition(id)
		touches = append(touches, gesture.Touch{ID: int(id), X: float64(x), Y: float64(y)})
	}

	return gesture.InputState{
		Quit:             inpututil.IsKeyJustPressed(ebiten.KeyQ),
		ToggleFullscreen: inpututil.IsKeyJustPressed(ebiten.KeyF11),
		Escape:           inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		ZoomInKey:        inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd),
		ZoomOutKey:       inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract),
		ResetKey:         inpututil.IsKeyJustPressed(ebiten.KeyDigit0) || inpututil.IsKeyJustPressed(ebiten.KeyNumpad0),

		WheelY:         wheelY,
		LeftClickStart: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		LeftHeld:       ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		MouseX:         float64(mx),
		MouseY:         float64(my),
		Touches:        touches,
	}
}

// tap returns the position of a single finger that touched down this frame.
func (g *Game) tap(in gesture.InputState) (float64, float64, bool) {
	if len(in.Touches) != 1 {
		return 0, 0, false
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		if int(id) == in.Touches[0].ID {
			return in.Touches[0].X, in.Touches[0].Y, true
		}
	}
	return 0, 0, false
}

func (g *Game) Update() error {
	// Deallocate a backdrop replaced in the previous frame, once Draw no longer uses it.
	if g.imageToDeallocate != nil {
		g.imageToDeallocate.Deallocate()
		g.imageToDeallocate = nil
	}

	input := g.pollInput()
	now := g.clock()

	if input.Quit {
		return ebiten.Termination
	}
	if input.ToggleFullscreen {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if input.Escape {
		g.modals.CloseAllOnEscape()
		g.page.CloseMenu()
	}

	g.modals.Update(now)
	g.page.Update(now)
	g.layout()
	g.shell.Update(now)
	g.receiveMapImage()
	g.catalogView.Update()

	switch g.shell.View() {
	case dashboard.ViewLanding:
		g.updateLanding(input, now)
	case dashboard.ViewDashboard:
		g.updateDashboard(input, now)
	}
	return nil
}

func (g *Game) updateLanding(input gesture.InputState, now time.Time) {
	// Dialogs, the mobile menu and the fixed header sit above the map.
	routed := input
	if g.modals.ScrollLocked() || g.page.MenuOpen() || input.MouseY < headerHeight {
		routed.LeftClickStart = false
		routed.WheelY = 0
		routed.ZoomInKey, routed.ZoomOutKey, routed.ResetKey = false, false, false
	}
	if g.modals.ScrollLocked() || g.page.MenuOpen() {
		routed.Touches = nil
	}
	res := g.router.Handle(routed)

	if input.WheelY != 0 && !res.WheelConsumed {
		g.page.Scroll(-input.WheelY*wheelScrollStep, g.modals.ScrollLocked())
	}
	if res.FrameClicked {
		if r, ok := g.mapView.Select(input.MouseX, input.MouseY); ok {
			g.logger.Info("map region selected", zap.String("region", r.ID))
		}
	}
	if input.LeftClickStart && !res.ButtonClicked && !res.FrameClicked {
		g.clickLanding(input.MouseX, input.MouseY, now)
	}
	if x, y, ok := g.tap(input); ok {
		if routed.Touches != nil && g.mapView.Frame().Contains(x, y) {
			if !res.ButtonClicked {
				g.mapView.Select(x, y)
			}
		} else {
			g.clickLanding(x, y, now)
		}
	}

	_, started := g.page.Observe(now)
	for _, id := range started {
		if a, ok := g.counters[id]; ok {
			a.Start(now)
		}
	}
}

func (g *Game) updateDashboard(input gesture.InputState, now time.Time) {
	x, y, clicked := input.MouseX, input.MouseY, input.LeftClickStart
	if tx, ty, ok := g.tap(input); ok {
		x, y, clicked = tx, ty, true
	}
	if !clicked {
		return
	}
	for _, a := range g.dashboardActions() {
		if a.Hit(x, y) {
			a.run(now)
			return
		}
	}
	if g.shell.IsVisible(dashboard.TabSimulator) {
		g.dashForm.Click(x, y, now)
	}
}

// clickLanding dispatches a click that the map did not consume.
func (g *Game) clickLanding(x, y float64, now time.Time) {
	if g.modals.ScrollLocked() {
		g.clickModal(x, y, now)
		return
	}
	for _, a := range g.headerActions() {
		if a.Hit(x, y) {
			a.run(now)
			return
		}
	}
	if g.page.MenuOpen() {
		for _, a := range g.menuActions() {
			if a.Hit(x, y) {
				a.run(now)
				return
			}
		}
		g.page.CloseMenu()
		return
	}
	if y < headerHeight {
		return
	}
	for _, a := range g.pageActions() {
		if a.Hit(x, y) {
			a.run(now)
			return
		}
	}
	if p, ok := g.catalogView.Click(x, y); ok {
		g.selected = p
		g.modals.Open(modal.Detail)
		return
	}
	g.landingForm.Click(x, y, now)
}

func (g *Game) clickModal(x, y float64, now time.Time) {
	for _, id := range g.modals.Active() {
		if !modalBox(g.width, g.height).Contains(x, y) {
			g.modals.CloseOverlay(id)
			continue
		}
		for _, a := range g.modalActions(id) {
			if a.Hit(x, y) {
				a.run(now)
				return
			}
		}
	}
}

// mapImageLoader is a background worker that decodes the map backdrop.
func (g *Game) mapImageLoader() {
	for path := range g.mapImageJobChan {
		if info, err := g.imageService.GetImageInfo(path); err == nil {
			g.logger.Debug("map backdrop",
				zap.String("path", path),
				zap.Int("width", info.Width),
				zap.Int("height", info.Height),
				zap.String("format", info.Format))
		}
		img, err := g.imageService.LoadImage(path)
		g.mapImageResultChan <- mapImageResult{img: img, path: path, err: err}
	}
}

// receiveMapImage moves a decoded backdrop onto the GPU. Ebiten images are
// created on the main thread only.
func (g *Game) receiveMapImage() {
	select {
	case result := <-g.mapImageResultChan:
		if result.err != nil {
			g.logger.Warn("map backdrop unavailable, drawing outline",
				zap.String("path", result.path), zap.Error(result.err))
			return
		}
		if old := g.mapView.SetBackdrop(ebiten.NewImageFromImage(result.img)); old != nil {
			g.imageToDeallocate = old
		}
	default:
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	// 1:1 pixel mapping; every view lays itself out from the window size.
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func impactID(i int) string {
	return fmt.Sprintf("impact-%d", i)
}
