package main

import (
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/wari-market/wari/internal/chart"
	"github.com/wari-market/wari/internal/dashboard"
	"github.com/wari-market/wari/internal/gesture"
	"github.com/wari-market/wari/internal/landing"
	"github.com/wari-market/wari/internal/modal"
	"github.com/wari-market/wari/internal/ui"
)

const (
	headerHeight    = 64
	wheelScrollStep = 60
	pageHeight      = 3100
	sectionTitleH   = 70
	contentMaxWidth = 1120
	sidebarWidth    = 220
	impactCardTop   = 620
	impactCardH     = 160
	menuItemHeight  = 44
)

type section struct {
	id, title   string
	top, height float64
}

// Landing page sections, in page coordinates.
var sections = []section{
	{"inicio", "", 0, 520},
	{"impacto", "Nuestro impacto", 520, 380},
	{"catalogo", "Catalogo de algodon nativo", 900, 800},
	{"mapa", "Mapa de produccion", 1700, 600},
	{"simulador", "Simulador de cosecha", 2300, 500},
	{"contacto", "Unete a WARI", 2800, 300},
}

var navItems = []struct{ label, anchor string }{
	{"Impacto", "impacto"},
	{"Catalogo", "catalogo"},
	{"Mapa", "mapa"},
	{"Simulador", "simulador"},
	{"Contacto", "contacto"},
}

var tabLabels = map[string]string{
	dashboard.TabOverview:     "Resumen",
	dashboard.TabProducts:     "Mis productos",
	dashboard.TabSimulator:    "Simulador",
	dashboard.TabTraceability: "Trazabilidad",
}

func sectionTop(id string) float64 {
	for _, s := range sections {
		if s.id == id {
			return s.top
		}
	}
	return 0
}

func pageElements(impactCount int) []landing.Element {
	els := make([]landing.Element, 0, len(sections)+impactCount)
	for _, s := range sections {
		els = append(els, landing.Element{ID: s.id, Top: s.top, Height: s.height})
	}
	for i := 0; i < impactCount; i++ {
		els = append(els, landing.Element{ID: impactID(i), Top: impactCardTop, Height: impactCardH, Counter: true})
	}
	return els
}

// action is a button together with what a click on it does.
type action struct {
	ui.Button
	run func(now time.Time)
}

func (g *Game) mobile() bool {
	return g.width <= dashboard.MobileBreakpoint
}

// contentColumn returns the horizontal span of the centered page content.
func (g *Game) contentColumn() (x, w float64) {
	w = math.Min(float64(g.width)-80, contentMaxWidth)
	if w < 200 {
		w = float64(g.width) - 20
	}
	return (float64(g.width) - w) / 2, w
}

// dashMain returns the horizontal span of the dashboard panel.
func (g *Game) dashMain() (x, w float64) {
	x = 24
	if !g.mobile() {
		x += sidebarWidth
	}
	return x, float64(g.width) - x - 24
}

// layout places every widget for the current scroll offset and window size.
func (g *Game) layout() {
	g.page.SetViewport(float64(g.height))
	x, w := g.contentColumn()
	top := func(id string) float64 { return g.page.ToScreen(sectionTop(id) + sectionTitleH) }

	g.catalogView.SetArea(gesture.Rect{X: x, Y: top("catalogo"), W: w, H: 700})
	g.mapView.SetFrame(gesture.Rect{X: x, Y: top("mapa"), W: w, H: 460})
	g.router.SetLayout(g.mapView.Layout())
	g.landingForm.SetArea(gesture.Rect{X: x, Y: top("simulador"), W: math.Min(w, 640), H: 320})

	mx, mw := g.dashMain()
	g.chartView.SetArea(gesture.Rect{X: mx, Y: headerHeight + 200, W: mw, H: 300})
	g.dashForm.SetArea(gesture.Rect{X: mx, Y: headerHeight + 70, W: math.Min(mw, 640), H: 320})
}

func (g *Game) scrollToTopNow() {
	g.page.Scroll(-g.page.ScrollY(), false)
}

func (g *Game) login(now time.Time) {
	g.shell.Login(now)
	g.scrollToTopNow()
	g.logger.Info("view changed", zap.Stringer("view", g.shell.View()))
}

func (g *Game) headerActions() []action {
	acts := []action{{
		Button: ui.Button{Rect: gesture.Rect{X: 16, Y: 16, W: 80, H: 32}, Label: "WARI", Flat: true},
		run:    g.page.ScrollToTop,
	}}
	right := float64(g.width) - 16
	if g.mobile() {
		return append(acts, action{
			Button: ui.Button{Rect: gesture.Rect{X: right - 40, Y: 16, W: 40, H: 32}, Label: "="},
			run:    func(time.Time) { g.page.ToggleMenu() },
		})
	}

	x := 120.0
	for _, item := range navItems {
		anchor := item.anchor
		w := ui.TextWidth(item.label) + 24
		acts = append(acts, action{
			Button: ui.Button{Rect: gesture.Rect{X: x, Y: 16, W: w, H: 32}, Label: item.label, Flat: true},
			run:    func(now time.Time) { g.page.ScrollTo(anchor, now) },
		})
		x += w
	}
	return append(acts,
		action{
			Button: ui.Button{Rect: gesture.Rect{X: right - 230, Y: 14, W: 100, H: 36}, Label: "Ingresar"},
			run:    func(time.Time) { g.modals.Open(modal.Login) },
		},
		action{
			Button: ui.Button{Rect: gesture.Rect{X: right - 120, Y: 14, W: 120, H: 36}, Label: "Registrarse", Primary: true},
			run:    func(time.Time) { g.modals.Open(modal.Register) },
		},
	)
}

func (g *Game) menuActions() []action {
	var acts []action
	y := float64(headerHeight)
	row := func(label string) ui.Button {
		b := ui.Button{Rect: gesture.Rect{X: 0, Y: y, W: float64(g.width), H: menuItemHeight}, Label: label, Flat: true}
		y += menuItemHeight
		return b
	}
	for _, item := range navItems {
		anchor := item.anchor
		acts = append(acts, action{Button: row(item.label), run: func(now time.Time) {
			g.page.ScrollTo(anchor, now)
			g.page.CloseMenu()
		}})
	}
	acts = append(acts, action{Button: row("Ingresar"), run: func(time.Time) {
		g.page.CloseMenu()
		g.modals.Open(modal.Login)
	}})
	return acts
}

func (g *Game) pageActions() []action {
	x, _ := g.contentColumn()
	hero := g.page.ToScreen(340)
	cta := g.page.ToScreen(sectionTop("contacto") + 180)
	return []action{
		{
			Button: ui.Button{Rect: gesture.Rect{X: x, Y: hero, W: 170, H: 44}, Label: "Ver catalogo", Primary: true},
			run:    func(now time.Time) { g.page.ScrollTo("catalogo", now) },
		},
		{
			Button: ui.Button{Rect: gesture.Rect{X: x + 186, Y: hero, W: 170, H: 44}, Label: "Soy productor"},
			run:    func(time.Time) { g.modals.Open(modal.Register) },
		},
		{
			Button: ui.Button{Rect: gesture.Rect{X: x, Y: cta, W: 170, H: 44}, Label: "Crear cuenta"},
			run:    func(time.Time) { g.modals.Open(modal.Register) },
		},
	}
}

func modalBox(width, height int) gesture.Rect {
	w, h := 420.0, 340.0
	return gesture.Rect{X: (float64(width) - w) / 2, Y: (float64(height) - h) / 2, W: w, H: h}
}

func (g *Game) modalActions(id string) []action {
	box := modalBox(g.width, g.height)
	primary := gesture.Rect{X: box.X + 24, Y: box.Y + box.H - 104, W: box.W - 48, H: 40}
	secondary := gesture.Rect{X: box.X + 24, Y: box.Y + box.H - 56, W: box.W - 48, H: 32}
	acts := []action{{
		Button: ui.Button{Rect: gesture.Rect{X: box.X + box.W - 40, Y: box.Y + 12, W: 28, H: 28}, Label: "x", Flat: true},
		run:    func(time.Time) { g.modals.Close(id) },
	}}
	switch id {
	case modal.Login:
		acts = append(acts,
			action{Button: ui.Button{Rect: primary, Label: "Ingresar", Primary: true}, run: g.login},
			action{
				Button: ui.Button{Rect: secondary, Label: "Crear una cuenta", Flat: true},
				run:    func(now time.Time) { g.modals.Switch(modal.Login, modal.Register, now) },
			})
	case modal.Register:
		acts = append(acts,
			action{Button: ui.Button{Rect: primary, Label: "Registrarme", Primary: true}, run: g.login},
			action{
				Button: ui.Button{Rect: secondary, Label: "Ya tengo cuenta", Flat: true},
				run:    func(now time.Time) { g.modals.Switch(modal.Register, modal.Login, now) },
			})
	case modal.Detail:
		acts = append(acts,
			action{
				Button: ui.Button{Rect: primary, Label: "Solicitar cotizacion", Primary: true},
				run:    func(now time.Time) { g.modals.Switch(modal.Detail, modal.Login, now) },
			},
			action{Button: ui.Button{Rect: secondary, Label: "Cerrar", Flat: true}, run: func(time.Time) { g.modals.Close(modal.Detail) }})
	}
	return acts
}

func (g *Game) dashboardActions() []action {
	var acts []action
	if g.mobile() {
		acts = append(acts, action{
			Button: ui.Button{Rect: gesture.Rect{X: float64(g.width) - 56, Y: 16, W: 40, H: 32}, Label: "="},
			run:    func(time.Time) { g.shell.ToggleSidebar() },
		})
	}
	if g.mobile() && !g.shell.SidebarOpen() {
		return acts
	}
	y := float64(headerHeight + 24)
	for _, tab := range dashboard.Tabs {
		acts = append(acts, action{
			Button: ui.Button{
				Rect:    gesture.Rect{X: 12, Y: y, W: sidebarWidth - 24, H: 40},
				Label:   tabLabels[tab],
				Primary: g.shell.ActiveTab() == tab,
			},
			run: func(now time.Time) { g.shell.Activate(tab, g.width, now) },
		})
		y += 52
	}
	return append(acts, action{
		Button: ui.Button{Rect: gesture.Rect{X: 12, Y: float64(g.height) - 64, W: sidebarWidth - 24, H: 40}, Label: "Cerrar sesion"},
		run: func(time.Time) {
			g.shell.Logout()
			g.scrollToTopNow()
			g.logger.Info("view changed", zap.Stringer("view", g.shell.View()))
		},
	})
}

func (g *Game) Draw(screen *ebiten.Image) {
	now := g.clock()
	screen.Fill(ui.ColorWhite)
	if g.shell.View() == dashboard.ViewDashboard {
		g.drawDashboard(screen, now)
		return
	}
	g.drawLanding(screen, now)
}

func (g *Game) drawLanding(screen *ebiten.Image, now time.Time) {
	x, w := g.contentColumn()
	width := float64(g.width)

	ui.FillRect(screen, gesture.Rect{Y: g.page.ToScreen(0), W: width, H: 520}, ui.ColorGreenDark)
	ui.Text(screen, "Algodon nativo peruano, directo de quien lo cultiva", x, g.page.ToScreen(200), ui.ColorWhite)
	ui.Text(screen, "Pardo, crema y fifo de Lambayeque, Piura, San Martin e Ica.", x, g.page.ToScreen(240), ui.ColorCream)

	for _, s := range sections {
		if s.title == "" {
			continue
		}
		alpha := g.page.RevealProgress(s.id, now)
		ui.Text(screen, s.title, x, g.page.ToScreen(s.top+28), ui.Fade(ui.ColorDark, alpha))
	}

	n := len(g.content.Impact)
	if n > 0 {
		cw := (w - float64(n-1)*20) / float64(n)
		for i, stat := range g.content.Impact {
			r := gesture.Rect{X: x + float64(i)*(cw+20), Y: g.page.ToScreen(impactCardTop), W: cw, H: impactCardH}
			ui.Panel(screen, r)
			ui.TextCentered(screen, g.counters[impactID(i)].Text(now), gesture.Rect{X: r.X, Y: r.Y + 30, W: r.W, H: 40}, ui.ColorTerracotta)
			ui.TextCentered(screen, stat.Label, gesture.Rect{X: r.X, Y: r.Y + 90, W: r.W, H: 30}, ui.ColorGrey)
		}
	}

	g.catalogView.Draw(screen)
	g.mapView.Draw(screen, now)
	g.landingForm.Draw(screen, now)

	cta := gesture.Rect{Y: g.page.ToScreen(sectionTop("contacto") + 60), W: width, H: 200}
	ui.FillRect(screen, cta, ui.ColorCream)
	ui.Text(screen, "Vende tu algodon nativo a marcas que valoran su origen.", x, cta.Y+70, ui.ColorDark)

	for _, a := range g.pageActions() {
		a.Draw(screen)
	}

	ui.FillRect(screen, gesture.Rect{W: width, H: headerHeight}, ui.ColorWhite)
	if g.page.HeaderScrolled() {
		ui.FillRect(screen, gesture.Rect{Y: headerHeight, W: width, H: 4}, ui.ColorShadow)
	}
	for _, a := range g.headerActions() {
		a.Draw(screen)
	}
	if g.page.MenuOpen() {
		acts := g.menuActions()
		ui.FillRect(screen, gesture.Rect{Y: headerHeight, W: width, H: float64(len(acts) * menuItemHeight)}, ui.ColorCream)
		for _, a := range acts {
			a.Draw(screen)
		}
	}

	g.drawModals(screen)
}

func (g *Game) drawModals(screen *ebiten.Image) {
	for _, id := range g.modals.Active() {
		ui.FillRect(screen, gesture.Rect{W: float64(g.width), H: float64(g.height)}, ui.ColorOverlay)
		box := modalBox(g.width, g.height)
		ui.Panel(screen, box)

		var lines []string
		switch id {
		case modal.Login:
			lines = []string{"Iniciar sesion", "", "Correo electronico", "Contrasena"}
		case modal.Register:
			lines = []string{"Crear cuenta", "", "Nombre completo", "Correo electronico", "Region de cultivo"}
		case modal.Detail:
			p := g.selected
			lines = []string{
				p.Name,
				"",
				"Origen: " + p.Origin,
				"Color: " + p.Color,
				"Calidad: " + p.Quality,
				fmt.Sprintf("Precio: S/ %g por kg", p.PricePerKg),
			}
		}
		for i, line := range lines {
			clr := ui.ColorGrey
			if i == 0 {
				clr = ui.ColorDark
			}
			ui.Text(screen, line, box.X+24, box.Y+20+float64(i*ui.LineHeight), clr)
		}
		for _, a := range g.modalActions(id) {
			a.Draw(screen)
		}
	}
}

func (g *Game) drawDashboard(screen *ebiten.Image, now time.Time) {
	width := float64(g.width)
	mx, mw := g.dashMain()

	switch g.shell.ActiveTab() {
	case dashboard.TabOverview:
		g.drawOverview(screen, mx, mw)
	case dashboard.TabProducts:
		ui.Text(screen, "Mis productos", mx, headerHeight+24, ui.ColorDark)
		for i, p := range g.content.Products {
			y := headerHeight + 60 + float64(i)*32
			ui.Text(screen, p.Name, mx, y, ui.ColorDark)
			ui.Text(screen, p.Origin+" / "+p.Quality, mx+260, y, ui.ColorGrey)
			ui.Text(screen, fmt.Sprintf("S/ %g /kg", p.PricePerKg), mx+480, y, ui.ColorTerracotta)
		}
	case dashboard.TabSimulator:
		ui.Text(screen, "Simulador de cosecha", mx, headerHeight+24, ui.ColorDark)
		g.dashForm.Draw(screen, now)
	case dashboard.TabTraceability:
		ui.Text(screen, "Trazabilidad de lotes", mx, headerHeight+24, ui.ColorDark)
		for i, r := range g.content.Regions {
			y := headerHeight + 60 + float64(i)*32
			ui.Text(screen, fmt.Sprintf("Lote %s-%02d", r.ID, i+1), mx, y, ui.ColorDark)
			ui.Text(screen, r.Name+": cosecha > desmotado > hilado", mx+200, y, ui.ColorGrey)
		}
	}

	if !g.mobile() || g.shell.SidebarOpen() {
		ui.FillRect(screen, gesture.Rect{Y: headerHeight, W: sidebarWidth, H: float64(g.height) - headerHeight}, ui.ColorGreenDark)
	}
	ui.FillRect(screen, gesture.Rect{W: width, H: headerHeight}, ui.ColorWhite)
	ui.FillRect(screen, gesture.Rect{Y: headerHeight, W: width, H: 4}, ui.ColorShadow)
	ui.Text(screen, "WARI  Panel del productor", 16, 24, ui.ColorDark)
	for _, a := range g.dashboardActions() {
		a.Draw(screen)
	}
}

func (g *Game) drawOverview(screen *ebiten.Image, x, w float64) {
	values := g.content.Income.Values
	var total, last float64
	for _, v := range values {
		total += v
	}
	if len(values) > 0 {
		last = values[len(values)-1]
	}
	stats := []struct{ label, value string }{
		{"Ingresos del semestre", chart.TooltipLabel(total, g.locale)},
		{"Ultimo mes", chart.TooltipLabel(last, g.locale)},
		{"Productos publicados", fmt.Sprint(len(g.content.Products))},
	}
	cw := (w - float64(len(stats)-1)*20) / float64(len(stats))
	for i, s := range stats {
		r := gesture.Rect{X: x + float64(i)*(cw+20), Y: headerHeight + 24, W: cw, H: 100}
		ui.Panel(screen, r)
		ui.Text(screen, s.label, r.X+16, r.Y+20, ui.ColorGrey)
		ui.Text(screen, s.value, r.X+16, r.Y+52, ui.ColorTerracotta)
	}

	mx, my := ebiten.CursorPosition()
	g.chartView.Draw(screen, float64(mx), float64(my))
}
