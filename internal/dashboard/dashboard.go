// Package dashboard switches between the public landing view and the
// post-login dashboard, and tracks which dashboard tab is showing.
package dashboard

import "time"

// View is the top-level screen.
type View int

const (
	ViewLanding View = iota
	ViewDashboard
)

func (v View) String() string {
	if v == ViewDashboard {
		return "dashboard"
	}
	return "landing"
}

// Dashboard tab ids.
const (
	TabOverview     = "dash-overview"
	TabProducts     = "dash-products"
	TabSimulator    = "dash-simulator"
	TabTraceability = "dash-traceability"
)

// Tabs lists the dashboard tabs in sidebar order.
var Tabs = []string{TabOverview, TabProducts, TabSimulator, TabTraceability}

const (
	// MobileBreakpoint is the widest window that closes the sidebar after navigation.
	MobileBreakpoint = 768

	loginChartDelay = 300 * time.Millisecond
	tabChartDelay   = 100 * time.Millisecond
)

// ModalCloser closes every open dialog.
type ModalCloser interface {
	CloseAll()
}

// Shell owns the landing/dashboard switch. It never authenticates: Login is a view change.
type Shell struct {
	view        View
	activeTab   string
	sidebarOpen bool
	modals      ModalCloser

	// renderChart is called when the overview chart must be rebuilt.
	renderChart func()
	chartDue    time.Time
	chartQueued bool
}

// NewShell starts on the landing view.
func NewShell(modals ModalCloser, renderChart func()) *Shell {
	return &Shell{
		view:        ViewLanding,
		activeTab:   TabOverview,
		modals:      modals,
		renderChart: renderChart,
	}
}

// View returns the current top-level screen.
func (s *Shell) View() View { return s.view }

// ActiveTab returns the visible dashboard tab.
func (s *Shell) ActiveTab() string { return s.activeTab }

// SidebarOpen reports whether the mobile sidebar is expanded.
func (s *Shell) SidebarOpen() bool { return s.sidebarOpen }

// Login closes all dialogs, shows the dashboard on its overview tab and
// schedules a chart render once the view has settled.
func (s *Shell) Login(now time.Time) {
	if s.modals != nil {
		s.modals.CloseAll()
	}
	s.view = ViewDashboard
	s.activeTab = TabOverview
	s.scheduleChart(now.Add(loginChartDelay))
}

// Logout returns to the landing view and collapses the sidebar.
func (s *Shell) Logout() {
	s.view = ViewLanding
	s.sidebarOpen = false
	s.chartQueued = false
}

// Activate shows one tab. Unknown tabs hide every panel, as the original
// markup would. Narrow windows collapse the sidebar after navigating.
func (s *Shell) Activate(tabID string, windowWidth int, now time.Time) {
	s.activeTab = tabID
	if windowWidth <= MobileBreakpoint {
		s.sidebarOpen = false
	}
	if tabID == TabOverview {
		s.scheduleChart(now.Add(tabChartDelay))
	}
}

// IsVisible reports whether a tab panel is showing.
func (s *Shell) IsVisible(tabID string) bool {
	return s.view == ViewDashboard && s.activeTab == tabID
}

// ToggleSidebar expands or collapses the mobile sidebar.
func (s *Shell) ToggleSidebar() {
	s.sidebarOpen = !s.sidebarOpen
}

// Update fires a due chart render. The chart is only rebuilt while the overview is visible.
func (s *Shell) Update(now time.Time) {
	if !s.chartQueued || now.Before(s.chartDue) {
		return
	}
	s.chartQueued = false
	if s.IsVisible(TabOverview) && s.renderChart != nil {
		s.renderChart()
	}
}

func (s *Shell) scheduleChart(at time.Time) {
	s.chartDue = at
	s.chartQueued = true
}
