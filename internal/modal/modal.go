// Package modal tracks which overlay dialogs are open.
package modal

import (
	"sort"
	"time"
)

// Well-known dialog ids.
const (
	Login    = "login-modal"
	Register = "register-modal"
	Detail   = "detail-modal"
)

// SwitchDelay is the pause between closing one dialog and opening the next.
const SwitchDelay = 200 * time.Millisecond

type pending struct {
	id string
	at time.Time
}

// Manager opens and closes registered dialogs. While any dialog is open the
// page behind it does not scroll.
type Manager struct {
	known   map[string]bool
	open    map[string]bool
	pending *pending
}

// NewManager registers the given dialog ids. Operations on other ids are ignored.
func NewManager(ids ...string) *Manager {
	m := &Manager{known: map[string]bool{}, open: map[string]bool{}}
	for _, id := range ids {
		m.known[id] = true
	}
	return m
}

// Open shows a dialog.
func (m *Manager) Open(id string) {
	if !m.known[id] {
		return
	}
	m.open[id] = true
}

// Close hides a dialog.
func (m *Manager) Close(id string) {
	if !m.known[id] {
		return
	}
	delete(m.open, id)
}

// CloseOverlay handles a click on the dark backdrop of a dialog. Clicks that
// land on the dialog body must not be routed here.
func (m *Manager) CloseOverlay(id string) {
	m.Close(id)
}

// Switch closes from immediately and opens to once SwitchDelay has passed.
func (m *Manager) Switch(from, to string, now time.Time) {
	m.Close(from)
	if !m.known[to] {
		return
	}
	m.pending = &pending{id: to, at: now.Add(SwitchDelay)}
}

// Update delivers a pending switch whose delay has elapsed.
func (m *Manager) Update(now time.Time) {
	if m.pending == nil || now.Before(m.pending.at) {
		return
	}
	m.Open(m.pending.id)
	m.pending = nil
}

// CloseAll hides every dialog and drops any pending switch.
func (m *Manager) CloseAll() {
	m.open = map[string]bool{}
	m.pending = nil
}

// CloseAllOnEscape is the Escape key handler. It hides the open dialogs
// but leaves a pending switch running, so the target still opens once its
// delay elapses.
func (m *Manager) CloseAllOnEscape() {
	m.open = map[string]bool{}
}

// IsOpen reports whether a dialog is visible.
func (m *Manager) IsOpen(id string) bool {
	return m.open[id]
}

// Active returns the open dialog ids in sorted order.
func (m *Manager) Active() []string {
	ids := make([]string, 0, len(m.open))
	for id := range m.open {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ScrollLocked reports whether the page behind the dialogs must stay still.
func (m *Manager) ScrollLocked() bool {
	return len(m.open) > 0
}
