// Package focus implements the keyboard focus manager and focus-cycle
// selection: a single focused surface, reparented between the floating
// and focused scene layers on focus change, plus the front-to-back/
// back-to-front candidate walk used by Tab-cycling.
package focus

import (
	"image"

	"driftwl/surface"
)

// Host performs the scene-graph and protocol side effects a focus change
// requires, keeping this package free of any concrete wlroots type.
type Host interface {
	DeactivateToplevel(t *surface.Toplevel)
	ActivateToplevel(t *surface.Toplevel)
	ReparentToFocusedLayer(t *surface.Toplevel)
	ReparentToFloatingLayer(t *surface.Toplevel)
	RaiseToTop(t *surface.Toplevel)
	SendKeyboardEnter(t *surface.Toplevel)
	RefreshPointerFocus()
	RefreshCursor()
}

// Manager tracks the single focused toplevel.
type Manager struct {
	Host    Host
	current *surface.Toplevel
}

// Current returns the focused toplevel, or nil if none is focused.
func (m *Manager) Current() *surface.Toplevel { return m.current }

// Focus is a no-op if t is already current; otherwise it deactivates the
// previous toplevel, reparents t to the focused layer, activates it,
// sends a keyboard enter, and refreshes pointer focus and cursor state.
func (m *Manager) Focus(t *surface.Toplevel) {
	if t == m.current {
		return
	}
	if m.current != nil {
		m.Host.DeactivateToplevel(m.current)
		m.current.Activated = false
	}
	m.Host.ReparentToFocusedLayer(t)
	m.Host.ActivateToplevel(t)
	t.Activated = true
	m.current = t
	m.Host.SendKeyboardEnter(t)
	m.Host.RefreshPointerFocus()
	m.Host.RefreshCursor()
}

// Unfocus moves the previously focused toplevel back to the floating
// layer and raises it, clears keyboard focus, and refreshes the cursor
// unless suppressCursorRefresh is set (a caller interrupting a focus
// cycle with a press that is itself being dropped sets this).
func (m *Manager) Unfocus(suppressCursorRefresh bool) {
	prev := m.current
	if prev == nil {
		return
	}
	m.Host.DeactivateToplevel(prev)
	prev.Activated = false
	m.Host.ReparentToFloatingLayer(prev)
	m.Host.RaiseToTop(prev)
	m.current = nil
	if !suppressCursorRefresh {
		m.Host.RefreshCursor()
	}
}

// CycleHost exposes the scene-node enabled bit and on-screen bounds of
// each candidate toplevel, without exposing the scene graph itself.
type CycleHost interface {
	Enabled(t *surface.Toplevel) bool
	SetEnabled(t *surface.Toplevel, enabled bool)
	Bounds(t *surface.Toplevel) image.Rectangle
}

func containsCursor(host CycleHost, t *surface.Toplevel, cursor *image.Point) bool {
	return cursor == nil || cursor.In(host.Bounds(t))
}

// Begin starts a focus cycle: the caller is expected to have called
// Manager.Unfocus already, since this package does not depend on
// Manager. It walks candidates front-to-back, enabling exactly the
// first one whose bounds contain cursor (or the first outright if
// cursor is nil) and disabling every other one. Returns the selected
// toplevel, or nil if candidates is empty.
func Begin(candidatesFrontToBack []*surface.Toplevel, cursor *image.Point, host CycleHost) *surface.Toplevel {
	var current *surface.Toplevel
	for _, t := range candidatesFrontToBack {
		newCurrent := current == nil && containsCursor(host, t, cursor)
		host.SetEnabled(t, newCurrent)
		if newCurrent {
			current = t
		}
	}
	return current
}

// Step advances the cycle by one. ordered must already be walked in the
// cycle direction (front-to-back for forward, back-to-front for
// backward). It finds the first enabled candidate among those whose
// bounds contain cursor, selects the next matching candidate after it,
// wrapping to the first match if the enabled candidate is last (or none
// is enabled).
func Step(ordered []*surface.Toplevel, cursor *image.Point, host CycleHost) {
	var first, newActive *surface.Toplevel
	nextIsActive := false

	for _, t := range ordered {
		if !containsCursor(host, t, cursor) {
			continue
		}
		if first == nil {
			first = t
		}
		if nextIsActive {
			newActive = t
			break
		}
		if host.Enabled(t) {
			nextIsActive = true
		}
	}
	if newActive == nil {
		newActive = first
	}

	for _, t := range ordered {
		host.SetEnabled(t, t == newActive)
	}
}

// End re-enables every candidate's scene node, and returns the first one
// found enabled (the current selection) so the caller can Focus and
// raise it.
func End(candidatesFrontToBack []*surface.Toplevel, host CycleHost) *surface.Toplevel {
	var selected *surface.Toplevel
	for _, t := range candidatesFrontToBack {
		if selected == nil && host.Enabled(t) {
			selected = t
		}
		host.SetEnabled(t, true)
	}
	return selected
}
