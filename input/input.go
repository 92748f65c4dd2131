// Package input implements the interaction state machine: the single
// authoritative mode (passthrough, move, resize, zone, focus_cycle) that
// every pointer button, pointer motion, scroll axis, and key event is
// demultiplexed through.
package input

import (
	"image"

	"driftwl/focus"
	"driftwl/surface"
	"driftwl/zone"
)

// Mode is the server's single interaction state.
type Mode uint8

const (
	ModePassthrough Mode = iota
	ModeMove
	ModeResize
	ModeZone
	ModeFocusCycle
	// modePressed is the transient state between a button press and the
	// gesture determining whether it starts move/resize/close. It is
	// not one of the five modes the caller ever observes: the
	// move/resize decision fires before any motion ever reaches this
	// state, so it is kept unexported and collapses back to
	// ModePassthrough on release.
	modePressed
)

func (m Mode) String() string {
	switch m {
	case ModePassthrough:
		return "passthrough"
	case ModeMove:
		return "move"
	case ModeResize:
		return "resize"
	case ModeZone:
		return "zone"
	case ModeFocusCycle:
		return "focus_cycle"
	case modePressed:
		return "pressed"
	default:
		return "unknown"
	}
}

// Button is a pointer button relevant to gesture dispatch.
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
	ButtonOther
)

// Grab is the move/resize auxiliary record.
type Grab struct {
	Toplevel  *surface.Toplevel
	CursorPos image.Point
	Bounds    image.Rectangle
	Edges     surface.Edges
}

// move computes the new bounds tracking the pointer's delta from the
// grab position directly.
func (g Grab) move(cursorNow image.Point) image.Rectangle {
	return g.Bounds.Add(cursorNow.Sub(g.CursorPos))
}

// resize computes the new bounds: each locked edge's border tracks the
// cursor delta along its axis, clamped so it never crosses the opposite
// (unlocked) edge.
func (g Grab) resize(cursorNow image.Point) image.Rectangle {
	d := cursorNow.Sub(g.CursorPos)
	left, top := g.Bounds.Min.X, g.Bounds.Min.Y
	right, bottom := g.Bounds.Max.X, g.Bounds.Max.Y

	switch {
	case g.Edges&surface.EdgeTop != 0:
		top = min(top+d.Y, bottom-1)
	case g.Edges&surface.EdgeBottom != 0:
		bottom = max(bottom+d.Y, top+1)
	}
	switch {
	case g.Edges&surface.EdgeLeft != 0:
		left = min(left+d.X, right-1)
	case g.Edges&surface.EdgeRight != 0:
		right = max(right+d.X, left+1)
	}
	return image.Rect(left, top, right, bottom)
}

// nineSlice computes the resize edge mask from the cursor's position
// within a 3x3 division of bounds: the outer thirds select an edge, the
// center third selects neither (the caller downgrades to a move).
func nineSlice(cursor image.Point, bounds image.Rectangle) surface.Edges {
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return 0
	}
	sx := ((cursor.X - bounds.Min.X) * 3) / bounds.Dx()
	sy := ((cursor.Y - bounds.Min.Y) * 3) / bounds.Dy()

	var edges surface.Edges
	switch {
	case sx < 1:
		edges |= surface.EdgeLeft
	case sx > 1:
		edges |= surface.EdgeRight
	}
	switch {
	case sy < 1:
		edges |= surface.EdgeTop
	case sy > 1:
		edges |= surface.EdgeBottom
	}
	return edges
}

// ZoneColor distinguishes the selector-rect coloring between the initial
// and selecting phases of a zone drag.
type ZoneColor uint8

const (
	ZoneColorInitial ZoneColor = iota
	ZoneColorSelecting
)

// Host performs every side effect the machine needs: scene/focus
// manipulation, client notification, and modifier/visibility queries. It
// composes focus.CycleHost so the same scene-enabled-bit accessors drive
// both packages.
type Host interface {
	focus.CycleHost

	ToplevelAt(cursor image.Point) (t *surface.Toplevel, ok bool)
	FocusedToplevel() *surface.Toplevel
	Focus(t *surface.Toplevel)
	Unfocus(suppressCursorRefresh bool)
	Bounds(t *surface.Toplevel) image.Rectangle
	SetBounds(t *surface.Toplevel, box image.Rectangle, edges surface.Edges)
	Close(t *surface.Toplevel)
	Interactable(t *surface.Toplevel) bool

	CursorVisible() bool
	MainModDown() bool
	ShiftDown() bool

	// FocusCycleCandidates returns toplevels walked front-to-back, or
	// back-to-front when backward is true (Tab vs. shift-Tab).
	FocusCycleCandidates(backward bool) []*surface.Toplevel

	ZoneWorkarea(cursor image.Point) image.Rectangle
	ZonePreviewShow(color ZoneColor)
	ZonePreviewHide()
	ZonePreviewUpdate(rect image.Rectangle)
	ZoneConfig() zone.Config
}

// Machine drives the interaction state transitions.
type Machine struct {
	Host      Host
	Mode      Mode
	Grab      Grab
	Zone      zone.Selection
	CursorPos image.Point
}

// Reset unwinds whatever mode is active back to passthrough. Leaving
// move/resize/zone/focus_cycle always returns to passthrough before any
// other transition.
func (m *Machine) Reset() {
	switch m.Mode {
	case ModeFocusCycle:
		m.endFocusCycle()
	case ModeZone:
		m.Host.ZonePreviewHide()
	}
	m.Mode = ModePassthrough
	m.Grab = Grab{}
}

func (m *Machine) beginInteractive(t *surface.Toplevel, mode Mode, edges surface.Edges) {
	if !m.Host.Interactable(t) {
		return
	}
	bounds := m.Host.Bounds(t)
	m.Grab = Grab{Toplevel: t, CursorPos: m.CursorPos, Bounds: bounds, Edges: edges}
	m.Mode = mode
}

func (m *Machine) endFocusCycle() {
	selected := focus.End(m.Host.FocusCycleCandidates(false), m.Host)
	if selected != nil {
		m.Host.Focus(selected)
	}
}

// HandleMotion implements process_cursor_motion's mode dispatch: move
// and resize translate the grabbed toplevel's bounds, zone recomputes
// the covered cell. cursorNow is the already-updated absolute pointer
// position. ok is false when the caller should fall through to normal
// pointer routing (passthrough/focus_cycle/pressed).
func (m *Machine) HandleMotion(cursorNow image.Point) (ok bool) {
	m.CursorPos = cursorNow

	switch m.Mode {
	case ModeMove:
		m.Host.SetBounds(m.Grab.Toplevel, m.Grab.move(cursorNow), 0)
		return true
	case ModeResize:
		m.Host.SetBounds(m.Grab.Toplevel, m.Grab.resize(cursorNow), m.Grab.Edges)
		return true
	case ModeZone:
		workarea := m.Host.ZoneWorkarea(cursorNow)
		cfg := m.Host.ZoneConfig()
		if pz, any := zone.PointerZone(cfg, workarea, float64(cursorNow.X), float64(cursorNow.Y)); any {
			zone.Motion(&m.Zone, pz)
			m.Host.ZonePreviewUpdate(zone.Round(m.Zone.Final))
		}
		return true
	default:
		return false
	}
}

// tryZoneButton implements zone_process_cursor_button: called only from
// passthrough or zone mode, before the general move/resize/close
// dispatch. handled reports whether the event was fully consumed here.
func (m *Machine) tryZoneButton(btn Button, pressed bool) (handled bool) {
	switch btn {
	case ButtonLeft:
		if pressed && m.Host.MainModDown() && !m.Host.ShiftDown() && m.Host.CursorVisible() {
			t, ok := m.Host.ToplevelAt(m.CursorPos)
			if !ok {
				return false
			}
			m.Host.Focus(t)
			if !m.Host.Interactable(t) {
				return false
			}
			m.Host.ZonePreviewShow(ZoneColorInitial)
			m.Zone = zone.Selection{Moving: true, Selecting: false}
			m.Mode = ModeZone
			cfg := m.Host.ZoneConfig()
			workarea := m.Host.ZoneWorkarea(m.CursorPos)
			if pz, any := zone.PointerZone(cfg, workarea, float64(m.CursorPos.X), float64(m.CursorPos.Y)); any {
				zone.Motion(&m.Zone, pz)
				m.Host.ZonePreviewUpdate(zone.Round(m.Zone.Final))
			}
			return true
		}
		if m.Zone.Moving {
			if m.Zone.Selecting {
				if t := m.Host.FocusedToplevel(); t != nil {
					m.Host.SetBounds(t, zone.Round(m.Zone.Final), 0)
				}
			}
			m.Host.ZonePreviewHide()
			m.Mode = ModePassthrough
			m.Zone.Moving = false
			return true
		}
	case ButtonRight:
		if m.Zone.Moving {
			if pressed {
				m.Zone.Selecting = !m.Zone.Selecting
				color := ZoneColorInitial
				if m.Zone.Selecting {
					color = ZoneColorSelecting
				}
				m.Host.ZonePreviewShow(color)
			}
			return true
		}
	}
	return false
}

// HandleButton implements server_cursor_button in full: focus-cycle
// interruption, zone interception, release-driven reset, focus-on-press,
// and move/resize/close initiation under the gesture modifier. passToClient
// reports whether the event should still be forwarded to the focused
// client (wlr_seat_pointer_notify_button in the original).
func (m *Machine) HandleButton(btn Button, pressed bool) (passToClient bool) {
	focusCycleInterrupted := pressed && m.Mode == ModeFocusCycle
	if focusCycleInterrupted {
		m.endFocusCycle()
		m.Mode = ModePassthrough
	}

	toplevel, hasToplevel := m.Host.ToplevelAt(m.CursorPos)

	if focusCycleInterrupted && (!hasToplevel || toplevel != m.Host.FocusedToplevel()) {
		m.Host.Unfocus(true)
		return false
	}

	if m.Mode == ModePassthrough || m.Mode == ModeZone {
		if m.tryZoneButton(btn, pressed) {
			return false
		}
	}

	if !pressed {
		m.Reset()
		return true
	}

	if hasToplevel {
		m.Host.Focus(toplevel)
	} else {
		m.Host.Unfocus(false)
	}
	m.Mode = modePressed

	if hasToplevel && m.Host.MainModDown() {
		switch btn {
		case ButtonLeft:
			if m.Host.ShiftDown() {
				if m.Host.CursorVisible() {
					m.beginInteractive(toplevel, ModeMove, 0)
				}
				return false
			}
		case ButtonRight:
			bounds := m.Host.Bounds(toplevel)
			edges := nineSlice(m.CursorPos, bounds)
			mode := ModeResize
			if edges == 0 {
				mode = ModeMove
			}
			if m.Host.CursorVisible() {
				m.beginInteractive(toplevel, mode, edges)
			}
			return false
		case ButtonMiddle:
			if m.Host.CursorVisible() {
				m.Host.Close(toplevel)
			}
			return false
		}
	}

	return true
}

// HandleAxis implements server_cursor_axis's focus-cycle entry/step: a
// vertical scroll under the gesture modifier steps focus_cycle, first
// beginning it when coming from passthrough (so the entering scroll both
// begins and steps). ok reports whether the event was consumed.
func (m *Machine) HandleAxis(verticalDelta float64) (ok bool) {
	if !m.Host.MainModDown() {
		return false
	}
	if !m.Host.CursorVisible() {
		return false
	}

	if m.Mode == ModePassthrough {
		m.beginFocusCycle(&m.CursorPos)
	}
	if m.Mode == ModeFocusCycle {
		focus.Step(m.Host.FocusCycleCandidates(verticalDelta <= 0), &m.CursorPos, m.Host)
	}
	return true
}

// HandleTab implements the Tab/ISO_Left_Tab keyboard branch: stepping
// focus_cycle, first entering it from passthrough (cursor-less, a
// nil-cursor Begin) so the entering Tab both begins and steps.
func (m *Machine) HandleTab(backward bool) {
	if !m.Host.MainModDown() {
		return
	}
	if m.Mode == ModePassthrough {
		m.beginFocusCycle(nil)
	}
	if m.Mode == ModeFocusCycle {
		focus.Step(m.Host.FocusCycleCandidates(backward), nil, m.Host)
	}
}

func (m *Machine) beginFocusCycle(cursor *image.Point) {
	m.Host.Unfocus(false)
	focus.Begin(m.Host.FocusCycleCandidates(false), cursor, m.Host)
	m.Mode = ModeFocusCycle
}

// HandleGestureModRelease implements keyboard_handle_key's focus-cycle
// commit: releasing the gesture modifier while cycling commits the
// current selection and returns to passthrough.
func (m *Machine) HandleGestureModRelease() {
	if m.Mode != ModeFocusCycle {
		return
	}
	m.endFocusCycle()
	m.Mode = ModePassthrough
}
