// Package constraint implements pointer-constraint activation and the
// per-motion confine/lock logic: at most one active constraint at a
// time, applied only while the constraining surface also holds keyboard
// focus.
package constraint

import "driftwl/internal/wlr"

// Type distinguishes a confine constraint (clamp motion into a region)
// from a locked one (swallow motion entirely).
type Type uint8

const (
	Confine Type = iota
	Locked
)

// Constraint is a single pointer-constraint request, scoped to the
// surface that created it.
type Constraint struct {
	Surface wlr.Handle
	Type    Type
	Region  Region
}

// Region confines a proposed motion from (sx, sy) to (sx+dx, sy+dy) into
// the constraint's region, matching wlr_region_confine. ok is false if
// the destination point needs no clamping.
type Region interface {
	Confine(sx, sy, dx, dy float64) (nx, ny float64, ok bool)
}

// Manager tracks the single active pointer constraint, matching
// server->pointer.active_constraint.
type Manager struct {
	active *Constraint
}

// Active returns the currently active constraint, or nil.
func (m *Manager) Active() *Constraint { return m.active }

// Notify sends the activated/deactivated protocol event for c.
type Notify func(c *Constraint, activated bool)

// Activate deactivates whatever constraint is currently active (if any),
// then activates c.
func (m *Manager) Activate(c *Constraint, notify Notify) {
	if m.active != nil {
		notify(m.active, false)
	}
	m.active = c
	notify(c, true)
}

// Deactivate clears c if it is the active constraint and notifies. A
// no-op if c is not active.
func (m *Manager) Deactivate(c *Constraint, notify Notify) {
	if m.active != c {
		return
	}
	m.active = nil
	notify(c, false)
}

// MotionResult is the outcome of applying the active constraint to one
// pointer-motion event.
type MotionResult struct {
	DX, DY  float64
	Swallow bool // a Locked constraint consumed the motion entirely
}

// ApplyMotion applies the active constraint, if any, to one pointer-
// motion event. active is nil, or the constraint for the surface under
// pointer focus; focusMatches
// reports whether that surface is also the keyboard-focused one (a
// constraint only applies to the focused surface). sx, sy are the
// pre-motion surface-local coordinates; dx, dy the proposed delta.
func ApplyMotion(active *Constraint, focusMatches bool, sx, sy, dx, dy float64) MotionResult {
	if active == nil || !focusMatches {
		return MotionResult{DX: dx, DY: dy}
	}

	if nx, ny, ok := active.Region.Confine(sx, sy, sx+dx, sy+dy); ok {
		dx = nx - sx
		dy = ny - sy
	}

	if active.Type == Locked {
		return MotionResult{Swallow: true}
	}
	return MotionResult{DX: dx, DY: dy}
}

// ShouldEmitRelative reports whether a relative-pointer-motion event
// should be sent: emitted before confinement, and only when pointer and
// keyboard focus coincide.
func ShouldEmitRelative(focusMatches bool) bool { return focusMatches }
