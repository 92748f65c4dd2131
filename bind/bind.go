// Package bind implements a chord-based binding engine: parsing symbolic
// chords, storing binds sorted by descending modifier popcount so the
// most specific chord wins, and matching an incoming (modifiers, action,
// released) tuple against the table.
package bind

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Modifiers is a bitset of held modifier keys, with a fixed "Mod"
// (gesture modifier) slot added as a first-class chord part.
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModShift
	ModAlt
	ModSuper
	ModGesture // the configured gesture/main modifier
)

// Contain reports whether m holds every modifier in m2.
func (m Modifiers) Contain(m2 Modifiers) bool { return m&m2 == m2 }

func (m Modifiers) popcount() int {
	n := 0
	for m != 0 {
		n += int(m & 1)
		m >>= 1
	}
	return n
}

// Action is either a key symbol name or a scroll direction. Exactly one
// of Key or Scroll is meaningful; ScrollSet reports which.
type Action struct {
	Key       string
	Scroll    ScrollDir
	ScrollSet bool
}

// ScrollDir is one of the four scroll chord parts.
type ScrollDir uint8

const (
	ScrollUp ScrollDir = iota
	ScrollDown
	ScrollLeft
	ScrollRight
)

func (s ScrollDir) String() string {
	switch s {
	case ScrollUp:
		return "ScrollUp"
	case ScrollDown:
		return "ScrollDown"
	case ScrollLeft:
		return "ScrollLeft"
	case ScrollRight:
		return "ScrollRight"
	default:
		return "Scroll?"
	}
}

// Bind is a parsed chord: a modifier set, a trigger action, and whether
// it fires on key release rather than press.
type Bind struct {
	Modifiers Modifiers
	Action    Action
	Released  bool
}

func (b Bind) equalTrigger(o Bind) bool {
	return b.Modifiers == o.Modifiers && b.Action == o.Action && b.Released == o.Released
}

// String renders b back into the chord grammar FromString accepts, so
// that FromString(b.String()) round-trips to an equal Bind.
func (b Bind) String() string {
	var parts []string
	if b.Modifiers.Contain(ModGesture) {
		parts = append(parts, "Mod")
	}
	if b.Modifiers.Contain(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if b.Modifiers.Contain(ModShift) {
		parts = append(parts, "Shift")
	}
	if b.Modifiers.Contain(ModAlt) {
		parts = append(parts, "Alt")
	}
	if b.Modifiers.Contain(ModSuper) {
		parts = append(parts, "Super")
	}
	if b.Action.ScrollSet {
		parts = append(parts, b.Action.Scroll.String())
	} else {
		part := b.Action.Key
		if b.Released {
			part += "^"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "+")
}

func modifierFromString(name string) (Modifiers, bool) {
	switch name {
	case "Mod":
		return ModGesture, true
	case "Ctrl":
		return ModCtrl, true
	case "Shift":
		return ModShift, true
	case "Alt":
		return ModAlt, true
	case "Super":
		return ModSuper, true
	default:
		return 0, false
	}
}

func scrollFromString(name string) (ScrollDir, bool) {
	switch name {
	case "ScrollUp":
		return ScrollUp, true
	case "ScrollDown":
		return ScrollDown, true
	case "ScrollLeft":
		return ScrollLeft, true
	case "ScrollRight":
		return ScrollRight, true
	default:
		return 0, false
	}
}

// FromString parses the chord grammar "PART (+ PART)*" where PART is a
// modifier name, a scroll direction, or a key name optionally suffixed
// with '^' to mark a release binding. Modifier parts must precede the
// trigger action; a modifier after it is rejected.
func FromString(s string) (Bind, error) {
	var b Bind
	hasAction := false

	for _, part := range strings.Split(s, "+") {
		if part == "" {
			continue
		}
		if mod, ok := modifierFromString(part); ok {
			if hasAction {
				return Bind{}, fmt.Errorf("bind %q: modifier %q after trigger action", s, part)
			}
			b.Modifiers |= mod
			continue
		}
		if scroll, ok := scrollFromString(part); ok {
			if hasAction {
				return Bind{}, fmt.Errorf("bind %q: multiple trigger actions", s)
			}
			b.Action = Action{Scroll: scroll, ScrollSet: true}
			hasAction = true
			continue
		}
		if hasAction {
			return Bind{}, fmt.Errorf("bind %q: multiple trigger actions", s)
		}
		released := false
		key := part
		if strings.HasSuffix(key, "^") {
			released = true
			key = key[:len(key)-1]
		}
		if key == "" {
			return Bind{}, fmt.Errorf("bind %q: empty key name", s)
		}
		b.Action = Action{Key: key}
		b.Released = released
		hasAction = true
	}

	if !hasAction {
		return Bind{}, fmt.Errorf("bind %q: no valid trigger action", s)
	}
	return b, nil
}

// CommandBind pairs a Bind with the thunk it triggers.
type CommandBind struct {
	Bind Bind
	Run  func()
}

// Table stores CommandBinds sorted descending by modifier popcount, so
// the most specific chord matches first.
type Table struct {
	binds []CommandBind
}

// Register replaces any existing bind with an equal (modifiers, action,
// released) tuple, appends the new one, and re-sorts.
func (t *Table) Register(cb CommandBind) {
	t.Erase(cb.Bind)
	t.binds = append(t.binds, cb)
	slices.SortFunc(t.binds, func(a, c CommandBind) int {
		return c.Bind.Modifiers.popcount() - a.Bind.Modifiers.popcount()
	})
}

// Erase removes any bind with the same (modifiers, action, released)
// tuple as b.
func (t *Table) Erase(b Bind) {
	t.binds = slices.DeleteFunc(t.binds, func(cb CommandBind) bool {
		return cb.Bind.equalTrigger(b)
	})
}

// Len reports how many binds are registered, for tests and diagnostics.
func (t *Table) Len() int { return len(t.binds) }

// Sorted reports whether the table is sorted with non-increasing
// popcount, the invariant Register must maintain after every insert.
func (t *Table) Sorted() bool {
	for i := 1; i < len(t.binds); i++ {
		if t.binds[i-1].Bind.Modifiers.popcount() < t.binds[i].Bind.Modifiers.popcount() {
			return false
		}
	}
	return true
}

// Trigger matches an incoming (modifiers, action, released) tuple against
// the table. A bind matches iff its modifiers are a subset of the input's
// and its action is equal. The first match wins. If the matching bind's
// Released flag differs from the input's, the key is consumed (true is
// returned) but the thunk is not invoked — this prevents the paired edge
// of a release-bound chord from leaking through to whatever a press would
// otherwise do.
func (t *Table) Trigger(modifiers Modifiers, action Action, released bool) (consumed bool) {
	for _, cb := range t.binds {
		if modifiers.Contain(cb.Bind.Modifiers) && cb.Bind.Action == action {
			if cb.Bind.Released != released {
				return true
			}
			cb.Run()
			return true
		}
	}
	return false
}
