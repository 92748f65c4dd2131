// Package cursor implements the cursor-visibility chooser: on every
// focus change and every focused-surface (or focused cursor-surface)
// commit, decide whether to show the client's requested cursor surface,
// hide the cursor entirely, or fall back to the default xcursor.
package cursor

import "driftwl/surface"

// Choice is the outcome of Choose.
type Choice uint8

const (
	// ShowSurface displays the client's cursor surface.
	ShowSurface Choice = iota
	// Hidden hides the cursor image entirely.
	Hidden
	// ShowDefault shows the default xcursor theme image.
	ShowDefault
)

// Input is the state Choose needs: whether the focused client (pointer
// focus) equals the keyboard-focused client, and the pointer-focused
// surface's cursor record.
type Input struct {
	Cursor                  surface.Cursor
	PointerAndKeyboardMatch bool
}

// Choose runs the three-step cursor chooser. hasBuffer reports whether a
// cursor surface has a non-zero committed buffer, supplied by the caller
// since buffer state lives in the scene toolkit, not in surface.Cursor.
func Choose(in Input, hasBuffer func(any) bool) Choice {
	if in.Cursor.SurfaceSet {
		if hasBuffer(in.Cursor.Surface) {
			return ShowSurface
		}
		if in.PointerAndKeyboardMatch {
			return Hidden
		}
		return ShowDefault
	}
	return ShowDefault
}

// Visible reports whether c should be treated as a visible cursor
// (gates move/resize/zone/close-under-cursor interaction).
func (c Choice) Visible() bool { return c != Hidden }
