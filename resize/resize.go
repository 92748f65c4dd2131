// Package resize implements a serial-tracked configure/commit throttle:
// at most one outstanding size request per toplevel; while one is
// outstanding, further resize intents coalesce into Pending rather than
// issuing a second request; anchor preservation keeps a resized window
// pinned to whichever edge the gesture locked.
package resize

import (
	"image"

	"driftwl/surface"
)

// Dialogue is the subset of surface.ResizeDialogue the throttle reads
// and mutates, decoupling this package from the surface package's other
// Toplevel fields.
type Dialogue = surface.ResizeDialogue

// outstanding reports whether a sent request has not yet been matched by
// a commit at or past its serial.
func outstanding(d *Dialogue) bool {
	return d.LastRequestSerial > d.LastCommitSerial
}

// SendFunc issues a new size request to the client and returns the
// serial the compositor assigned it (e.g. xdg_toplevel.configure's
// return value).
type SendFunc func(width, height int) (serial uint32)

// Resize implements toplevel_resize(w, h): if a request is outstanding,
// compare against Pending and coalesce; otherwise send a new request
// immediately and clear Pending. Returns true if a new configure was
// actually sent.
func Resize(d *Dialogue, width, height int, send SendFunc) bool {
	if outstanding(d) {
		if d.Pending == nil || d.Pending.Width != width || d.Pending.Height != height {
			d.Pending = &surface.PendingSize{Width: width, Height: height}
		}
		return false
	}

	if d.Pending != nil && d.Pending.Width == width && d.Pending.Height == height {
		return false
	}

	d.LastRequestSerial = send(width, height)
	d.Pending = nil
	return true
}

// Commit advances LastCommitSerial, and if the dialogue is now synced
// (commit caught up to the last request) and a resize coalesced while we
// waited, issues it.
func Commit(d *Dialogue, serial uint32, send SendFunc) {
	d.LastCommitSerial = serial
	if outstanding(d) {
		return
	}
	if d.Pending != nil {
		pending := *d.Pending
		d.LastRequestSerial = send(pending.Width, pending.Height)
		d.Pending = nil
	}
}

// Anchor is the point a bounds change pins in place: the corner of box
// identified by lockedEdges, so that a commit whose geometry differs
// from the requested size leaves that corner fixed.
type Anchor struct {
	X, Y  int
	Edges surface.Edges
}

// SetBounds computes the Anchor for box under lockedEdges: the anchor X
// is box's right edge when EdgeRight is locked, else its left edge (and
// symmetrically for Y).
func SetBounds(box image.Rectangle, lockedEdges surface.Edges) Anchor {
	x := box.Min.X
	if lockedEdges&surface.EdgeRight != 0 {
		x = box.Min.X + box.Dx()
	}
	y := box.Min.Y
	if lockedEdges&surface.EdgeBottom != 0 {
		y = box.Min.Y + box.Dy()
	}
	return Anchor{X: x, Y: y, Edges: lockedEdges}
}

// Reanchor recomputes the scene-node position for a newly-committed
// (width, height) so that the anchored corner stays fixed: on every
// commit, the scene-node position is recomputed from the anchor rather
// than carried over from the request.
func Reanchor(a Anchor, width, height int) image.Point {
	x := a.X
	if a.Edges&surface.EdgeRight != 0 {
		x = a.X - width
	}
	y := a.Y
	if a.Edges&surface.EdgeBottom != 0 {
		y = a.Y - height
	}
	return image.Pt(x, y)
}

// SnapshotFullscreenOrMaximize records prev for later restore on
// entering fullscreen or maximized state.
func SnapshotFullscreenOrMaximize(t *surface.Toplevel, current image.Rectangle) {
	t.PrevBounds = current
}

// RestoreClamped clamps prev into workarea (the nearest output's padded
// workarea) so a restored window never lands under hidden borders.
func RestoreClamped(prev image.Rectangle, workarea image.Rectangle) image.Rectangle {
	w, h := prev.Dx(), prev.Dy()
	x := clampInt(prev.Min.X, workarea.Min.X, workarea.Max.X-w)
	y := clampInt(prev.Min.Y, workarea.Min.Y, workarea.Max.Y-h)
	return image.Rect(x, y, x+w, y+h)
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
