package surface

import "image"

// BufferSize is the committed buffer dimensions of a surface, supplied by
// the caller (the toolkit owns the actual buffer). Geometry falls back to
// this when the client reports zero dimensions.
type BufferSize struct {
	Width, Height int
}

// NodePosition is the layout-space position of a surface's scene node,
// supplied by the caller rather than read through Native, since scene
// node placement is scene-graph state the toolkit owns.
type NodePosition struct {
	X, Y int
}

// ClientGeometry is the geometry a client has most recently committed
// (an xdg_surface's set_window_geometry, or a layer surface's actual
// size), before the fixups below are applied.
type ClientGeometry struct {
	X, Y, Width, Height int
}

// Geometry returns the logical content rectangle in surface-local
// coordinates, applying fixups in order: negative offsets clamp to
// zero, dimensions clamp into the buffer, and a zero-dimension report
// falls back to the committed buffer size. Toplevels clamp geometry
// into the buffer because some clients report geometry larger than
// their surface, and some omit it entirely.
func Geometry(role Role, client ClientGeometry, buf BufferSize) image.Rectangle {
	if role != RoleToplevel {
		// Layer surfaces (and other roles) report their actual size
		// directly with no offset concept.
		return image.Rect(0, 0, buf.Width, buf.Height)
	}

	x := max(0, client.X)
	y := max(0, client.Y)

	w := clamp(buf.Width-x, 0, client.Width)
	h := clamp(buf.Height-y, 0, client.Height)

	if w <= 0 {
		w = max(0, buf.Width-x)
	}
	if h <= 0 {
		h = max(0, buf.Height-y)
	}

	return image.Rect(x, y, x+w, y+h)
}

// CoordSystem returns the layout-space rectangle within which the
// geometry origin sits at (0, 0): for toplevels, the scene-node position
// adjusted by the negative geometry origin; for every other role, the
// scene-node position directly.
func CoordSystem(role Role, node NodePosition, geom ClientGeometry, buf BufferSize) image.Rectangle {
	x, y := node.X, node.Y
	if role == RoleToplevel {
		x -= geom.X
		y -= geom.Y
	}
	return image.Rect(x, y, x+buf.Width, y+buf.Height)
}

// Bounds returns Geometry translated by the scene node's layout position.
func Bounds(role Role, node NodePosition, client ClientGeometry, buf BufferSize) image.Rectangle {
	g := Geometry(role, client, buf)
	return g.Add(image.Pt(node.X, node.Y))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
