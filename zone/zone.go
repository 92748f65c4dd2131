// Package zone implements a grid/leeway tiler: a workarea is sliced into
// Gh×Gv cells, each expanded by a selection leeway halo so the boundary
// between cells is sticky, then shrunk by inner/outer padding before the
// cells under the pointer are unioned into the candidate rectangle.
package zone

import (
	"image"
	"math"
)

// Padding is the per-side gap applied at the workarea's outer edge.
type Padding struct {
	Left, Top, Right, Bottom int
}

// Config parameterizes the grid. Leeway is the (dx, dy) halo added to
// every cell's hit-test rectangle; Inner is the gap between adjacent
// cells; Outer is the gap between the outermost cells and the workarea
// edge.
type Config struct {
	Horizontal, Vertical int
	LeewayX, LeewayY     int
	Inner                int
	Outer                Padding
}

// Rect is a floating-point rectangle, since cell extents (workarea size
// divided by grid count) are not generally integral; only the final
// preview/commit rectangle is rounded to pixels.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) containsPoint(px, py float64) bool {
	return px >= r.X && px < r.X+r.W && py >= r.Y && py < r.Y+r.H
}

// outer returns the smallest rectangle containing both a and b.
func outer(a, b Rect) Rect {
	x0 := min(a.X, b.X)
	y0 := min(a.Y, b.Y)
	x1 := max(a.X+a.W, b.X+b.W)
	y1 := max(a.Y+a.H, b.Y+b.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Selection is the per-interaction zone record.
type Selection struct {
	Initial   Rect
	Final     Rect
	Moving    bool
	Selecting bool
}

// PointerZone computes the shrunk, unioned rectangle covered by the
// pointer at (px, py) within workarea, under cfg. ok is false if the
// pointer falls outside every cell's leeway-expanded rectangle (only
// possible right at the workarea's outer edge with zero leeway).
//
// workarea is sliced into Horizontal×Vertical cells; each cell's
// leeway-expanded rect is tested for point containment, matching cells
// are shrunk by Inner padding on interior boundaries and by Outer
// padding on workarea-edge boundaries, and the survivors are unioned.
func PointerZone(cfg Config, workarea image.Rectangle, px, py float64) (Rect, bool) {
	wx, wy := float64(workarea.Min.X), float64(workarea.Min.Y)
	ew := float64(workarea.Dx()) / float64(cfg.Horizontal)
	eh := float64(workarea.Dy()) / float64(cfg.Vertical)

	var zone Rect
	any := false

	for gx := 0; gx < cfg.Horizontal; gx++ {
		for gy := 0; gy < cfg.Vertical; gy++ {
			rect := Rect{X: wx + ew*float64(gx), Y: wy + eh*float64(gy), W: ew, H: eh}
			check := Rect{
				X: rect.X - float64(cfg.LeewayX), Y: rect.Y - float64(cfg.LeewayY),
				W: rect.W + float64(cfg.LeewayX)*2, H: rect.H + float64(cfg.LeewayY)*2,
			}
			if !check.containsPoint(px, py) {
				continue
			}

			innerPad := float64(cfg.Inner) / 2
			tlX := innerPad
			if gx == 0 {
				tlX = float64(cfg.Outer.Left)
			}
			tlY := innerPad
			if gy == 0 {
				tlY = float64(cfg.Outer.Top)
			}
			brX := innerPad
			if gx == cfg.Horizontal-1 {
				brX = float64(cfg.Outer.Right)
			}
			brY := innerPad
			if gy == cfg.Vertical-1 {
				brY = float64(cfg.Outer.Bottom)
			}

			rect.X += tlX
			rect.Y += tlY
			rect.W -= tlX + brX
			rect.H -= tlY + brY

			if !any {
				zone = rect
			} else {
				zone = outer(zone, rect)
			}
			any = true
		}
	}

	return zone, any
}

// Motion advances sel given the pointer's current covered zone: while
// not selecting, both Initial and Final track the live pointer zone;
// once Selecting, Final grows to the union of Initial and the live
// zone, so the initial corner is pinned.
func Motion(sel *Selection, pointerZone Rect) {
	if sel.Selecting {
		sel.Final = outer(sel.Initial, pointerZone)
	} else {
		sel.Initial = pointerZone
		sel.Final = pointerZone
	}
}

// Round rounds r's position and size half-up to an integer
// image.Rectangle, for the preview node and the final commit.
func Round(r Rect) image.Rectangle {
	round := func(v float64) int { return int(math.Floor(v + 0.5)) }
	x0, y0 := round(r.X), round(r.Y)
	return image.Rect(x0, y0, x0+round(r.W), y0+round(r.H))
}
