// Package outputmodel implements the per-output record: a bounds/
// workarea pair, the four layer-surface stacks, and the monitor
// placement-rule table.
package outputmodel

import (
	"image"

	"driftwl/surface"
	"driftwl/zone"
)

// PlacementRule fixes a named output's layout position (e.g. "DP-1" at
// (0,0), "DP-2" at (-3840,0)).
type PlacementRule struct {
	Name string
	X, Y int
}

// Resolve returns the position rules assigns name, or ok=false if no
// rule names it.
func Resolve(rules []PlacementRule, name string) (x, y int, ok bool) {
	for _, r := range rules {
		if r.Name == name {
			return r.X, r.Y, true
		}
	}
	return 0, 0, false
}

// Output is the per-monitor record.
type Output struct {
	Name     string
	Bounds   image.Rectangle
	Workarea image.Rectangle

	Layers [4][]*surface.LayerSurface // indexed by surface.Layer

	Background wlrBackgroundRef
}

// wlrBackgroundRef is an opaque reference to the output's background
// image/color scene node, owned by the caller's scene toolkit.
type wlrBackgroundRef = any

// Reconfigure recomputes Workarea from Bounds shrunk by pad on every
// side.
func (o *Output) Reconfigure(bounds image.Rectangle, pad zone.Padding) {
	o.Bounds = bounds
	o.Workarea = image.Rect(
		bounds.Min.X+pad.Left,
		bounds.Min.Y+pad.Top,
		bounds.Max.X-pad.Right,
		bounds.Max.Y-pad.Bottom,
	)
}

// AddLayer appends ls to its layer's stack.
func (o *Output) AddLayer(ls *surface.LayerSurface) {
	o.Layers[ls.Layer] = append(o.Layers[ls.Layer], ls)
}

// RemoveLayer removes ls from its layer's stack.
func (o *Output) RemoveLayer(ls *surface.LayerSurface) {
	layer := o.Layers[ls.Layer]
	for i, c := range layer {
		if c == ls {
			o.Layers[ls.Layer] = append(layer[:i], layer[i+1:]...)
			return
		}
	}
}

// Layout is the set of known outputs, ordered by discovery.
type Layout struct {
	Outputs []*Output
	Rules   []PlacementRule
}

// At returns the output whose Bounds contains pt, or nil if none does.
func (l *Layout) At(pt image.Point) *Output {
	for _, o := range l.Outputs {
		if pt.In(o.Bounds) {
			return o
		}
	}
	return nil
}

// ByName returns the output named name, or nil.
func (l *Layout) ByName(name string) *Output {
	for _, o := range l.Outputs {
		if o.Name == name {
			return o
		}
	}
	return nil
}
