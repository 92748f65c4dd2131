// Package scene implements the ordered scene-graph walks: back-to-front
// (rendering order) and front-to-back (picking, focus-cycle order)
// depth-first traversals over a tree of Nodes.
//
// Grounded on the teacher's io/router/pointer.go hitTree/areaNode walk:
// an index-linked node list visited in list order for front-to-back
// picking.
package scene

import "image"

// Node is one entry in the scene graph: either a buffer-carrying leaf
// (Surface != nil) or a grouping node. Children are visited in List
// order for back-to-front walks, and in reverse order for front-to-back
// walks.
type Node struct {
	Children []*Node
	Enabled  bool

	Position image.Point // node-local offset from its parent

	// Surface identifies the tagged Surface this node's buffer belongs
	// to, if any. Leaf nodes with no Surface are pure containers (e.g.
	// a layer's grouping tree).
	Surface any

	// DestRect is the node's buffer destination box in node-local
	// coordinates, used by hit-testing.
	DestRect image.Rectangle

	// InputRegion reports whether the point (already translated to
	// node-local coordinates) lies within this node's input region. A
	// nil InputRegion accepts every point inside DestRect.
	InputRegion func(p image.Point) bool
}

// Visitor is called for each node during a walk, with the node's
// accumulated layout-space position. Returning false stops the walk
// early.
type Visitor func(n *Node, layoutPos image.Point) bool

// WalkBackToFront visits n, then its children in list order, carrying a
// running layout position. Used for rendering, never for picking.
func WalkBackToFront(n *Node, origin image.Point, includeDisabled bool, visit Visitor) bool {
	if n == nil {
		return true
	}
	if !n.Enabled && !includeDisabled {
		return true
	}
	pos := origin.Add(n.Position)
	if !visit(n, pos) {
		return false
	}
	for _, c := range n.Children {
		if !WalkBackToFront(c, pos, includeDisabled, visit) {
			return false
		}
	}
	return true
}

// WalkFrontToBack visits children in reverse list order first, then n.
// Used for picking and focus-cycle iteration, so that the topmost (most
// recently raised) node is found first.
func WalkFrontToBack(n *Node, origin image.Point, includeDisabled bool, visit Visitor) bool {
	if n == nil {
		return true
	}
	if !n.Enabled && !includeDisabled {
		return true
	}
	pos := origin.Add(n.Position)
	for i := len(n.Children) - 1; i >= 0; i-- {
		if !WalkFrontToBack(n.Children[i], pos, includeDisabled, visit) {
			return false
		}
	}
	return visit(n, pos)
}

// HitResult is the outcome of a successful HitTest.
type HitResult struct {
	Node       *Node
	Surface    any
	LocalX     int
	LocalY     int
}

// HitTest walks the tree front-to-back from root and returns the topmost
// buffer-carrying node whose destination box contains (lx, ly) and whose
// input region (if any) accepts the point, translated to that node's
// local coordinates. It returns false if no node matches.
func HitTest(root *Node, lx, ly int) (HitResult, bool) {
	var result HitResult
	found := false
	WalkFrontToBack(root, image.Point{}, false, func(n *Node, layoutPos image.Point) bool {
		if found {
			return false
		}
		if n.Surface == nil {
			return true
		}
		local := image.Pt(lx, ly).Sub(layoutPos)
		dest := n.DestRect
		if dest == (image.Rectangle{}) {
			dest = image.Rectangle{Max: image.Pt(1<<30, 1 << 30)}
		}
		if !local.In(dest) {
			return true
		}
		if n.InputRegion != nil && !n.InputRegion(local) {
			return true
		}
		result = HitResult{Node: n, Surface: n.Surface, LocalX: local.X, LocalY: local.Y}
		found = true
		return false
	})
	return result, found
}
