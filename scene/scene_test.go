package scene

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func leaf(surf any, dest image.Rectangle) *Node {
	return &Node{Enabled: true, Surface: surf, DestRect: dest}
}

func TestWalkBackToFrontVisitsListOrder(t *testing.T) {
	a, b, c := leaf("a", image.Rectangle{}), leaf("b", image.Rectangle{}), leaf("c", image.Rectangle{})
	root := &Node{Enabled: true, Children: []*Node{a, b, c}}

	var order []any
	WalkBackToFront(root, image.Point{}, false, func(n *Node, pos image.Point) bool {
		if n.Surface != nil {
			order = append(order, n.Surface)
		}
		return true
	})
	require.Equal(t, []any{"a", "b", "c"}, order)
}

func TestWalkFrontToBackVisitsReverseOrder(t *testing.T) {
	a, b, c := leaf("a", image.Rectangle{}), leaf("b", image.Rectangle{}), leaf("c", image.Rectangle{})
	root := &Node{Enabled: true, Children: []*Node{a, b, c}}

	var order []any
	WalkFrontToBack(root, image.Point{}, false, func(n *Node, pos image.Point) bool {
		if n.Surface != nil {
			order = append(order, n.Surface)
		}
		return true
	})
	require.Equal(t, []any{"c", "b", "a"}, order)
}

func TestWalkSkipsDisabledUnlessIncluded(t *testing.T) {
	a := leaf("a", image.Rectangle{})
	a.Enabled = false
	b := leaf("b", image.Rectangle{})
	root := &Node{Enabled: true, Children: []*Node{a, b}}

	var seen []any
	WalkBackToFront(root, image.Point{}, false, func(n *Node, pos image.Point) bool {
		if n.Surface != nil {
			seen = append(seen, n.Surface)
		}
		return true
	})
	require.Equal(t, []any{"b"}, seen)

	seen = nil
	WalkBackToFront(root, image.Point{}, true, func(n *Node, pos image.Point) bool {
		if n.Surface != nil {
			seen = append(seen, n.Surface)
		}
		return true
	})
	require.Equal(t, []any{"a", "b"}, seen)
}

func TestWalkEarlyExitStopsTraversal(t *testing.T) {
	a, b, c := leaf("a", image.Rectangle{}), leaf("b", image.Rectangle{}), leaf("c", image.Rectangle{})
	root := &Node{Enabled: true, Children: []*Node{a, b, c}}

	var seen []any
	WalkBackToFront(root, image.Point{}, false, func(n *Node, pos image.Point) bool {
		if n.Surface != nil {
			seen = append(seen, n.Surface)
		}
		return n.Surface != "b"
	})
	require.Equal(t, []any{"a", "b"}, seen)
}

func TestHitTestPicksTopmostOverlap(t *testing.T) {
	bottom := leaf("bottom", image.Rect(0, 0, 200, 200))
	top := &Node{Enabled: true, Surface: "top", DestRect: image.Rect(0, 0, 100, 100), Position: image.Pt(50, 50)}
	root := &Node{Enabled: true, Children: []*Node{bottom, top}}

	hit, ok := HitTest(root, 75, 75)
	require.True(t, ok)
	require.Equal(t, "top", hit.Surface)
	require.Equal(t, 25, hit.LocalX)
	require.Equal(t, 25, hit.LocalY)

	hit, ok = HitTest(root, 10, 10)
	require.True(t, ok)
	require.Equal(t, "bottom", hit.Surface)
}

func TestHitTestRespectsInputRegion(t *testing.T) {
	n := &Node{
		Enabled:  true,
		Surface:  "s",
		DestRect: image.Rect(0, 0, 100, 100),
		InputRegion: func(p image.Point) bool {
			return p.X >= 50 // only the right half accepts input
		},
	}
	root := &Node{Enabled: true, Children: []*Node{n}}

	_, ok := HitTest(root, 10, 10)
	require.False(t, ok)

	hit, ok := HitTest(root, 60, 10)
	require.True(t, ok)
	require.Equal(t, "s", hit.Surface)
}

func TestHitTestNoMatchReturnsFalse(t *testing.T) {
	root := &Node{Enabled: true, Children: []*Node{leaf("s", image.Rect(0, 0, 10, 10))}}
	_, ok := HitTest(root, 500, 500)
	require.False(t, ok)
}

func TestHitTestSkipsDisabledNodes(t *testing.T) {
	n := leaf("s", image.Rect(0, 0, 10, 10))
	n.Enabled = false
	root := &Node{Enabled: true, Children: []*Node{n}}

	_, ok := HitTest(root, 5, 5)
	require.False(t, ok)
}
