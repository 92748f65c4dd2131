package zone

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Horizontal: 3, Vertical: 2,
		LeewayX: 10, LeewayY: 10,
		Inner: 8,
		Outer: Padding{Left: 4, Top: 4, Right: 4, Bottom: 4},
	}
}

func TestPointerZoneCornerCellShrinksByOuterPadding(t *testing.T) {
	workarea := image.Rect(0, 0, 1200, 800)
	cfg := testConfig()

	rect, ok := PointerZone(cfg, workarea, 10, 10)
	require.True(t, ok)
	require.InDelta(t, 4, rect.X, 0.01)
	require.InDelta(t, 4, rect.Y, 0.01)
}

func TestPointerZoneInteriorCellShrinksBothSides(t *testing.T) {
	workarea := image.Rect(0, 0, 1200, 800)
	cfg := testConfig()

	// middle column, top row: x in [400,800), y in [0,400)
	rect, ok := PointerZone(cfg, workarea, 600, 100)
	require.True(t, ok)
	require.InDelta(t, 400+4, rect.X, 0.01, "interior left edge shrinks by half of inner padding")
	require.InDelta(t, 800-4, rect.X+rect.W, 0.01)
}

func TestMotionSelectingGrowsFromInitial(t *testing.T) {
	var sel Selection
	first := Rect{X: 0, Y: 0, W: 100, H: 100}
	Motion(&sel, first)
	require.Equal(t, first, sel.Initial)
	require.Equal(t, first, sel.Final)

	sel.Selecting = true
	second := Rect{X: 200, Y: 0, W: 100, H: 100}
	Motion(&sel, second)

	require.Equal(t, first, sel.Initial, "initial corner stays pinned while selecting")
	require.InDelta(t, 0, sel.Final.X, 0.01)
	require.InDelta(t, 300, sel.Final.X+sel.Final.W, 0.01)
}

func TestRoundHalfUp(t *testing.T) {
	got := Round(Rect{X: 1.5, Y: 2.4, W: 10.5, H: 10.5})
	require.Equal(t, image.Rect(2, 2, 13, 13), got)
}
