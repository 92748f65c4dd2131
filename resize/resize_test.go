package resize

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
	"driftwl/surface"
)

func TestResizeSendsImmediatelyWhenIdle(t *testing.T) {
	var d Dialogue
	sent := false
	ok := Resize(&d, 800, 600, func(w, h int) uint32 {
		sent = true
		require.Equal(t, 800, w)
		require.Equal(t, 600, h)
		return 7
	})
	require.True(t, ok)
	require.True(t, sent)
	require.EqualValues(t, 7, d.LastRequestSerial)
	require.Nil(t, d.Pending)
}

func TestResizeCoalescesWhileOutstanding(t *testing.T) {
	d := Dialogue{LastRequestSerial: 5, LastCommitSerial: 3}
	calls := 0
	ok := Resize(&d, 100, 200, func(w, h int) uint32 { calls++; return 99 })
	require.False(t, ok)
	require.Equal(t, 0, calls)
	require.Equal(t, &surface.PendingSize{Width: 100, Height: 200}, d.Pending)
}

func TestResizeNoOpWhenPendingUnchanged(t *testing.T) {
	d := Dialogue{LastRequestSerial: 5, LastCommitSerial: 3, Pending: &surface.PendingSize{Width: 100, Height: 200}}
	ok := Resize(&d, 100, 200, func(w, h int) uint32 { t.Fatal("should not send"); return 0 })
	require.False(t, ok)
}

func TestCommitIssuesPendingOnceSynced(t *testing.T) {
	d := Dialogue{LastRequestSerial: 5, LastCommitSerial: 3, Pending: &surface.PendingSize{Width: 320, Height: 240}}
	var sentW, sentH int
	Commit(&d, 5, func(w, h int) uint32 {
		sentW, sentH = w, h
		return 6
	})
	require.Equal(t, 320, sentW)
	require.Equal(t, 240, sentH)
	require.EqualValues(t, 6, d.LastRequestSerial)
	require.Nil(t, d.Pending)
}

func TestCommitStaleDoesNothing(t *testing.T) {
	d := Dialogue{LastRequestSerial: 5, LastCommitSerial: 0}
	Commit(&d, 2, func(w, h int) uint32 { t.Fatal("should not send"); return 0 })
	require.EqualValues(t, 2, d.LastCommitSerial)
}

func TestSetBoundsAndReanchorKeepsLockedEdgeFixed(t *testing.T) {
	box := image.Rect(100, 100, 300, 300) // 200x200
	a := SetBounds(box, surface.EdgeRight|surface.EdgeBottom)
	require.Equal(t, 300, a.X)
	require.Equal(t, 300, a.Y)

	pos := Reanchor(a, 150, 150)
	require.Equal(t, image.Pt(150, 150), pos, "right/bottom edge stays at x=300,y=300")
}

func TestRestoreClampedKeepsInsideWorkarea(t *testing.T) {
	prev := image.Rect(-50, -50, 150, 150)
	workarea := image.Rect(0, 0, 1000, 800)
	got := RestoreClamped(prev, workarea)
	require.Equal(t, image.Rect(0, 0, 200, 200), got)
}
