package input

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"driftwl/surface"
	"driftwl/zone"
)

type fakeHost struct {
	toplevelAt   map[image.Point]*surface.Toplevel
	focused      *surface.Toplevel
	bounds       map[*surface.Toplevel]image.Rectangle
	interactable map[*surface.Toplevel]bool
	enabled      map[*surface.Toplevel]bool
	candidates   []*surface.Toplevel

	mainMod, shift, cursorVisible bool

	closed        []*surface.Toplevel
	unfocusCalls  int
	focusCalls    []*surface.Toplevel
	setBoundsLog  map[*surface.Toplevel]image.Rectangle
	zoneShown     []ZoneColor
	zoneHidden    int
	zonePreview   image.Rectangle
	zoneWorkarea  image.Rectangle
	zoneCfg       zone.Config
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		toplevelAt:   map[image.Point]*surface.Toplevel{},
		bounds:       map[*surface.Toplevel]image.Rectangle{},
		interactable: map[*surface.Toplevel]bool{},
		enabled:      map[*surface.Toplevel]bool{},
		setBoundsLog: map[*surface.Toplevel]image.Rectangle{},
		zoneWorkarea: image.Rect(0, 0, 1000, 1000),
		zoneCfg:      zone.Config{Horizontal: 1, Vertical: 1},
	}
}

func (h *fakeHost) Enabled(t *surface.Toplevel) bool             { return h.enabled[t] }
func (h *fakeHost) SetEnabled(t *surface.Toplevel, enabled bool) { h.enabled[t] = enabled }
func (h *fakeHost) Bounds(t *surface.Toplevel) image.Rectangle   { return h.bounds[t] }

func (h *fakeHost) ToplevelAt(cursor image.Point) (*surface.Toplevel, bool) {
	t, ok := h.toplevelAt[cursor]
	return t, ok
}
func (h *fakeHost) FocusedToplevel() *surface.Toplevel { return h.focused }
func (h *fakeHost) Focus(t *surface.Toplevel)          { h.focused = t; h.focusCalls = append(h.focusCalls, t) }
func (h *fakeHost) Unfocus(suppress bool)              { h.focused = nil; h.unfocusCalls++ }
func (h *fakeHost) SetBounds(t *surface.Toplevel, box image.Rectangle, edges surface.Edges) {
	h.setBoundsLog[t] = box
	h.bounds[t] = box
}
func (h *fakeHost) Close(t *surface.Toplevel)          { h.closed = append(h.closed, t) }
func (h *fakeHost) Interactable(t *surface.Toplevel) bool { return h.interactable[t] }

func (h *fakeHost) CursorVisible() bool { return h.cursorVisible }
func (h *fakeHost) MainModDown() bool   { return h.mainMod }
func (h *fakeHost) ShiftDown() bool     { return h.shift }

func (h *fakeHost) FocusCycleCandidates(backward bool) []*surface.Toplevel {
	if !backward {
		return h.candidates
	}
	rev := make([]*surface.Toplevel, len(h.candidates))
	for i, t := range h.candidates {
		rev[len(h.candidates)-1-i] = t
	}
	return rev
}

func (h *fakeHost) ZoneWorkarea(cursor image.Point) image.Rectangle { return h.zoneWorkarea }
func (h *fakeHost) ZonePreviewShow(c ZoneColor)                     { h.zoneShown = append(h.zoneShown, c) }
func (h *fakeHost) ZonePreviewHide()                                { h.zoneHidden++ }
func (h *fakeHost) ZonePreviewUpdate(r image.Rectangle)             { h.zonePreview = r }
func (h *fakeHost) ZoneConfig() zone.Config                         { return h.zoneCfg }

func TestBeginMoveOnGestureShiftLeft(t *testing.T) {
	host := newFakeHost()
	host.mainMod, host.shift, host.cursorVisible = true, true, true
	tl := &surface.Toplevel{}
	host.interactable[tl] = true
	host.bounds[tl] = image.Rect(0, 0, 200, 200)
	host.toplevelAt[image.Pt(10, 10)] = tl

	m := &Machine{Host: host, CursorPos: image.Pt(10, 10)}
	pass := m.HandleButton(ButtonLeft, true)

	require.False(t, pass)
	require.Equal(t, ModeMove, m.Mode)
	require.Equal(t, tl, m.Grab.Toplevel)
}

func TestMoveTracksCursorDelta(t *testing.T) {
	host := newFakeHost()
	tl := &surface.Toplevel{}
	m := &Machine{
		Host: host, Mode: ModeMove,
		Grab: Grab{Toplevel: tl, CursorPos: image.Pt(0, 0), Bounds: image.Rect(100, 100, 300, 300)},
	}
	ok := m.HandleMotion(image.Pt(10, 20))
	require.True(t, ok)
	require.Equal(t, image.Rect(110, 120, 310, 320), host.setBoundsLog[tl])
}

func TestResizeClampsAgainstOppositeEdge(t *testing.T) {
	host := newFakeHost()
	tl := &surface.Toplevel{}
	m := &Machine{
		Host: host, Mode: ModeResize,
		Grab: Grab{
			Toplevel: tl, CursorPos: image.Pt(0, 0),
			Bounds: image.Rect(0, 0, 100, 100),
			Edges:  surface.EdgeRight | surface.EdgeBottom,
		},
	}
	m.HandleMotion(image.Pt(500, -500))
	got := host.setBoundsLog[tl]
	require.Equal(t, 600, got.Max.X, "right edge grows by the cursor delta")
	require.Equal(t, 1, got.Max.Y, "bottom edge clamps to at least top+1")
}

func TestReleaseWithNoButtonsResetsToPassthrough(t *testing.T) {
	host := newFakeHost()
	tl := &surface.Toplevel{}
	m := &Machine{Host: host, Mode: ModeMove, Grab: Grab{Toplevel: tl}}
	pass := m.HandleButton(ButtonLeft, false)
	require.True(t, pass)
	require.Equal(t, ModePassthrough, m.Mode)
}

func TestMiddleClickClosesUnderGestureMod(t *testing.T) {
	host := newFakeHost()
	host.mainMod, host.cursorVisible = true, true
	tl := &surface.Toplevel{}
	host.toplevelAt[image.Pt(5, 5)] = tl

	m := &Machine{Host: host, CursorPos: image.Pt(5, 5)}
	pass := m.HandleButton(ButtonMiddle, true)

	require.False(t, pass)
	require.Equal(t, []*surface.Toplevel{tl}, host.closed)
}

func TestZoneLeftPressEntersZoneAndRightTogglesSelecting(t *testing.T) {
	host := newFakeHost()
	host.mainMod, host.cursorVisible = true, true
	tl := &surface.Toplevel{}
	host.interactable[tl] = true
	host.toplevelAt[image.Pt(1, 1)] = tl

	m := &Machine{Host: host, CursorPos: image.Pt(1, 1)}
	m.HandleButton(ButtonLeft, true)
	require.Equal(t, ModeZone, m.Mode)
	require.True(t, m.Zone.Moving)
	require.False(t, m.Zone.Selecting)

	m.HandleButton(ButtonRight, true)
	require.True(t, m.Zone.Selecting)
}

func TestZoneCommitsOnLeftReleaseWhileSelecting(t *testing.T) {
	host := newFakeHost()
	host.mainMod, host.cursorVisible = true, true
	tl := &surface.Toplevel{}
	host.interactable[tl] = true
	host.toplevelAt[image.Pt(1, 1)] = tl
	host.focused = tl

	m := &Machine{Host: host, CursorPos: image.Pt(1, 1)}
	m.HandleButton(ButtonLeft, true) // enter zone
	m.Zone.Selecting = true
	m.Zone.Final = zone.Rect{X: 10, Y: 10, W: 50, H: 50}

	m.HandleButton(ButtonLeft, false) // commit
	require.Equal(t, ModePassthrough, m.Mode)
	require.Equal(t, image.Rect(10, 10, 60, 60), host.setBoundsLog[tl])
}

func TestFocusCycleScrollScenario(t *testing.T) {
	host := newFakeHost()
	host.mainMod, host.cursorVisible = true, true
	top := &surface.Toplevel{}
	bottom := &surface.Toplevel{}
	host.bounds[top] = image.Rect(0, 0, 100, 100)
	host.bounds[bottom] = image.Rect(0, 0, 100, 100)
	host.candidates = []*surface.Toplevel{top, bottom}

	m := &Machine{Host: host, CursorPos: image.Pt(50, 50)}

	// The begin and step side effects of a single scroll both fire on
	// the event that transitions into focus_cycle, so the first
	// scroll-up both begins on A (the topmost) and immediately steps
	// forward to B.
	m.HandleAxis(1)
	require.Equal(t, ModeFocusCycle, m.Mode)
	require.False(t, host.Enabled(top))
	require.True(t, host.Enabled(bottom))

	m.HandleAxis(1) // subsequent scroll-up: selection wraps back to A
	require.True(t, host.Enabled(top))
	require.False(t, host.Enabled(bottom))

	m.HandleGestureModRelease()
	require.Equal(t, ModePassthrough, m.Mode)
	require.Equal(t, top, host.focused)
	require.True(t, host.Enabled(top))
	require.True(t, host.Enabled(bottom))
}

func TestFocusCyclePressOutsideSelectionDropsFocus(t *testing.T) {
	host := newFakeHost()
	selected := &surface.Toplevel{}
	other := &surface.Toplevel{}
	host.focused = selected
	host.toplevelAt[image.Pt(1, 1)] = other

	m := &Machine{Host: host, Mode: ModeFocusCycle, CursorPos: image.Pt(1, 1)}
	host.enabled[selected] = true
	host.candidates = []*surface.Toplevel{selected, other}

	pass := m.HandleButton(ButtonLeft, true)
	require.False(t, pass)
	require.Equal(t, ModePassthrough, m.Mode)
	require.Nil(t, host.focused)
}
