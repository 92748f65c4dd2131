// Package compositor wires the core packages (surface, scene, input,
// focus, cursor, constraint, resize, zone, bind, script, outputmodel) into
// the single Server every other package's Host interface assumes a
// caller drives. The scene-graph toolkit, renderer, and backend
// enumeration stay external collaborators; Server owns only the state
// those packages' Host interfaces require.
//
// Grounded on the teacher's app.Window (app/window.go): one struct per
// running instance, owning every subsystem and dispatching external
// events into it through narrow methods.
package compositor

import (
	"image"

	"driftwl/bind"
	"driftwl/constraint"
	"driftwl/cursor"
	"driftwl/focus"
	"driftwl/input"
	"driftwl/internal/config"
	"driftwl/internal/logx"
	"driftwl/internal/watchdog"
	"driftwl/outputmodel"
	"driftwl/resize"
	"driftwl/scene"
	"driftwl/script"
	"driftwl/surface"
	"driftwl/zone"
)

// toplevelRecord is the bookkeeping Server keeps per toplevel beyond what
// surface.Toplevel itself stores: scene placement, committed geometry,
// and the focus-cycle enabled bit.
type toplevelRecord struct {
	node    *scene.Node
	pos     surface.NodePosition
	geom    surface.ClientGeometry
	buf     surface.BufferSize
	enabled bool
}

// Toolkit is the set of scene/protocol side effects Server cannot perform
// itself, matching the "Native" escape hatch every package in this
// module uses to stay free of a concrete wlroots dependency.
type Toolkit interface {
	SendConfigure(t *surface.Toplevel, width, height int, serial uint32)
	SendClose(t *surface.Toplevel)
	SendKeyboardEnter(t *surface.Toplevel)
	HasCursorBuffer(surface any) bool
	SetCursorVisible(visible bool)
}

// Server is the compositor core: every package's Host interface is
// implemented by methods on this struct.
type Server struct {
	Config *config.Config
	Quirks map[string]surface.Quirks

	Layout      outputmodel.Layout
	Binds       bind.Table
	Scripts     *script.Registry
	Machine     input.Machine
	FocusMgr    focus.Manager
	Constraints constraint.Manager
	Watchdog    *watchdog.Watchdog

	toolkit    Toolkit
	records    map[*surface.Toplevel]*toplevelRecord
	order      []*surface.Toplevel // z-order, back to front
	nextSerial uint32

	mainModDown bool
	shiftDown   bool
	cursorState cursor.Input

	zonePreview struct {
		visible bool
		color   input.ZoneColor
		rect    image.Rectangle
	}
}

// New builds a Server over toolkit, wired against cfg and quirks.
func New(cfg *config.Config, quirks map[string]surface.Quirks, toolkit Toolkit) *Server {
	s := &Server{
		Config:  cfg,
		Quirks:  quirks,
		Scripts: script.NewRegistry(),
		toolkit: toolkit,
		records: make(map[*surface.Toplevel]*toplevelRecord),
	}
	s.FocusMgr.Host = s
	s.Machine.Host = s
	return s
}

// Track registers a newly mapped toplevel: appended to the top of the
// z-order stack (the end of the back-to-front order) and enabled.
func (s *Server) Track(t *surface.Toplevel, node *scene.Node) {
	node.Surface = t
	s.records[t] = &toplevelRecord{node: node, enabled: true}
	s.order = append(s.order, t)
}

// Untrack removes t. Callers must stop referencing t themselves once
// this returns.
func (s *Server) Untrack(t *surface.Toplevel) {
	if s.FocusMgr.Current() == t {
		s.FocusMgr.Unfocus(false)
	}
	delete(s.records, t)
	for i, o := range s.order {
		if o == t {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Server) record(t *surface.Toplevel) *toplevelRecord {
	r, ok := s.records[t]
	if !ok {
		panic("compositor: unknown toplevel")
	}
	return r
}

// --- focus.Host ---

func (s *Server) DeactivateToplevel(t *surface.Toplevel) { t.Activated = false }
func (s *Server) ActivateToplevel(t *surface.Toplevel)   { t.Activated = true }

func (s *Server) ReparentToFocusedLayer(t *surface.Toplevel) {
	r := s.record(t)
	r.node.Enabled = true
}

func (s *Server) ReparentToFloatingLayer(t *surface.Toplevel) {
	// Floating vs. focused is a scene-tree reparent in the original; this
	// module tracks only the enabled bit the Host interfaces need.
}

func (s *Server) RaiseToTop(t *surface.Toplevel) {
	for i, o := range s.order {
		if o == t {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.order = append(s.order, t)
}

func (s *Server) SendKeyboardEnter(t *surface.Toplevel) { s.toolkit.SendKeyboardEnter(t) }

func (s *Server) RefreshPointerFocus() {}

func (s *Server) RefreshCursor() {
	focused := s.FocusMgr.Current()
	if focused == nil {
		s.cursorState = cursor.Input{}
		s.toolkit.SetCursorVisible(false)
		return
	}
	s.cursorState = cursor.Input{
		Cursor:                  focused.Cursor,
		PointerAndKeyboardMatch: true,
	}
	choice := cursor.Choose(s.cursorState, s.toolkit.HasCursorBuffer)
	s.toolkit.SetCursorVisible(choice.Visible())
}

// --- focus.CycleHost / input.Host scene accessors ---

func (s *Server) Enabled(t *surface.Toplevel) bool { return s.record(t).enabled }

func (s *Server) SetEnabled(t *surface.Toplevel, enabled bool) {
	r := s.record(t)
	r.enabled = enabled
	r.node.Enabled = enabled
}

func (s *Server) Bounds(t *surface.Toplevel) image.Rectangle {
	r := s.record(t)
	return surface.Bounds(t.Role, r.pos, r.geom, r.buf)
}

// sendConfigure returns the resize.SendFunc that stamps and dispatches a
// configure for t, advancing the server's serial counter.
func (s *Server) sendConfigure(t *surface.Toplevel) resize.SendFunc {
	return func(width, height int) uint32 {
		s.nextSerial++
		s.toolkit.SendConfigure(t, width, height, s.nextSerial)
		return s.nextSerial
	}
}

// SetBounds requests a resize/move to box. edges names the borders being
// dragged; the opposite borders are locked, so they stay put once the
// client's eventual commit lands. The actual configure is throttled
// through package resize: a second call before the first commits
// coalesces into Pending rather than sending a duplicate request.
func (s *Server) SetBounds(t *surface.Toplevel, box image.Rectangle, edges surface.Edges) {
	r := s.record(t)

	var locked surface.Edges
	if edges&surface.EdgeLeft != 0 {
		locked |= surface.EdgeRight
	}
	if edges&surface.EdgeRight != 0 {
		locked |= surface.EdgeLeft
	}
	if edges&surface.EdgeTop != 0 {
		locked |= surface.EdgeBottom
	}
	if edges&surface.EdgeBottom != 0 {
		locked |= surface.EdgeTop
	}
	anchor := resize.SetBounds(box, locked)
	t.AnchorEdges = locked
	t.Anchor = image.Pt(anchor.X, anchor.Y)

	r.pos = surface.NodePosition{X: box.Min.X, Y: box.Min.Y}
	r.node.Position = box.Min
	r.node.DestRect = image.Rect(0, 0, box.Dx(), box.Dy())

	resize.Resize(&t.Resize, box.Dx(), box.Dy(), s.sendConfigure(t))
}

// Commit advances t's resize throttle past serial, flushing a coalesced
// Pending size once the commit catches the dialogue up, then reanchors
// the scene node against the freshly committed buffer so the anchored
// edge stays pinned.
func (s *Server) Commit(t *surface.Toplevel, serial uint32, buf surface.BufferSize) {
	r := s.record(t)
	resize.Commit(&t.Resize, serial, s.sendConfigure(t))

	pos := resize.Reanchor(resize.Anchor{X: t.Anchor.X, Y: t.Anchor.Y, Edges: t.AnchorEdges}, buf.Width, buf.Height)
	r.pos = surface.NodePosition{X: pos.X, Y: pos.Y}
	r.node.Position = pos
	r.buf = buf
}

// --- input.Host ---

// ToplevelAt picks the topmost toplevel under cursorPos by assembling
// the tracked nodes into a throwaway root and running a front-to-back
// scene hit-test over it.
func (s *Server) ToplevelAt(cursorPos image.Point) (*surface.Toplevel, bool) {
	children := make([]*scene.Node, len(s.order))
	for i, t := range s.order {
		children[i] = s.record(t).node
	}
	root := &scene.Node{Enabled: true, Children: children}

	hit, ok := scene.HitTest(root, cursorPos.X, cursorPos.Y)
	if !ok {
		return nil, false
	}
	t, ok := hit.Surface.(*surface.Toplevel)
	return t, ok
}

func (s *Server) FocusedToplevel() *surface.Toplevel { return s.FocusMgr.Current() }
func (s *Server) Focus(t *surface.Toplevel)           { s.FocusMgr.Focus(t) }
func (s *Server) Unfocus(suppressCursorRefresh bool)  { s.FocusMgr.Unfocus(suppressCursorRefresh) }

func (s *Server) Close(t *surface.Toplevel) { s.toolkit.SendClose(t) }

func (s *Server) Interactable(t *surface.Toplevel) bool {
	return !t.Fullscreen && !t.Quirks.Float
}

func (s *Server) CursorVisible() bool {
	return cursor.Choose(s.cursorState, s.toolkit.HasCursorBuffer).Visible()
}

func (s *Server) MainModDown() bool { return s.mainModDown }
func (s *Server) ShiftDown() bool   { return s.shiftDown }

// FocusCycleCandidates returns the z-ordered toplevels front-to-back, or
// reversed when backward is true.
func (s *Server) FocusCycleCandidates(backward bool) []*surface.Toplevel {
	out := make([]*surface.Toplevel, len(s.order))
	for i, t := range s.order {
		out[len(s.order)-1-i] = t // order is back-to-front; reverse for front-to-back
	}
	if backward {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

func (s *Server) ZoneWorkarea(cursorPos image.Point) image.Rectangle {
	if out := s.Layout.At(cursorPos); out != nil {
		return out.Workarea
	}
	if len(s.Layout.Outputs) > 0 {
		return s.Layout.Outputs[0].Workarea
	}
	return image.Rectangle{}
}

func (s *Server) ZonePreviewShow(color input.ZoneColor) {
	s.zonePreview.visible = true
	s.zonePreview.color = color
}

func (s *Server) ZonePreviewHide() { s.zonePreview.visible = false }

func (s *Server) ZonePreviewUpdate(rect image.Rectangle) { s.zonePreview.rect = rect }

func (s *Server) ZoneConfig() zone.Config { return s.Config.Zone }

// SetModifiers updates the gesture/shift modifier state tracked for
// input.Machine's MainModDown/ShiftDown queries, called from the
// keyboard key-event handler.
func (s *Server) SetModifiers(mainMod, shift bool) {
	s.mainModDown = mainMod
	s.shiftDown = shift
}

// UpdateGeometry records a toplevel's latest committed node position,
// client geometry, and buffer size, called from the surface-commit
// handler before any Bounds/SetBounds call needs fresh data.
func (s *Server) UpdateGeometry(t *surface.Toplevel, pos surface.NodePosition, geom surface.ClientGeometry, buf surface.BufferSize) {
	r := s.record(t)
	r.pos, r.geom, r.buf = pos, geom, buf
	r.node.Position = image.Pt(pos.X, pos.Y)
	r.node.DestRect = surface.Geometry(t.Role, geom, buf)
}

// ConstraintNotify sends the constraint activated/deactivated protocol
// event, the Notify callback constraint.Manager requires.
type ConstraintNotify = constraint.Notify

// ActivateConstraint implements the constraint-creation path: deactivate
// whatever constraint currently holds the pointer, then activate c,
// notifying through notify for both transitions.
func (s *Server) ActivateConstraint(c *constraint.Constraint, notify ConstraintNotify) {
	s.Constraints.Activate(c, notify)
}

// DeactivateConstraint implements the constraint-destroy path: a no-op
// unless c is the currently active constraint.
func (s *Server) DeactivateConstraint(c *constraint.Constraint, notify ConstraintNotify) {
	s.Constraints.Deactivate(c, notify)
}

// ApplyPointerMotion runs the active constraint (if any) over one
// pointer-motion event in surface-local coordinates.
func (s *Server) ApplyPointerMotion(focusMatches bool, sx, sy, dx, dy float64) constraint.MotionResult {
	return constraint.ApplyMotion(s.Constraints.Active(), focusMatches, sx, sy, dx, dy)
}

// --- fullscreen / maximize ---

// EnterFullscreen snapshots t's current bounds for later restore, marks
// it fullscreen, and resizes it to fill output. A no-op if already
// fullscreen.
func (s *Server) EnterFullscreen(t *surface.Toplevel, output image.Rectangle) {
	if t.Fullscreen {
		return
	}
	resize.SnapshotFullscreenOrMaximize(t, s.Bounds(t))
	t.Fullscreen = true
	s.SetBounds(t, output, 0)
}

// ExitFullscreen restores t to its pre-fullscreen bounds, clamped into
// workarea. A no-op unless t is fullscreen.
func (s *Server) ExitFullscreen(t *surface.Toplevel, workarea image.Rectangle) {
	if !t.Fullscreen {
		return
	}
	t.Fullscreen = false
	s.SetBounds(t, resize.RestoreClamped(t.PrevBounds, workarea), 0)
}

// Maximize snapshots t's current bounds for later restore, marks it
// maximized, and resizes it to fill workarea. A no-op if already
// maximized.
func (s *Server) Maximize(t *surface.Toplevel, workarea image.Rectangle) {
	if t.Maximized {
		return
	}
	resize.SnapshotFullscreenOrMaximize(t, s.Bounds(t))
	t.Maximized = true
	s.SetBounds(t, workarea, 0)
}

// Unmaximize restores t to its pre-maximize bounds, clamped into
// workarea. A no-op unless t is maximized.
func (s *Server) Unmaximize(t *surface.Toplevel, workarea image.Rectangle) {
	if !t.Maximized {
		return
	}
	t.Maximized = false
	s.SetBounds(t, resize.RestoreClamped(t.PrevBounds, workarea), 0)
}

// --- bindings / scripts ---

// BindScript parses chord and registers a bind that invokes the named
// script thunk when triggered.
func (s *Server) BindScript(chord string, scriptName string) error {
	b, err := bind.FromString(chord)
	if err != nil {
		return err
	}
	s.Binds.Register(bind.CommandBind{
		Bind: b,
		Run: func() {
			if err := s.Scripts.Invoke(scriptName); err != nil {
				logx.Warn("bind triggered unknown script", "chord", chord, "script", scriptName)
			}
		},
	})
	return nil
}

// HandleKey consults the bind table for a matching chord before any
// other key routing. consumed is true if a bind matched (whether or not
// its script ran), telling the caller not to forward the key further.
func (s *Server) HandleKey(modifiers bind.Modifiers, action bind.Action, released bool) (consumed bool) {
	return s.Binds.Trigger(modifiers, action, released)
}
