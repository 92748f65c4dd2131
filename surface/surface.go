// Package surface implements a tagged-variant surface model: toplevels,
// popups, layer surfaces, subsurfaces, and drag icons, dispatched by
// Role rather than by a type hierarchy — functions dispatch on role,
// never on virtual tables.
package surface

import (
	"image"

	"driftwl/internal/wlr"
)

// Role tags the variant payload a Surface carries.
type Role uint8

const (
	RoleToplevel Role = iota
	RolePopup
	RoleLayer
	RoleSubsurface
	RoleDragIcon
)

func (r Role) String() string {
	switch r {
	case RoleToplevel:
		return "toplevel"
	case RolePopup:
		return "popup"
	case RoleLayer:
		return "layer"
	case RoleSubsurface:
		return "subsurface"
	case RoleDragIcon:
		return "drag-icon"
	default:
		return "unknown"
	}
}

// Anchor identifies the corner of a Toplevel that a resize intends to
// keep pinned in place.
type Anchor uint8

const (
	AnchorTopLeft Anchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

// Edges is a bitmask of which edges of a bounds rectangle are anchored,
// matching wlr_edges.
type Edges uint8

const (
	EdgeTop Edges = 1 << iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

// Cursor records the cursor surface a client has asked to show while its
// surface holds pointer focus. SurfaceSet=false means "inherit default".
type Cursor struct {
	Surface    wlr.Handle
	HotspotX   int32
	HotspotY   int32
	SurfaceSet bool
}

// Quirks carries the per-app-id window rule (float, ignore zone
// requests, fixed opacity) a compositor administrator can set.
type Quirks struct {
	Float   bool
	NoZone  bool
	Opacity float32
}

// Surface is the shared state of every variant. Variant-specific state
// lives in the Toplevel/Popup/Layer/Subsurface/DragIcon structs, which
// embed *Surface.
type Surface struct {
	Role Role

	Native    wlr.Handle // the wlr_surface-equivalent opaque handle
	SceneTree wlr.Handle // scene node this surface's buffers live under
	PopupTree wlr.Handle // scene node child popups attach to; may equal SceneTree

	Cursor Cursor

	Outputs map[string]struct{} // set of output names this surface overlaps

	listeners wlr.Set
}

// Toplevel is a client window: borders, fullscreen/maximize, decorations,
// foreign-toplevel handle, resize dialogue.
type Toplevel struct {
	*Surface

	Borders [4]image.Rectangle // left, top, right, bottom, in surface-local coords

	PrevBounds image.Rectangle // pre-fullscreen/maximize bounds, for round-trip restore
	Anchor     image.Point
	AnchorEdges Edges

	Decoration wlr.Handle
	Foreign    wlr.Handle

	Quirks Quirks

	Resize ResizeDialogue

	Fullscreen bool
	Maximized  bool
	Activated  bool
}

// ResizeDialogue is the per-toplevel request/commit bookkeeping for the
// resize throttle. The throttle algorithm itself lives in package
// resize, which operates on this state; it is embedded here (rather
// than in package resize) so Toplevel carries no dependency on resize,
// matching the surface package's role as the leaf data model.
type ResizeDialogue struct {
	LastRequestSerial uint32
	LastCommitSerial  uint32
	Pending           *PendingSize
	ThrottleEnabled   bool
}

// PendingSize is a size the client has not yet been asked for because a
// request is still in flight.
type PendingSize struct {
	Width, Height int
}

// Popup is a transient surface parented to another xdg surface, positioned
// relative to its parent.
type Popup struct {
	*Surface
	Parent   *Surface
	RelativeX, RelativeY int
}

// Layer ∈ {background, bottom, top, overlay}, matching zwlr_layer_shell_v1.
type Layer uint8

const (
	LayerBackground Layer = iota
	LayerBottom
	LayerTop
	LayerOverlay
)

// LayerSurface anchors to a screen edge at a given layer.
type LayerSurface struct {
	*Surface
	Layer  Layer
	Anchor uint32 // zwlr_layer_surface_v1 anchor bitmask
	Margin image.Rectangle
}

// Subsurface is parented to another surface and has no independent role
// of its own beyond that relationship.
type Subsurface struct {
	*Surface
	Parent *Surface
}

// DragIcon follows a data-source drag operation.
type DragIcon struct {
	*Surface
	DataSource wlr.Handle
}

// New allocates a Surface of the given role with a fresh listener set.
// Native becomes the Surface's unique owner: callers must route all
// further lookups for native through the caller-maintained registry
// rather than re-deriving it.
func New(role Role, native wlr.Handle, sceneTree wlr.Handle) *Surface {
	return &Surface{
		Role:      role,
		Native:    native,
		SceneTree: sceneTree,
		PopupTree: sceneTree,
		Outputs:   make(map[string]struct{}),
	}
}

// Listeners exposes the per-surface listener set so callers can Track
// signal subscriptions that must be detached on destruction.
func (s *Surface) Listeners() *wlr.Set { return &s.listeners }

// Cleanup nulls the native back-pointer before the tagged object is
// freed, so any stray lookup through the old handle finds nothing.
// Listeners are detached first since a listener firing mid-cleanup must
// not observe a half-torn-down Surface.
func (s *Surface) Cleanup() {
	s.listeners.Close()
	s.Native.Clear()
}
