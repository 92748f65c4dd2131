// Package wlr models the non-owning native handles the compositor core
// holds into the underlying scene-graph toolkit (outputs, surfaces,
// seats). The toolkit itself — buffer upload, renderer, backend
// enumeration — lives outside this module; wlr only carries the opaque
// references and the listener bookkeeping the core needs to stay
// consistent with them.
package wlr

import "sync/atomic"

var nextHandleID uint64

// Handle is an opaque reference to a native object owned by the toolkit
// (a wlr_surface, wlr_output, wlr_seat, ...). It carries no data of its
// own; callers type-assert the Native pointer to the concrete toolkit
// type they expect. A zero Handle refers to nothing.
type Handle struct {
	id     uint64
	Native any
}

// NewHandle wraps a native toolkit object in a Handle with a fresh
// identity. The Handle does not own native; the toolkit's own lifetime
// rules govern it.
func NewHandle(native any) Handle {
	return Handle{id: atomic.AddUint64(&nextHandleID, 1), Native: native}
}

// Valid reports whether h refers to a live native object.
func (h Handle) Valid() bool { return h.id != 0 }

// Clear detaches h from its native object: a destroyed surface nulls its
// own back-pointer before freeing, so any stray lookup through the old
// Handle finds nothing.
func (h *Handle) Clear() {
	h.id = 0
	h.Native = nil
}
