// Package script implements the embedded-script facade: not the
// embedding API itself, but the contract a binding thunk runs under —
// invoked safely, with a panicking or failing thunk unregistered rather
// than crashing the compositor.
package script

import (
	"fmt"

	"driftwl/internal/logx"
)

// Thunk is a binding or listener action registered from the embedded
// script facade: a bind action, an output listener, or similar callback.
type Thunk func() error

// InvokeSafe runs fn, recovering from any panic and converting it to a
// logged failure. It never lets a thunk's failure escape to the
// caller's call stack.
func InvokeSafe(name string, fn Thunk) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logx.Error("script error", "thunk", name, "panic", r)
			ok = false
		}
	}()

	if err := fn(); err != nil {
		logx.Error("script error", "thunk", name, "err", err)
		return false
	}
	return true
}

// Registry holds named thunks, e.g. one per registered key binding, with
// invocation going through InvokeSafe and failed thunks removed so a
// broken binding doesn't keep firing.
type Registry struct {
	thunks map[string]Thunk
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{thunks: make(map[string]Thunk)}
}

// Set registers or replaces the thunk named name.
func (r *Registry) Set(name string, fn Thunk) {
	r.thunks[name] = fn
}

// Unset removes the thunk named name, a no-op if absent.
func (r *Registry) Unset(name string) {
	delete(r.thunks, name)
}

// Has reports whether a thunk named name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.thunks[name]
	return ok
}

// Invoke runs the thunk named name through InvokeSafe, unregistering it
// on failure. It returns an error if no such thunk is registered.
func (r *Registry) Invoke(name string) error {
	fn, ok := r.thunks[name]
	if !ok {
		return fmt.Errorf("script: no thunk registered: %s", name)
	}
	if !InvokeSafe(name, fn) {
		delete(r.thunks, name)
	}
	return nil
}
