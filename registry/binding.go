package registry

import (
	"fmt"
	"sync"
)

// Binding ties one concrete child type to a base table under at most one
// active name. It is the self-registration mechanism: declare a binding as a
// package-level variable and the child's creator is installed during package
// initialization, exactly once, with no cross-package ordering hazards.
//
// A binding created with an empty name registers nothing; the child exists
// only as an instantiable type until SetName is called.
type Binding[B any, A any] struct {
	base    *Base[B, A]
	creator Creator[B, A]

	activate sync.Once

	mu    sync.Mutex
	name  string
	bound bool
}

// Bind creates the binding for one child type and performs its initial
// self-registration when name is non-empty. If the name is already taken the
// registration silently fails; the recorded name is kept regardless, matching
// the original registration semantics (Registered reports the truth).
func Bind[B any, A any](base *Base[B, A], name string, fn Creator[B, A]) *Binding[B, A] {
	bd := &Binding[B, A]{base: base, creator: fn}
	bd.Activate(name)
	return bd
}

// Activate installs the child's creator under name, exactly once for the
// lifetime of the binding, even when racing callers trigger it concurrently.
// Subsequent calls are no-ops. Bind calls it; it is exported for children
// that defer registration to an explicit startup routine.
func (bd *Binding[B, A]) Activate(name string) {
	bd.activate.Do(func() {
		if name == "" {
			return
		}
		bd.mu.Lock()
		defer bd.mu.Unlock()
		bd.name = name
		bd.bound = bd.base.SetChild(name, bd.creator)
	})
}

// GetName returns the name this binding records for its child, or "" if a
// name was never set. After a failed SetName the recorded name can be stale
// relative to the table; Registered distinguishes the two.
func (bd *Binding[B, A]) GetName() string {
	bd.mu.Lock()
	defer bd.mu.Unlock()
	return bd.name
}

// Registered reports whether the child's creator is currently installed in
// the table under the recorded name.
func (bd *Binding[B, A]) Registered() bool {
	bd.mu.Lock()
	defer bd.mu.Unlock()
	return bd.bound && bd.name != "" && bd.base.HasChild(bd.name)
}

// SetName re-registers the child under newName. The old registration is
// removed first and is not restored when the new name cannot be obtained: on
// failure the child ends up unregistered and SetName returns false. This
// no-rollback behavior is deliberate; callers that need the old name back
// must re-register it themselves.
func (bd *Binding[B, A]) SetName(newName string) bool {
	bd.mu.Lock()
	defer bd.mu.Unlock()

	if bd.bound {
		bd.base.RemoveChild(bd.name)
	}
	if bd.base.SetChild(newName, bd.creator) {
		bd.name = newName
		bd.bound = true
		return true
	}
	bd.bound = false
	return false
}

// Info returns a description embedding the recorded name.
func (bd *Binding[B, A]) Info() string {
	return fmt.Sprintf("Registered sub-class %q.", bd.GetName())
}
