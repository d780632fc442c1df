package registry

import "fmt"

// Named is the introspection contract every base capability exposes: a
// runtime identity string and a human-readable description.
type Named interface {
	// Name returns the registered name of this instance, or "" when the
	// instance was constructed outside the registry.
	Name() string
	// Info returns a human-readable description of this instance.
	Info() string
}

// identity is satisfied by children that embed Entity; the create path uses
// it to stamp the registered name onto freshly constructed instances.
type identity interface {
	setIdentity(name string)
}

// stampIdentity records name on child if it embeds Entity.
func stampIdentity(child any, name string) {
	if id, ok := child.(identity); ok {
		id.setIdentity(name)
	}
}

// Entity provides the default Named implementation. Embed it (by pointer
// receiver semantics, embed the value in a struct used through a pointer) in
// concrete children; Create stamps the registered name after construction.
type Entity struct {
	name string
}

// Name returns the name this instance was created under, or "".
func (e *Entity) Name() string { return e.name }

// Info returns a generic description until the instance has been stamped
// with a registered name.
func (e *Entity) Info() string {
	if e.name == "" {
		return "Register base class."
	}
	return fmt.Sprintf("Registered sub-class %q.", e.name)
}

func (e *Entity) setIdentity(name string) { e.name = name }
