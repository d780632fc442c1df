package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Creator constructs one concrete child from a fixed argument tuple, returning
// it upward-typed as the base capability. Creators own no mutable state and
// must be safe to call concurrently.
type Creator[B any, A any] func(args A) B

// NoArgs is the argument tuple for bases whose children take no
// constructor arguments.
type NoArgs struct{}

var (
	// ErrUnknown indicates a Create call for a name no child has registered.
	ErrUnknown = errors.New("registry: unknown name")
	// ErrEmptyName indicates a registration attempt under the empty string.
	ErrEmptyName = errors.New("registry: empty name")
	// ErrDuplicate indicates a registration attempt for a name already taken.
	ErrDuplicate = errors.New("registry: duplicate name")
)

// Options control table behavior.
type Options struct {
	// Description is a human-readable summary of the base capability,
	// reported by instances that have not overridden Info.
	Description string
}

// Option modifies Options.
type Option func(*Options)

// WithDescription sets the base capability's description.
func WithDescription(desc string) Option {
	return func(o *Options) { o.Description = desc }
}

// Base is the name→Creator table for one base capability and one fixed
// constructor-argument signature. It is safe for concurrent use. The zero
// value is not usable; construct with NewBase.
type Base[B any, A any] struct {
	mu       sync.RWMutex
	creators map[string]Creator[B, A]
	opt      Options
}

// NewBase creates an empty table for a base capability. Call it once per
// (base, argument-signature) pair, typically in a package-level variable.
func NewBase[B any, A any](opts ...Option) *Base[B, A] {
	var o Options
	for _, fn := range opts {
		fn(&o)
	}
	return &Base[B, A]{
		creators: make(map[string]Creator[B, A]),
		opt:      o,
	}
}

// Description returns the base capability's configured description.
func (b *Base[B, A]) Description() string { return b.opt.Description }

// Create constructs a new instance of the child registered under name,
// forwarding args to its creator. The caller owns the result. Unknown names
// yield the zero value of B and an error wrapping ErrUnknown.
func (b *Base[B, A]) Create(name string, args A) (B, error) {
	b.mu.RLock()
	fn, ok := b.creators[name]
	b.mu.RUnlock()
	if !ok {
		var zero B
		return zero, fmt.Errorf("create %q: %w", name, ErrUnknown)
	}

	// Construction happens outside the lock: a slow or reentrant creator
	// must not stall other registrations or lookups.
	child := fn(args)
	stampIdentity(child, name)
	return child, nil
}

// CreateUnique is Create wrapped in a sole-ownership handle. The handle's
// Close releases the instance; see Unique.
func (b *Base[B, A]) CreateUnique(name string, args A) (*Unique[B], error) {
	child, err := b.Create(name, args)
	if err != nil {
		return nil, err
	}
	return newUnique(child), nil
}

// CreateShared is Create wrapped in a reference-counted handle. Retain adds
// owners; the last Release releases the instance; see Shared.
func (b *Base[B, A]) CreateShared(name string, args A) (*Shared[B], error) {
	child, err := b.Create(name, args)
	if err != nil {
		return nil, err
	}
	return newShared(child), nil
}

// HasChild reports whether name is currently registered.
func (b *Base[B, A]) HasChild(name string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.creators[name]
	return ok
}

// SetChild registers fn under name. It fails, mutating nothing, if name is
// empty or already registered.
func (b *Base[B, A]) SetChild(name string, fn Creator[B, A]) bool {
	if name == "" || fn == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.creators[name]; exists {
		return false
	}
	b.creators[name] = fn
	return true
}

// Register is SetChild with an error telling the caller which rule rejected
// the registration: ErrEmptyName or ErrDuplicate.
func (b *Base[B, A]) Register(name string, fn Creator[B, A]) error {
	if name == "" {
		return ErrEmptyName
	}
	if !b.SetChild(name, fn) {
		return fmt.Errorf("register %q: %w", name, ErrDuplicate)
	}
	return nil
}

// RemoveChild removes the registration for name, reporting whether a child
// was removed. Instances already constructed are unaffected.
func (b *Base[B, A]) RemoveChild(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.creators[name]; !ok {
		return false
	}
	delete(b.creators, name)
	return true
}

// GetChildren returns all registered names in ascending lexical order,
// independent of registration order.
func (b *Base[B, A]) GetChildren() []string {
	b.mu.RLock()
	names := make([]string, 0, len(b.creators))
	for name := range b.creators {
		names = append(names, name)
	}
	b.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Len returns the number of registered children.
func (b *Base[B, A]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.creators)
}
