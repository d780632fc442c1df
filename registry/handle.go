package registry

import (
	"io"
	"sync"
	"sync/atomic"
)

// release closes v if it implements io.Closer. Construction variants differ
// only in the wrapper around one lookup-and-construct path; this is the one
// piece of teardown they share.
func release[B any](v B) error {
	if c, ok := any(v).(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Unique is a sole-ownership handle over a created instance. Close releases
// the instance (invoking io.Closer when implemented); further Close calls
// are no-ops.
type Unique[B any] struct {
	value  B
	closed sync.Once
}

func newUnique[B any](v B) *Unique[B] {
	return &Unique[B]{value: v}
}

// Value returns the owned instance. The handle retains ownership; do not use
// the instance after Close.
func (u *Unique[B]) Value() B { return u.value }

// Close releases the owned instance exactly once.
func (u *Unique[B]) Close() error {
	var err error
	u.closed.Do(func() {
		err = release(u.value)
	})
	return err
}

// Shared is a reference-counted handle over a created instance. Multiple
// owners hold the same underlying instance; the last Release closes it.
type Shared[B any] struct {
	state *sharedState[B]
}

type sharedState[B any] struct {
	value B
	refs  atomic.Int32
	done  sync.Once
}

func newShared[B any](v B) *Shared[B] {
	s := &sharedState[B]{value: v}
	s.refs.Store(1)
	return &Shared[B]{state: s}
}

// Value returns the shared instance.
func (s *Shared[B]) Value() B { return s.state.value }

// Retain adds an owner and returns a handle over the same instance.
func (s *Shared[B]) Retain() *Shared[B] {
	s.state.refs.Add(1)
	return &Shared[B]{state: s.state}
}

// Refs returns the current owner count.
func (s *Shared[B]) Refs() int { return int(s.state.refs.Load()) }

// Release drops one owner. When the last owner releases, the instance is
// closed (invoking io.Closer when implemented). Releasing more times than
// Retain was called is a no-op.
func (s *Shared[B]) Release() error {
	if s.state.refs.Add(-1) > 0 {
		return nil
	}
	var err error
	s.state.done.Do(func() {
		err = release(s.state.value)
	})
	return err
}
