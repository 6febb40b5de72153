// Package pool provides a typed object pool used to bound allocation
// churn on the engine's hot path. Adapted from the teacher's
// infra/memory.Pool[T]; the epoch/RCU reclamation machinery that
// accompanied it there is dropped, because SPEC_FULL.md's book has
// exactly one goroutine touching it and no concurrent readers to
// protect against (see DESIGN.md).
package pool

import "sync"

// Pool is a typed wrapper around sync.Pool.
type Pool[T any] struct {
	p *sync.Pool
}

// New builds a pool whose objects are created by ctor on first use.
func New[T any](ctor func() *T) *Pool[T] {
	return &Pool[T]{p: &sync.Pool{New: func() any { return ctor() }}}
}

func (p *Pool[T]) Get() *T {
	return p.p.Get().(*T)
}

func (p *Pool[T]) Put(v *T) {
	p.p.Put(v)
}
