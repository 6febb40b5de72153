package sequence

import "sync/atomic"

// Sequencer generates strictly monotonic ids shared across every
// ingress goroutine (spec.md §5's atomic-counter alternative for
// OrderId assignment; see DESIGN.md's Open Question decision).
type Sequencer struct {
	next atomic.Uint64
}

// New creates a sequencer whose first Next() call returns start+1.
func New(start uint64) *Sequencer {
	s := &Sequencer{}
	s.next.Store(start)
	return s
}

// Next returns the next id, starting from 1 (spec.md §3: OrderIds are
// monotonic starting at 1).
func (s *Sequencer) Next() uint64 {
	return s.next.Add(1)
}

// Current returns the last issued id.
func (s *Sequencer) Current() uint64 {
	return s.next.Load()
}
