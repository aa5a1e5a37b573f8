package oafsync

import "sync/atomic"

// AtomicInt64 is a sequentially-consistent 64-bit counter, per spec.md
// §4.8's atomic primitive requirement. It wraps atomic.Int64 directly;
// Go's atomic package already guarantees sequential consistency for these
// operations, so no additional fencing is needed.
type AtomicInt64 struct {
	v atomic.Int64
}

// NewAtomicInt64 returns an AtomicInt64 initialized to initial.
func NewAtomicInt64(initial int64) *AtomicInt64 {
	a := &AtomicInt64{}
	a.v.Store(initial)
	return a
}

// Load returns the current value.
func (a *AtomicInt64) Load() int64 { return a.v.Load() }

// Store sets the value unconditionally.
func (a *AtomicInt64) Store(val int64) { a.v.Store(val) }

// Add adds delta and returns the new value.
func (a *AtomicInt64) Add(delta int64) int64 { return a.v.Add(delta) }

// CompareAndSwap swaps val in for old, iff the current value equals old.
func (a *AtomicInt64) CompareAndSwap(old, val int64) bool {
	return a.v.CompareAndSwap(old, val)
}
