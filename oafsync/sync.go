// Package oafsync wraps the OS-backed synchronization primitives used by
// the preemptive side of the runtime (spec.md §3/§4.8): a Mutex/CondVar
// pair with explicit initialized-handle semantics, and a generic
// sequentially-consistent atomic cell.
//
// Go's zero-value sync.Mutex/sync.Cond need no explicit initialization,
// unlike the pthread primitives spec.md §4.8 wraps, so the "returns false
// on an uninitialised handle" contract is preserved here only for parity
// with that explicit-lifecycle contract, not because the underlying
// primitives require it.
package oafsync

import "sync"

// Mutex is a thin, explicitly-initialized wrapper over sync.Mutex.
type Mutex struct {
	mu          sync.Mutex
	initialized bool
}

// NewMutex returns an initialized Mutex.
func NewMutex() *Mutex {
	return &Mutex{initialized: true}
}

// Lock acquires the mutex. Returns false if the handle was never
// initialized via NewMutex.
func (m *Mutex) Lock() bool {
	if !m.initialized {
		return false
	}
	m.mu.Lock()
	return true
}

// Unlock releases the mutex. Returns false if the handle was never
// initialized.
func (m *Mutex) Unlock() bool {
	if !m.initialized {
		return false
	}
	m.mu.Unlock()
	return true
}

// CondVar is a thin, explicitly-initialized wrapper over sync.Cond, bound
// to an external Mutex at construction time (matching spec.md §4.8's
// condvar-bound-to-mutex contract).
type CondVar struct {
	cond        *sync.Cond
	initialized bool
}

// NewCondVar returns a CondVar bound to m's underlying mutex.
func NewCondVar(m *Mutex) *CondVar {
	return &CondVar{cond: sync.NewCond(&m.mu), initialized: true}
}

// Wait blocks on the condition variable. The caller must already hold the
// bound mutex. Returns false if the handle was never initialized.
func (c *CondVar) Wait() bool {
	if !c.initialized {
		return false
	}
	c.cond.Wait()
	return true
}

// Signal wakes one waiter. Returns false if the handle was never
// initialized.
func (c *CondVar) Signal() bool {
	if !c.initialized {
		return false
	}
	c.cond.Signal()
	return true
}

// Broadcast wakes every waiter. Returns false if the handle was never
// initialized.
func (c *CondVar) Broadcast() bool {
	if !c.initialized {
		return false
	}
	c.cond.Broadcast()
	return true
}
