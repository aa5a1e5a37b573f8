// Package oafown implements the ownership/borrow/lifetime discipline from
// spec.md §3/§4.4: runtime tokens that model a source language's
// compile-time borrow checking dynamically, for use by interpreters/JITs
// that need to verify move/borrow correctness at runtime.
package oafown

import "sync/atomic"

// State is one of the four ownership states from spec.md §3.
//
// Grounded on eventloop/state.go's LoopState pattern of a small closed
// enum backed by an atomic.Uint64 with named transition helpers.
type State uint64

const (
	Uninitialized State = iota
	Owned
	Moved
	Released
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Owned:
		return "Owned"
	case Moved:
		return "Moved"
	case Released:
		return "Released"
	default:
		return "Unknown"
	}
}

// Token is the ownership state machine from spec.md §4.4:
//
//	Uninitialized --init-->        Owned
//	Owned         --move-->        Moved
//	Moved         --reacquire-->   Owned
//	Owned         --release-->     Released        (terminal)
//	Owned         --borrow_imm++-> Owned
//	Owned         --borrow_mut=t-> Owned
//
// Every state transition out of Owned (move, release, transfer) requires
// ImmutableBorrows == 0 && !MutableBorrow. Reads are allowed iff
// State == Owned. Writes are allowed iff State == Owned &&
// ImmutableBorrows == 0 && !MutableBorrow.
type Token struct {
	id              uint64
	lifetimeDepth   int
	state           atomic.Uint64
	immutableBorrows int
	mutableBorrow   bool
}

// Init initialises a token in the Owned state with the given id and
// bound lifetime depth.
func Init(id uint64, lifetimeDepth int) *Token {
	t := &Token{id: id, lifetimeDepth: lifetimeDepth}
	t.state.Store(uint64(Owned))
	return t
}

// ID returns the token's identity.
func (t *Token) ID() uint64 { return t.id }

// LifetimeDepth returns the scope depth this token was bound at.
func (t *Token) LifetimeDepth() int { return t.lifetimeDepth }

// State returns the current ownership state.
func (t *Token) State() State { return State(t.state.Load()) }

func (t *Token) noBorrows() bool {
	return t.immutableBorrows == 0 && !t.mutableBorrow
}

// Move transitions Owned -> Moved. Fails unless the token is Owned with
// no outstanding borrows.
func (t *Token) Move() bool {
	if t.State() != Owned || !t.noBorrows() {
		return false
	}
	t.state.Store(uint64(Moved))
	return true
}

// Reacquire transitions Moved -> Owned. Fails unless the token is Moved
// with no outstanding borrows.
func (t *Token) Reacquire() bool {
	if t.State() != Moved || !t.noBorrows() {
		return false
	}
	t.state.Store(uint64(Owned))
	return true
}

// BorrowImmutable increments the immutable-borrow count. Fails unless the
// token is Owned and no mutable borrow is outstanding.
func (t *Token) BorrowImmutable() bool {
	if t.State() != Owned || t.mutableBorrow {
		return false
	}
	t.immutableBorrows++
	return true
}

// ReleaseImmutable decrements the immutable-borrow count. Fails if the
// count is already zero.
func (t *Token) ReleaseImmutable() bool {
	if t.immutableBorrows == 0 {
		return false
	}
	t.immutableBorrows--
	return true
}

// BorrowMutable sets the exclusive mutable-borrow flag. Fails unless the
// token is Owned with no outstanding borrows of either kind.
func (t *Token) BorrowMutable() bool {
	if t.State() != Owned || t.mutableBorrow || t.immutableBorrows != 0 {
		return false
	}
	t.mutableBorrow = true
	return true
}

// ReleaseMutable clears the exclusive mutable-borrow flag. Fails if it
// was not set.
func (t *Token) ReleaseMutable() bool {
	if !t.mutableBorrow {
		return false
	}
	t.mutableBorrow = false
	return true
}

// Release transitions Owned -> Released (terminal). Fails unless the
// token is Owned with no outstanding borrows.
func (t *Token) Release() bool {
	if t.State() != Owned || !t.noBorrows() {
		return false
	}
	t.state.Store(uint64(Released))
	return true
}

// Transfer copies src's id and lifetime depth onto dst, moves src (Owned
// -> Moved) and leaves dst Owned. Fails unless src is Owned with no
// borrows and dst itself has no outstanding borrows (dst's prior state is
// otherwise unconstrained: it may be Uninitialized, Moved, or Released).
func Transfer(src, dst *Token) bool {
	if src.State() != Owned || !src.noBorrows() || !dst.noBorrows() {
		return false
	}
	dst.id = src.id
	dst.lifetimeDepth = src.lifetimeDepth
	dst.state.Store(uint64(Owned))
	src.state.Store(uint64(Moved))
	return true
}

// CanRead reports whether the token may currently be read: true iff
// State == Owned.
func (t *Token) CanRead() bool { return t.State() == Owned }

// CanWrite reports whether the token may currently be written: true iff
// State == Owned && no outstanding borrows of either kind.
func (t *Token) CanWrite() bool { return t.State() == Owned && t.noBorrows() }

// IsAlive reports whether the token denotes a live, owned value.
//
// This is deliberately identical to CanRead: the original C source
// (ownership.c) defines oaf_ownership_is_alive and oaf_ownership_can_read
// as byte-for-byte the same predicate. Both are kept as distinct methods
// because call sites read more naturally as one or the other — see
// DESIGN.md's Open Question #5.
func (t *Token) IsAlive() bool { return t.State() == Owned }
