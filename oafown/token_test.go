package oafown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_MoveThenReacquire(t *testing.T) {
	tok := Init(1, 0)
	require.True(t, tok.Move())
	assert.False(t, tok.CanRead())
	assert.False(t, tok.CanWrite())

	require.True(t, tok.Reacquire())
	assert.True(t, tok.CanRead())
	assert.True(t, tok.CanWrite())
}

func TestToken_MoveFailsWithOutstandingBorrow(t *testing.T) {
	tok := Init(1, 0)
	require.True(t, tok.BorrowImmutable())
	assert.False(t, tok.Move())
	require.True(t, tok.ReleaseImmutable())
	assert.True(t, tok.Move())
}

func TestToken_MutableBorrowExclusive(t *testing.T) {
	tok := Init(1, 0)
	require.True(t, tok.BorrowImmutable())
	assert.False(t, tok.BorrowMutable(), "mutable borrow excluded while immutable borrows exist")
	require.True(t, tok.ReleaseImmutable())
	require.True(t, tok.BorrowMutable())
	assert.False(t, tok.BorrowImmutable(), "immutable borrow excluded while mutable borrow held")
	assert.False(t, tok.BorrowMutable(), "mutable borrow is exclusive")
}

func TestToken_ReleaseTerminal(t *testing.T) {
	tok := Init(1, 0)
	require.True(t, tok.Release())
	assert.Equal(t, Released, tok.State())
	assert.False(t, tok.Move())
	assert.False(t, tok.Release())
}

func TestToken_Transfer(t *testing.T) {
	src := Init(7, 2)
	dst := Init(0, 0)

	require.True(t, Transfer(src, dst))
	assert.Equal(t, Moved, src.State())
	assert.Equal(t, Owned, dst.State())
	assert.Equal(t, uint64(7), dst.ID())
	assert.Equal(t, 2, dst.LifetimeDepth())
}

func TestToken_TransferFailsWithBorrows(t *testing.T) {
	src := Init(1, 0)
	dst := Init(2, 0)
	require.True(t, dst.BorrowImmutable())

	assert.False(t, Transfer(src, dst))
	assert.Equal(t, Owned, src.State())
}

func TestToken_IsAliveMatchesCanRead(t *testing.T) {
	tok := Init(1, 0)
	assert.Equal(t, tok.CanRead(), tok.IsAlive())
	tok.Move()
	assert.Equal(t, tok.CanRead(), tok.IsAlive())
}

func TestLifetimeTracker_EnterExitAndValidity(t *testing.T) {
	lt := NewLifetimeTracker(2)
	require.True(t, lt.EnterScope())
	tok := Init(1, lt.CurrentDepth())
	assert.True(t, lt.Valid(tok))

	require.True(t, lt.ExitScope())
	assert.False(t, lt.Valid(tok), "token bound to an exited scope is no longer valid")
	// token state machine itself is unaffected by lifetime exit
	assert.Equal(t, Owned, tok.State())
}

func TestLifetimeTracker_MaxDepthExhaustion(t *testing.T) {
	lt := NewLifetimeTracker(1)
	require.True(t, lt.EnterScope())
	assert.False(t, lt.EnterScope())
}

func TestLifetimeTracker_ExitUnderflow(t *testing.T) {
	lt := NewLifetimeTracker(1)
	assert.False(t, lt.ExitScope())
}
