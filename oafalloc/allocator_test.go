package oafalloc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignForward(t *testing.T) {
	assert.Equal(t, uintptr(16), AlignForward(9, 8))
	assert.Equal(t, uintptr(8), AlignForward(8, 8))
	assert.Equal(t, uintptr(5), AlignForward(5, 0))
	assert.Equal(t, uintptr(5), AlignForward(5, 1))
}

func TestDefaultAllocator_ActiveAllocationsReturnsToZero(t *testing.T) {
	leak := NewLeakDetector()
	a := NewDefaultAllocator(leak)

	var ptrs []unsafe.Pointer
	for i := 0; i < 10; i++ {
		p := a.Alloc(32, 8)
		require.NotNil(t, p)
		ptrs = append(ptrs, p)
	}
	assert.Equal(t, 10, a.ActiveAllocations())
	assert.Equal(t, 10, leak.ActiveAllocations())

	for _, p := range ptrs {
		a.Free(p)
	}
	assert.Equal(t, 0, a.ActiveAllocations())
	assert.Equal(t, 0, leak.ActiveAllocations())
	assert.False(t, leak.HasLeaks())
}

func TestDefaultAllocator_FreeNilIsNoOp(t *testing.T) {
	a := NewDefaultAllocator(nil)
	assert.NotPanics(t, func() { a.Free(nil) })
}

func TestDefaultAllocator_ReallocCopiesAndFreesOld(t *testing.T) {
	a := NewDefaultAllocator(nil)
	p := a.Alloc(4, 1)
	b := unsafe.Slice((*byte)(p), 4)
	copy(b, []byte{1, 2, 3, 4})

	p2 := a.Realloc(p, 4, 8, 1)
	require.NotNil(t, p2)
	b2 := unsafe.Slice((*byte)(p2), 8)
	assert.Equal(t, []byte{1, 2, 3, 4}, b2[:4])
	assert.Equal(t, 1, a.ActiveAllocations())
}

func TestArenaAllocator_BumpAndReset(t *testing.T) {
	a := NewArenaAllocator(64)
	p1 := a.Alloc(16, 1)
	require.NotNil(t, p1)
	assert.Equal(t, uintptr(16), a.Offset())

	p2 := a.Alloc(64, 1)
	assert.Nil(t, p2, "exceeds capacity")

	a.Reset()
	assert.Equal(t, uintptr(0), a.Offset())
	p3 := a.Alloc(64, 1)
	assert.NotNil(t, p3)
}

func TestArenaAllocator_Realloc_CopiesThenBumps(t *testing.T) {
	a := NewArenaAllocator(128)
	p := a.Alloc(4, 1)
	b := unsafe.Slice((*byte)(p), 4)
	copy(b, []byte{9, 8, 7, 6})

	p2 := a.Realloc(p, 4, 10, 1)
	require.NotNil(t, p2)
	assert.NotEqual(t, p, p2)
	b2 := unsafe.Slice((*byte)(p2), 10)
	assert.Equal(t, []byte{9, 8, 7, 6}, b2[:4])
}

func TestArenaAllocator_FreeIsNoOp(t *testing.T) {
	a := NewArenaAllocator(64)
	p := a.Alloc(8, 1)
	a.Free(p)
	assert.Equal(t, uintptr(8), a.Offset(), "free must not rewind the bump offset")
}

func TestPoolAllocator_AllocExhaustionAndFree(t *testing.T) {
	p := NewPoolAllocator(16, 2)
	p1 := p.Alloc(8, 0)
	p2 := p.Alloc(8, 0)
	require.NotNil(t, p1)
	require.NotNil(t, p2)
	assert.Equal(t, uintptr(2), p.ActiveBlocks())

	p3 := p.Alloc(8, 0)
	assert.Nil(t, p3, "pool exhausted")

	p.Free(p1)
	assert.Equal(t, uintptr(1), p.ActiveBlocks())
	p4 := p.Alloc(8, 0)
	assert.NotNil(t, p4)
}

func TestPoolAllocator_RejectsOversizeAlloc(t *testing.T) {
	p := NewPoolAllocator(16, 4)
	assert.Nil(t, p.Alloc(17, 0))
}

func TestPoolAllocator_ReallocInPlaceAndRejectGrowth(t *testing.T) {
	p := NewPoolAllocator(32, 4)
	ptr := p.Alloc(8, 0)
	require.NotNil(t, ptr)

	same := p.Realloc(ptr, 8, 20, 0)
	assert.Equal(t, ptr, same, "realloc within block size returns the same pointer")

	grown := p.Realloc(ptr, 8, 64, 0)
	assert.Nil(t, grown, "realloc beyond block size is rejected")
}

func TestPoolAllocator_RejectsTinyBlockSize(t *testing.T) {
	p := NewPoolAllocator(1, 4)
	assert.Nil(t, p.Alloc(1, 0))
}

func TestTempAllocator_MarkConsumedOnce(t *testing.T) {
	temp := NewTempAllocator(256)
	temp.Alloc(16, 1)

	h, ok := temp.Mark()
	require.True(t, ok)

	temp.Alloc(16, 1)
	assert.True(t, temp.ResetToMark(h))
	assert.False(t, temp.ResetToMark(h), "reusing a popped handle must fail")
}

func TestTempAllocator_ResetToMarkDiscardsHigherMarks(t *testing.T) {
	temp := NewTempAllocator(256)
	h1, _ := temp.Mark()
	temp.Alloc(8, 1)
	h2, _ := temp.Mark()
	temp.Alloc(8, 1)
	_, _ = temp.Mark()

	require.True(t, temp.ResetToMark(h1))
	assert.Equal(t, h1, temp.MarkCount())
	assert.False(t, temp.ResetToMark(h2), "h2 was discarded by the reset to h1")
}

func TestTempAllocator_MarkExhaustion(t *testing.T) {
	temp := NewTempAllocator(4096)
	for i := 0; i < MaxMarks; i++ {
		_, ok := temp.Mark()
		require.True(t, ok)
	}
	_, ok := temp.Mark()
	assert.False(t, ok)
}

func TestTempAllocator_Realloc_CopiesThenBumps(t *testing.T) {
	temp := NewTempAllocator(256)
	p := temp.Alloc(4, 1)
	b := unsafe.Slice((*byte)(p), 4)
	copy(b, []byte{1, 1, 2, 3})

	p2 := temp.Realloc(p, 4, 8, 1)
	require.NotNil(t, p2)
	b2 := unsafe.Slice((*byte)(p2), 8)
	assert.Equal(t, []byte{1, 1, 2, 3}, b2[:4])
}

func TestLeakDetector_DuplicateInsertionReplacesSize(t *testing.T) {
	d := NewLeakDetector()
	ptr := unsafe.Pointer(&struct{}{})

	d.TrackAlloc(ptr, 10)
	d.TrackAlloc(ptr, 20)

	assert.Equal(t, 1, d.ActiveAllocations())
	assert.Equal(t, uint64(20), d.ActiveBytes())
	assert.Equal(t, uint64(20), d.PeakBytes())
}

func TestLeakDetector_CapacityExhaustionDropsRecords(t *testing.T) {
	d := NewLeakDetector()
	ptrs := make([]int, MaxLeakRecords+5)
	for i := range ptrs {
		d.TrackAlloc(unsafe.Pointer(&ptrs[i]), 1)
	}
	assert.Equal(t, MaxLeakRecords, d.ActiveAllocations())
	assert.Equal(t, 5, d.DroppedRecords())
}

func TestLeakDetector_TrackFreeUnknownPointerFails(t *testing.T) {
	d := NewLeakDetector()
	assert.False(t, d.TrackFree(unsafe.Pointer(&struct{}{})))
}
