package oafalloc

import "unsafe"

// ArenaAllocator is a bump allocator over a single fixed-capacity buffer,
// per spec.md §3/§4.2. Free is a no-op; Reset rewinds the bump offset to
// zero, invalidating every pointer handed out since the last reset (the
// caller's responsibility, per spec.md §3).
type ArenaAllocator struct {
	buffer   []byte
	capacity uintptr
	offset   uintptr
}

// NewArenaAllocator allocates a backing buffer of the given capacity
// (minimum 1 byte, matching the original's "capacity==0 -> capacity=1"
// edge-case handling for temp/arena init).
func NewArenaAllocator(capacity uintptr) *ArenaAllocator {
	if capacity == 0 {
		capacity = 1
	}
	return &ArenaAllocator{
		buffer:   make([]byte, capacity),
		capacity: capacity,
	}
}

func (a *ArenaAllocator) base() uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(a.buffer)))
}

func (a *ArenaAllocator) Alloc(size, align uintptr) unsafe.Pointer {
	size = normalizeSize(size)
	alignedOffset := AlignForward(a.offset, align)
	if alignedOffset+size > a.capacity {
		return nil
	}
	ptr := unsafe.Pointer(a.base() + alignedOffset)
	a.offset = alignedOffset + size
	return ptr
}

// Realloc always bump-allocates a fresh block and copies
// min(oldSize,newSize) bytes from the old block ("copy-then-bump"), per
// spec.md §4.1/§4.2. See DESIGN.md's Open Question #1: the original C
// arena_realloc does this, and this implementation additionally applies
// the same copy-then-bump behaviour to TempAllocator.Realloc (whose
// original C counterpart, unusually, did not copy) because spec.md's
// bit-stable-sounding contract text states the rule applies to both.
func (a *ArenaAllocator) Realloc(ptr unsafe.Pointer, oldSize, newSize, align uintptr) unsafe.Pointer {
	if ptr == nil {
		return a.Alloc(newSize, align)
	}
	replacement := a.Alloc(newSize, align)
	if replacement == nil {
		return nil
	}
	n := oldSize
	if newSize < n {
		n = newSize
	}
	if n > 0 {
		src := unsafe.Slice((*byte)(ptr), n)
		dst := unsafe.Slice((*byte)(replacement), n)
		copy(dst, src)
	}
	return replacement
}

// Free is a no-op: arenas are reclaimed only via Reset.
func (a *ArenaAllocator) Free(unsafe.Pointer) {}

// Reset rewinds the bump offset to zero. Every pointer previously handed
// out becomes dangling; it is the caller's responsibility not to use them.
func (a *ArenaAllocator) Reset() {
	a.offset = 0
}

// Offset returns the current bump offset (bytes used).
func (a *ArenaAllocator) Offset() uintptr { return a.offset }

// Capacity returns the arena's total byte capacity.
func (a *ArenaAllocator) Capacity() uintptr { return a.capacity }
