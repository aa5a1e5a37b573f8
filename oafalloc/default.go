package oafalloc

import (
	"sync"
	"unsafe"
)

// DefaultAllocator delegates to the Go runtime's own allocator (spec.md
// §4.2's "delegates to the platform allocator"), tracking counters on
// every call and, when a LeakDetector is attached, mirroring every
// alloc/free through it.
//
// Go has no free() for arbitrary heap pointers, so DefaultAllocator keeps
// each live allocation's backing []byte alive in an internal table keyed
// by its address, both to give Free something concrete to release and to
// prevent the garbage collector from reclaiming memory that "C-level"
// code still holds a raw pointer to.
type DefaultAllocator struct {
	mu sync.Mutex

	activeAllocations  int
	totalAllocatedBytes uint64
	failedAllocations  int

	live map[unsafe.Pointer][]byte

	leak *LeakDetector
}

// NewDefaultAllocator returns a DefaultAllocator. leak may be nil.
func NewDefaultAllocator(leak *LeakDetector) *DefaultAllocator {
	return &DefaultAllocator{
		live: make(map[unsafe.Pointer][]byte),
		leak: leak,
	}
}

func (a *DefaultAllocator) Alloc(size, align uintptr) unsafe.Pointer {
	size = normalizeSize(size)
	// over-allocate so we can hand back an aligned interior pointer while
	// still owning (and being able to free) the whole backing slice.
	a.mu.Lock()
	defer a.mu.Unlock()

	buf := make([]byte, size+align)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	aligned := AlignForward(base, align)
	ptr := unsafe.Pointer(aligned)

	a.live[ptr] = buf
	a.activeAllocations++
	a.totalAllocatedBytes += uint64(size)
	if a.leak != nil {
		a.leak.TrackAlloc(ptr, size)
	}
	return ptr
}

func (a *DefaultAllocator) Realloc(ptr unsafe.Pointer, oldSize, newSize, align uintptr) unsafe.Pointer {
	if ptr == nil {
		return a.Alloc(newSize, align)
	}
	newPtr := a.Alloc(newSize, align)
	if newPtr == nil {
		return nil
	}
	n := oldSize
	if newSize < n {
		n = newSize
	}
	if n > 0 {
		src := unsafe.Slice((*byte)(ptr), n)
		dst := unsafe.Slice((*byte)(newPtr), n)
		copy(dst, src)
	}
	a.Free(ptr)
	return newPtr
}

func (a *DefaultAllocator) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.live[ptr]; !ok {
		return
	}
	delete(a.live, ptr)
	if a.activeAllocations > 0 {
		a.activeAllocations--
	}
	if a.leak != nil {
		a.leak.TrackFree(ptr)
	}
}

// ActiveAllocations is the number of outstanding (non-freed) allocations.
func (a *DefaultAllocator) ActiveAllocations() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.activeAllocations
}

// TotalAllocatedBytes is the cumulative number of bytes ever requested
// via Alloc (not adjusted by Free).
func (a *DefaultAllocator) TotalAllocatedBytes() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.totalAllocatedBytes
}

// FailedAllocations is always 0 for DefaultAllocator: the Go runtime
// allocator does not fail short of an unrecoverable out-of-memory
// condition, which this layer cannot meaningfully intercept. The counter
// is retained for parity with spec.md §3's default allocator state and
// so callers instrumenting allocators uniformly can read it without a
// type switch.
func (a *DefaultAllocator) FailedAllocations() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.failedAllocations
}
