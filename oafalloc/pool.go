package oafalloc

import "unsafe"

// PoolAllocator manages a fixed count of fixed-size blocks threaded onto a
// free list via an embedded next-pointer (spec.md §3/§4.2).
//
// Grounded on original_source/src/Runtime/memory/src/allocators/pool_allocator.c:
// the free list is built at init time by threading every block together in
// reverse index order, so Alloc does not yield blocks in ascending address
// order — preserved faithfully, see DESIGN.md.
type PoolAllocator struct {
	buffer     []byte
	blockSize  uintptr
	blockCount uintptr
	freeList   unsafe.Pointer // head of the intrusive free list, or nil
	activeBlocks uintptr
}

// NewPoolAllocator returns nil-backed zero value if blockSize is smaller
// than a pointer (a block must be able to embed the free-list next
// pointer) or blockCount is zero, matching oaf_pool_allocator_init's
// rejection of those inputs.
func NewPoolAllocator(blockSize, blockCount uintptr) *PoolAllocator {
	if blockSize < unsafe.Sizeof(uintptr(0)) || blockCount == 0 {
		return &PoolAllocator{}
	}
	p := &PoolAllocator{
		buffer:     make([]byte, blockSize*blockCount),
		blockSize:  blockSize,
		blockCount: blockCount,
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(p.buffer)))
	// thread every block onto the free list in reverse index order: block 0
	// points at nil first, then each subsequent block's next pointer is
	// overwritten to point at the previous free-list head, ending with the
	// free list head at the last block processed.
	for i := uintptr(0); i < blockCount; i++ {
		blockPtr := unsafe.Pointer(base + i*blockSize)
		*(*unsafe.Pointer)(blockPtr) = p.freeList
		p.freeList = blockPtr
	}
	return p
}

func (p *PoolAllocator) Alloc(size, align uintptr) unsafe.Pointer {
	_ = align
	if size > p.blockSize || p.freeList == nil {
		return nil
	}
	block := p.freeList
	p.freeList = *(*unsafe.Pointer)(block)
	p.activeBlocks++
	return block
}

// Realloc returns the same pointer unchanged when newSize still fits the
// fixed block size (the one allocator where realloc is sometimes free),
// and refuses growth beyond the block size by returning nil, per
// spec.md §4.2 ("Pool refuses grow beyond block size").
func (p *PoolAllocator) Realloc(ptr unsafe.Pointer, oldSize, newSize, align uintptr) unsafe.Pointer {
	_ = oldSize
	if ptr == nil {
		return p.Alloc(newSize, align)
	}
	if newSize <= p.blockSize {
		return ptr
	}
	return nil
}

// Free is a no-op for nil, and otherwise head-inserts ptr back onto the
// free list.
func (p *PoolAllocator) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	*(*unsafe.Pointer)(ptr) = p.freeList
	p.freeList = ptr
	if p.activeBlocks > 0 {
		p.activeBlocks--
	}
}

// BlockSize returns the fixed per-block size.
func (p *PoolAllocator) BlockSize() uintptr { return p.blockSize }

// BlockCount returns the total number of blocks.
func (p *PoolAllocator) BlockCount() uintptr { return p.blockCount }

// ActiveBlocks returns the number of blocks currently allocated (not on
// the free list).
func (p *PoolAllocator) ActiveBlocks() uintptr { return p.activeBlocks }
