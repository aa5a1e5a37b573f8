package oafalloc

import "unsafe"

// MaxMarks bounds TempAllocator's mark stack depth, per spec.md §3/§4.2.
const MaxMarks = 128

// TempAllocator is an arena plus a fixed-capacity stack of saved offsets
// ("marks"), per spec.md §3/§4.2. Mark pushes the current offset and
// returns a dense handle (its position in the stack); ResetToMark pops to
// that offset, discarding all marks above it. Marks form a strictly
// stacked discipline: reusing an already-consumed handle fails.
type TempAllocator struct {
	arena *ArenaAllocator
	marks [MaxMarks]uintptr
	count int
}

// NewTempAllocator returns a TempAllocator over a fresh arena of the
// given capacity.
func NewTempAllocator(capacity uintptr) *TempAllocator {
	return &TempAllocator{arena: NewArenaAllocator(capacity)}
}

func (t *TempAllocator) Alloc(size, align uintptr) unsafe.Pointer {
	return t.arena.Alloc(size, align)
}

// Realloc applies the same copy-then-bump semantics as ArenaAllocator, per
// spec.md's bit-stable contract text; see DESIGN.md Open Question #1 for
// why this departs from the original C temp_realloc (which did not copy).
func (t *TempAllocator) Realloc(ptr unsafe.Pointer, oldSize, newSize, align uintptr) unsafe.Pointer {
	return t.arena.Realloc(ptr, oldSize, newSize, align)
}

// Free is a no-op, matching the underlying arena.
func (t *TempAllocator) Free(ptr unsafe.Pointer) {
	t.arena.Free(ptr)
}

// Mark pushes the current bump offset and returns its dense handle.
// Returns (0, false) if the mark stack is already at capacity.
func (t *TempAllocator) Mark() (int, bool) {
	if t.count >= MaxMarks {
		return 0, false
	}
	t.marks[t.count] = t.arena.offset
	handle := t.count
	t.count++
	return handle, true
}

// ResetToMark rewinds the bump offset to the offset saved at handle, and
// truncates the mark stack to handle (discarding every mark above it, so
// each handle can be consumed at most once — reusing a popped handle
// fails). Returns false if handle is out of range.
func (t *TempAllocator) ResetToMark(handle int) bool {
	if handle < 0 || handle >= t.count {
		return false
	}
	t.arena.offset = t.marks[handle]
	t.count = handle
	return true
}

// Clear resets the bump offset and mark stack to empty, equivalent to
// discarding every outstanding mark.
func (t *TempAllocator) Clear() {
	t.arena.Reset()
	t.count = 0
}

// MarkCount returns the number of marks currently on the stack.
func (t *TempAllocator) MarkCount() int { return t.count }

// Capacity returns the underlying arena's total byte capacity.
func (t *TempAllocator) Capacity() uintptr { return t.arena.Capacity() }

// Offset returns the underlying arena's current bump offset.
func (t *TempAllocator) Offset() uintptr { return t.arena.Offset() }
