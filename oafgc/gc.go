// Package oafgc implements the mark-and-sweep cycle collector from
// spec.md §3/§4.5: a sidecar over an allocator with an explicit edge
// graph, not a scanning collector — objects never registered with the
// GC are invisible to it (spec.md §9's "GC as a sidecar" design note).
package oafgc

import (
	"unsafe"

	"github.com/joeycumines/oaf-runtime/oafalloc"
)

// MaxObjects bounds the GC's object table, per spec.md §3's default of
// 512 fixed-capacity slots.
const MaxObjects = 512

type objectSlot struct {
	pointer      unsafe.Pointer
	size         uintptr
	externalRefs int
	marked       bool
	active       bool
}

// GC is the mark-sweep collector described in spec.md §4.5. It is
// layered over an Allocator: Alloc finds a free slot, delegates to the
// underlying allocator, and records the object; Collect frees any
// active-but-unmarked slot back to the underlying allocator.
type GC struct {
	allocator oafalloc.Allocator
	enabled   bool

	objects [MaxObjects]objectSlot
	edges   [MaxObjects][MaxObjects]bool

	activeCount  int
	managedBytes uint64
}

// New returns a GC layered over allocator, initially enabled per the
// enabled flag (spec.md §4.12's runtime_options_default has gc_enabled
// false by default, but that default lives in the oaf package's
// bootstrap, not here).
func New(allocator oafalloc.Allocator, enabled bool) *GC {
	return &GC{allocator: allocator, enabled: enabled}
}

// SetEnabled gates Alloc: a disabled GC's Alloc always returns nil.
func (g *GC) SetEnabled(enabled bool) { g.enabled = enabled }

// Enabled reports the current enabled flag.
func (g *GC) Enabled() bool { return g.enabled }

func (g *GC) findObjectIndex(ptr unsafe.Pointer) int {
	for i := range g.objects {
		if g.objects[i].active && g.objects[i].pointer == ptr {
			return i
		}
	}
	return -1
}

func (g *GC) findFreeIndex() int {
	for i := range g.objects {
		if !g.objects[i].active {
			return i
		}
	}
	return -1
}

func (g *GC) clearEdgesFor(index int) {
	for j := range g.edges[index] {
		g.edges[index][j] = false
		g.edges[j][index] = false
	}
}

// Alloc allocates size bytes via the underlying allocator and records
// the result as a new, unreferenced (external_refs==0) GC object. Returns
// nil if the GC is disabled, the object table is full, or the underlying
// allocation fails.
func (g *GC) Alloc(size, alignment uintptr) unsafe.Pointer {
	if !g.enabled {
		return nil
	}
	idx := g.findFreeIndex()
	if idx < 0 {
		return nil
	}
	ptr := g.allocator.Alloc(size, alignment)
	if ptr == nil {
		return nil
	}
	g.objects[idx] = objectSlot{pointer: ptr, size: size, active: true}
	g.clearEdgesFor(idx)
	g.activeCount++
	g.managedBytes += uint64(size)
	return ptr
}

// Retain increments an object's external reference count, marking it (or
// keeping it) as a GC root. Fails silently if ptr is not a tracked
// object.
func (g *GC) Retain(ptr unsafe.Pointer) bool {
	idx := g.findObjectIndex(ptr)
	if idx < 0 {
		return false
	}
	g.objects[idx].externalRefs++
	return true
}

// Release decrements an object's external reference count. Fails if ptr
// is untracked or already has zero external references.
func (g *GC) Release(ptr unsafe.Pointer) bool {
	idx := g.findObjectIndex(ptr)
	if idx < 0 || g.objects[idx].externalRefs == 0 {
		return false
	}
	g.objects[idx].externalRefs--
	return true
}

// AddReference flips on the from->to edge. Both endpoints must be
// tracked objects; fails silently (returns false) otherwise.
func (g *GC) AddReference(from, to unsafe.Pointer) bool {
	fi, ti := g.findObjectIndex(from), g.findObjectIndex(to)
	if fi < 0 || ti < 0 {
		return false
	}
	g.edges[fi][ti] = true
	return true
}

// RemoveReference flips off the from->to edge. Both endpoints must be
// tracked objects; fails silently otherwise.
func (g *GC) RemoveReference(from, to unsafe.Pointer) bool {
	fi, ti := g.findObjectIndex(from), g.findObjectIndex(to)
	if fi < 0 || ti < 0 {
		return false
	}
	g.edges[fi][ti] = false
	return true
}

func (g *GC) markReachable(index int) {
	if g.objects[index].marked {
		return
	}
	g.objects[index].marked = true
	for j := range g.edges[index] {
		if g.edges[index][j] && g.objects[j].active {
			g.markReachable(j)
		}
	}
}

// Collect performs a standard mark-sweep: reset every mark, DFS-mark
// from every active slot with ExternalRefs>0 (the GC roots), then free
// any active-but-unmarked slot back to the underlying allocator, clear
// its edges, and decrement ManagedBytes (saturating at 0). Returns the
// number of objects freed. Returns 0 without doing anything if the GC is
// disabled.
func (g *GC) Collect() int {
	if !g.enabled {
		return 0
	}
	for i := range g.objects {
		g.objects[i].marked = false
	}
	for i := range g.objects {
		if g.objects[i].active && g.objects[i].externalRefs > 0 {
			g.markReachable(i)
		}
	}
	collected := 0
	for i := range g.objects {
		if g.objects[i].active && !g.objects[i].marked {
			g.allocator.Free(g.objects[i].pointer)
			g.clearEdgesFor(i)
			size := uint64(g.objects[i].size)
			if size > g.managedBytes {
				g.managedBytes = 0
			} else {
				g.managedBytes -= size
			}
			g.objects[i] = objectSlot{}
			if g.activeCount > 0 {
				g.activeCount--
			}
			collected++
		}
	}
	return collected
}

// colorWhite/colorGray/colorBlack are the three DFS colors used by
// DetectCycles.
const (
	colorWhite = iota
	colorGray
	colorBlack
)

func (g *GC) dfsCycle(index int, color []int) bool {
	color[index] = colorGray
	for j := range g.edges[index] {
		if !g.edges[index][j] || !g.objects[j].active {
			continue
		}
		switch color[j] {
		case colorGray:
			return true
		case colorWhite:
			if g.dfsCycle(j, color) {
				return true
			}
		}
	}
	color[index] = colorBlack
	return false
}

// DetectCycles runs a colored (white/gray/black) DFS over active slots
// and returns true iff any back edge to a gray node exists, i.e. a cycle
// is reachable in the edge graph. Purely informational: it never mutates
// Marked or frees anything (unlike Collect).
func (g *GC) DetectCycles() bool {
	color := make([]int, MaxObjects)
	for i := range g.objects {
		if g.objects[i].active && color[i] == colorWhite {
			if g.dfsCycle(i, color) {
				return true
			}
		}
	}
	return false
}

// ObjectCount returns the number of currently active (not yet collected)
// GC objects.
func (g *GC) ObjectCount() int { return g.activeCount }

// ManagedBytes returns the total size of currently active GC objects.
func (g *GC) ManagedBytes() uint64 { return g.managedBytes }
