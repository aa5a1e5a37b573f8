package oafffi

import (
	"sync"
	"unsafe"
)

// MaxTrampolines is the number of statically-compiled forwarding
// functions available, per spec.md §4.11. Closures cannot exist at the C
// ABI, so the set of raw function pointers handed out is fixed at
// compile time; acquiring binds one of these slots to a registry+id
// pair.
const MaxTrampolines = 8

type trampolineSlot struct {
	inUse    bool
	registry *CallbackRegistry
	callback int
}

var (
	trampolineMu    sync.Mutex
	trampolineSlots [MaxTrampolines]trampolineSlot
)

// trampolineFuncs is populated per-platform (trampoline_cgo.go on
// unix+cgo, trampoline_windows.go on windows via syscall.NewCallback,
// trampoline_unsupported.go elsewhere) with one raw i64(i64) C-ABI
// function pointer per slot.
var trampolineFuncs [MaxTrampolines]unsafe.Pointer

// dispatchTrampoline is called by each platform's slot-specific
// forwarding function with its own slot index.
func dispatchTrampoline(slot int, arg int64) int64 {
	trampolineMu.Lock()
	s := trampolineSlots[slot]
	trampolineMu.Unlock()
	if !s.inUse || s.registry == nil {
		return 0
	}
	result, ok := s.registry.InvokeI64(s.callback, []int64{arg})
	if !ok {
		return 0
	}
	return result
}

// AcquireTrampoline finds a free slot, binds it to (registry, callbackID),
// and returns the slot's raw i64(i64) function pointer. Returns (nil,
// false) on exhaustion. Re-acquiring for the same callback id always
// binds a new slot — slots are not deduplicated by (registry, id), per
// spec.md §4.11.
func AcquireTrampoline(registry *CallbackRegistry, callbackID int) (unsafe.Pointer, bool) {
	trampolineMu.Lock()
	defer trampolineMu.Unlock()
	for i := range trampolineSlots {
		if !trampolineSlots[i].inUse {
			trampolineSlots[i] = trampolineSlot{inUse: true, registry: registry, callback: callbackID}
			return trampolineFuncs[i], true
		}
	}
	return nil, false
}

// ReleaseTrampoline frees the slot bound to fn. Returns false if fn does
// not match any currently bound slot.
func ReleaseTrampoline(fn unsafe.Pointer) bool {
	trampolineMu.Lock()
	defer trampolineMu.Unlock()
	for i := range trampolineSlots {
		if trampolineSlots[i].inUse && trampolineFuncs[i] == fn {
			trampolineSlots[i] = trampolineSlot{}
			return true
		}
	}
	return false
}
