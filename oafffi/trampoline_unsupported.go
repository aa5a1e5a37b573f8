//go:build !((linux || darwin) && cgo) && !windows

package oafffi

import "unsafe"

// On platforms with no wired raw-function-pointer backend, each slot
// still gets a distinct (non-callable) placeholder pointer, so
// AcquireTrampoline/ReleaseTrampoline's slot bookkeeping remains testable
// by identity even though the address is not genuinely callable C code.
func init() {
	for i := 0; i < MaxTrampolines; i++ {
		trampolineFuncs[i] = unsafe.Pointer(uintptr(i + 1))
	}
}
