//go:build windows

package oafffi

import (
	"syscall"
	"unsafe"
)

func ptrFromUintptr(addr uintptr) unsafe.Pointer { return unsafe.Pointer(addr) }

func trampolineThunk(slot int) uintptr {
	return syscall.NewCallback(func(arg int64) int64 {
		return dispatchTrampoline(slot, arg)
	})
}

func init() {
	for i := 0; i < MaxTrampolines; i++ {
		addr := trampolineThunk(i)
		trampolineFuncs[i] = ptrFromUintptr(addr)
	}
}
