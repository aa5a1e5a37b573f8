//go:build windows

package oafffi

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func init() {
	platformOpen = windowsOpen
	platformSymbol = windowsSymbol
	platformClose = windowsClose
}

func windowsOpen(path string) (platformHandle, error) {
	if path == "" {
		h, err := windows.GetModuleHandle("")
		if err != nil {
			return nil, err
		}
		return platformHandle(unsafe.Pointer(uintptr(h))), nil
	}
	h, err := windows.LoadLibrary(path)
	if err != nil {
		return nil, err
	}
	return platformHandle(unsafe.Pointer(uintptr(h))), nil
}

func windowsSymbol(h platformHandle, name string) unsafe.Pointer {
	addr, err := windows.GetProcAddress(windows.Handle(uintptr(h)), name)
	if err != nil {
		return nil
	}
	return unsafe.Pointer(addr)
}

func windowsClose(h platformHandle) error {
	return windows.FreeLibrary(windows.Handle(uintptr(h)))
}
