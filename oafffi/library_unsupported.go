//go:build !((linux || darwin) && cgo) && !windows

package oafffi

import (
	"errors"
	"unsafe"
)

// ErrUnsupportedPlatform is returned by Open on platforms (or cgo-disabled
// builds) where no dynamic loader backend is wired.
var ErrUnsupportedPlatform = errors.New("oafffi: dynamic library loading unsupported on this platform/build")

func init() {
	platformOpen = func(string) (platformHandle, error) { return nil, ErrUnsupportedPlatform }
	platformSymbol = func(platformHandle, string) unsafe.Pointer { return nil }
	platformClose = func(platformHandle) error { return nil }
}
