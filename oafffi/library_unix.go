//go:build (linux || darwin) && cgo

package oafffi

/*
#include <dlfcn.h>
#include <stdlib.h>
*/
import "C"

import (
	"fmt"
	"unsafe"
)

func init() {
	platformOpen = unixOpen
	platformSymbol = unixSymbol
	platformClose = unixClose
}

func unixOpen(path string) (platformHandle, error) {
	var cpath *C.char
	if path != "" {
		cpath = C.CString(path)
		defer C.free(unsafe.Pointer(cpath))
	}
	h := C.dlopen(cpath, C.RTLD_NOW|C.RTLD_GLOBAL)
	if h == nil {
		return nil, fmt.Errorf("oafffi: dlopen %q: %s", path, C.GoString(C.dlerror()))
	}
	return platformHandle(h), nil
}

func unixSymbol(h platformHandle, name string) unsafe.Pointer {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return unsafe.Pointer(C.dlsym(h, cname))
}

func unixClose(h platformHandle) error {
	if C.dlclose(h) != 0 {
		return fmt.Errorf("oafffi: dlclose: %s", C.GoString(C.dlerror()))
	}
	return nil
}
