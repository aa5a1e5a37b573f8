package oafffi

import "unsafe"

// platformHandle is an opaque per-OS library handle, produced by
// platformOpen and consumed by platformSymbol/platformClose. The three
// function variables are implemented per-OS in library_unix.go (cgo
// dlopen/dlsym/dlclose) and library_windows.go (golang.org/x/sys/windows
// LoadLibraryEx/GetProcAddress/FreeLibrary) — mirroring the teacher's own
// per-OS poller_linux.go/poller_darwin.go/poller_windows.go split.
type platformHandle = unsafe.Pointer

var (
	platformOpen   func(path string) (platformHandle, error)
	platformSymbol func(h platformHandle, name string) unsafe.Pointer
	platformClose  func(h platformHandle) error
)

// LibraryHandle is a handle to a dynamically loaded native library, per
// spec.md §4.11.
type LibraryHandle struct {
	handle    platformHandle
	ownsHandle bool
	path      string
}

// Open loads the library at path. An empty path means "this process"
// (the main executable's own symbol table). Only a handle opened with a
// non-empty path owns (and will Close) the underlying OS resource.
func Open(path string) (*LibraryHandle, error) {
	h, err := platformOpen(path)
	if err != nil {
		return nil, err
	}
	return &LibraryHandle{handle: h, ownsHandle: path != "", path: path}, nil
}

// OwnsHandle reports whether this handle was opened (as opposed to
// referencing the current process); only an owning handle's Close
// actually releases OS resources.
func (l *LibraryHandle) OwnsHandle() bool { return l.ownsHandle }

// Symbol resolves name to its raw address, or nil if not found.
func (l *LibraryHandle) Symbol(name string) unsafe.Pointer {
	if l == nil || l.handle == nil {
		return nil
	}
	return platformSymbol(l.handle, name)
}

// Close releases the OS handle if this LibraryHandle owns it.
func (l *LibraryHandle) Close() error {
	if l == nil || !l.ownsHandle || l.handle == nil {
		return nil
	}
	err := platformClose(l.handle)
	l.handle = nil
	return err
}
