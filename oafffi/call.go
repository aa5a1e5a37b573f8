package oafffi

import (
	"errors"
	"unsafe"
)

// Signature describes a native call's argument/return kinds, per
// spec.md §4.11.
type Signature struct {
	Arguments []Kind
	Return    Kind
}

// MaxArguments bounds a signature's argument count.
const MaxArguments = 8

// ErrTooManyArguments is returned when a signature exceeds MaxArguments.
var ErrTooManyArguments = errors.New("oafffi: argument_count exceeds 8")

// ErrUnsupportedSignature is returned in fallback mode (no general-purpose
// libffi-like backend wired) when a signature doesn't match the closed
// set of five fallback shapes.
var ErrUnsupportedSignature = errors.New("oafffi: unsupported signature in fallback mode")

// CallAddress calls the native function at addr with args, per sig,
// storing the result into result. This build has no general-purpose
// libffi-equivalent backend (Go cannot portably construct an arbitrary
// CIF without cgo and a real libffi binding, which is out of scope per
// spec.md §1's non-goals), so every call is dispatched through the
// closed fallback signature set described in spec.md §4.11.
func CallAddress(addr unsafe.Pointer, sig Signature, args []Value, result *Value) error {
	if len(sig.Arguments) > MaxArguments {
		return ErrTooManyArguments
	}
	if len(args) != len(sig.Arguments) {
		return errors.New("oafffi: args length does not match signature")
	}
	return dispatchFallback(addr, sig, args, result)
}

// CallSymbol resolves name on lib, then calls it, per spec.md §4.11.
func CallSymbol(lib *LibraryHandle, name string, sig Signature, args []Value, result *Value) error {
	addr := lib.Symbol(name)
	if addr == nil {
		return errors.New("oafffi: symbol not found: " + name)
	}
	return CallAddress(addr, sig, args, result)
}

func kindsEqual(a []Kind, b ...Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// dispatchFallback matches sig against the closed set of five fallback
// shapes from spec.md §4.11 and dispatches through the matching typed
// function-pointer cast. Reinterpreting a raw C function address as a Go
// func value only works because the cases below are restricted to
// primitive-only signatures matching the platform C calling convention;
// a general-purpose bridge would need the same assembly trampoline
// technique github.com/ebitengine/purego uses, which is out of scope
// here (see spec.md §1's non-goals on "no dynamic loading... beyond a
// fixed-capacity slot table").
func dispatchFallback(addr unsafe.Pointer, sig Signature, args []Value, result *Value) error {
	switch {
	case sig.Return == I64 && kindsEqual(sig.Arguments):
		fn := *(*func() int64)(unsafe.Pointer(&addr))
		*result = NewI64(fn())

	case sig.Return == I64 && kindsEqual(sig.Arguments, I64):
		fn := *(*func(int64) int64)(unsafe.Pointer(&addr))
		*result = NewI64(fn(args[0].AsI64()))

	case sig.Return == I64 && kindsEqual(sig.Arguments, I64, I64):
		fn := *(*func(int64, int64) int64)(unsafe.Pointer(&addr))
		*result = NewI64(fn(args[0].AsI64(), args[1].AsI64()))

	case sig.Return == I64 && kindsEqual(sig.Arguments, Pointer, I64):
		fn := *(*func(unsafe.Pointer, int64) int64)(unsafe.Pointer(&addr))
		*result = NewI64(fn(args[0].AsPointer(), args[1].AsI64()))

	case sig.Return == F64 && kindsEqual(sig.Arguments, F64, F64):
		fn := *(*func(float64, float64) float64)(unsafe.Pointer(&addr))
		*result = NewF64(fn(args[0].AsF64(), args[1].AsF64()))

	default:
		return ErrUnsupportedSignature
	}
	return nil
}
