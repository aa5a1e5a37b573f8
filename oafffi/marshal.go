package oafffi

import "unsafe"

// HostValue is the Go-native counterpart of an oaf primitive value,
// exchanged with Value via MarshalFromHost/UnmarshalToHost.
type HostValue struct {
	Bool    bool
	I32     int32
	I64     int64
	F32     float32
	F64     float64
	Pointer unsafe.Pointer
}

// MarshalFromHost converts src into dst, tagged as kind. For Void, it
// trivially succeeds (dst becomes NewVoid()) iff kind is Void. Returns
// false for any other kind/src combination that is not directly
// representable (there is none in the current Kind set, but the
// false-return contract is preserved for parity with unmarshal).
func MarshalFromHost(src HostValue, kind Kind, dst *Value) bool {
	switch kind {
	case Void:
		*dst = NewVoid()
	case Bool:
		*dst = NewBool(src.Bool)
	case I32:
		*dst = NewI32(src.I32)
	case I64:
		*dst = NewI64(src.I64)
	case F32:
		*dst = NewF32(src.F32)
	case F64:
		*dst = NewF64(src.F64)
	case Pointer:
		*dst = NewPointer(src.Pointer)
	default:
		return false
	}
	return true
}

// UnmarshalToHost is the inverse of MarshalFromHost: it reads src's
// widening accessor matching kind into dst. For Void, it trivially
// succeeds iff src is tagged Void.
func UnmarshalToHost(src Value, dst *HostValue, kind Kind) bool {
	switch kind {
	case Void:
		if src.Kind() != Void {
			return false
		}
	case Bool:
		dst.Bool = src.AsBool()
	case I32:
		dst.I32 = src.AsI32()
	case I64:
		dst.I64 = src.AsI64()
	case F32:
		dst.F32 = src.AsF32()
	case F64:
		dst.F64 = src.AsF64()
	case Pointer:
		dst.Pointer = src.AsPointer()
	default:
		return false
	}
	return true
}
