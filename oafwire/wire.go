// Package oafwire implements the little-endian serialization primitives
// from spec.md §6's external interfaces: u8, u32, i64, f64, and
// length-prefixed string. These are consumed by collaborators outside
// the core (the compiler's constant pool, debug symbol tables, FFI
// marshaling) rather than by the core itself.
//
// Fixed-width fields are appended/consumed via
// google.golang.org/protobuf/encoding/protowire's Fixed32/Fixed64
// helpers, which already guarantee little-endian byte order, rather
// than hand-rolling bit shifts.
package oafwire

import (
	"errors"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrTruncated is returned by Reader methods when fewer bytes remain
// than the field being read requires.
var ErrTruncated = errors.New("oafwire: truncated input")

// AppendU8 appends a single byte.
func AppendU8(dst []byte, v uint8) []byte {
	return append(dst, v)
}

// AppendU32 appends v as 4 little-endian bytes.
func AppendU32(dst []byte, v uint32) []byte {
	return protowire.AppendFixed32(dst, v)
}

// AppendI64 appends v as 8 little-endian bytes, two's complement.
func AppendI64(dst []byte, v int64) []byte {
	return protowire.AppendFixed64(dst, uint64(v))
}

// AppendF64 appends v's IEEE-754 bit pattern as 8 little-endian bytes,
// per spec.md §6 ("f64 (IEEE-754 bits serialised as i64 LE)").
func AppendF64(dst []byte, v float64) []byte {
	return protowire.AppendFixed64(dst, math.Float64bits(v))
}

// AppendString appends a u32 length prefix followed by s's raw bytes.
func AppendString(dst []byte, s string) []byte {
	dst = AppendU32(dst, uint32(len(s)))
	return append(dst, s...)
}

// Reader is a strictly bounds-checked cursor over a little-endian byte
// buffer, per spec.md §6.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for sequential reads starting at offset 0.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Remaining reports how many unread bytes are left.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// U8 reads a single byte, or returns ErrTruncated without advancing.
func (r *Reader) U8() (uint8, error) {
	if r.Remaining() < 1 {
		return 0, ErrTruncated
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

// U32 reads 4 little-endian bytes, or returns ErrTruncated without
// advancing.
func (r *Reader) U32() (uint32, error) {
	if r.Remaining() < 4 {
		return 0, ErrTruncated
	}
	v, n := protowire.ConsumeFixed32(r.buf[r.pos:])
	if n < 0 {
		return 0, ErrTruncated
	}
	r.pos += n
	return v, nil
}

// I64 reads 8 little-endian bytes as a two's-complement int64, or
// returns ErrTruncated without advancing.
func (r *Reader) I64() (int64, error) {
	if r.Remaining() < 8 {
		return 0, ErrTruncated
	}
	v, n := protowire.ConsumeFixed64(r.buf[r.pos:])
	if n < 0 {
		return 0, ErrTruncated
	}
	r.pos += n
	return int64(v), nil
}

// F64 reads 8 little-endian bytes as an IEEE-754 double, or returns
// ErrTruncated without advancing.
func (r *Reader) F64() (float64, error) {
	if r.Remaining() < 8 {
		return 0, ErrTruncated
	}
	v, n := protowire.ConsumeFixed64(r.buf[r.pos:])
	if n < 0 {
		return 0, ErrTruncated
	}
	r.pos += n
	return math.Float64frombits(v), nil
}

// String reads a u32 length prefix followed by that many raw bytes, or
// returns ErrTruncated (for either the prefix or the body) without
// advancing.
func (r *Reader) String() (string, error) {
	start := r.pos
	length, err := r.U32()
	if err != nil {
		return "", err
	}
	if r.Remaining() < int(length) {
		r.pos = start
		return "", ErrTruncated
	}
	s := string(r.buf[r.pos : r.pos+int(length)])
	r.pos += int(length)
	return s, nil
}
