// Package buf contains helpers for endian-safe decoding and encoding routines
// shared by the framing and schema layers.
package buf

import (
	"encoding/binary"
	"math"
)

// U16LE reads a little-endian uint16 from b. Returns 0 when b is too short.
func U16LE(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// U32LE reads a little-endian uint32 from b. Returns 0 when b is too short.
func U32LE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// U64LE reads a little-endian uint64 from b. Returns 0 when b is too short.
func U64LE(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// I16LE reads a little-endian int16 from b. Returns 0 when b is too short.
func I16LE(b []byte) int16 {
	return int16(U16LE(b))
}

// I32LE reads a little-endian int32 from b. Returns 0 when b is too short.
func I32LE(b []byte) int32 {
	return int32(U32LE(b))
}

// F32LE reads a little-endian IEEE-754 float32 from b. Returns 0 when b is too short.
func F32LE(b []byte) float32 {
	return math.Float32frombits(U32LE(b))
}

// AppendU16LE appends v to dst in little-endian order.
func AppendU16LE(dst []byte, v uint16) []byte {
	return binary.LittleEndian.AppendUint16(dst, v)
}

// AppendU32LE appends v to dst in little-endian order.
func AppendU32LE(dst []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, v)
}

// AppendU64LE appends v to dst in little-endian order.
func AppendU64LE(dst []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(dst, v)
}

// AppendF32LE appends the IEEE-754 bits of v to dst in little-endian order.
func AppendF32LE(dst []byte, v float32) []byte {
	return binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
}

// PutU32LE overwrites b[off:off+4] with v. It is used to back-patch sizes
// once a frame's length is known.
func PutU32LE(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}
