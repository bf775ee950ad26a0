package wire

import (
	"encoding/binary"
	"math"
)

// AppendUintArg appends a major-type header for the unsigned argument u,
// choosing the smallest width in {inline, 1, 2, 4, 8 bytes} that holds
// it — spec.md §4.1's numeric-width minimization, ported from the
// teacher runtime package's appendUintCore.
func AppendUintArg(b []byte, major uint8, u uint64) []byte {
	switch {
	case u <= AddInfoDirect:
		return append(b, MakeByte(major, uint8(u)))
	case u <= math.MaxUint8:
		return append(b, MakeByte(major, AddInfoUint8), uint8(u))
	case u <= math.MaxUint16:
		b = append(b, MakeByte(major, AddInfoUint16))
		return binary.BigEndian.AppendUint16(b, uint16(u))
	case u <= math.MaxUint32:
		b = append(b, MakeByte(major, AddInfoUint32))
		return binary.BigEndian.AppendUint32(b, uint32(u))
	default:
		b = append(b, MakeByte(major, AddInfoUint64))
		return binary.BigEndian.AppendUint64(b, u)
	}
}

// HeaderSize reports the byte length AppendUintArg would produce for u,
// without writing anything — used by the testable minimal-width
// invariant and by callers that want to size a buffer up front.
func HeaderSize(u uint64) int {
	switch {
	case u <= AddInfoDirect:
		return 1
	case u <= math.MaxUint8:
		return 2
	case u <= math.MaxUint16:
		return 3
	case u <= math.MaxUint32:
		return 5
	default:
		return 9
	}
}

// AppendUint appends an unsigned integer (major type 0).
func AppendUint(b []byte, u uint64) []byte { return AppendUintArg(b, MajorUint, u) }

// AppendInt appends a signed integer using major type 0 for
// non-negative values and major type 1 (argument n = -1-i) for negative
// ones, per RFC 8949's negative-integer convention.
func AppendInt(b []byte, i int64) []byte {
	if i >= 0 {
		return AppendUintArg(b, MajorUint, uint64(i))
	}
	n := uint64(-1 - i)
	return AppendUintArg(b, MajorNegInt, n)
}

// AppendBytesHeader appends a byte-string header for a payload of n
// bytes. The payload itself is the caller's responsibility to append or
// stream out afterward.
func AppendBytesHeader(b []byte, n int) []byte { return AppendUintArg(b, MajorBytes, uint64(n)) }

// AppendTextHeader appends a text-string header for a payload of n
// bytes.
func AppendTextHeader(b []byte, n int) []byte { return AppendUintArg(b, MajorText, uint64(n)) }

// AppendArrayHeader appends an array header with the given exact item
// count. This subset never emits indefinite-length containers.
func AppendArrayHeader(b []byte, n int) []byte { return AppendUintArg(b, MajorArray, uint64(n)) }

// AppendMapHeader appends a map header with the given exact entry
// count.
func AppendMapHeader(b []byte, n int) []byte { return AppendUintArg(b, MajorMap, uint64(n)) }

// AppendBool appends a boolean simple value.
func AppendBool(b []byte, v bool) []byte {
	if v {
		return append(b, MakeByte(MajorSimple, SimpleTrue))
	}
	return append(b, MakeByte(MajorSimple, SimpleFalse))
}

// AppendNull appends the CBOR null simple value.
func AppendNull(b []byte) []byte { return append(b, MakeByte(MajorSimple, SimpleNull)) }

// AppendUndefined appends the CBOR undefined simple value.
func AppendUndefined(b []byte) []byte { return append(b, MakeByte(MajorSimple, SimpleUndefined)) }

// AppendFloat16 appends a float already narrowed to its binary16 bit
// pattern.
func AppendFloat16(b []byte, bits uint16) []byte {
	b = append(b, MakeByte(MajorSimple, SimpleFloat16))
	return binary.BigEndian.AppendUint16(b, bits)
}

// AppendFloat32 appends a float32 value.
func AppendFloat32(b []byte, f float32) []byte {
	b = append(b, MakeByte(MajorSimple, SimpleFloat32))
	return binary.BigEndian.AppendUint32(b, math.Float32bits(f))
}

// AppendFloat64 appends a float64 value.
func AppendFloat64(b []byte, f float64) []byte {
	b = append(b, MakeByte(MajorSimple, SimpleFloat64))
	return binary.BigEndian.AppendUint64(b, math.Float64bits(f))
}

// AppendFloatMinimal appends f narrowed to the smallest width in
// {16,32,64} that round-trips it exactly, never narrower than minSize —
// spec.md §4.1's float encoding rule, delegating the round-trip search
// to FloatDowncast.
func AppendFloatMinimal(b []byte, f float64, minSize int) []byte {
	width, f16, f32 := FloatDowncast(f, minSize)
	switch width {
	case 16:
		return AppendFloat16(b, f16)
	case 32:
		return AppendFloat32(b, f32)
	default:
		return AppendFloat64(b, f)
	}
}
