// Package wire implements the byte-accurate CBOR (RFC 8949) state
// machine this module's subset relies on: initial-byte framing, argument
// decoding, numeric-width minimization, and float16/32/64 conversion.
// It has no notion of streaming, hooks, or key paths — those live in the
// encode and decode packages, which are this package's only consumers.
package wire

// CBOR major types (high 3 bits of the initial byte).
const (
	MajorUint   = 0 // unsigned integer
	MajorNegInt = 1 // negative integer
	MajorBytes  = 2 // byte string
	MajorText   = 3 // text string (UTF-8)
	MajorArray  = 4 // array
	MajorMap    = 5 // map
	MajorTag    = 6 // semantic tag (unsupported by this subset)
	MajorSimple = 7 // float, simple values
)

// Additional info values (low 5 bits of the initial byte).
const (
	AddInfoDirect     = 23 // largest value encoded inline
	AddInfoUint8      = 24
	AddInfoUint16     = 25
	AddInfoUint32     = 26
	AddInfoUint64     = 27
	AddInfoIndefinite = 31 // indefinite length; unsupported by this subset
)

// Simple values under major type 7.
const (
	SimpleFalse     = 20
	SimpleTrue      = 21
	SimpleNull      = 22
	SimpleUndefined = 23
	SimpleFloat16   = 25
	SimpleFloat32   = 26
	SimpleFloat64   = 27
	SimpleBreak     = 31
)

// MakeByte builds a CBOR initial byte from a major type and additional
// info.
func MakeByte(major, addInfo uint8) byte { return byte((major << 5) | addInfo) }

// MajorType extracts the major type from a CBOR initial byte.
func MajorType(b byte) uint8 { return (b >> 5) & 0x07 }

// AddInfo extracts the additional info from a CBOR initial byte.
func AddInfo(b byte) uint8 { return b & 0x1f }
