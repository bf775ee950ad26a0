package wire

import "github.com/x448/float16"

// Float16ToFloat32 converts an IEEE 754 binary16 bit pattern to float32,
// preserving NaN payloads, infinities, and signed zero exactly.
func Float16ToFloat32(bits uint16) float32 {
	return float16.Frombits(bits).Float32()
}

// Float32ToFloat16 converts f to its IEEE 754 binary16 bit pattern,
// rounding to nearest-even. Callers that need an exact round-trip must
// verify it themselves (see FloatDowncast); this function always
// produces a value, flushing to zero/infinity where binary16 cannot
// represent f.
func Float32ToFloat16(f float32) uint16 {
	return float16.Fromfloat32(f).Bits()
}

// FloatDowncast selects the narrowest width in {16, 32, 64} that
// round-trips f exactly, never narrower than minSize, per spec.md
// §4.1's float downcast chain (64 -> 32 -> 16).
func FloatDowncast(f float64, minSize int) (width int, f16 uint16, f32v float32) {
	if isNaN64(f) {
		// Any NaN round-trips as "still NaN"; prefer the narrowest
		// width allowed and let the float16/float32 library assign
		// the canonical quiet-NaN payload.
		switch {
		case minSize <= 16:
			return 16, float16.Fromfloat32(float32(f)).Bits(), 0
		case minSize <= 32:
			return 32, 0, float32(f)
		default:
			return 64, 0, 0
		}
	}
	if minSize <= 16 {
		h := float16.Fromfloat32(float32(f))
		if float64(h.Float32()) == f {
			return 16, h.Bits(), 0
		}
	}
	if minSize <= 32 {
		v := float32(f)
		if float64(v) == f {
			return 32, 0, v
		}
	}
	return 64, 0, 0
}

func isNaN64(f float64) bool { return f != f }
