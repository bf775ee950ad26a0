package wire

import "testing"

func TestFloatDowncastChain(t *testing.T) {
	cases := []struct {
		name      string
		f         float64
		minSize   int
		wantWidth int
	}{
		{"zero-to-float16", 0, 16, 16},
		{"half-to-float16", 1.5, 16, 16},
		{"pi-needs-float64", 3.141592653589793, 16, 64},
		{"third-needs-float32-at-most", float64(float32(1.0 / 3.0)), 16, 32},
		{"floor-forces-float32", 1.5, 32, 32},
		{"floor-forces-float64", 1.5, 64, 64},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			width, _, _ := FloatDowncast(c.f, c.minSize)
			if width != c.wantWidth {
				t.Errorf("FloatDowncast(%v, minSize=%d) width = %d, want %d", c.f, c.minSize, width, c.wantWidth)
			}
		})
	}
}

func TestFloat16RoundTrip(t *testing.T) {
	bits := Float32ToFloat16(1.5)
	back := Float16ToFloat32(bits)
	if back != 1.5 {
		t.Errorf("round trip 1.5 -> float16 -> float32 = %v", back)
	}
}

func TestFloatDowncastNaN(t *testing.T) {
	nan := nanFloat64()
	width, f16, _ := FloatDowncast(nan, 16)
	if width != 16 {
		t.Fatalf("FloatDowncast(NaN) width = %d, want 16", width)
	}
	if back := Float16ToFloat32(f16); back == back {
		t.Errorf("Float16ToFloat32(downcast NaN) = %v, want NaN", back)
	}
}

func nanFloat64() float64 {
	var zero float64
	return zero / zero
}
