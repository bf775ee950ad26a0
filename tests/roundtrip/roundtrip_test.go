// Package roundtrip exercises the testable properties named for this
// codec: encode-then-decode identity, chunk-size independence, minimal
// numeric width, and hook-driven skip correctness.
package roundtrip

import (
	"io"
	"testing"

	"github.com/cborstream/cborstream/decode"
	"github.com/cborstream/cborstream/encode"
	"github.com/cborstream/cborstream/value"
)

func sampleValues() []value.Value {
	return []value.Value{
		value.Uint(0),
		value.Uint(1<<53 - 1),
		value.Int(-(1<<53 - 1)),
		value.Text("hello, world"),
		value.Bytes([]byte{0, 1, 2, 3, 4, 5}),
		value.Bool(true),
		value.Bool(false),
		value.Null(),
		value.Float(3.14159),
		value.Float(1.5),
		value.Array(value.Uint(1), value.Text("two"), value.Bool(true)),
		value.Map(
			value.MapEntry{Key: "a", Value: value.Uint(1)},
			value.MapEntry{Key: "b", Value: value.Array(value.Uint(1), value.Uint(2))},
			value.MapEntry{Key: "c", Value: value.Map(value.MapEntry{Key: "nested", Value: value.Text("x")})},
		),
	}
}

func TestRoundTripIdentity(t *testing.T) {
	for i, v := range sampleValues() {
		b, err := encode.Encode(v, encode.DefaultOptions())
		if err != nil {
			t.Fatalf("case %d: Encode error: %v", i, err)
		}
		got, err := decode.Decode(b, decode.DefaultOptions())
		if err != nil {
			t.Fatalf("case %d: Decode error: %v", i, err)
		}
		if !value.Equal(got, v) {
			t.Errorf("case %d: round trip = %v, want %v", i, got, v)
		}
	}
}

func TestRoundTripIndependentOfChunkSize(t *testing.T) {
	v := value.Array(value.Uint(1), value.Text("two"), value.Bytes([]byte{1, 2, 3, 4, 5, 6, 7, 8}))
	var reference []byte
	for _, chunkSize := range []int{1, 2, 3, 7, 64, 4096} {
		opts := encode.DefaultOptions()
		opts.ChunkSize = chunkSize
		b, err := encode.Encode(v, opts)
		if err != nil {
			t.Fatalf("chunkSize=%d: Encode error: %v", chunkSize, err)
		}
		if reference == nil {
			reference = b
		} else if string(b) != string(reference) {
			t.Errorf("chunkSize=%d produced different bytes than chunkSize=1", chunkSize)
		}
	}
}

func TestMinimalWidthChosenForEveryMagnitude(t *testing.T) {
	cases := []struct {
		u       uint64
		wantLen int
	}{
		{0, 1}, {23, 1}, {24, 2}, {255, 2}, {256, 3}, {65535, 3}, {65536, 5}, {1 << 40, 9},
	}
	for _, c := range cases {
		b, err := encode.Encode(value.Uint(c.u), encode.DefaultOptions())
		if err != nil {
			t.Fatalf("Encode(%d) error: %v", c.u, err)
		}
		if len(b) != c.wantLen {
			t.Errorf("Encode(%d) length = %d, want %d", c.u, len(b), c.wantLen)
		}
	}
}

func TestHookSkipLeavesCursorByteExact(t *testing.T) {
	opts := decode.DefaultOptions()
	opts.OnValue = func(thunk *decode.Thunk, length int, kind value.Kind, path value.KeyPath) (value.Value, bool, error) {
		if kind == value.MapKind {
			return value.Null(), true, nil
		}
		return value.Value{}, false, nil
	}

	inner := value.Map(
		value.MapEntry{Key: "x", Value: value.Uint(1)},
		value.MapEntry{Key: "y", Value: value.Array(value.Uint(2), value.Uint(3))},
	)
	b, err := encode.Encode(inner, encode.DefaultOptions())
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	b = append(b, 0x18, 77) // a trailing top-level scalar whose bytes must not be touched

	sent := false
	src := decode.SourceFunc(func() ([]byte, error) {
		if sent {
			return nil, io.EOF
		}
		sent = true
		return b, nil
	})
	dec := decode.New(src, opts, nil)
	v, err := dec.Decode()
	if err != nil {
		t.Fatalf("first Decode error: %v", err)
	}
	if v.Kind() != value.NullKind {
		t.Fatalf("Decode with map->null hook = %v, want null", v)
	}

	trailing, err := dec.Decode()
	if err != nil {
		t.Fatalf("second Decode error: %v", err)
	}
	if u, _ := trailing.AsUint(); u != 77 {
		t.Errorf("trailing value = %v, want 77 (cursor should land exactly after the skipped map)", trailing)
	}
}
