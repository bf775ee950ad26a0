package wire

import (
	"bytes"
	"testing"
)

func TestAppendUintMinimalWidth(t *testing.T) {
	cases := []struct {
		u    uint64
		want []byte
	}{
		{0, []byte{0x00}},
		{23, []byte{0x17}},
		{24, []byte{0x18, 0x18}},
		{255, []byte{0x18, 0xff}},
		{256, []byte{0x19, 0x01, 0x00}},
		{65535, []byte{0x19, 0xff, 0xff}},
		{65536, []byte{0x1a, 0x00, 0x01, 0x00, 0x00}},
		{4294967296, []byte{0x1b, 0, 0, 0, 1, 0, 0, 0, 0}},
	}
	for _, c := range cases {
		got := AppendUint(nil, c.u)
		if !bytes.Equal(got, c.want) {
			t.Errorf("AppendUint(%d) = % x, want % x", c.u, got, c.want)
		}
		if len(got) != HeaderSize(c.u) {
			t.Errorf("HeaderSize(%d) = %d, len(encoding) = %d", c.u, HeaderSize(c.u), len(got))
		}
	}
}

func TestAppendIntNegative(t *testing.T) {
	cases := []struct {
		i    int64
		want []byte
	}{
		{0, []byte{0x00}},
		{-1, []byte{0x20}},
		{-1000000, []byte{0x3a, 0x00, 0x0f, 0x42, 0x3f}},
	}
	for _, c := range cases {
		got := AppendInt(nil, c.i)
		if !bytes.Equal(got, c.want) {
			t.Errorf("AppendInt(%d) = % x, want % x", c.i, got, c.want)
		}
	}
}

func TestAppendBytesTextArrayMapHeaders(t *testing.T) {
	if got := AppendBytesHeader(nil, 3); !bytes.Equal(got, []byte{0x43}) {
		t.Errorf("AppendBytesHeader(3) = % x", got)
	}
	if got := AppendTextHeader(nil, 1); !bytes.Equal(got, []byte{0x61}) {
		t.Errorf("AppendTextHeader(1) = % x", got)
	}
	if got := AppendArrayHeader(nil, 3); !bytes.Equal(got, []byte{0x83}) {
		t.Errorf("AppendArrayHeader(3) = % x", got)
	}
	if got := AppendMapHeader(nil, 2); !bytes.Equal(got, []byte{0xa2}) {
		t.Errorf("AppendMapHeader(2) = % x", got)
	}
}

func TestAppendBoolNullUndefined(t *testing.T) {
	if got := AppendBool(nil, false); !bytes.Equal(got, []byte{0xf4}) {
		t.Errorf("AppendBool(false) = % x", got)
	}
	if got := AppendBool(nil, true); !bytes.Equal(got, []byte{0xf5}) {
		t.Errorf("AppendBool(true) = % x", got)
	}
	if got := AppendNull(nil); !bytes.Equal(got, []byte{0xf6}) {
		t.Errorf("AppendNull = % x", got)
	}
	if got := AppendUndefined(nil); !bytes.Equal(got, []byte{0xf7}) {
		t.Errorf("AppendUndefined = % x", got)
	}
}

func TestAppendFloatMinimalExactHalf(t *testing.T) {
	// 1.5 round-trips exactly through float16.
	got := AppendFloatMinimal(nil, 1.5, 16)
	if len(got) != 3 || got[0] != MakeByte(MajorSimple, SimpleFloat16) {
		t.Errorf("AppendFloatMinimal(1.5) = % x, want a 3-byte float16 encoding", got)
	}
}

func TestAppendFloatMinimalRespectsFloor(t *testing.T) {
	got := AppendFloatMinimal(nil, 1.5, 32)
	if len(got) != 5 || got[0] != MakeByte(MajorSimple, SimpleFloat32) {
		t.Errorf("AppendFloatMinimal(1.5, floor=32) = % x, want a 5-byte float32 encoding", got)
	}
}

func TestAppendFloatMinimalNonExactUsesFloat64(t *testing.T) {
	got := AppendFloatMinimal(nil, 0.1, 16)
	if len(got) != 9 || got[0] != MakeByte(MajorSimple, SimpleFloat64) {
		t.Errorf("AppendFloatMinimal(0.1) = % x, want a 9-byte float64 encoding", got)
	}
}
