// Package rfcexamples checks this module's wire output against the
// worked examples in RFC 8949 Appendix A, restricted to the subset this
// codec supports (definite-length, no tags), the way the teacher's
// rfc-examples suite checked its own runtime against the same RFC.
package rfcexamples

import (
	"encoding/hex"
	"math"
	"testing"

	"github.com/cborstream/cborstream/decode"
	"github.com/cborstream/cborstream/encode"
	"github.com/cborstream/cborstream/value"
)

type rfcExample struct {
	name string
	v    value.Value
	hex  string
}

var rfcExamples = []rfcExample{
	{"zero", value.Uint(0), "00"},
	{"one", value.Uint(1), "01"},
	{"ten", value.Uint(10), "0a"},
	{"twentythree", value.Uint(23), "17"},
	{"twentyfour", value.Uint(24), "1818"},
	{"twentyfive", value.Uint(25), "1819"},
	{"onehundred", value.Uint(100), "1864"},
	{"onethousand", value.Uint(1000), "1903e8"},
	{"onemillion", value.Uint(1000000), "1a000f4240"},
	{"maxuint32", value.Uint(4294967295), "1affffffff"},
	{"minusone", value.Int(-1), "20"},
	{"minusten", value.Int(-10), "29"},
	{"minushundred", value.Int(-100), "3863"},
	{"minusthousand", value.Int(-1000), "3903e7"},
	{"float-zero", value.Float(0.0), "f90000"},
	{"float-minuszero", value.Float(negZero()), "f98000"},
	{"float-one", value.Float(1.0), "f93c00"},
	{"float-1_5", value.Float(1.5), "f93e00"},
	{"float-65504", value.Float(65504.0), "f97bff"},
	{"float-100000", value.Float(100000.0), "fa47c35000"},
	{"float-3_4028235e38", value.Float(3.4028234663852886e+38), "fa7f7fffff"},
	{"float-1_0e300", value.Float(1.0e300), "fb7e37e43c8800759c"},
	{"false", value.Bool(false), "f4"},
	{"true", value.Bool(true), "f5"},
	{"null", value.Null(), "f6"},
	{"undefined", value.Undefined(), "f7"},
	{"empty-array", value.Array(), "80"},
	{"array-1-2-3", value.Array(value.Uint(1), value.Uint(2), value.Uint(3)), "83010203"},
	{
		"array-nested",
		value.Array(value.Uint(1), value.Array(value.Uint(2), value.Uint(3)), value.Array(value.Uint(4), value.Uint(5))),
		"8301820203820405",
	},
	{"empty-map", value.Map(), "a0"},
	{
		"map-a1-b2",
		value.Map(value.MapEntry{Key: "a", Value: value.Uint(1)}, value.MapEntry{Key: "b", Value: value.Uint(2)}),
		"a2616101616202",
	},
	{"text-empty", value.Text(""), "60"},
	{"text-a", value.Text("a"), "6161"},
	{"text-IETF", value.Text("IETF"), "6449455446"},
	{"bytes-empty", value.Bytes(nil), "40"},
	{"bytes-010203", value.Bytes([]byte{1, 2, 3}), "43010203"},
}

func negZero() float64 {
	return math.Copysign(0, -1)
}

func TestRFCExamplesEncode(t *testing.T) {
	for _, ex := range rfcExamples {
		ex := ex
		t.Run(ex.name, func(t *testing.T) {
			want, err := hex.DecodeString(ex.hex)
			if err != nil {
				t.Fatalf("bad hex %q: %v", ex.hex, err)
			}
			got, err := encode.Encode(ex.v, encode.DefaultOptions())
			if err != nil {
				t.Fatalf("Encode error: %v", err)
			}
			if hex.EncodeToString(got) != hex.EncodeToString(want) {
				t.Errorf("Encode(%v) = %x, want %x", ex.v, got, want)
			}
		})
	}
}

func TestRFCExamplesDecode(t *testing.T) {
	for _, ex := range rfcExamples {
		ex := ex
		t.Run(ex.name, func(t *testing.T) {
			b, err := hex.DecodeString(ex.hex)
			if err != nil {
				t.Fatalf("bad hex %q: %v", ex.hex, err)
			}
			got, err := decode.Decode(b, decode.DefaultOptions())
			if err != nil {
				t.Fatalf("Decode error: %v", err)
			}
			if !value.Equal(got, ex.v) {
				t.Errorf("Decode(%x) = %v, want %v", b, got, ex.v)
			}
		})
	}
}

func TestRFCExampleTagRejected(t *testing.T) {
	b, _ := hex.DecodeString("c11a514b67b0") // 1(1363896240)
	if _, err := decode.Decode(b, decode.DefaultOptions()); err == nil {
		t.Fatal("expected tagged item to be rejected")
	}
}

func TestRFCExampleIndefiniteArrayRejected(t *testing.T) {
	b, _ := hex.DecodeString("9f0102ff") // [_ 1, 2]
	if _, err := decode.Decode(b, decode.DefaultOptions()); err == nil {
		t.Fatal("expected indefinite-length array to be rejected")
	}
}
