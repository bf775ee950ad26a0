// Package cborbench benchmarks this module's core encoder against fxamacker/cbor (a general-purpose CBOR codec) and
// tinylib/msgp (a comparable wire format's generated runtime), mirroring
// the teacher's benchmarks/runtime_bench_test.go structure.
package cborbench

import (
	"testing"

	fxcbor "github.com/fxamacker/cbor/v2"
	msgp "github.com/tinylib/msgp/msgp"

	"github.com/cborstream/cborstream/encode"
	"github.com/cborstream/cborstream/internal/wire"
	"github.com/cborstream/cborstream/value"
)

func samplePerson() value.Value {
	return value.Map(
		value.MapEntry{Key: "name", Value: value.Text("Alice")},
		value.MapEntry{Key: "age", Value: value.Uint(42)},
		value.MapEntry{Key: "data", Value: value.Bytes([]byte("hello world"))},
	)
}

type fxPerson struct {
	Name string `cbor:"name"`
	Age  uint64 `cbor:"age"`
	Data []byte `cbor:"data"`
}

func BenchmarkCBORStream_EncodePerson(b *testing.B) {
	v := samplePerson()
	opts := encode.DefaultOptions()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := encode.Encode(v, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFxamackerCBOR_EncodePerson(b *testing.B) {
	p := fxPerson{Name: "Alice", Age: 42, Data: []byte("hello world")}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := fxcbor.Marshal(p); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMsgpAppendString_EncodePersonField(b *testing.B) {
	var out []byte
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out = msgp.AppendString(out[:0], "Alice")
	}
	_ = out
}

func BenchmarkCBORStream_AppendUint(b *testing.B) {
	var out []byte
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		out = wire.AppendUint(out[:0], uint64(i))
	}
	_ = out
}

func BenchmarkMsgp_AppendUint64(b *testing.B) {
	var out []byte
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		out = msgp.AppendUint64(out[:0], uint64(i))
	}
	_ = out
}
