// Package value defines the dynamic CBOR value model this codec encodes
// and decodes: a tagged variant over the kinds spec.md's data model
// names, with map entries held in a slice so insertion order survives a
// round trip the way a Go map could not guarantee.
package value

import "math"

// Kind identifies which variant of Value is populated, the way the
// teacher runtime package's Type identifies a decoded CBOR item.
type Kind byte

const (
	InvalidKind Kind = iota
	UintKind
	IntKind
	BytesKind
	TextKind
	ArrayKind
	MapKind
	BoolKind
	NullKind
	UndefinedKind
	FloatKind
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case UintKind:
		return "uint"
	case IntKind:
		return "int"
	case BytesKind:
		return "bytes"
	case TextKind:
		return "text"
	case ArrayKind:
		return "array"
	case MapKind:
		return "map"
	case BoolKind:
		return "bool"
	case NullKind:
		return "null"
	case UndefinedKind:
		return "undefined"
	case FloatKind:
		return "float"
	default:
		return "<invalid>"
	}
}

// MapEntry is one key/value pair of a Map value. Order within Entries is
// the order the pair was encountered, either at construction or on
// decode.
type MapEntry struct {
	Key   string
	Value Value
}

// Value is a tagged union over the CBOR kinds this codec supports. The
// zero Value is InvalidKind and is never produced by a successful decode
// or accepted by an encode.
type Value struct {
	kind    Kind
	bits    uint64 // Uint/Int/Bool(0 or 1)/Float (raw float64 bits)
	text    string
	bin     []byte
	arr     []Value
	entries []MapEntry
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// Uint constructs an unsigned integer value.
func Uint(u uint64) Value { return Value{kind: UintKind, bits: u} }

// Int constructs a signed integer value. Use Uint for values known to be
// non-negative; the encoder picks major type 0 vs 1 from the sign alone.
func Int(i int64) Value { return Value{kind: IntKind, bits: uint64(i)} }

// Bytes constructs a byte-string value. The slice is held, not copied;
// callers that mutate it afterward invalidate the Value.
func Bytes(b []byte) Value { return Value{kind: BytesKind, bin: b} }

// Text constructs a text-string value. s must be valid UTF-8; the
// encoder does not re-validate strings built this way versus those
// produced by Decode, but the wire writer will still reject invalid
// UTF-8 at encode time.
func Text(s string) Value { return Value{kind: TextKind, text: s} }

// Array constructs an array value from elements in order.
func Array(elems ...Value) Value { return Value{kind: ArrayKind, arr: elems} }

// Map constructs a map value from entries in encounter order. Duplicate
// keys are not rejected at construction; they are rejected during
// decode and may also be rejected by the encoder's OnKey hook.
func Map(entries ...MapEntry) Value { return Value{kind: MapKind, entries: entries} }

// Bool constructs a boolean value.
func Bool(b bool) Value {
	if b {
		return Value{kind: BoolKind, bits: 1}
	}
	return Value{kind: BoolKind, bits: 0}
}

// Null constructs the CBOR null value.
func Null() Value { return Value{kind: NullKind} }

// Undefined constructs the CBOR undefined value.
func Undefined() Value { return Value{kind: UndefinedKind} }

// Float constructs a double-precision float value. The encoder narrows
// it to float32/float16 when MinFloatSize and exact round-trip allow.
func Float(f float64) Value { return Value{kind: FloatKind, bits: math.Float64bits(f)} }

// AsUint returns the stored value and whether v holds UintKind.
func (v Value) AsUint() (uint64, bool) { return v.bits, v.kind == UintKind }

// AsInt returns the stored value and whether v holds IntKind.
func (v Value) AsInt() (int64, bool) { return int64(v.bits), v.kind == IntKind }

// AsBytes returns the stored value and whether v holds BytesKind.
func (v Value) AsBytes() ([]byte, bool) { return v.bin, v.kind == BytesKind }

// AsText returns the stored value and whether v holds TextKind.
func (v Value) AsText() (string, bool) { return v.text, v.kind == TextKind }

// AsArray returns the stored elements and whether v holds ArrayKind.
func (v Value) AsArray() ([]Value, bool) { return v.arr, v.kind == ArrayKind }

// AsMap returns the stored entries and whether v holds MapKind.
func (v Value) AsMap() ([]MapEntry, bool) { return v.entries, v.kind == MapKind }

// AsBool returns the stored value and whether v holds BoolKind.
func (v Value) AsBool() (bool, bool) { return v.bits != 0, v.kind == BoolKind }

// AsFloat returns the stored value and whether v holds FloatKind.
func (v Value) AsFloat() (float64, bool) {
	return math.Float64frombits(v.bits), v.kind == FloatKind
}

// Lookup returns the value associated with key in a Map value, scanning
// entries in order (maps in this subset are small and order-preserving,
// not indexed).
func (v Value) Lookup(key string) (Value, bool) {
	if v.kind != MapKind {
		return Value{}, false
	}
	for _, e := range v.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

// Equal reports structural equality between a and b. Map key order is
// irrelevant, matching spec.md's round-trip property; array element
// order and map key sets must match exactly.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case UintKind, IntKind, BoolKind:
		return a.bits == b.bits
	case FloatKind:
		af, bf := math.Float64frombits(a.bits), math.Float64frombits(b.bits)
		if math.IsNaN(af) && math.IsNaN(bf) {
			return true
		}
		return af == bf
	case BytesKind:
		return bytesEqual(a.bin, b.bin)
	case TextKind:
		return a.text == b.text
	case ArrayKind:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case MapKind:
		if len(a.entries) != len(b.entries) {
			return false
		}
		for _, ea := range a.entries {
			bv, ok := b.Lookup(ea.Key)
			if !ok || !Equal(ea.Value, bv) {
				return false
			}
		}
		return true
	case NullKind, UndefinedKind:
		return true
	default:
		return false
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
