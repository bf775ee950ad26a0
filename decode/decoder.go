// Package decode implements the core CBOR decoder: the chunk rope,
// the major-type state machine, and the skip-on-replacement transform
// hook dispatch spec.md §4.3 describes.
package decode

import (
	"io"
	"math"
	"math/big"

	"github.com/cborstream/cborstream/cborerr"
	"github.com/cborstream/cborstream/internal/wire"
	"github.com/cborstream/cborstream/value"
)

// recursionLimit bounds array/map nesting depth, guarding against stack
// exhaustion on adversarial input, the way the teacher runtime
// package's skip/validate routines bound recursion.
const recursionLimit = 100000

// Decoder is the core CBOR decoder. It holds no goroutines and is not
// safe for concurrent use by multiple callers (spec.md §5).
type Decoder struct {
	opts Options
	r    *rope
}

// New constructs a Decoder pulling chunks from source. onFree, if
// non-nil, is invoked once per fully-consumed chunk in receive order —
// the hook an outer adapter uses to recycle input buffers (spec.md §9).
func New(source Source, opts Options, onFree func([]byte)) *Decoder {
	return &Decoder{opts: opts.normalized(), r: newRope(source, onFree)}
}

// More reports whether another top-level value is available without
// consuming anything, pulling from the source if necessary. Callers
// drive a sequence of Decode calls by checking More first; calling
// Decode directly at a clean end-of-stream also returns io.EOF.
func (d *Decoder) More() (bool, error) { return d.r.hasMore() }

// Decode reads exactly one top-level value. It returns io.EOF if called
// at a clean boundary between items (the source is exhausted and no
// partial item has been started), and cborerr.ErrPrematureEnd if the
// source is exhausted in the middle of one.
func (d *Decoder) Decode() (value.Value, error) {
	has, err := d.More()
	if err != nil {
		return value.Value{}, err
	}
	if !has {
		return value.Value{}, io.EOF
	}
	return d.decodeValue(nil, 0)
}

// Skip reads and discards exactly one top-level item without
// materializing it, advancing the cursor by exactly its encoded length.
func (d *Decoder) Skip() error {
	has, err := d.More()
	if err != nil {
		return err
	}
	if !has {
		return io.EOF
	}
	return d.skipItem(0)
}

func (d *Decoder) readHeader() (major, addInfo uint8, arg uint64, err error) {
	b0, err := d.r.peek(1)
	if err != nil {
		return 0, 0, 0, err
	}
	addInfo = wire.AddInfo(b0[0])
	n, err := wire.HeaderLen(addInfo)
	if err != nil {
		return wire.MajorType(b0[0]), addInfo, 0, err
	}
	hdr, err := d.r.peek(n)
	if err != nil {
		return 0, 0, 0, err
	}
	major, addInfo, arg, _, err = wire.DecodeArgument(hdr)
	if err != nil {
		return 0, 0, 0, err
	}
	if err = d.r.advance(n, nil); err != nil {
		return 0, 0, 0, err
	}
	return major, addInfo, arg, nil
}

func classify(major, addInfo uint8, arg uint64) (value.Kind, int) {
	switch major {
	case wire.MajorUint:
		return value.UintKind, 0
	case wire.MajorNegInt:
		return value.IntKind, 0
	case wire.MajorBytes:
		return value.BytesKind, int(arg)
	case wire.MajorText:
		return value.TextKind, int(arg)
	case wire.MajorArray:
		return value.ArrayKind, int(arg)
	case wire.MajorMap:
		return value.MapKind, int(arg)
	case wire.MajorSimple:
		switch addInfo {
		case wire.SimpleFalse, wire.SimpleTrue:
			return value.BoolKind, 0
		case wire.SimpleNull:
			return value.NullKind, 0
		case wire.SimpleUndefined:
			return value.UndefinedKind, 0
		default:
			return value.FloatKind, 0
		}
	default:
		return value.InvalidKind, 0
	}
}

// decodeValue is the hook-aware, value-producing half of the decode
// algorithm (spec.md §4.3).
func (d *Decoder) decodeValue(path value.KeyPath, depth int) (value.Value, error) {
	if depth > recursionLimit {
		return value.Value{}, cborerr.ErrMaxDepthExceeded
	}
	major, addInfo, arg, err := d.readHeader()
	if err != nil {
		return value.Value{}, cborerr.WrapPath(err, path.String())
	}
	if major == wire.MajorTag {
		return value.Value{}, cborerr.WrapPath(cborerr.UnsupportedFeatureError{Feature: "tagged item"}, path.String())
	}
	if major == wire.MajorSimple && (addInfo < 20 || addInfo == wire.AddInfoUint8) {
		return value.Value{}, cborerr.WrapPath(cborerr.UnsupportedFeatureError{Feature: "unassigned simple value"}, path.String())
	}

	kind, length := classify(major, addInfo, arg)
	thunk := &Thunk{d: d, major: major, addInfo: addInfo, arg: arg, path: path}

	if d.opts.OnValue != nil {
		repl, ok, herr := d.opts.OnValue(thunk, length, kind, path)
		if herr != nil {
			return value.Value{}, cborerr.WrapPath(cborerr.HookError{Cause: herr}, path.String())
		}
		if ok {
			if !thunk.called {
				if err := d.skipPayload(major, addInfo, arg, depth); err != nil {
					return value.Value{}, err
				}
			}
			return repl, nil
		}
	}
	if thunk.called {
		return thunk.val, thunk.err
	}
	return d.decodePayloadAt(major, addInfo, arg, path, depth)
}

// decodePayload is the Thunk.Call entry point: it decodes exactly one
// item's payload given an already-consumed header, at depth 0 relative
// to its own subtree. Container recursion tracks depth internally via
// decodePayloadAt; this wrapper exists because Thunk has no depth
// counter of its own (a hook may call Call() long after the header was
// read, but never after more nesting has occurred).
func (d *Decoder) decodePayload(major, addInfo uint8, arg uint64, path value.KeyPath) (value.Value, error) {
	return d.decodePayloadAt(major, addInfo, arg, path, 0)
}

func (d *Decoder) decodePayloadAt(major, addInfo uint8, arg uint64, path value.KeyPath, depth int) (value.Value, error) {
	switch major {
	case wire.MajorUint:
		if !value.IsSafeUint(arg) {
			return value.Value{}, cborerr.WrapPath(cborerr.UnsafeIntegerError{Raw: new(big.Int).SetUint64(arg)}, path.String())
		}
		return value.Uint(arg), nil
	case wire.MajorNegInt:
		if !value.IsSafeNegative(arg) {
			raw := new(big.Int).SetUint64(arg)
			raw.Add(raw, big.NewInt(1))
			raw.Neg(raw)
			return value.Value{}, cborerr.WrapPath(cborerr.UnsafeIntegerError{Raw: raw}, path.String())
		}
		return value.Int(-1 - int64(arg)), nil
	case wire.MajorBytes:
		buf := make([]byte, arg)
		if err := d.r.advance(int(arg), buf); err != nil {
			return value.Value{}, cborerr.WrapPath(err, path.String())
		}
		return value.Bytes(buf), nil
	case wire.MajorText:
		s, err := d.decodeTextPayload(arg, path)
		if err != nil {
			return value.Value{}, err
		}
		return value.Text(s), nil
	case wire.MajorArray:
		elems := make([]value.Value, 0, arg)
		for i := uint64(0); i < arg; i++ {
			v, err := d.decodeValue(path.WithIndex(int(i)), depth+1)
			if err != nil {
				return value.Value{}, err
			}
			elems = append(elems, v)
		}
		return value.Array(elems...), nil
	case wire.MajorMap:
		entries := make([]value.MapEntry, 0, arg)
		seen := make(map[string]struct{}, arg)
		for i := uint64(0); i < arg; i++ {
			key, err := d.decodeKey(path, depth+1)
			if err != nil {
				return value.Value{}, err
			}
			if _, dup := seen[key]; dup {
				return value.Value{}, cborerr.WrapPath(cborerr.ErrDuplicateMapKey, path.WithKey(key).String())
			}
			seen[key] = struct{}{}
			v, err := d.decodeValue(path.WithKey(key), depth+1)
			if err != nil {
				return value.Value{}, err
			}
			entries = append(entries, value.MapEntry{Key: key, Value: v})
		}
		return value.Map(entries...), nil
	case wire.MajorSimple:
		switch addInfo {
		case wire.SimpleFalse:
			return value.Bool(false), nil
		case wire.SimpleTrue:
			return value.Bool(true), nil
		case wire.SimpleNull:
			return value.Null(), nil
		case wire.SimpleUndefined:
			if !d.opts.AllowUndefined {
				return value.Value{}, cborerr.WrapPath(cborerr.UndefinedDisallowedError{}, path.String())
			}
			return value.Undefined(), nil
		case wire.SimpleFloat16:
			if d.opts.MinFloatSize > 16 {
				return value.Value{}, cborerr.WrapPath(cborerr.ErrFloatBelowMinSize, path.String())
			}
			return value.Float(float64(wire.Float16ToFloat32(uint16(arg)))), nil
		case wire.SimpleFloat32:
			if d.opts.MinFloatSize > 32 {
				return value.Value{}, cborerr.WrapPath(cborerr.ErrFloatBelowMinSize, path.String())
			}
			return value.Float(float64(math.Float32frombits(uint32(arg)))), nil
		case wire.SimpleFloat64:
			return value.Float(math.Float64frombits(arg)), nil
		default:
			return value.Value{}, cborerr.WrapPath(cborerr.UnsupportedFeatureError{Feature: "unassigned simple value"}, path.String())
		}
	default:
		return value.Value{}, cborerr.WrapPath(cborerr.ErrMalformedArgument, path.String())
	}
}

func (d *Decoder) decodeTextPayload(arg uint64, path value.KeyPath) (string, error) {
	buf := make([]byte, arg)
	if err := d.r.advance(int(arg), buf); err != nil {
		return "", cborerr.WrapPath(err, path.String())
	}
	if !wire.ValidUTF8(buf) {
		return "", cborerr.WrapPath(cborerr.ErrInvalidUTF8, path.String())
	}
	return string(buf), nil
}

// decodeKey is the hook-aware key decode: only major type 3 (text) is
// accepted, and the OnKey hook fires in place of OnValue.
func (d *Decoder) decodeKey(path value.KeyPath, depth int) (string, error) {
	if depth > recursionLimit {
		return "", cborerr.ErrMaxDepthExceeded
	}
	major, addInfo, arg, err := d.readHeader()
	if err != nil {
		return "", cborerr.WrapPath(err, path.String())
	}
	if major != wire.MajorText {
		return "", cborerr.WrapPath(cborerr.ErrNonStringMapKey, path.String())
	}

	kt := &KeyThunk{d: d, arg: arg, path: path}
	if d.opts.OnKey != nil {
		repl, ok, herr := d.opts.OnKey(kt)
		if herr != nil {
			return "", cborerr.WrapPath(cborerr.HookError{Cause: herr}, path.String())
		}
		if ok {
			if !kt.called {
				if err := d.skipPayload(major, addInfo, arg, depth); err != nil {
					return "", err
				}
			}
			return repl, nil
		}
	}
	if kt.called {
		return kt.val, kt.err
	}
	return d.decodeTextPayload(arg, path)
}

// skipPayload is the hook-free, mechanical half of spec.md §4.3's skip
// routine: it mirrors decodePayloadAt but never materializes values.
func (d *Decoder) skipPayload(major, addInfo uint8, arg uint64, depth int) error {
	switch major {
	case wire.MajorBytes, wire.MajorText:
		return d.r.advance(int(arg), nil)
	case wire.MajorArray:
		for i := uint64(0); i < arg; i++ {
			if err := d.skipItem(depth + 1); err != nil {
				return err
			}
		}
		return nil
	case wire.MajorMap:
		for i := uint64(0); i < arg*2; i++ {
			if err := d.skipItem(depth + 1); err != nil {
				return err
			}
		}
		return nil
	default:
		// Uint, NegInt, and every major-7 scalar already consumed their
		// entire argument as part of the header.
		return nil
	}
}

func (d *Decoder) skipItem(depth int) error {
	if depth > recursionLimit {
		return cborerr.ErrMaxDepthExceeded
	}
	major, addInfo, arg, err := d.readHeader()
	if err != nil {
		return err
	}
	if major == wire.MajorTag {
		return cborerr.UnsupportedFeatureError{Feature: "tagged item"}
	}
	if major == wire.MajorSimple && (addInfo < 20 || addInfo == wire.AddInfoUint8) {
		return cborerr.UnsupportedFeatureError{Feature: "unassigned simple value"}
	}
	return d.skipPayload(major, addInfo, arg, depth)
}

// Decode is the non-streaming convenience entry point spec.md §6 names:
// it decodes exactly one top-level value from b. Any bytes after the
// first item are neither consumed nor examined, so a trailing partial
// item is not reported; use a Decoder (or stream.DecodeSeq) to read a
// sequence.
func Decode(b []byte, opts Options) (value.Value, error) {
	dec := New(sliceSource(b), opts, nil)
	return dec.Decode()
}

// DiagnosticSnippet renders the leading item of b as RFC 8949 diagnostic
// notation (internal/wire.Diag), for inclusion in human-readable decode
// error output. It returns "" if b's leading item cannot be rendered by
// the supported subset — typically because the same malformed or
// truncated bytes that caused the original decode error also defeat
// Diag, in which case callers fall back to the original error alone.
func DiagnosticSnippet(b []byte) string {
	s, _, err := wire.Diag(b)
	if err != nil {
		return ""
	}
	return s
}

// sliceSource adapts a single in-memory byte slice to Source, yielding
// it as one chunk and then io.EOF.
func sliceSource(b []byte) Source {
	done := false
	return SourceFunc(func() ([]byte, error) {
		if done {
			return nil, io.EOF
		}
		done = true
		return b, nil
	})
}

