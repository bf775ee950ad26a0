package encode

import (
	"github.com/cborstream/cborstream/cborerr"
	"github.com/cborstream/cborstream/internal/wire"
	"github.com/cborstream/cborstream/value"
)

// Encoder is the core CBOR encoder: a value and hook traversal over a
// size-bounded, optionally-recycled output buffer. It holds no
// goroutines and is not safe for concurrent use by multiple callers
// (spec.md §5: single-threaded, cooperative).
type Encoder struct {
	opts Options
	buf  *chunkBuffer
}

// New constructs an Encoder that emits finished chunks to sink.
func New(opts Options, sink func([]byte) error) *Encoder {
	opts = opts.normalized()
	return &Encoder{
		opts: opts,
		buf:  newChunkBuffer(opts.ChunkSize, opts.ChunkRecycling, sink),
	}
}

// Encode appends the encoding of one top-level value, invoking OnKey and
// OnValue hooks per spec.md §4.1/§5's pre-order, keys-before-values
// ordering.
func (e *Encoder) Encode(v value.Value) error {
	return e.encodeItem(v, nil)
}

// Flush emits any partially filled tail chunk. Call once after the last
// Encode call in a traversal.
func (e *Encoder) Flush() error { return e.buf.Flush() }

// Close returns the Encoder's backing chunk array to the shared pool.
// Call once after the final Flush; the Encoder must not be used again.
func (e *Encoder) Close() { e.buf.release() }

func (e *Encoder) encodeItem(v value.Value, path value.KeyPath) error {
	if e.opts.OnValue != nil {
		repl, ok, err := e.opts.OnValue(v, path)
		if err != nil {
			return cborerr.WrapPath(cborerr.HookError{Cause: err}, path.String())
		}
		if ok {
			v = repl
		}
	}

	switch v.Kind() {
	case value.UintKind:
		u, _ := v.AsUint()
		return e.writeHeader(wire.AppendUint(nil, u))
	case value.IntKind:
		i, _ := v.AsInt()
		return e.writeHeader(wire.AppendInt(nil, i))
	case value.BytesKind:
		b, _ := v.AsBytes()
		if err := e.writeHeader(wire.AppendBytesHeader(nil, len(b))); err != nil {
			return err
		}
		return e.buf.Write(b)
	case value.TextKind:
		s, _ := v.AsText()
		if !wire.ValidUTF8([]byte(s)) {
			return cborerr.WrapPath(cborerr.ErrInvalidUTF8, path.String())
		}
		if err := e.writeHeader(wire.AppendTextHeader(nil, len(s))); err != nil {
			return err
		}
		return e.buf.Write([]byte(s))
	case value.ArrayKind:
		arr, _ := v.AsArray()
		if err := e.writeHeader(wire.AppendArrayHeader(nil, len(arr))); err != nil {
			return err
		}
		for i, elem := range arr {
			if err := e.encodeItem(elem, path.WithIndex(i)); err != nil {
				return err
			}
		}
		return nil
	case value.MapKind:
		entries, _ := v.AsMap()
		if err := e.writeHeader(wire.AppendMapHeader(nil, len(entries))); err != nil {
			return err
		}
		for _, entry := range entries {
			key := entry.Key
			if e.opts.OnKey != nil {
				repl, ok, err := e.opts.OnKey(key)
				if err != nil {
					return cborerr.WrapPath(cborerr.HookError{Cause: err}, path.String())
				}
				if ok {
					key = repl
				}
			}
			if !wire.ValidUTF8([]byte(key)) {
				return cborerr.WrapPath(cborerr.ErrInvalidUTF8, path.String())
			}
			if err := e.writeHeader(wire.AppendTextHeader(nil, len(key))); err != nil {
				return err
			}
			if err := e.buf.Write([]byte(key)); err != nil {
				return err
			}
			if err := e.encodeItem(entry.Value, path.WithKey(key)); err != nil {
				return err
			}
		}
		return nil
	case value.BoolKind:
		b, _ := v.AsBool()
		return e.writeHeader(wire.AppendBool(nil, b))
	case value.NullKind:
		return e.writeHeader(wire.AppendNull(nil))
	case value.UndefinedKind:
		if !e.opts.AllowUndefined {
			return cborerr.WrapPath(cborerr.UndefinedDisallowedError{}, path.String())
		}
		return e.writeHeader(wire.AppendUndefined(nil))
	case value.FloatKind:
		f, _ := v.AsFloat()
		return e.writeHeader(wire.AppendFloatMinimal(nil, f, e.opts.MinFloatSize))
	default:
		return cborerr.WrapPath(cborerr.ErrMalformedArgument, path.String())
	}
}

func (e *Encoder) writeHeader(b []byte) error { return e.buf.Write(b) }

// Encode is the non-streaming convenience entry point spec.md §6 names:
// it runs the streaming encoder over an in-memory sink and returns the
// complete byte slice.
func Encode(v value.Value, opts Options) ([]byte, error) {
	var out []byte
	enc := New(opts, func(chunk []byte) error {
		out = append(out, chunk...)
		return nil
	})
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	enc.Close()
	return out, nil
}
