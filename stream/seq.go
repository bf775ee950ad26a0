package stream

import (
	"context"
	"errors"
	"io"
	"iter"

	"github.com/cborstream/cborstream/cborerr"
	"github.com/cborstream/cborstream/decode"
	"github.com/cborstream/cborstream/encode"
	"github.com/cborstream/cborstream/value"
)

// DecodeSeq decodes a sequence of top-level values from src, stopping
// cleanly (no trailing error) when src is exhausted exactly at an item
// boundary, and yielding cborerr.ErrPrematureEnd if it is exhausted
// mid-item. This is the synchronous counterpart to spec.md §4.4's lazy
// sequence producer, expressed as a Go 1.23+ range-over-func iterator.
func DecodeSeq(src ChunkSource, opts decode.Options) iter.Seq2[value.Value, error] {
	return func(yield func(value.Value, error) bool) {
		dec := decode.New(src, opts, nil)
		for {
			has, err := dec.More()
			if err != nil {
				yield(value.Value{}, err)
				return
			}
			if !has {
				return
			}
			v, err := dec.Decode()
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}

// EncodeSeq encodes every value produced by values, calling emit with
// each finished chunk in order, stopping at the first hook or encoding
// error.
func EncodeSeq(values iter.Seq[value.Value], opts encode.Options, emit func([]byte) error) error {
	enc := encode.New(opts, emit)
	var encErr error
	values(func(v value.Value) bool {
		if err := enc.Encode(v); err != nil {
			encErr = err
			return false
		}
		return true
	})
	if encErr != nil {
		return encErr
	}
	return enc.Flush()
}

// ChunkOrError is one element of an asynchronous chunk channel: exactly
// one of Chunk or Err is set. Err == io.EOF signals clean exhaustion.
type ChunkOrError struct {
	Chunk []byte
	Err   error
}

// ValueOrError is one element of an asynchronous decoded-value channel.
type ValueOrError struct {
	Value value.Value
	Err   error
}

// DecodeAsync decodes values from an asynchronous chunk channel,
// suspending only on two events named in spec.md §4.4/§5: a receive on
// in (awaiting the next chunk) and ctx cancellation. It closes the
// returned channel after yielding a terminal error or a clean
// exhaustion.
func DecodeAsync(ctx context.Context, in <-chan ChunkOrError, opts decode.Options) <-chan ValueOrError {
	out := make(chan ValueOrError)
	src := &asyncSource{ctx: ctx, in: in}
	dec := decode.New(src, opts, nil)

	go func() {
		defer close(out)
		for {
			has, err := dec.More()
			if err != nil {
				if !sendValue(ctx, out, ValueOrError{Err: err}) {
					return
				}
				return
			}
			if !has {
				return
			}
			v, err := dec.Decode()
			if !sendValue(ctx, out, ValueOrError{Value: v, Err: err}) {
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return out
}

func sendValue(ctx context.Context, out chan<- ValueOrError, v ValueOrError) bool {
	select {
	case out <- v:
		return true
	case <-ctx.Done():
		return false
	}
}

// asyncSource adapts a ChunkOrError channel, gated by ctx, to
// decode.Source.
type asyncSource struct {
	ctx context.Context
	in  <-chan ChunkOrError
}

func (s *asyncSource) Next() ([]byte, error) {
	select {
	case ce, ok := <-s.in:
		if !ok {
			return nil, io.EOF
		}
		if ce.Err != nil {
			return nil, ce.Err
		}
		return ce.Chunk, nil
	case <-s.ctx.Done():
		return nil, s.ctx.Err()
	}
}

// EncodeAsync encodes values received on in, suspending only on a
// receive from in and ctx cancellation, sending finished chunks on the
// returned channel and closing it when in closes or an error occurs.
func EncodeAsync(ctx context.Context, in <-chan value.Value, opts encode.Options) <-chan ChunkOrError {
	out := make(chan ChunkOrError)

	go func() {
		defer close(out)
		enc := encode.New(opts, func(chunk []byte) error {
			cp := make([]byte, len(chunk))
			copy(cp, chunk)
			select {
			case out <- ChunkOrError{Chunk: cp}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})

		for {
			select {
			case v, ok := <-in:
				if !ok {
					if err := enc.Flush(); err != nil && !errors.Is(err, cborerr.ErrStreamClosed) {
						out <- ChunkOrError{Err: err}
					}
					return
				}
				if err := enc.Encode(v); err != nil {
					out <- ChunkOrError{Err: err}
					return
				}
			case <-ctx.Done():
				out <- ChunkOrError{Err: ctx.Err()}
				return
			}
		}
	}()
	return out
}
