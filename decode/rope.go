package decode

import (
	"io"

	"github.com/cborstream/cborstream/cborerr"
)

// Source is a pull-style byte-chunk producer. Next returns io.EOF once
// no more chunks remain; any other error aborts decoding immediately.
type Source interface {
	Next() ([]byte, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() ([]byte, error)

// Next implements Source.
func (f SourceFunc) Next() ([]byte, error) { return f() }

// rope holds an ordered sequence of chunks and a cursor into the first,
// per spec.md §4.3's "chunk rope": allocate(n) pulls from the source
// until enough bytes are buffered; advance(n) consumes exactly n bytes,
// invoking onFree for each chunk fully drained, in receive order,
// exactly once.
type rope struct {
	chunks []([]byte)
	cursor int
	total  int
	eof    bool
	source Source
	onFree func([]byte)
}

func newRope(source Source, onFree func([]byte)) *rope {
	return &rope{source: source, onFree: onFree}
}

// fetchMore pulls exactly one more chunk from the source, appending it
// if non-empty. It reports whether the source is now exhausted.
func (r *rope) fetchMore() (exhausted bool, err error) {
	chunk, err := r.source.Next()
	if err != nil {
		if err == io.EOF {
			r.eof = true
			return true, nil
		}
		return false, err
	}
	if len(chunk) > 0 {
		r.chunks = append(r.chunks, chunk)
		r.total += len(chunk)
	}
	return false, nil
}

// hasMore reports whether at least one more byte is available, pulling
// from the source if necessary. It is the basis for distinguishing a
// clean end-of-sequence from a premature one: callers check hasMore
// before starting a new top-level item, never mid-item.
func (r *rope) hasMore() (bool, error) {
	for r.total == 0 {
		if r.eof {
			return false, nil
		}
		if _, err := r.fetchMore(); err != nil {
			return false, err
		}
	}
	return true, nil
}

// allocate ensures at least n bytes are buffered, pulling from the
// source as needed. It returns cborerr.ErrPrematureEnd if the source is
// exhausted before n bytes accumulate.
func (r *rope) allocate(n int) error {
	for r.total < n {
		if r.eof {
			return cborerr.ErrPrematureEnd
		}
		if _, err := r.fetchMore(); err != nil {
			return err
		}
	}
	return nil
}

// peek returns a contiguous view of the next n bytes without consuming
// them. If the bytes span more than one chunk, they are copied into a
// scratch slice (headers are at most wire.MaxHeaderLen bytes, so this is
// cheap and rare).
func (r *rope) peek(n int) ([]byte, error) {
	if err := r.allocate(n); err != nil {
		return nil, err
	}
	if len(r.chunks[0])-r.cursor >= n {
		return r.chunks[0][r.cursor : r.cursor+n], nil
	}
	scratch := make([]byte, n)
	copied, idx, off := 0, 0, r.cursor
	for copied < n {
		c := r.chunks[idx]
		take := len(c) - off
		if copied+take > n {
			take = n - copied
		}
		copy(scratch[copied:], c[off:off+take])
		copied += take
		idx++
		off = 0
	}
	return scratch, nil
}

// advance consumes exactly n bytes across the rope, optionally copying
// them into dst (dst may be nil to discard, e.g. during skip). Chunks
// fully drained are removed and onFree is invoked for each, in order,
// exactly once.
func (r *rope) advance(n int, dst []byte) error {
	if err := r.allocate(n); err != nil {
		return err
	}
	remaining := n
	written := 0
	for remaining > 0 {
		c := r.chunks[0]
		take := len(c) - r.cursor
		if take > remaining {
			take = remaining
		}
		if dst != nil {
			copy(dst[written:], c[r.cursor:r.cursor+take])
		}
		written += take
		r.cursor += take
		remaining -= take
		r.total -= take
		if r.cursor == len(c) {
			r.chunks = r.chunks[1:]
			r.cursor = 0
			if r.onFree != nil {
				r.onFree(c)
			}
		}
	}
	return nil
}
