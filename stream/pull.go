// Package stream provides the pull and push adapters spec.md §4.4/§4.5
// describe: synchronous and asynchronous lazy sequences over the core
// encode/decode packages, and a backpressure-bounded duplex bridge for
// push-style producers and consumers.
package stream

import (
	"io"

	"github.com/philhofer/fwd"

	"github.com/cborstream/cborstream/decode"
)

// ChunkSource is decode.Source under a stream-package name, kept as an
// alias so callers importing only stream never need to reach into
// decode for the adapter's most basic type.
type ChunkSource = decode.Source

// ChunkSourceFunc adapts a function to ChunkSource.
type ChunkSourceFunc = decode.SourceFunc

const defaultReadSize = 4096

// readerSource pulls fixed-size chunks from a buffered io.Reader. It is
// grounded on the teacher runtime package's Reader, which also wraps a
// buffered reader for lookahead; here the buffering is delegated
// entirely to fwd.Reader rather than hand-rolled, since this package
// never needs to peek past a single chunk boundary itself.
type readerSource struct {
	r         *fwd.Reader
	chunkSize int
}

// NewReaderSource wraps r as a ChunkSource, reading chunkSize bytes at a
// time (defaultReadSize if chunkSize <= 0). philhofer/fwd.Reader gives
// buffered reads without this package owning its own read-ahead buffer.
func NewReaderSource(r io.Reader, chunkSize int) ChunkSource {
	if chunkSize <= 0 {
		chunkSize = defaultReadSize
	}
	return &readerSource{r: fwd.NewReaderSize(r, chunkSize), chunkSize: chunkSize}
}

// Next implements ChunkSource.
func (s *readerSource) Next() ([]byte, error) {
	buf := make([]byte, s.chunkSize)
	n, err := s.r.Read(buf)
	if n > 0 {
		return buf[:n], nil
	}
	if err != nil {
		return nil, err
	}
	return nil, io.EOF
}
