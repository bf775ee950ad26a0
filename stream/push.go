package stream

import (
	"context"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/cborstream/cborstream/cborerr"
	"github.com/cborstream/cborstream/decode"
	"github.com/cborstream/cborstream/encode"
	"github.com/cborstream/cborstream/value"
)

// PushDecoder bridges a push-style byte writer to a pull-style decoded
// value channel. Write blocks until the core decoder has pulled the
// previous chunk off the bridge, the single in-flight slot spec.md §4.5
// describes made literal with a weight-1 semaphore: Write acquires it
// before handing a chunk to the core, and the core's own pull (a receive
// on the bridge channel) releases it immediately. Release happens on
// pull-demand rather than on full drain: an item whose header or payload
// spans a chunk boundary needs the next chunk to make progress before
// the current one is ever fully consumed, so gating release on
// full-drain would deadlock such items against Write.
type PushDecoder struct {
	sem    *semaphore.Weighted
	chunks chan []byte
	values chan ValueOrError
	group  *errgroup.Group
	ctx    context.Context

	closeOnce sync.Once
	closeErr  error
}

// NewPushDecoder starts the background decode goroutine and returns a
// PushDecoder ready to accept Write calls.
func NewPushDecoder(ctx context.Context, opts decode.Options) *PushDecoder {
	g, gctx := errgroup.WithContext(ctx)
	p := &PushDecoder{
		sem:    semaphore.NewWeighted(1),
		chunks: make(chan []byte),
		values: make(chan ValueOrError),
		group:  g,
		ctx:    gctx,
	}

	src := ChunkSourceFunc(func() ([]byte, error) {
		select {
		case c, ok := <-p.chunks:
			if !ok {
				return nil, io.EOF
			}
			// Release as soon as the core demands (and receives) this
			// chunk, not when it is later fully drained: an item whose
			// header or payload spans a chunk boundary needs the next
			// chunk before this one drains, so gating release on onFree
			// would deadlock Write against the decoder's own pull.
			p.sem.Release(1)
			return c, nil
		case <-gctx.Done():
			return nil, gctx.Err()
		}
	})

	onFree := func([]byte) {}

	g.Go(func() error {
		defer close(p.values)
		dec := decode.New(src, opts, onFree)
		for {
			has, err := dec.More()
			if err != nil {
				p.values <- ValueOrError{Err: err}
				return err
			}
			if !has {
				return nil
			}
			v, err := dec.Decode()
			select {
			case p.values <- ValueOrError{Value: v, Err: err}:
			case <-gctx.Done():
				return gctx.Err()
			}
			if err != nil {
				return err
			}
		}
	})

	return p
}

// Write hands p to the core decoder, blocking until the decoder has
// pulled the previous chunk off the bridge (the weight-1 semaphore
// acquire) and has accepted this one. It does not wait for the previous
// chunk's bytes to be fully consumed. It returns cborerr.ErrStreamClosed
// once Close has been called or the decode goroutine has exited.
func (d *PushDecoder) Write(p []byte) (int, error) {
	if err := d.sem.Acquire(d.ctx, 1); err != nil {
		return 0, cborerr.ErrStreamClosed
	}
	cp := make([]byte, len(p))
	copy(cp, p)
	select {
	case d.chunks <- cp:
		return len(p), nil
	case <-d.ctx.Done():
		return 0, cborerr.ErrStreamClosed
	}
}

// Close signals clean end-of-input to the decoder and waits for the
// background goroutine to drain. The Values channel still yields any
// values already in flight before closing.
func (d *PushDecoder) Close() error {
	d.closeOnce.Do(func() {
		close(d.chunks)
		d.closeErr = d.group.Wait()
	})
	return d.closeErr
}

// Abort cancels the bridge immediately, marking it StreamClosed for any
// further Write calls and unblocking a goroutine waiting on a channel
// send or semaphore acquire.
func (d *PushDecoder) Abort(err error) {
	d.closeOnce.Do(func() {
		d.closeErr = err
		close(d.chunks)
		_ = d.group.Wait()
	})
}

// Values returns the channel of decoded top-level values. It closes
// when Close/Abort has fully drained the decoder.
func (d *PushDecoder) Values() <-chan ValueOrError { return d.values }

// PushEncoder mirrors PushDecoder for the encode direction: values are
// pushed in via Push, and finished chunks are pulled from Chunks,
// gated by the same weight-1 backpressure discipline — the producer
// does not advance past a value until the previous chunk has been
// pulled off Chunks.
type PushEncoder struct {
	sem    *semaphore.Weighted
	in     chan value.Value
	out    chan ChunkOrError
	chunks chan ChunkOrError
	group  *errgroup.Group
	ctx    context.Context

	closeOnce sync.Once
	closeErr  error
}

// NewPushEncoder starts the background encode goroutine and returns a
// PushEncoder ready to accept Push calls.
func NewPushEncoder(ctx context.Context, opts encode.Options) *PushEncoder {
	g, gctx := errgroup.WithContext(ctx)
	p := &PushEncoder{
		sem:   semaphore.NewWeighted(1),
		in:    make(chan value.Value),
		out:   make(chan ChunkOrError),
		group: g,
		ctx:   gctx,
	}
	p.chunks = ackChunks(p.sem, p.out)

	g.Go(func() error {
		defer close(p.out)
		enc := encode.New(opts, func(chunk []byte) error {
			if err := p.sem.Acquire(gctx, 1); err != nil {
				return err
			}
			cp := make([]byte, len(chunk))
			copy(cp, chunk)
			select {
			case p.out <- ChunkOrError{Chunk: cp}:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})

		for {
			select {
			case v, ok := <-p.in:
				if !ok {
					if err := enc.Flush(); err != nil {
						p.out <- ChunkOrError{Err: err}
						return err
					}
					enc.Close()
					return nil
				}
				if err := enc.Encode(v); err != nil {
					p.out <- ChunkOrError{Err: err}
					return err
				}
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	return p
}

// Push hands v to the core encoder, blocking until the previous chunk
// (if any was produced) has been pulled from Chunks. It returns
// cborerr.ErrStreamClosed once Close/Abort has been called.
func (e *PushEncoder) Push(v value.Value) error {
	select {
	case e.in <- v:
		return nil
	case <-e.ctx.Done():
		return cborerr.ErrStreamClosed
	}
}

// Chunks returns the channel of finished output chunks. Each receive
// releases the semaphore slot acquired in the encode goroutine, the
// acknowledgement that unblocks the next Push or the encoder's own
// progress.
func (e *PushEncoder) Chunks() <-chan ChunkOrError {
	return e.chunks
}

func ackChunks(sem *semaphore.Weighted, in <-chan ChunkOrError) <-chan ChunkOrError {
	out := make(chan ChunkOrError)
	go func() {
		defer close(out)
		for ce := range in {
			out <- ce
			sem.Release(1)
		}
	}()
	return out
}

// Close signals no further values will be pushed and waits for the
// background goroutine to finish flushing.
func (e *PushEncoder) Close() error {
	e.closeOnce.Do(func() {
		close(e.in)
		e.closeErr = e.group.Wait()
	})
	return e.closeErr
}

// Abort cancels the bridge immediately.
func (e *PushEncoder) Abort(err error) {
	e.closeOnce.Do(func() {
		e.closeErr = err
		close(e.in)
		_ = e.group.Wait()
	})
}
