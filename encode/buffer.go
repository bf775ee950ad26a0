package encode

// chunkBuffer is the encoder's fixed-capacity output buffer: a single
// backing array of capacity chunkSize and a cursor, grounded on the
// teacher runtime package's ByteBuffer.Ensure/Extend discipline but
// bounded rather than growing without limit, per spec.md §4.2. Writes
// larger than the remaining room are split across emits.
type chunkBuffer struct {
	data      []byte
	cursor    int
	chunkSize int
	recycle   bool
	sink      func([]byte) error
}

func newChunkBuffer(chunkSize int, recycle bool, sink func([]byte) error) *chunkBuffer {
	if chunkSize <= 0 {
		chunkSize = 4096
	}
	return &chunkBuffer{
		data:      getPooledChunk(chunkSize),
		chunkSize: chunkSize,
		recycle:   recycle,
		sink:      sink,
	}
}

// release returns the buffer's current backing array to the shared pool.
// Only safe once the buffer is done emitting: a recycling buffer's array
// is reused in place for its whole life, and a non-recycling buffer's
// array is handed to sink on every emit, so release only ever reclaims
// the one array still owned by this chunkBuffer.
func (c *chunkBuffer) release() {
	if c.data != nil {
		putPooledChunk(c.chunkSize, c.data)
		c.data = nil
	}
}

// Write appends p to the buffer, emitting full chunks to sink as
// capacity is reached. It never buffers more than chunkSize bytes
// before emitting.
func (c *chunkBuffer) Write(p []byte) error {
	for len(p) > 0 {
		room := c.chunkSize - c.cursor
		n := room
		if n > len(p) {
			n = len(p)
		}
		copy(c.data[c.cursor:], p[:n])
		c.cursor += n
		p = p[n:]
		if c.cursor == c.chunkSize {
			if err := c.emit(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush emits any partial tail chunk. Calling Flush with nothing
// buffered is a no-op, matching spec.md §4.1's "after the last value a
// flush call emits any partial tail chunk."
func (c *chunkBuffer) Flush() error {
	if c.cursor == 0 {
		return nil
	}
	return c.emit()
}

func (c *chunkBuffer) emit() error {
	n := c.cursor
	var out []byte
	if c.recycle {
		// The sink receives a borrow valid only until the next emit;
		// the consumer must copy before this buffer is reused.
		out = c.data[:n]
	} else {
		// Hand ownership of the filled array to the sink and start a
		// fresh one, so each emitted chunk is independently owned. The
		// emitted array is never returned to the pool; c.data here is a
		// replacement this chunkBuffer owns.
		out = c.data[:n]
		c.data = getPooledChunk(c.chunkSize)
	}
	c.cursor = 0
	return c.sink(out)
}
