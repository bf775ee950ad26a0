package encode

import "sync"

// bufferPool recycles chunk-sized backing arrays across Encoder
// lifetimes, adapted from the teacher runtime package's ByteBuffer pool
// (bbPool/GetByteBuffer/PutByteBuffer): there the pool held growable
// buffers reused across unrelated encode calls; here it holds
// fixed-size arrays reused across unrelated Encoder instances that
// share a chunk size, since this codec's chunk buffer never grows past
// its configured capacity.
var bufferPool sync.Map // map[int]*sync.Pool, keyed by chunk size

func poolFor(chunkSize int) *sync.Pool {
	if p, ok := bufferPool.Load(chunkSize); ok {
		return p.(*sync.Pool)
	}
	p := &sync.Pool{New: func() any { return make([]byte, chunkSize) }}
	actual, _ := bufferPool.LoadOrStore(chunkSize, p)
	return actual.(*sync.Pool)
}

func getPooledChunk(chunkSize int) []byte {
	return poolFor(chunkSize).Get().([]byte)
}

func putPooledChunk(chunkSize int, b []byte) {
	if cap(b) != chunkSize {
		return
	}
	poolFor(chunkSize).Put(b[:chunkSize])
}
