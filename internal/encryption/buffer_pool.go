package encryption

import "sync"

// DefaultChunkSize is the read size used when none is configured.
const DefaultChunkSize = 4096

// bufferPool hands out chunk buffers of a fixed size.
type bufferPool struct {
	size int
	pool sync.Pool
}

func newBufferPool(size int) *bufferPool {
	if size <= 0 {
		size = DefaultChunkSize
	}

	bp := &bufferPool{size: size}
	bp.pool.New = func() any {
		buf := make([]byte, size)

		return &buf
	}

	return bp
}

func (bp *bufferPool) get() *[]byte {
	buf, _ := bp.pool.Get().(*[]byte) //nolint:errcheck // only *[]byte is stored

	return buf
}

func (bp *bufferPool) put(buf *[]byte) {
	bp.pool.Put(buf)
}
