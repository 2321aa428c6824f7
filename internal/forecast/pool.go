package forecast

import (
	"sync"

	"github.com/san-kum/celestial/internal/celestial"
)

// BufferPool recycles working sets so repeated forecasts do not reallocate.
type BufferPool struct {
	pool sync.Pool
}

func NewBufferPool() *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				return make([]celestial.Body, 0, 8)
			},
		},
	}
}

// Get returns a zeroed buffer of length n.
func (p *BufferPool) Get(n int) []celestial.Body {
	buf := p.pool.Get().([]celestial.Body)
	if cap(buf) < n {
		return make([]celestial.Body, n)
	}
	return buf[:n]
}

func (p *BufferPool) Put(buf []celestial.Body) {
	clear(buf)
	p.pool.Put(buf[:0])
}

// GetAndCopy returns a private copy of src.
func (p *BufferPool) GetAndCopy(src celestial.Snapshot) []celestial.Body {
	dst := p.Get(len(src))
	copy(dst, src)
	return dst
}
