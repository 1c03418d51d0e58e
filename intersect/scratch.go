package intersect

import (
	"sync"

	"github.com/Alessio-Campa/s-indexes/encoding"
)

// Scratch holds the per-call working memory of the dense×sparse chunk path
// and of Count. It is not safe for concurrent use.
type Scratch struct {
	bits []uint64 // one chunk bitmap
	keys []uint32 // one chunk of keys, allocated on first use by Count
}

// NewScratch allocates a Scratch.
func NewScratch() *Scratch {
	return &Scratch{bits: make([]uint64, encoding.ChunkBitmapWords)}
}

// bitmap returns the zeroed chunk bitmap.
func (s *Scratch) bitmap() []uint64 {
	clear(s.bits)
	return s.bits
}

func (s *Scratch) keyBuffer() []uint32 {
	if s.keys == nil {
		s.keys = make([]uint32, encoding.ChunkSize+encoding.OutputSlack)
	}
	return s.keys
}

// ScratchPool is a pool of reusable Scratch buffers. Thread-safe.
type ScratchPool struct {
	pool sync.Pool
}

// NewScratchPool creates a new pool.
func NewScratchPool() *ScratchPool {
	return &ScratchPool{
		pool: sync.Pool{
			New: func() any { return NewScratch() },
		},
	}
}

// Get retrieves a Scratch from the pool.
func (p *ScratchPool) Get() *Scratch {
	return p.pool.Get().(*Scratch)
}

// Put returns a Scratch to the pool.
func (p *ScratchPool) Put(s *Scratch) {
	if s == nil {
		return
	}
	p.pool.Put(s)
}
