package intersect

import (
	"github.com/Alessio-Campa/s-indexes/encoding"
)

// Cursor is the chunk iteration capability the merge consumes.
// *encoding.Iterator implements it.
type Cursor interface {
	HasNext() bool
	ID() uint16
	Kind() encoding.Kind
	Blocks() int
	Cardinality() int
	Sparse() []byte
	Dense() []uint64
	Next()
	Advance(target uint16)
}

var _ Cursor = (*encoding.Iterator)(nil)

// BufferSize returns the output length that is always sufficient for
// intersecting l and r.
func BufferSize(l, r *encoding.Set) int {
	return int(min(l.Cardinality(), r.Cardinality())) + encoding.OutputSlack
}

// Intersect writes the intersection of the chunk sequences behind l and r
// to out and returns the number of keys written. Keys are strictly
// ascending. s may be nil, in which case a Scratch is allocated on the
// first dense×sparse chunk pair.
func Intersect(l, r Cursor, out []uint32, s *Scratch) int {
	n := 0
	for l.HasNext() && r.HasNext() {
		idL, idR := l.ID(), r.ID()
		switch {
		case idL == idR:
			if s == nil && needsScratch(l.Kind(), r.Kind()) {
				s = NewScratch()
			}
			n += intersectChunks(l, r, uint32(idL)<<encoding.ChunkBits, out[n:], s)
			l.Next()
			r.Next()
		case idL < idR:
			l.Advance(idR)
		default:
			r.Advance(idL)
		}
	}
	return n
}

// Sets intersects two encoded sets into out.
func Sets(l, r *encoding.Set, out []uint32, s *Scratch) int {
	return Intersect(l.Iterator(), r.Iterator(), out, s)
}

// Into allocates a buffer, intersects l and r into it and returns the keys.
func Into(l, r *encoding.Set, s *Scratch) []uint32 {
	out := make([]uint32, BufferSize(l, r))
	return out[:Sets(l, r, out, s)]
}

func needsScratch(kl, kr encoding.Kind) bool {
	p := pair(kl, kr)
	return p == pairSD || p == pairDS
}

// intersectChunks dispatches one matching chunk pair.
func intersectChunks(l, r Cursor, base uint32, out []uint32, s *Scratch) int {
	kl, kr := l.Kind(), r.Kind()
	switch pair(kl, kr) {
	case pairSS:
		// The side with fewer blocks drives the header merge.
		if l.Blocks() < r.Blocks() {
			return IntersectChunkSS(l.Sparse(), r.Sparse(), l.Blocks(), r.Blocks(), base, out)
		}
		return IntersectChunkSS(r.Sparse(), l.Sparse(), r.Blocks(), l.Blocks(), base, out)
	case pairSD:
		return IntersectChunkDS(r.Dense(), l.Sparse(), l.Blocks(), base, out, s)
	case pairSF:
		return IntersectChunkFS(l.Sparse(), l.Blocks(), base, out)
	case pairDS:
		return IntersectChunkDS(l.Dense(), r.Sparse(), r.Blocks(), base, out, s)
	case pairDD:
		return IntersectChunkDD(l.Dense(), r.Dense(), base, out)
	case pairDF:
		return IntersectChunkFD(l.Dense(), base, out)
	case pairFS:
		return IntersectChunkFS(r.Sparse(), r.Blocks(), base, out)
	case pairFD:
		return IntersectChunkFD(r.Dense(), base, out)
	case pairFF:
		return IntersectChunkFF(base, out)
	default:
		panic(&ErrInvalidPair{Granularity: encoding.ChunkGranularity, Left: kl, Right: kr})
	}
}
