package intersect

import (
	"github.com/Alessio-Campa/s-indexes/encoding"
	"github.com/Alessio-Campa/s-indexes/internal/simd"
)

// Count returns the cardinality of the intersection without materializing
// it. s may be nil.
func Count(l, r Cursor, s *Scratch) uint64 {
	if s == nil {
		s = NewScratch()
	}
	var n uint64
	for l.HasNext() && r.HasNext() {
		idL, idR := l.ID(), r.ID()
		switch {
		case idL == idR:
			n += uint64(countChunks(l, r, s))
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

// CountSets counts the intersection of two encoded sets.
func CountSets(l, r *encoding.Set, s *Scratch) uint64 {
	return Count(l.Iterator(), r.Iterator(), s)
}

func countChunks(l, r Cursor, s *Scratch) int {
	kl, kr := l.Kind(), r.Kind()
	switch pair(kl, kr) {
	case pairSS:
		return IntersectChunkSS(l.Sparse(), r.Sparse(), l.Blocks(), r.Blocks(), 0, s.keyBuffer())
	case pairSD:
		return countChunkDS(r.Dense(), l.Sparse(), l.Blocks(), s)
	case pairDS:
		return countChunkDS(l.Dense(), r.Sparse(), r.Blocks(), s)
	case pairDD:
		simd.AndWordsInto(s.bits, l.Dense(), r.Dense())
		return simd.PopcountWords(s.bits)
	case pairSF, pairDF:
		return l.Cardinality()
	case pairFS, pairFD:
		return r.Cardinality()
	case pairFF:
		return encoding.ChunkSize
	default:
		panic(&ErrInvalidPair{Granularity: encoding.ChunkGranularity, Left: kl, Right: kr})
	}
}

func countChunkDS(dense []uint64, sparse []byte, blocks int, s *Scratch) int {
	checkBlocks(blocks)
	bits := s.bitmap()
	encoding.UncompressSparseChunk(sparse, blocks, bits)
	simd.AndWords(bits, dense)
	return simd.PopcountWords(bits)
}
