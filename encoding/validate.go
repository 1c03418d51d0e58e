package encoding

import (
	"math/bits"

	"github.com/Alessio-Campa/s-indexes/internal/simd"
)

// Validate checks every structural invariant the intersection kernels rely
// on. It returns *ErrCorruptChunk for the first defect found.
func (s *Set) Validate() error {
	var total uint64
	for i := range s.chunks {
		c := &s.chunks[i]
		fail := func(reason string) error {
			return &ErrCorruptChunk{Index: i, ID: c.id, Reason: reason}
		}

		if i > 0 && s.chunks[i-1].id >= c.id {
			return fail("chunk ids not strictly ascending")
		}
		if c.card == 0 || c.card > ChunkSize {
			return fail("cardinality out of range")
		}
		total += uint64(c.card)

		switch c.kind {
		case Full:
			if c.card != ChunkSize {
				return fail("full chunk with partial cardinality")
			}
		case Dense:
			if uint64(c.offset)+ChunkBitmapWords > uint64(len(s.words)) {
				return fail("dense bitmap out of bounds")
			}
			if simd.PopcountWords(s.denseWords(c)) != int(c.card) {
				return fail("dense bitmap popcount does not match cardinality")
			}
		case Sparse:
			if c.blocks == 0 || c.blocks > BlocksPerChunk {
				return fail("block count out of range")
			}
			if uint64(c.offset)+uint64(c.length) > uint64(len(s.data)) {
				return fail("sparse payload out of bounds")
			}
			if reason := validateSparse(s.sparsePayload(c), int(c.blocks), int(c.card)); reason != "" {
				return fail(reason)
			}
		default:
			return fail("unknown representation")
		}
	}
	if total != s.card {
		return &ErrCorruptChunk{Index: -1, Reason: "set cardinality does not match chunk sum"}
	}
	return nil
}

func validateSparse(payload []byte, blocks, card int) string {
	data := SparseHeaderSize(blocks)
	if data > len(payload) {
		return "block header truncated"
	}
	sum := 0
	for i := 0; i < blocks; i++ {
		if i > 0 && payload[2*(i-1)] >= payload[2*i] {
			return "block ids not strictly ascending"
		}
		bc := int(payload[2*i+1]) + 1
		size := BlockPayloadSize(bc)
		if data+size > len(payload) {
			return "block payload truncated"
		}
		block := payload[data : data+size]
		switch BlockKind(bc) {
		case Sparse:
			for j := 1; j < len(block); j++ {
				if block[j-1] >= block[j] {
					return "sparse block values not strictly ascending"
				}
			}
		case Dense:
			ones := 0
			for w := 0; w < BlockBitmapWords; w++ {
				ones += bits.OnesCount64(BlockWord(block, w))
			}
			if ones != bc {
				return "dense block popcount does not match cardinality"
			}
		}
		sum += bc
		data += size
	}
	if data != len(payload) {
		return "trailing bytes after last block"
	}
	if sum != card {
		return "block cardinalities do not sum to chunk cardinality"
	}
	return ""
}
