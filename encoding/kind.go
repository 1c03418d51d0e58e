package encoding

const (
	// ChunkBits is the number of low key bits addressed inside a chunk.
	ChunkBits = 16
	// ChunkSize is the number of keys covered by one chunk.
	ChunkSize = 1 << ChunkBits
	// BlockBits is the number of low key bits addressed inside a block.
	BlockBits = 8
	// BlockSize is the number of keys covered by one block.
	BlockSize = 1 << BlockBits
	// BlocksPerChunk is the maximum number of blocks in a sparse chunk.
	BlocksPerChunk = ChunkSize / BlockSize

	// BlockBitmapBytes is the payload size of a dense block.
	BlockBitmapBytes = BlockSize / 8
	// BlockBitmapWords is the number of 64-bit words in a dense block.
	BlockBitmapWords = BlockSize / 64
	// ChunkBitmapWords is the number of 64-bit words in a dense chunk.
	ChunkBitmapWords = ChunkSize / 64

	// blockSparsenessLimit is the cardinality at which a sorted byte list
	// stops being smaller than the block bitmap.
	blockSparsenessLimit = BlockBitmapBytes

	// BlockSparseThreshold is the largest cardinality stored as a sparse
	// block. The two-element margin keeps sparse blocks inside two 16-byte
	// compare windows.
	BlockSparseThreshold = blockSparsenessLimit - 2

	// ChunkSparseThreshold is the largest cardinality stored as a sparse
	// chunk by default.
	ChunkSparseThreshold = 4096

	// OutputSlack is the number of extra output slots callers reserve on
	// top of the worst-case match count.
	OutputSlack = 16
)

// Kind is the representation of a block or chunk.
type Kind uint8

const (
	// Sparse stores only the present values.
	Sparse Kind = iota
	// Dense stores a bitmap over the whole range.
	Dense
	// Full stores nothing; every position is present.
	Full
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case Sparse:
		return "sparse"
	case Dense:
		return "dense"
	case Full:
		return "full"
	default:
		return "unknown"
	}
}

// Granularity selects the block or chunk classification thresholds.
type Granularity uint8

const (
	// BlockGranularity classifies 256-key blocks.
	BlockGranularity Granularity = iota
	// ChunkGranularity classifies 65536-key chunks.
	ChunkGranularity
)

// String returns the string representation of a Granularity.
func (g Granularity) String() string {
	if g == BlockGranularity {
		return "block"
	}
	return "chunk"
}

// Max returns the number of keys covered at this granularity.
func (g Granularity) Max() int {
	if g == BlockGranularity {
		return BlockSize
	}
	return ChunkSize
}

// SparseThreshold returns the largest sparse cardinality at this granularity.
func (g Granularity) SparseThreshold() int {
	if g == BlockGranularity {
		return BlockSparseThreshold
	}
	return ChunkSparseThreshold
}

// Classify maps a cardinality to its representation. Cardinalities outside
// [1, g.Max()] panic with *ErrInvalidCardinality.
func Classify(g Granularity, card int) Kind {
	if card <= 0 || card > g.Max() {
		panic(&ErrInvalidCardinality{Granularity: g, Cardinality: card})
	}
	switch {
	case card <= g.SparseThreshold():
		return Sparse
	case card == g.Max():
		return Full
	default:
		return Dense
	}
}

// BlockKind classifies a block cardinality.
func BlockKind(card int) Kind {
	return Classify(BlockGranularity, card)
}

// ChunkKind classifies a chunk cardinality.
func ChunkKind(card int) Kind {
	return Classify(ChunkGranularity, card)
}

// BlockPayloadSize returns the number of data bytes a block with the given
// cardinality occupies inside a sparse chunk.
func BlockPayloadSize(card int) int {
	switch BlockKind(card) {
	case Sparse:
		return card
	case Dense:
		return BlockBitmapBytes
	default:
		return 0
	}
}

// SparseHeaderSize returns the header length of a sparse chunk.
func SparseHeaderSize(blocks int) int {
	return 2 * blocks
}
