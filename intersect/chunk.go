package intersect

import (
	"github.com/Alessio-Campa/s-indexes/encoding"
)

func checkBlocks(blocks int) {
	if blocks < 1 || blocks > encoding.BlocksPerChunk {
		panic(&ErrInvalidBlockCount{Blocks: blocks})
	}
}

// blockCursor walks the (id, cardinality-1) header of a sparse chunk while
// tracking where the current block's data starts.
type blockCursor struct {
	payload []byte
	blocks  int
	i       int // header index
	data    int // start of block i's data
}

func newBlockCursor(payload []byte, blocks int) blockCursor {
	return blockCursor{payload: payload, blocks: blocks, data: encoding.SparseHeaderSize(blocks)}
}

func (c *blockCursor) valid() bool { return c.i < c.blocks }

func (c *blockCursor) id() uint8 { return c.payload[2*c.i] }

func (c *blockCursor) card() int { return int(c.payload[2*c.i+1]) + 1 }

// block returns the current block's data and cardinality.
func (c *blockCursor) block() ([]byte, int) {
	card := c.card()
	return c.payload[c.data : c.data+encoding.BlockPayloadSize(card)], card
}

// next skips the current block's data and moves to the following header.
func (c *blockCursor) next() {
	c.data += encoding.BlockPayloadSize(c.card())
	c.i++
}

// IntersectChunkSS intersects two sparse chunks by merging their block
// headers and intersecting every block id present on both sides.
func IntersectChunkSS(l, r []byte, blocksL, blocksR int, base uint32, out []uint32) int {
	checkBlocks(blocksL)
	checkBlocks(blocksR)

	cl := newBlockCursor(l, blocksL)
	cr := newBlockCursor(r, blocksR)
	n := 0
	for cl.valid() && cr.valid() {
		idL, idR := cl.id(), cr.id()
		switch {
		case idL < idR:
			cl.next()
		case idL > idR:
			cr.next()
		default:
			pl, cardL := cl.block()
			pr, cardR := cr.block()
			n += intersectBlocks(pl, pr, cardL, cardR, base+uint32(idL)<<encoding.BlockBits, out[n:])
			cl.next()
			cr.next()
		}
	}
	return n
}

// IntersectChunkDS intersects a dense chunk with a sparse chunk by
// expanding the sparse side into the scratch bitmap and intersecting the
// two bitmaps.
func IntersectChunkDS(dense []uint64, sparse []byte, blocks int, base uint32, out []uint32, s *Scratch) int {
	checkBlocks(blocks)
	bits := s.bitmap()
	encoding.UncompressSparseChunk(sparse, blocks, bits)
	return IntersectChunkDD(dense, bits, base, out)
}

// IntersectChunkFS intersects a full chunk with a sparse chunk: the result
// is the sparse chunk itself.
func IntersectChunkFS(sparse []byte, blocks int, base uint32, out []uint32) int {
	checkBlocks(blocks)
	return encoding.DecodeSparseChunk(sparse, blocks, base, out)
}

// IntersectChunkDD intersects two dense chunks word by word.
func IntersectChunkDD(l, r []uint64, base uint32, out []uint32) int {
	l = l[:encoding.ChunkBitmapWords]
	r = r[:encoding.ChunkBitmapWords]
	n := 0
	for w := range l {
		if word := l[w] & r[w]; word != 0 {
			n += encoding.DecodeWord(word, base+uint32(w*64), out[n:])
		}
	}
	return n
}

// IntersectChunkFD intersects a full chunk with a dense chunk.
func IntersectChunkFD(dense []uint64, base uint32, out []uint32) int {
	return encoding.DecodeChunkBitmap(dense, base, out)
}

// IntersectChunkFF intersects two full chunks.
func IntersectChunkFF(base uint32, out []uint32) int {
	out = out[:encoding.ChunkSize]
	for v := range out {
		out[v] = base + uint32(v)
	}
	return encoding.ChunkSize
}
