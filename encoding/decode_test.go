package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alessio-Campa/s-indexes/testutil"
)

func TestDecodeSparseChunk(t *testing.T) {
	rng := testutil.NewRNG(9)
	keys := rng.BlockKeys(7,
		testutil.BlockSpec{ID: 0, Card: 3},
		testutil.BlockSpec{ID: 1, Card: 40},
		testutil.BlockSpec{ID: 2, Card: 256},
		testutil.BlockSpec{ID: 200, Card: 30},
	)
	s, err := FromSorted(keys)
	require.NoError(t, err)

	it := s.Iterator()
	require.Equal(t, Sparse, it.Kind())
	out := make([]uint32, len(keys))
	n := DecodeSparseChunk(it.Sparse(), it.Blocks(), 7<<ChunkBits, out)
	require.Equal(t, len(keys), n)
	assert.Equal(t, keys, out[:n])
	assert.Equal(t, len(it.Sparse()), SparseChunkSize(it.Sparse(), it.Blocks()))
}

func TestUncompressSparseChunk(t *testing.T) {
	rng := testutil.NewRNG(10)
	keys := rng.BlockKeys(0,
		testutil.BlockSpec{ID: 3, Card: 12},
		testutil.BlockSpec{ID: 4, Card: 100},
		testutil.BlockSpec{ID: 255, Card: 256},
	)
	s, err := FromSorted(keys)
	require.NoError(t, err)

	it := s.Iterator()
	words := make([]uint64, ChunkBitmapWords)
	UncompressSparseChunk(it.Sparse(), it.Blocks(), words)

	out := make([]uint32, ChunkSize)
	n := DecodeChunkBitmap(words, 0, out)
	assert.Equal(t, keys, out[:n])
	for _, k := range keys {
		assert.True(t, ChunkContains(words, uint16(k)))
	}
	assert.False(t, ChunkContains(words, 0))
}

func TestBlockBitmap(t *testing.T) {
	var bitmap [BlockBitmapBytes]byte
	for _, v := range []uint8{10, 11, 200} {
		bitmap[v>>3] |= 1 << (v & 7)
	}
	assert.True(t, BlockContains(bitmap[:], 10))
	assert.True(t, BlockContains(bitmap[:], 200))
	assert.False(t, BlockContains(bitmap[:], 3))

	out := make([]uint32, BlockSize)
	n := DecodeBlockBitmap(bitmap[:], 512, out)
	assert.Equal(t, []uint32{522, 523, 712}, out[:n])
}

func TestDecodeWord(t *testing.T) {
	out := make([]uint32, 64)
	n := DecodeWord(1|1<<63, 100, out)
	assert.Equal(t, []uint32{100, 163}, out[:n])
	assert.Equal(t, 0, DecodeWord(0, 0, out))
}
