package encoding

import (
	"encoding/binary"
	"math/bits"
)

// BlockContains tests membership of v in a 32-byte block bitmap.
func BlockContains(bitmap []byte, v uint8) bool {
	return bitmap[v>>3]&(1<<(v&7)) != 0
}

// ChunkContains tests membership of v in a 1024-word chunk bitmap.
func ChunkContains(words []uint64, v uint16) bool {
	return words[v>>6]&(1<<(v&63)) != 0
}

// BlockWord returns word i (0..3) of a 32-byte block bitmap.
func BlockWord(bitmap []byte, i int) uint64 {
	return binary.LittleEndian.Uint64(bitmap[i*8:])
}

// DecodeBlockBitmap writes base+v for every bit v set in a block bitmap and
// returns the number of keys written.
func DecodeBlockBitmap(bitmap []byte, base uint32, out []uint32) int {
	n := 0
	for w := 0; w < BlockBitmapWords; w++ {
		n += DecodeWord(BlockWord(bitmap, w), base+uint32(w*64), out[n:])
	}
	return n
}

// DecodeChunkBitmap writes base+v for every bit v set in a chunk bitmap and
// returns the number of keys written.
func DecodeChunkBitmap(words []uint64, base uint32, out []uint32) int {
	n := 0
	for w, word := range words {
		if word == 0 {
			continue
		}
		n += DecodeWord(word, base+uint32(w*64), out[n:])
	}
	return n
}

// DecodeWord writes base+i for every bit i set in word and returns the
// number of keys written.
func DecodeWord(word uint64, base uint32, out []uint32) int {
	n := 0
	for word != 0 {
		out[n] = base + uint32(bits.TrailingZeros64(word))
		n++
		word &= word - 1
	}
	return n
}
