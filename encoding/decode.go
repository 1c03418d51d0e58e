package encoding

// DecodeSparseChunk expands a sparse chunk payload into ascending global
// keys (base + block_id*256 + value) and returns how many were written.
func DecodeSparseChunk(payload []byte, blocks int, base uint32, out []uint32) int {
	data := SparseHeaderSize(blocks)
	n := 0
	for i := 0; i < blocks; i++ {
		id := payload[2*i]
		card := int(payload[2*i+1]) + 1
		b := base + uint32(id)<<BlockBits

		switch BlockKind(card) {
		case Sparse:
			for _, v := range payload[data : data+card] {
				out[n] = b + uint32(v)
				n++
			}
		case Dense:
			n += DecodeBlockBitmap(payload[data:data+BlockBitmapBytes], b, out[n:])
		case Full:
			for v := uint32(0); v < BlockSize; v++ {
				out[n] = b + v
				n++
			}
		}
		data += BlockPayloadSize(card)
	}
	return n
}

// UncompressSparseChunk ORs a sparse chunk payload into a 1024-word chunk
// bitmap. dst must be zeroed by the caller.
func UncompressSparseChunk(payload []byte, blocks int, dst []uint64) {
	dst = dst[:ChunkBitmapWords]
	data := SparseHeaderSize(blocks)
	for i := 0; i < blocks; i++ {
		id := int(payload[2*i])
		card := int(payload[2*i+1]) + 1
		words := dst[id*BlockBitmapWords : (id+1)*BlockBitmapWords]

		switch BlockKind(card) {
		case Sparse:
			for _, v := range payload[data : data+card] {
				words[v>>6] |= 1 << (v & 63)
			}
		case Dense:
			bitmap := payload[data : data+BlockBitmapBytes]
			for w := range words {
				words[w] |= BlockWord(bitmap, w)
			}
		case Full:
			for w := range words {
				words[w] = ^uint64(0)
			}
		}
		data += BlockPayloadSize(card)
	}
}

// SparseChunkSize returns the total payload length of a sparse chunk by
// walking its header.
func SparseChunkSize(payload []byte, blocks int) int {
	size := SparseHeaderSize(blocks)
	for i := 0; i < blocks; i++ {
		size += BlockPayloadSize(int(payload[2*i+1]) + 1)
	}
	return size
}
