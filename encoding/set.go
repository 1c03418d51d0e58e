package encoding

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// chunkHeader is one entry of a set's chunk directory.
type chunkHeader struct {
	id     uint16
	kind   Kind
	blocks uint16 // sparse only: 1..256
	card   uint32 // 1..65536
	offset uint32 // sparse: byte offset into data; dense: word offset into words
	length uint32 // sparse: payload bytes
}

// Set is an immutable sliced encoding of a sorted set of uint32 keys.
//
// Sparse chunk payloads live in one byte slab and dense chunk bitmaps in one
// word slab; full chunks carry no payload. A Set is safe for concurrent
// readers.
type Set struct {
	chunks []chunkHeader
	data   []byte
	words  []uint64
	card   uint64
}

// Empty returns a set with no keys.
func Empty() *Set {
	return &Set{}
}

// Cardinality returns the number of keys in the set.
func (s *Set) Cardinality() uint64 {
	return s.card
}

// Chunks returns the number of non-empty chunks.
func (s *Set) Chunks() int {
	return len(s.chunks)
}

// IsEmpty reports whether the set holds no keys.
func (s *Set) IsEmpty() bool {
	return len(s.chunks) == 0
}

// SizeInBytes returns the payload footprint of the set, excluding the
// chunk directory.
func (s *Set) SizeInBytes() int {
	return len(s.data) + 8*len(s.words)
}

// KindCounts returns how many chunks use each representation, indexed by Kind.
func (s *Set) KindCounts() [3]int {
	var counts [3]int
	for _, c := range s.chunks {
		counts[c.kind]++
	}
	return counts
}

// Iterator returns a chunk iterator positioned at the first chunk.
func (s *Set) Iterator() *Iterator {
	return &Iterator{set: s}
}

// Contains reports whether key is in the set.
func (s *Set) Contains(key uint32) bool {
	id := uint16(key >> ChunkBits)
	i := sort.Search(len(s.chunks), func(i int) bool { return s.chunks[i].id >= id })
	if i == len(s.chunks) || s.chunks[i].id != id {
		return false
	}
	c := &s.chunks[i]
	low := uint16(key)
	switch c.kind {
	case Full:
		return true
	case Dense:
		return ChunkContains(s.denseWords(c), low)
	default:
		return sparseContains(s.sparsePayload(c), int(c.blocks), low)
	}
}

func sparseContains(payload []byte, blocks int, low uint16) bool {
	blockID := uint8(low >> BlockBits)
	v := uint8(low)
	data := SparseHeaderSize(blocks)
	for i := 0; i < blocks; i++ {
		id := payload[2*i]
		card := int(payload[2*i+1]) + 1
		if id > blockID {
			return false
		}
		if id == blockID {
			switch BlockKind(card) {
			case Full:
				return true
			case Dense:
				return BlockContains(payload[data:data+BlockBitmapBytes], v)
			default:
				vals := payload[data : data+card]
				j := sort.Search(card, func(j int) bool { return vals[j] >= v })
				return j < card && vals[j] == v
			}
		}
		data += BlockPayloadSize(card)
	}
	return false
}

// AppendTo appends every key of the set, in ascending order, to dst.
func (s *Set) AppendTo(dst []uint32) []uint32 {
	start := len(dst)
	need := start + int(s.card)
	if cap(dst) < need {
		grown := make([]uint32, start, need)
		copy(grown, dst)
		dst = grown
	}
	dst = dst[:need]
	n := start
	for i := range s.chunks {
		n += s.decodeChunk(&s.chunks[i], dst[n:])
	}
	return dst[:n]
}

// ToArray returns every key of the set in ascending order.
func (s *Set) ToArray() []uint32 {
	return s.AppendTo(nil)
}

// ToRoaring converts the set into a roaring bitmap.
func (s *Set) ToRoaring() *roaring.Bitmap {
	rb := roaring.New()
	var buf []uint32
	for i := range s.chunks {
		c := &s.chunks[i]
		base := uint32(c.id) << ChunkBits
		if c.kind == Full {
			rb.AddRange(uint64(base), uint64(base)+ChunkSize)
			continue
		}
		if cap(buf) < int(c.card) {
			buf = make([]uint32, c.card)
		}
		n := s.decodeChunk(c, buf[:c.card])
		rb.AddMany(buf[:n])
	}
	return rb
}

func (s *Set) decodeChunk(c *chunkHeader, out []uint32) int {
	base := uint32(c.id) << ChunkBits
	switch c.kind {
	case Full:
		for v := uint32(0); v < ChunkSize; v++ {
			out[v] = base + v
		}
		return ChunkSize
	case Dense:
		return DecodeChunkBitmap(s.denseWords(c), base, out)
	default:
		return DecodeSparseChunk(s.sparsePayload(c), int(c.blocks), base, out)
	}
}

func (s *Set) sparsePayload(c *chunkHeader) []byte {
	return s.data[c.offset : c.offset+c.length]
}

func (s *Set) denseWords(c *chunkHeader) []uint64 {
	return s.words[c.offset : c.offset+ChunkBitmapWords]
}
