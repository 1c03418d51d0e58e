package encoding

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// ChunkPolicy chooses the representation of a chunk from its id and
// cardinality. A policy returning a kind that cannot hold the chunk makes
// Build fail with ErrInvalidChunkKind.
type ChunkPolicy func(id uint16, card int) Kind

// DefaultChunkPolicy classifies chunks by cardinality.
func DefaultChunkPolicy(_ uint16, card int) Kind {
	return ChunkKind(card)
}

// BuilderOptions configures a Builder.
type BuilderOptions struct {
	// ChunkPolicy overrides chunk classification. Nil means DefaultChunkPolicy.
	ChunkPolicy ChunkPolicy
}

// Builder encodes ascending keys into a Set.
type Builder struct {
	opts BuilderOptions

	set     *Set
	started bool
	last    uint32
	chunkID uint16
	pending []uint16 // low 16 bits of the keys of the open chunk
	err     error
}

// NewBuilder creates a Builder.
func NewBuilder(optFns ...func(o *BuilderOptions)) *Builder {
	opts := BuilderOptions{ChunkPolicy: DefaultChunkPolicy}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.ChunkPolicy == nil {
		opts.ChunkPolicy = DefaultChunkPolicy
	}
	return &Builder{opts: opts, set: &Set{}}
}

// Add appends key. Keys must be ascending; repeating the last key is a no-op.
func (b *Builder) Add(key uint32) error {
	if b.err != nil {
		return b.err
	}
	if b.started {
		if key == b.last {
			return nil
		}
		if key < b.last {
			b.err = fmt.Errorf("%w: %d after %d", ErrUnsorted, key, b.last)
			return b.err
		}
	}

	id := uint16(key >> ChunkBits)
	if b.started && id != b.chunkID {
		if err := b.flush(); err != nil {
			return err
		}
	}
	b.started = true
	b.last = key
	b.chunkID = id
	b.pending = append(b.pending, uint16(key))
	return nil
}

// AddMany appends ascending keys.
func (b *Builder) AddMany(keys []uint32) error {
	for _, k := range keys {
		if err := b.Add(k); err != nil {
			return err
		}
	}
	return nil
}

// Build finishes the set. The builder must not be used afterwards.
func (b *Builder) Build() (*Set, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.flush(); err != nil {
		return nil, err
	}
	s := b.set
	b.set = nil
	return s, nil
}

func (b *Builder) flush() error {
	if len(b.pending) == 0 {
		return nil
	}
	card := len(b.pending)
	kind := b.opts.ChunkPolicy(b.chunkID, card)
	if (kind == Full && card != ChunkSize) || kind > Full {
		b.err = fmt.Errorf("%w: %s chunk %d with %d keys", ErrInvalidChunkKind, kind, b.chunkID, card)
		return b.err
	}

	s := b.set
	h := chunkHeader{id: b.chunkID, kind: kind, card: uint32(card)}
	switch kind {
	case Dense:
		h.offset = uint32(len(s.words))
		s.words = append(s.words, make([]uint64, ChunkBitmapWords)...)
		words := s.words[h.offset:]
		for _, v := range b.pending {
			words[v>>6] |= 1 << (v & 63)
		}
	case Sparse:
		h.offset = uint32(len(s.data))
		var blocks int
		s.data, blocks = appendSparseChunk(s.data, b.pending)
		h.blocks = uint16(blocks)
		h.length = uint32(len(s.data)) - h.offset
	}
	s.chunks = append(s.chunks, h)
	s.card += uint64(card)
	b.pending = b.pending[:0]
	return nil
}

// appendSparseChunk encodes ascending low keys as a sparse chunk payload.
func appendSparseChunk(dst []byte, lows []uint16) ([]byte, int) {
	// Count blocks to size the header.
	blocks := 0
	for i := range lows {
		if i == 0 || lows[i]>>BlockBits != lows[i-1]>>BlockBits {
			blocks++
		}
	}

	header := len(dst)
	dst = append(dst, make([]byte, SparseHeaderSize(blocks))...)

	blk := 0
	for start := 0; start < len(lows); {
		id := lows[start] >> BlockBits
		end := start
		for end < len(lows) && lows[end]>>BlockBits == id {
			end++
		}
		card := end - start
		dst[header+2*blk] = byte(id)
		dst[header+2*blk+1] = byte(card - 1)

		switch BlockKind(card) {
		case Sparse:
			for _, v := range lows[start:end] {
				dst = append(dst, byte(v))
			}
		case Dense:
			var bitmap [BlockBitmapBytes]byte
			for _, v := range lows[start:end] {
				b := byte(v)
				bitmap[b>>3] |= 1 << (b & 7)
			}
			dst = append(dst, bitmap[:]...)
		}
		blk++
		start = end
	}
	return dst, blocks
}

// FromSorted encodes ascending keys.
func FromSorted(keys []uint32, optFns ...func(o *BuilderOptions)) (*Set, error) {
	b := NewBuilder(optFns...)
	if err := b.AddMany(keys); err != nil {
		return nil, err
	}
	return b.Build()
}

// FromRoaring encodes the contents of a roaring bitmap.
func FromRoaring(rb *roaring.Bitmap, optFns ...func(o *BuilderOptions)) (*Set, error) {
	b := NewBuilder(optFns...)
	it := rb.Iterator()
	for it.HasNext() {
		if err := b.Add(it.Next()); err != nil {
			return nil, err
		}
	}
	return b.Build()
}
