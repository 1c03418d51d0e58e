package testutil

import (
	"math/rand"
	"sort"
	"sync"
)

const (
	chunkSize = 1 << 16
	blockSize = 1 << 8
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Sample returns card distinct ascending values from [lo, lo+span).
func (r *RNG) Sample(lo uint32, span, card int) []uint32 {
	if card > span {
		card = span
	}
	out := make([]uint32, 0, card)
	if card == span {
		for i := 0; i < span; i++ {
			out = append(out, lo+uint32(i))
		}
		return out
	}

	r.mu.Lock()
	perm := r.rand.Perm(span)
	r.mu.Unlock()

	for _, p := range perm[:card] {
		out = append(out, lo+uint32(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ChunkKeys returns card random keys inside chunk id.
func (r *RNG) ChunkKeys(id uint16, card int) []uint32 {
	return r.Sample(uint32(id)<<16, chunkSize, card)
}

// BlockSpec describes one block of a generated chunk.
type BlockSpec struct {
	ID   uint8
	Card int
}

// BlockKeys returns keys for chunk id laid out block by block. Blocks must be
// listed in ascending id order.
func (r *RNG) BlockKeys(id uint16, blocks ...BlockSpec) []uint32 {
	var out []uint32
	for _, b := range blocks {
		base := uint32(id)<<16 | uint32(b.ID)<<8
		out = append(out, r.Sample(base, blockSize, b.Card)...)
	}
	return out
}

// ChunkSpec describes one chunk of a generated set.
type ChunkSpec struct {
	ID   uint16
	Card int
}

// Keys builds a set from chunk specs listed in ascending id order.
func (r *RNG) Keys(chunks ...ChunkSpec) []uint32 {
	var out []uint32
	for _, c := range chunks {
		out = append(out, r.ChunkKeys(c.ID, c.Card)...)
	}
	return out
}

// RandomChunkCard draws a chunk cardinality that is sparse, dense or full
// with roughly equal probability.
func (r *RNG) RandomChunkCard() int {
	switch r.Intn(3) {
	case 0:
		return 1 + r.Intn(4096)
	case 1:
		return 4097 + r.Intn(chunkSize-4097)
	default:
		return chunkSize
	}
}

// RandomKeys returns keys spread over n distinct chunks drawn from
// [0, maxChunk), each with a random representation.
func (r *RNG) RandomKeys(n, maxChunk int) []uint32 {
	ids := r.Sample(0, maxChunk, n)
	specs := make([]ChunkSpec, len(ids))
	for i, id := range ids {
		specs[i] = ChunkSpec{ID: uint16(id), Card: r.RandomChunkCard()}
	}
	return r.Keys(specs...)
}

// Intersect returns the ascending intersection of two ascending slices
// using a plain two-pointer merge.
func Intersect(a, b []uint32) []uint32 {
	out := []uint32{}
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

// Merge returns the ascending union of two ascending slices.
func Merge(a, b []uint32) []uint32 {
	out := make([]uint32, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}
