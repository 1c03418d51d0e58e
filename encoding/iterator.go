package encoding

import "sort"

// Iterator walks the chunks of a Set in ascending id order.
type Iterator struct {
	set *Set
	pos int
}

// HasNext reports whether the iterator is positioned on a chunk.
func (it *Iterator) HasNext() bool {
	return it.pos < len(it.set.chunks)
}

// ID returns the current chunk id.
func (it *Iterator) ID() uint16 {
	return it.set.chunks[it.pos].id
}

// Kind returns the current chunk representation.
func (it *Iterator) Kind() Kind {
	return it.set.chunks[it.pos].kind
}

// Blocks returns the number of blocks of the current sparse chunk, 0 otherwise.
func (it *Iterator) Blocks() int {
	return int(it.set.chunks[it.pos].blocks)
}

// Cardinality returns the number of keys in the current chunk.
func (it *Iterator) Cardinality() int {
	return int(it.set.chunks[it.pos].card)
}

// Sparse returns the payload of the current sparse chunk.
func (it *Iterator) Sparse() []byte {
	c := &it.set.chunks[it.pos]
	if c.kind != Sparse {
		return nil
	}
	return it.set.sparsePayload(c)
}

// Dense returns the bitmap of the current dense chunk.
func (it *Iterator) Dense() []uint64 {
	c := &it.set.chunks[it.pos]
	if c.kind != Dense {
		return nil
	}
	return it.set.denseWords(c)
}

// Next moves to the following chunk.
func (it *Iterator) Next() {
	it.pos++
}

// Advance moves to the first chunk whose id is >= target. It gallops from
// the current position, so the cost grows with the log of the distance
// skipped rather than with the set size.
func (it *Iterator) Advance(target uint16) {
	chunks := it.set.chunks
	lo := it.pos
	if lo >= len(chunks) || chunks[lo].id >= target {
		return
	}

	// chunks[lo].id < target holds throughout.
	step := 1
	hi := lo + step
	for hi < len(chunks) && chunks[hi].id < target {
		lo = hi
		step <<= 1
		hi = lo + step
	}
	if hi > len(chunks) {
		hi = len(chunks)
	}

	window := chunks[lo+1 : hi]
	it.pos = lo + 1 + sort.Search(len(window), func(i int) bool { return window[i].id >= target })
}

// Reset rewinds the iterator to the first chunk.
func (it *Iterator) Reset() {
	it.pos = 0
}
