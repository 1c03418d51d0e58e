package intersect

import (
	"github.com/Alessio-Campa/s-indexes/encoding"
	"github.com/Alessio-Campa/s-indexes/internal/simd"
)

func checkSparseBlock(card int) {
	if card <= 0 || card > encoding.BlockSparseThreshold {
		panic(&encoding.ErrInvalidCardinality{Granularity: encoding.BlockGranularity, Cardinality: card})
	}
}

func loadWindow(dst *[simd.Lanes]byte, src []byte) {
	copy(dst[:], src)
}

// IntersectBlockSS intersects two sparse blocks given as ascending byte
// values and writes base+v for every common value v.
//
// Both sides must hold 1..BlockSparseThreshold values. With at most 16
// values per side one vector compare suffices; when one side spans a second
// window the compare runs twice; otherwise a scalar merge is used.
func IntersectBlockSS(l, r []byte, base uint32, out []uint32) int {
	cardL, cardR := len(l), len(r)
	checkSparseBlock(cardL)
	checkSparseBlock(cardR)

	var wl, wr [simd.Lanes]byte
	switch {
	case cardL <= simd.Lanes && cardR <= simd.Lanes:
		loadWindow(&wl, l)
		loadWindow(&wr, r)
		return simd.CompactMatches(&wl, &wr, cardL, cardR, base, out)

	case cardL <= simd.Lanes:
		loadWindow(&wl, l)
		loadWindow(&wr, r[:simd.Lanes])
		n := simd.CompactMatches(&wl, &wr, cardL, simd.Lanes, base, out)
		loadWindow(&wr, r[simd.Lanes:])
		return n + simd.CompactMatches(&wl, &wr, cardL, cardR-simd.Lanes, base, out[n:])

	case cardR <= simd.Lanes:
		// Matches come from r, so stepping l's window keeps them ascending.
		loadWindow(&wr, r)
		loadWindow(&wl, l[:simd.Lanes])
		n := simd.CompactMatches(&wl, &wr, simd.Lanes, cardR, base, out)
		loadWindow(&wl, l[simd.Lanes:])
		return n + simd.CompactMatches(&wl, &wr, cardL-simd.Lanes, cardR, base, out[n:])
	}

	return mergeBlock(l, r, base, out)
}

// mergeBlock is the scalar two-pointer intersection of ascending bytes.
func mergeBlock(l, r []byte, base uint32, out []uint32) int {
	n := 0
	i, j := 0, 0
	for i < len(l) && j < len(r) {
		a, b := l[i], r[j]
		switch {
		case a < b:
			i++
		case a > b:
			j++
		default:
			out[n] = base + uint32(a)
			n++
			i++
			j++
		}
	}
	return n
}

// IntersectBlockDS intersects a dense block bitmap with a sparse block.
//
// Every candidate is written to the next free slot and the cursor only
// advances on a hit, so out must hold len(sparse) slots and nothing past
// the returned count is meaningful.
func IntersectBlockDS(bitmap, sparse []byte, base uint32, out []uint32) int {
	checkSparseBlock(len(sparse))
	bitmap = bitmap[:encoding.BlockBitmapBytes]
	out = out[:len(sparse)]
	k := 0
	for _, v := range sparse {
		out[k] = base + uint32(v)
		k += int(bitmap[v>>3] >> (v & 7) & 1)
	}
	return k
}

// IntersectBlockDD intersects two dense block bitmaps.
func IntersectBlockDD(l, r []byte, base uint32, out []uint32) int {
	n := 0
	for w := 0; w < encoding.BlockBitmapWords; w++ {
		word := encoding.BlockWord(l, w) & encoding.BlockWord(r, w)
		n += encoding.DecodeWord(word, base+uint32(w*64), out[n:])
	}
	return n
}

// IntersectBlockFS intersects a full block with a sparse block: every
// sparse value survives.
func IntersectBlockFS(sparse []byte, base uint32, out []uint32) int {
	out = out[:len(sparse)]
	for i, v := range sparse {
		out[i] = base + uint32(v)
	}
	return len(sparse)
}

// IntersectBlockFD intersects a full block with a dense block.
func IntersectBlockFD(bitmap []byte, base uint32, out []uint32) int {
	return encoding.DecodeBlockBitmap(bitmap, base, out)
}

// IntersectBlockFF intersects two full blocks.
func IntersectBlockFF(base uint32, out []uint32) int {
	out = out[:encoding.BlockSize]
	for v := range out {
		out[v] = base + uint32(v)
	}
	return encoding.BlockSize
}

func pair(l, r encoding.Kind) int {
	return 3*int(l) + int(r)
}

const (
	pairSS = 3*int(encoding.Sparse) + int(encoding.Sparse)
	pairSD = 3*int(encoding.Sparse) + int(encoding.Dense)
	pairSF = 3*int(encoding.Sparse) + int(encoding.Full)
	pairDS = 3*int(encoding.Dense) + int(encoding.Sparse)
	pairDD = 3*int(encoding.Dense) + int(encoding.Dense)
	pairDF = 3*int(encoding.Dense) + int(encoding.Full)
	pairFS = 3*int(encoding.Full) + int(encoding.Sparse)
	pairFD = 3*int(encoding.Full) + int(encoding.Dense)
	pairFF = 3*int(encoding.Full) + int(encoding.Full)
)

// intersectBlocks dispatches one matching block pair. Payloads are the
// block data slices; their kinds follow from the cardinalities.
func intersectBlocks(pl, pr []byte, cardL, cardR int, base uint32, out []uint32) int {
	kl, kr := encoding.BlockKind(cardL), encoding.BlockKind(cardR)
	switch pair(kl, kr) {
	case pairSS:
		return IntersectBlockSS(pl, pr, base, out)
	case pairSD:
		return IntersectBlockDS(pr, pl, base, out)
	case pairDS:
		return IntersectBlockDS(pl, pr, base, out)
	case pairDD:
		return IntersectBlockDD(pl, pr, base, out)
	case pairSF:
		return IntersectBlockFS(pl, base, out)
	case pairFS:
		return IntersectBlockFS(pr, base, out)
	case pairDF:
		return IntersectBlockFD(pl, base, out)
	case pairFD:
		return IntersectBlockFD(pr, base, out)
	case pairFF:
		return IntersectBlockFF(base, out)
	default:
		panic(&ErrInvalidPair{Granularity: encoding.BlockGranularity, Left: kl, Right: kr})
	}
}
