package intersect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alessio-Campa/s-indexes/encoding"
	"github.com/Alessio-Campa/s-indexes/testutil"
)

func build(t testing.TB, keys []uint32, kind ...encoding.Kind) *encoding.Set {
	t.Helper()
	var optFns []func(*encoding.BuilderOptions)
	if len(kind) > 0 {
		k := kind[0]
		optFns = append(optFns, func(o *encoding.BuilderOptions) {
			o.ChunkPolicy = func(_ uint16, card int) encoding.Kind {
				if k == encoding.Full && card != encoding.ChunkSize {
					return encoding.ChunkKind(card)
				}
				return k
			}
		})
	}
	s, err := encoding.FromSorted(keys, optFns...)
	require.NoError(t, err)
	return s
}

func TestIntersectChunkFS_Scenario(t *testing.T) {
	// blocks (id 0: {5, 9}), (id 5: {0})
	l := build(t, []uint32{5, 9, 5 << 8})
	it := l.Iterator()
	require.Equal(t, encoding.Sparse, it.Kind())

	out := make([]uint32, 3+encoding.OutputSlack)
	n := IntersectChunkFS(it.Sparse(), it.Blocks(), 0, out)
	require.Equal(t, 3, n)
	assert.Equal(t, []uint32{5, 9, 5 << 8}, out[:n])

	full := build(t, testutil.NewRNG(0).ChunkKeys(0, encoding.ChunkSize))
	out = make([]uint32, BufferSize(l, full))
	n = Sets(l, full, out, nil)
	assert.Equal(t, []uint32{5, 9, 5 << 8}, out[:n])
}

func TestIntersectChunkSS_MixedBlocks(t *testing.T) {
	rng := testutil.NewRNG(21)
	lk := rng.BlockKeys(2,
		testutil.BlockSpec{ID: 0, Card: 3},
		testutil.BlockSpec{ID: 1, Card: 200},
		testutil.BlockSpec{ID: 2, Card: 16},
		testutil.BlockSpec{ID: 4, Card: 256},
		testutil.BlockSpec{ID: 9, Card: 30},
		testutil.BlockSpec{ID: 250, Card: 31},
	)
	rk := rng.BlockKeys(2,
		testutil.BlockSpec{ID: 1, Card: 20},
		testutil.BlockSpec{ID: 2, Card: 17},
		testutil.BlockSpec{ID: 3, Card: 5},
		testutil.BlockSpec{ID: 4, Card: 100},
		testutil.BlockSpec{ID: 9, Card: 256},
		testutil.BlockSpec{ID: 250, Card: 255},
	)
	l, r := build(t, lk), build(t, rk)
	il, ir := l.Iterator(), r.Iterator()
	require.Equal(t, encoding.Sparse, il.Kind())
	require.Equal(t, encoding.Sparse, ir.Kind())

	want := testutil.Intersect(lk, rk)
	out := make([]uint32, BufferSize(l, r))
	n := IntersectChunkSS(il.Sparse(), ir.Sparse(), il.Blocks(), ir.Blocks(), 2<<16, out)
	assert.Equal(t, want, out[:n])

	n = IntersectChunkSS(ir.Sparse(), il.Sparse(), ir.Blocks(), il.Blocks(), 2<<16, out)
	assert.Equal(t, want, out[:n])
}

func TestIntersectChunkSS_NoCommonBlocks(t *testing.T) {
	l := build(t, []uint32{1, 2 << 8, 4 << 8})
	r := build(t, []uint32{1 << 8, 3 << 8, 5 << 8})
	il, ir := l.Iterator(), r.Iterator()
	out := make([]uint32, 8)
	assert.Equal(t, 0, IntersectChunkSS(il.Sparse(), ir.Sparse(), il.Blocks(), ir.Blocks(), 0, out))
}

func TestIntersectChunkDS(t *testing.T) {
	rng := testutil.NewRNG(22)
	dk := rng.ChunkKeys(0, 30000)
	sk := rng.BlockKeys(0,
		testutil.BlockSpec{ID: 0, Card: 10},
		testutil.BlockSpec{ID: 7, Card: 64},
		testutil.BlockSpec{ID: 255, Card: 256},
	)
	d, s := build(t, dk), build(t, sk)
	id, is := d.Iterator(), s.Iterator()
	require.Equal(t, encoding.Dense, id.Kind())
	require.Equal(t, encoding.Sparse, is.Kind())

	scratch := NewScratch()
	// Dirty the scratch to prove it is cleared before use.
	for i := range scratch.bits {
		scratch.bits[i] = ^uint64(0)
	}

	out := make([]uint32, BufferSize(d, s))
	n := IntersectChunkDS(id.Dense(), is.Sparse(), is.Blocks(), 0, out, scratch)
	assert.Equal(t, testutil.Intersect(dk, sk), out[:n])
}

func TestIntersectChunkDD_FD_FF(t *testing.T) {
	rng := testutil.NewRNG(23)
	ak := rng.ChunkKeys(1, 20000)
	bk := rng.ChunkKeys(1, 40000)
	a, b := build(t, ak), build(t, bk)
	ia, ib := a.Iterator(), b.Iterator()

	out := make([]uint32, encoding.ChunkSize+encoding.OutputSlack)
	n := IntersectChunkDD(ia.Dense(), ib.Dense(), 1<<16, out)
	assert.Equal(t, testutil.Intersect(ak, bk), out[:n])

	n = IntersectChunkFD(ia.Dense(), 1<<16, out)
	assert.Equal(t, ak, out[:n])

	n = IntersectChunkFF(1<<16, out)
	require.Equal(t, encoding.ChunkSize, n)
	assert.Equal(t, uint32(1<<16), out[0])
	assert.Equal(t, uint32(2<<16-1), out[n-1])
}

func TestIntersectChunk_BlockCountPanics(t *testing.T) {
	out := make([]uint32, 8)
	err := Protect(func() { IntersectChunkSS([]byte{0, 0, 1}, []byte{0, 0, 1}, 0, 1, 0, out) })
	var be *ErrInvalidBlockCount
	require.ErrorAs(t, err, &be)
	assert.Equal(t, 0, be.Blocks)

	err = Protect(func() { IntersectChunkFS(nil, 257, 0, out) })
	require.ErrorAs(t, err, &be)
}
