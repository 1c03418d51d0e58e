package intersect

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alessio-Campa/s-indexes/encoding"
	"github.com/Alessio-Campa/s-indexes/testutil"
)

func TestIntersectBatch(t *testing.T) {
	rng := testutil.NewRNG(200)
	pairs := make([]Pair, 16)
	want := make([][]uint32, len(pairs))
	for i := range pairs {
		lk := rng.RandomKeys(4, 8)
		rk := rng.RandomKeys(4, 8)
		pairs[i] = Pair{Left: build(t, lk), Right: build(t, rk)}
		want[i] = testutil.Intersect(lk, rk)
	}

	pool := NewScratchPool()
	got, err := IntersectBatch(context.Background(), pairs, func(o *BatchOptions) {
		o.Workers = 3
		o.Pool = pool
	})
	require.NoError(t, err)
	require.Len(t, got, len(pairs))
	for i := range pairs {
		assert.Equal(t, want[i], got[i], "pair %d", i)
	}
}

func TestIntersectBatch_Cancelled(t *testing.T) {
	s := build(t, []uint32{1, 2, 3})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := IntersectBatch(ctx, []Pair{{Left: s, Right: s}})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestIntersectBatch_Empty(t *testing.T) {
	got, err := IntersectBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProtect(t *testing.T) {
	assert.NoError(t, Protect(func() {}))

	err := Protect(func() { encoding.BlockKind(0) })
	var ce *encoding.ErrInvalidCardinality
	assert.ErrorAs(t, err, &ce)

	assert.Panics(t, func() {
		_ = Protect(func() { panic("boom") })
	})
}

func TestScratchPool(t *testing.T) {
	p := NewScratchPool()
	s := p.Get()
	require.NotNil(t, s)
	assert.Len(t, s.bits, encoding.ChunkBitmapWords)
	p.Put(s)
	p.Put(nil)
}
