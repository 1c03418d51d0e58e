package intersect

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alessio-Campa/s-indexes/encoding"
	"github.com/Alessio-Campa/s-indexes/testutil"
)

func bitmapOf(vals ...byte) []byte {
	b := make([]byte, encoding.BlockBitmapBytes)
	for _, v := range vals {
		b[v>>3] |= 1 << (v & 7)
	}
	return b
}

func bytesOf(keys []uint32) []byte {
	out := make([]byte, len(keys))
	for i, k := range keys {
		out[i] = byte(k)
	}
	return out
}

func naiveBlock(l, r []byte, base uint32) []uint32 {
	var a, b []uint32
	for _, v := range l {
		a = append(a, uint32(v))
	}
	for _, v := range r {
		b = append(b, uint32(v))
	}
	out := testutil.Intersect(a, b)
	for i := range out {
		out[i] += base
	}
	return out
}

func TestIntersectBlockDS_Scenario(t *testing.T) {
	out := make([]uint32, 3)
	n := IntersectBlockDS(bitmapOf(10, 11, 200), []byte{3, 10, 200}, 0, out)
	require.Equal(t, 2, n)
	assert.Equal(t, []uint32{10, 200}, out[:n])
}

func TestIntersectBlockSS(t *testing.T) {
	tests := []struct {
		name string
		l, r []byte
		want []uint32
	}{
		{"single equal", []byte{7}, []byte{7}, []uint32{7}},
		{"single distinct", []byte{7}, []byte{8}, []uint32{}},
		{"zero value", []byte{0, 1}, []byte{0, 2}, []uint32{0}},
		{"max value", []byte{1, 255}, []byte{255}, []uint32{255}},
		{"scenario", []byte{3, 10, 200}, []byte{10, 11, 200}, []uint32{10, 200}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := make([]uint32, encoding.OutputSlack)
			n := IntersectBlockSS(tt.l, tt.r, 0, out)
			assert.Equal(t, tt.want, append([]uint32{}, out[:n]...))
		})
	}
}

// Every cardinality pair exercises one of the single compare, double
// compare (either side) and scalar merge paths.
func TestIntersectBlockSS_AllCardinalities(t *testing.T) {
	rng := testutil.NewRNG(1)
	const base = 7<<16 | 3<<8
	for cardL := 1; cardL <= encoding.BlockSparseThreshold; cardL++ {
		for cardR := 1; cardR <= encoding.BlockSparseThreshold; cardR++ {
			for rep := 0; rep < 3; rep++ {
				// A narrow value range forces overlaps.
				span := 32 + rng.Intn(224)
				l := bytesOf(rng.Sample(0, span, cardL))
				r := bytesOf(rng.Sample(0, span, cardR))

				out := make([]uint32, min(cardL, cardR)+encoding.OutputSlack)
				n := IntersectBlockSS(l, r, base, out)
				require.Equal(t, naiveBlock(l, r, base), append([]uint32{}, out[:n]...),
					"cardL=%d cardR=%d l=%v r=%v", cardL, cardR, l, r)
			}
		}
	}
}

func TestIntersectBlockSS_WindowBoundary(t *testing.T) {
	// 16 values fill exactly one window; 17 spill into the second.
	var l16, r17 []byte
	for i := 0; i < 16; i++ {
		l16 = append(l16, byte(2*i))
	}
	for i := 0; i < 17; i++ {
		r17 = append(r17, byte(i))
	}
	out := make([]uint32, 32)

	n := IntersectBlockSS(l16, r17, 0, out)
	assert.Equal(t, naiveBlock(l16, r17, 0), out[:n])

	n = IntersectBlockSS(r17, l16, 0, out)
	assert.Equal(t, naiveBlock(r17, l16, 0), out[:n])

	// The second window holds the only match.
	n = IntersectBlockSS([]byte{16}, r17, 100, out)
	assert.Equal(t, []uint32{116}, out[:n])
}

func TestIntersectBlockSS_PreconditionPanics(t *testing.T) {
	tooMany := make([]byte, encoding.BlockSparseThreshold+1)
	for i := range tooMany {
		tooMany[i] = byte(i)
	}
	out := make([]uint32, 64)

	for name, fn := range map[string]func(){
		"empty left":    func() { IntersectBlockSS(nil, []byte{1}, 0, out) },
		"empty right":   func() { IntersectBlockSS([]byte{1}, nil, 0, out) },
		"over limit":    func() { IntersectBlockSS(tooMany, []byte{1}, 0, out) },
		"ds over limit": func() { IntersectBlockDS(bitmapOf(1), tooMany, 0, out) },
	} {
		t.Run(name, func(t *testing.T) {
			err := Protect(fn)
			var ce *encoding.ErrInvalidCardinality
			require.True(t, errors.As(err, &ce), "got %v", err)
			assert.Equal(t, encoding.BlockGranularity, ce.Granularity)
		})
	}
}

func TestIntersectBlockDS_MatchesNaive(t *testing.T) {
	rng := testutil.NewRNG(2)
	for iter := 0; iter < 500; iter++ {
		dense := bytesOf(rng.Sample(0, 256, encoding.BlockSparseThreshold+1+rng.Intn(225)))
		sparse := bytesOf(rng.Sample(0, 256, 1+rng.Intn(encoding.BlockSparseThreshold)))

		out := make([]uint32, len(sparse))
		n := IntersectBlockDS(bitmapOf(dense...), sparse, 512, out)
		require.Equal(t, naiveBlock(dense, sparse, 512), append([]uint32{}, out[:n]...))
	}
}

func TestIntersectBlockDD(t *testing.T) {
	out := make([]uint32, 256)
	n := IntersectBlockDD(bitmapOf(0, 63, 64, 127, 200, 255), bitmapOf(0, 64, 128, 255), 1<<8, out)
	assert.Equal(t, []uint32{256, 320, 511}, out[:n])
}

func TestIntersectBlockFull(t *testing.T) {
	out := make([]uint32, 256)

	n := IntersectBlockFS([]byte{1, 2, 250}, 10, out)
	assert.Equal(t, []uint32{11, 12, 260}, out[:n])

	n = IntersectBlockFD(bitmapOf(4, 5), 0, out)
	assert.Equal(t, []uint32{4, 5}, out[:n])

	n = IntersectBlockFF(1000, out)
	require.Equal(t, 256, n)
	assert.Equal(t, uint32(1000), out[0])
	assert.Equal(t, uint32(1255), out[255])
}

func TestIntersectBlocks_Dispatch(t *testing.T) {
	rng := testutil.NewRNG(3)
	cards := []int{1, 16, 17, encoding.BlockSparseThreshold, encoding.BlockSparseThreshold + 1, 255, 256}

	payload := func(vals []byte) []byte {
		switch encoding.BlockKind(len(vals)) {
		case encoding.Sparse:
			return vals
		case encoding.Dense:
			return bitmapOf(vals...)
		default:
			return nil
		}
	}

	for _, cl := range cards {
		for _, cr := range cards {
			t.Run(fmt.Sprintf("%d_%d", cl, cr), func(t *testing.T) {
				l := bytesOf(rng.Sample(0, 256, cl))
				r := bytesOf(rng.Sample(0, 256, cr))
				out := make([]uint32, 256+encoding.OutputSlack)
				n := intersectBlocks(payload(l), payload(r), cl, cr, 0, out)
				require.Equal(t, naiveBlock(l, r, 0), append([]uint32{}, out[:n]...))
			})
		}
	}
}
