package simd

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func window(vals ...byte) *[Lanes]byte {
	var w [Lanes]byte
	copy(w[:], vals)
	return &w
}

func TestEqualAnyMask(t *testing.T) {
	tests := []struct {
		name         string
		l, r         []byte
		cardL, cardR int
		want         uint16
	}{
		{"no overlap", []byte{1, 2, 3}, []byte{4, 5, 6}, 3, 3, 0},
		{"single match", []byte{3, 10, 200}, []byte{10, 11, 200}, 3, 3, 0b101},
		{"identical", []byte{0, 1, 2, 3}, []byte{0, 1, 2, 3}, 4, 4, 0b1111},
		{"zero byte beyond length ignored", []byte{5}, []byte{5, 0}, 1, 1, 0b1},
		{"zero value inside length", []byte{0, 9}, []byte{0, 7}, 2, 2, 0b1},
		{"empty left", nil, []byte{1, 2}, 0, 2, 0},
		{"empty right", []byte{1, 2}, nil, 2, 0, 0},
		{"lengths clamped", []byte{255}, []byte{255}, 100, -3, 0},
		{
			"full windows",
			[]byte{0, 2, 4, 6, 8, 10, 12, 14, 16, 18, 20, 22, 24, 26, 28, 30},
			[]byte{0, 3, 4, 7, 8, 11, 12, 15, 16, 19, 20, 23, 24, 27, 28, 30},
			16, 16,
			0b1101010101010101,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EqualAnyMask(window(tt.l...), window(tt.r...), tt.cardL, tt.cardR)
			assert.Equal(t, tt.want, got, "active=%s", ActiveISA())
			assert.Equal(t, tt.want, equalAnyMaskGeneric(window(tt.l...), window(tt.r...), clampLanes(tt.cardL), clampLanes(tt.cardR)))
		})
	}
}

func TestEqualAnyMask_KernelEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for iter := 0; iter < 5000; iter++ {
		var l, r [Lanes]byte
		rng.Read(l[:])
		rng.Read(r[:])
		// Narrow the value range so matches are frequent.
		for i := range l {
			l[i] %= 24
			r[i] %= 24
		}
		cardL := rng.Intn(Lanes + 1)
		cardR := rng.Intn(Lanes + 1)

		want := equalAnyMaskGeneric(&l, &r, cardL, cardR)
		got := EqualAnyMask(&l, &r, cardL, cardR)
		require.Equal(t, want, got, "l=%v r=%v cardL=%d cardR=%d", l, r, cardL, cardR)
	}
}

func TestCompactMatches(t *testing.T) {
	l := window(3, 10, 200)
	r := window(10, 11, 200)
	out := make([]uint32, Lanes)

	n := CompactMatches(l, r, 3, 3, 1000, out)
	require.Equal(t, 2, n)
	assert.Equal(t, []uint32{1010, 1200}, out[:n])
}

func TestCompactMatches_AllLanes(t *testing.T) {
	var w [Lanes]byte
	for i := range w {
		w[i] = byte(i * 16)
	}
	out := make([]uint32, Lanes)
	n := CompactMatches(&w, &w, Lanes, Lanes, 1<<16, out)
	require.Equal(t, Lanes, n)
	for i := 0; i < n; i++ {
		assert.Equal(t, uint32(1<<16+i*16), out[i])
	}
}

func TestCompactMatches_CountMatchesPopcount(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	out := make([]uint32, Lanes)
	for iter := 0; iter < 1000; iter++ {
		var l, r [Lanes]byte
		rng.Read(l[:])
		rng.Read(r[:])
		cardL, cardR := rng.Intn(Lanes+1), rng.Intn(Lanes+1)
		n := CompactMatches(&l, &r, cardL, cardR, 0, out)
		require.Equal(t, bits.OnesCount16(EqualAnyMask(&l, &r, cardL, cardR)), n)
	}
}

func TestParseISA(t *testing.T) {
	isa, ok := ParseISA(" SSE42 ")
	require.True(t, ok)
	assert.Equal(t, SSE42, isa)

	isa, ok = ParseISA("generic")
	require.True(t, ok)
	assert.Equal(t, Generic, isa)

	_, ok = ParseISA("avx9000")
	assert.False(t, ok)

	assert.Equal(t, "sse42", SSE42.String())
	assert.Equal(t, "unknown", ISA(42).String())
}

func BenchmarkEqualAnyMask(b *testing.B) {
	l := window(1, 5, 9, 13, 17, 21, 25, 29, 33, 37, 41, 45, 49, 53, 57, 61)
	r := window(2, 5, 8, 13, 16, 21, 24, 29, 32, 37, 40, 45, 48, 53, 56, 61)
	b.Run("active", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = EqualAnyMask(l, r, Lanes, Lanes)
		}
	})
	b.Run("generic", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = equalAnyMaskGeneric(l, r, Lanes, Lanes)
		}
	})
}
