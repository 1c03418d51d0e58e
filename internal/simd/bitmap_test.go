package simd

import (
	"fmt"
	"math/bits"
	"math/rand"
	"testing"
)

func TestAndWords(t *testing.T) {
	tests := []struct {
		name string
		dst  []uint64
		src  []uint64
		want []uint64
	}{
		{
			name: "Empty",
			dst:  []uint64{},
			src:  []uint64{},
			want: []uint64{},
		},
		{
			name: "Single word",
			dst:  []uint64{0xFF00FF00FF00FF00},
			src:  []uint64{0x0F0F0F0F0F0F0F0F},
			want: []uint64{0x0F000F000F000F00},
		},
		{
			name: "All ones AND all zeros",
			dst:  []uint64{^uint64(0), ^uint64(0)},
			src:  []uint64{0, 0},
			want: []uint64{0, 0},
		},
		{
			name: "5 words (unrolled + tail)",
			dst:  []uint64{0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
			src:  []uint64{0x0F, 0xF0, 0x55, 0xAA, 0x33},
			want: []uint64{0x0F, 0xF0, 0x55, 0xAA, 0x33},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]uint64, len(tt.dst))
			copy(dst, tt.dst)
			AndWords(dst, tt.src)
			for i := range dst {
				if dst[i] != tt.want[i] {
					t.Errorf("index %d: got 0x%X, want 0x%X", i, dst[i], tt.want[i])
				}
			}
		})
	}
}

func TestAndWordsInto_Aliasing(t *testing.T) {
	a := []uint64{0xF0F0, 0xFFFF, 0x1, 0x0, 0x8000000000000000}
	b := []uint64{0xFF00, 0x00FF, 0x1, 0xFFFF, 0x8000000000000001}
	want := []uint64{0xF000, 0x00FF, 0x1, 0x0, 0x8000000000000000}

	dst := make([]uint64, len(a))
	AndWordsInto(dst, a, b)
	for i := range dst {
		if dst[i] != want[i] {
			t.Errorf("index %d: got 0x%X, want 0x%X", i, dst[i], want[i])
		}
	}

	// dst aliasing b is allowed
	bb := append([]uint64(nil), b...)
	AndWordsInto(bb, a, bb)
	for i := range bb {
		if bb[i] != want[i] {
			t.Errorf("aliased index %d: got 0x%X, want 0x%X", i, bb[i], want[i])
		}
	}
}

func TestBitmapOps_EquivalenceBoundaries(t *testing.T) {
	sizes := []int{0, 1, 2, 3, 4, 5, 7, 8, 9, 15, 16, 17, 31, 32, 33, 64, 1024}

	rng := rand.New(rand.NewSource(42))

	for _, size := range sizes {
		t.Run(fmt.Sprintf("size=%d", size), func(t *testing.T) {
			dst := make([]uint64, size)
			src := make([]uint64, size)
			for i := range dst {
				dst[i] = rng.Uint64()
				src[i] = rng.Uint64()
			}

			t.Run("AndWords", func(t *testing.T) {
				dstCopy := make([]uint64, size)
				copy(dstCopy, dst)
				AndWords(dstCopy, src)
				for i := range dstCopy {
					if want := dst[i] & src[i]; dstCopy[i] != want {
						t.Errorf("index=%d: got 0x%X, want 0x%X", i, dstCopy[i], want)
					}
				}
			})

			t.Run("AndWordsInto", func(t *testing.T) {
				out := make([]uint64, size)
				AndWordsInto(out, dst, src)
				for i := range out {
					if want := dst[i] & src[i]; out[i] != want {
						t.Errorf("index=%d: got 0x%X, want 0x%X", i, out[i], want)
					}
				}
			})

			t.Run("PopcountWords", func(t *testing.T) {
				got := PopcountWords(dst)
				want := 0
				for _, w := range dst {
					want += bits.OnesCount64(w)
				}
				if got != want {
					t.Errorf("got %d, want %d", got, want)
				}
			})
		})
	}
}

func BenchmarkAndWordsInto(b *testing.B) {
	dst := make([]uint64, 1024)
	x := make([]uint64, 1024)
	y := make([]uint64, 1024)
	for i := range x {
		x[i] = uint64(i)
		y[i] = uint64(i * 2)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		AndWordsInto(dst, x, y)
	}
}

func BenchmarkPopcountWords(b *testing.B) {
	words := make([]uint64, 1024)
	for i := range words {
		words[i] = uint64(i) * 0x9E3779B97F4A7C15
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = PopcountWords(words)
	}
}
