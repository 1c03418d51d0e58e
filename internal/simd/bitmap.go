package simd

import "math/bits"

// ==============================================================================
// Bitmap word operations
// ==============================================================================
//
// These operate on []uint64 bit arrays: the 1024-word chunk bitmaps and the
// 4-word block bitmaps of the sliced encoding.

// Kernel function pointers for bitmap operations.
var (
	kernelAndWords      = andWordsGeneric
	kernelAndWordsInto  = andWordsIntoGeneric
	kernelPopcountWords = popcountWordsGeneric
)

// AndWords performs dst[i] &= src[i] for all words.
func AndWords(dst, src []uint64) {
	kernelAndWords(dst, src)
}

// AndWordsInto performs dst[i] = a[i] & b[i] for all words of dst.
// dst may alias a or b.
func AndWordsInto(dst, a, b []uint64) {
	kernelAndWordsInto(dst, a, b)
}

// PopcountWords counts all set bits across words.
func PopcountWords(words []uint64) int {
	return kernelPopcountWords(words)
}

// ==============================================================================
// Generic implementations
// ==============================================================================

func andWordsGeneric(dst, src []uint64) {
	// Process 4 words at a time (unrolled)
	i := 0
	for ; i+4 <= len(dst); i += 4 {
		dst[i] &= src[i]
		dst[i+1] &= src[i+1]
		dst[i+2] &= src[i+2]
		dst[i+3] &= src[i+3]
	}
	for ; i < len(dst); i++ {
		dst[i] &= src[i]
	}
}

func andWordsIntoGeneric(dst, a, b []uint64) {
	a = a[:len(dst)]
	b = b[:len(dst)]
	i := 0
	for ; i+4 <= len(dst); i += 4 {
		dst[i] = a[i] & b[i]
		dst[i+1] = a[i+1] & b[i+1]
		dst[i+2] = a[i+2] & b[i+2]
		dst[i+3] = a[i+3] & b[i+3]
	}
	for ; i < len(dst); i++ {
		dst[i] = a[i] & b[i]
	}
}

func popcountWordsGeneric(words []uint64) int {
	count := 0
	// Process 4 words at a time
	i := 0
	for ; i+4 <= len(words); i += 4 {
		count += bits.OnesCount64(words[i])
		count += bits.OnesCount64(words[i+1])
		count += bits.OnesCount64(words[i+2])
		count += bits.OnesCount64(words[i+3])
	}
	for ; i < len(words); i++ {
		count += bits.OnesCount64(words[i])
	}
	return count
}
