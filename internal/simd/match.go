package simd

import "math/bits"

// Lanes is the number of byte lanes compared by one EqualAnyMask call.
const Lanes = 16

// Kernel pointer for the byte-set compare. Generic is the default;
// platform-specific init() functions override it when available.
var kernelEqualAnyMask = equalAnyMaskGeneric

// EqualAnyMask reports, for each of the first cardR bytes of r, whether it
// equals any of the first cardL bytes of l. Bit i of the result is set when
// r[i] matched. Lengths are clamped to [0, Lanes]; bytes past a length never
// match.
func EqualAnyMask(l, r *[Lanes]byte, cardL, cardR int) uint16 {
	return kernelEqualAnyMask(l, r, clampLanes(cardL), clampLanes(cardR))
}

// CompactMatches runs EqualAnyMask and writes base+r[i] for every matched
// lane i, in lane order, to the front of out. It returns the number of keys
// written. out must have room for every match (at most Lanes).
func CompactMatches(l, r *[Lanes]byte, cardL, cardR int, base uint32, out []uint32) int {
	mask := EqualAnyMask(l, r, cardL, cardR)
	n := 0
	for mask != 0 {
		i := bits.TrailingZeros16(mask)
		out[n] = base + uint32(r[i])
		n++
		mask &= mask - 1
	}
	return n
}

func equalAnyMaskGeneric(l, r *[Lanes]byte, cardL, cardR int) uint16 {
	var mask uint16
	for i := 0; i < cardR; i++ {
		v := r[i]
		for j := 0; j < cardL; j++ {
			if l[j] == v {
				mask |= 1 << uint(i)
				break
			}
		}
	}
	return mask
}

func clampLanes(n int) int {
	if n < 0 {
		return 0
	}
	if n > Lanes {
		return Lanes
	}
	return n
}
