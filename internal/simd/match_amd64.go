//go:build amd64 && !noasm

package simd

// equalAnyMaskSSE42 runs PCMPESTRM in unsigned-byte, equal-any, bit-mask
// mode with l as the character set and r as the string.
//
//go:noescape
func equalAnyMaskSSE42(l, r *[Lanes]byte, cardL, cardR int) uint32

// init runs after capability_amd64.go init() has selected the active ISA.
func init() {
	if activeISA == SSE42 {
		kernelEqualAnyMask = equalAnyMaskAsm
	}
}

func equalAnyMaskAsm(l, r *[Lanes]byte, cardL, cardR int) uint16 {
	return uint16(equalAnyMaskSSE42(l, r, cardL, cardR))
}
