//go:build amd64 && !noasm

package simd

import "golang.org/x/sys/cpu"

func init() {
	hasSSE42 = cpu.X86.HasSSE42
	hasPOPCNT = cpu.X86.HasPOPCNT
	initCapabilities()
}
