package simd

import (
	"os"
	"strings"
)

// ISA represents a SIMD instruction set architecture.
type ISA uint8

const (
	// Generic represents the pure Go implementation (no SIMD).
	Generic ISA = iota
	// SSE42 represents x86-64 SSE4.2 (PCMPESTRM string compare) with POPCNT.
	SSE42
)

// String returns the string representation of an ISA.
func (i ISA) String() string {
	switch i {
	case Generic:
		return "generic"
	case SSE42:
		return "sse42"
	default:
		return "unknown"
	}
}

// ParseISA parses a string into an ISA value.
func ParseISA(s string) (ISA, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic":
		return Generic, true
	case "sse42":
		return SSE42, true
	default:
		return Generic, false
	}
}

// OverrideEnv names the environment variable that forces an ISA.
const OverrideEnv = "SINDEX_SIMD"

// Package-level state - initialized once at package init.
var (
	// activeISA is the selected SIMD implementation.
	activeISA ISA

	// hasOverride is true if SINDEX_SIMD was set to a known ISA.
	hasOverride bool

	// CPU feature flags (set by platform-specific init)
	hasSSE42  bool // x86-64 SSE4.2
	hasPOPCNT bool // x86-64 POPCNT
)

// initCapabilities is called from platform-specific init functions
// after CPU features are detected.
func initCapabilities() {
	if override := os.Getenv(OverrideEnv); override != "" {
		if isa, ok := ParseISA(override); ok {
			hasOverride = true
			if isISAAvailable(isa) {
				activeISA = isa
				return
			}
			// Unavailable override - fall through to auto-detection
		}
	}

	activeISA = selectBestISA()
}

// isISAAvailable checks if an ISA is supported on this CPU.
func isISAAvailable(isa ISA) bool {
	switch isa {
	case Generic:
		return true
	case SSE42:
		return hasSSE42 && hasPOPCNT
	default:
		return false
	}
}

func selectBestISA() ISA {
	if hasSSE42 && hasPOPCNT {
		return SSE42
	}
	return Generic
}

// ActiveISA returns the currently active ISA.
func ActiveISA() ISA {
	return activeISA
}

// IsOverridden returns true if SINDEX_SIMD was set.
func IsOverridden() bool {
	return hasOverride
}

// HasSSE42 returns true if x86-64 SSE4.2 and POPCNT are available.
func HasSSE42() bool {
	return hasSSE42 && hasPOPCNT
}
