// Package simd provides the vectorized kernels of the intersection engine.
//
// # Supported Platforms
//
//   - x86-64: SSE4.2 (PCMPESTRM) with POPCNT
//   - everything else: portable Go
//
// Runtime CPU feature detection selects the implementation. Set
// SINDEX_SIMD=generic to force the portable kernels, or build with
// -tags noasm to drop the assembly.
//
// # Operations
//
//   - EqualAnyMask: which bytes of one 16-byte window occur in another
//   - CompactMatches: the matching bytes as global keys, ascending
//   - AndWords, AndWordsInto, PopcountWords: bitmap word kernels
package simd
