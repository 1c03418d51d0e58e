// Package intersect computes the intersection of two sliced-encoded sets.
//
// The engine works on three levels. Intersect merges the chunk sequences of
// both sets, skipping ahead over chunk ids present on one side only, and
// dispatches each matching chunk pair by representation. Chunk kernels
// merge block headers and hand every matching block pair to a block kernel.
// Block kernels turn local byte values into global uint32 keys.
//
// Sparse×sparse blocks of up to 16 elements per side are compared with one
// equal-any byte-lane compare (SSE4.2 PCMPESTRM where available, see
// internal/simd), two compares when one side spans a second 16-byte window,
// and a scalar merge when both sides exceed one window.
//
// # Buffers
//
// Every kernel writes to a caller-owned output slice and returns the number
// of keys written; results are always strictly ascending. Size output
// buffers with BufferSize: the smaller cardinality plus OutputSlack, since
// dense×sparse kernels write one speculative slot past their result.
//
// Dense×sparse chunk pairs materialize the sparse side into a Scratch
// bitmap. A Scratch must not be shared by concurrent calls; use one per
// goroutine or take them from a ScratchPool.
//
// # Preconditions
//
// Kernels panic with *encoding.ErrInvalidCardinality or *ErrInvalidPair
// when handed input that violates the encoding invariants. Sets produced by
// encoding.Builder or encoding.Unmarshal never trigger them. Protect turns
// such panics into errors.
package intersect
