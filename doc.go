// Package sindexes intersects sets of uint32 keys stored in a sliced,
// hierarchical encoding.
//
// A key splits into a 16-bit chunk id, an 8-bit block id and an 8-bit value.
// Each chunk is stored sparse (a list of blocks), dense (a 65536-bit bitmap)
// or full. Inside a sparse chunk each block is again sparse (its values as
// bytes), dense (a 256-bit bitmap) or full. The intersection engine merges
// both sets chunk by chunk and picks a kernel for every representation pair,
// using a SIMD equal-any compare for small sparse blocks.
//
// # Quick Start
//
//	eng := sindexes.New()
//	defer eng.Close()
//
//	a, _ := eng.Encode([]uint32{1, 5, 70000, 70001})
//	b, _ := eng.Encode([]uint32{5, 70001, 900000})
//
//	keys, _ := eng.Intersect(ctx, a, b) // [5 70001]
//
// # Allocation-free Intersection
//
// IntersectInto writes to a caller-owned buffer. Size it with BufferSize:
//
//	out := make([]uint32, sindexes.BufferSize(a, b))
//	n, err := eng.IntersectInto(a, b, out)
//
// The encoding, intersect and internal/simd packages expose the kernels
// directly for callers that manage their own scratch memory.
//
// # Persistence
//
// Sets serialize to a compact binary form, optionally compressed with LZ4
// or ZSTD:
//
//	eng := sindexes.New(sindexes.WithCompression(encoding.ZSTD))
//	data, _ := eng.Marshal(a)
//	a2, _ := eng.Unmarshal(data)
//
// Unmarshal validates every structural invariant, so decoded sets are safe
// to hand to the kernels.
//
// Save and Load move sets through a setstore.Store (memory, local
// directory, S3 or MinIO):
//
//	store := setstore.NewLocalStore("/var/lib/postings")
//	err := eng.Save(ctx, store, "terms/apple", a)
//	a2, err := eng.Load(ctx, store, "terms/apple")
//
// # Resource Limits
//
// WithMemoryLimit bounds the scratch and output memory held by concurrent
// operations, WithMaxConcurrent bounds how many run at once, and
// WithDecodeRateLimit throttles ReadSet and Load. Requests that can never
// fit the memory limit fail with ErrMemoryLimit.
//
// # SIMD
//
// The sparse block kernel uses SSE4.2 on amd64 when the CPU supports it.
// Set SINDEX_SIMD=generic to force the portable path, or build with the
// noasm tag to drop the assembly entirely.
package sindexes
