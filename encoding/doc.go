// Package encoding implements the sliced representation of a sorted set of
// uint32 keys.
//
// A key splits into chunk_id:16 | block_id:8 | value:8. Each non-empty chunk
// (65536 keys) is stored in one of three representations:
//
//   - Sparse: a header of (block id, cardinality-1) byte pairs followed by
//     the payload of every block. A block (256 keys) is itself sparse (its
//     values as ascending bytes), dense (a 32-byte bitmap) or full (no
//     payload), chosen purely by its cardinality.
//   - Dense: a 1024-word bitmap.
//   - Full: no payload; every key of the chunk is present.
//
// Sets are immutable once built. The package also provides the primitives
// the intersection engine consumes: chunk iteration with skip-ahead, sparse
// chunk decoding, bitmap membership tests, and binary serialization with
// optional LZ4 or ZSTD compression.
package encoding
