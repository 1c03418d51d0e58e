// Package setstore persists serialized sets in blob storage.
//
// Store is the interface the engine reads and writes sets through.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests
//   - LocalStore: one file per set under a root directory
//   - s3.Store: Amazon S3, multipart uploads for large sets
//   - minio.Store: MinIO and other S3-compatible storage
//
// # Custom Implementations
//
//	type Store interface {
//	    Get(ctx, name) ([]byte, error)
//	    Put(ctx, name, data) error   // atomic replace
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
package setstore
