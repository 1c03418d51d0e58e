// Package s3 provides an S3 implementation of the setstore.Store interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("postings/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	err = eng.Save(ctx, store, "terms/apple", set)
//	set, err = eng.Load(ctx, store, "terms/apple")
//
// # Features
//
//   - CRC32C checksums on single-part uploads
//   - Multipart uploads for large sets
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
