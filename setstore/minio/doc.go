// Package minio provides a setstore.Store backed by MinIO or any other
// S3-compatible object storage (Ceph, Garage, SeaweedFS).
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := miniostore.NewStore(client, "postings", "terms/")
//	err = eng.Save(ctx, store, "apple", set)
//
// Unlike the s3 package this one needs no AWS SDK, which keeps it usable in
// air-gapped deployments.
package minio
