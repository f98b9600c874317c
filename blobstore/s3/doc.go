// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("datasets/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	ds, err := dataset.Load(ctx, store, "points.txt.zst")
//
// # Features
//
//   - Range reads through Blob.ReadAt
//   - Whole-object fetches through the transfer manager's parallel downloader
//   - CRC32C integrity checksums on Put
package s3
