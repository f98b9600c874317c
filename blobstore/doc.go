// Package blobstore abstracts where datasets and reports are stored.
//
// A BlobStore hands out read-only Blob handles and accepts whole-object
// writes. Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, reads through mmap
//   - MemoryStore: in-process map, for tests
//   - minio.Store: MinIO and other S3-compatible servers
//   - s3.Store: Amazon S3 with ranged reads and the transfer manager
package blobstore
