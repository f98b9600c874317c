// Package dataset reads the point files both clustering pipelines consume.
//
// A dataset file is plain text with one point per line and the coordinates
// separated by commas:
//
//	0.1,2.5,-1
//	3,4,0.25
//
// Files may be stored zstd- or LZ4-compressed; Load recognizes both by their
// frame magic. Open accepts a local path or an object URI (s3://bucket/key,
// minio://endpoint/bucket/key).
package dataset
