// Package report formats clustering results for the command-line tools and
// archives full run reports.
//
// The text writers produce the exact line formats the tools print: matrices
// as comma-separated rows with four decimals, scores as "nmf: 0.1234" and
// "kmeans: 0.1234". Report values encode to JSON and can be archived to any
// blobstore.BlobStore (BlobSink) or a DynamoDB table (DynamoSink).
package report
