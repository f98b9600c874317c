// Package minio provides a BlobStore backed by MinIO or any S3-compatible
// server.
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "datasets", "runs/")
//	ds, err := dataset.Load(ctx, store, "points.txt")
//
// Connect builds a client from the MINIO_ACCESS_KEY and MINIO_SECRET_KEY
// environment variables.
package minio
