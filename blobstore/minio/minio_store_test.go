package minio

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/hupe1980/symnmf/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockClient struct {
	mock.Mock
	Client
}

func (m *mockClient) StatObject(ctx context.Context, bucket, object string, opts minio.StatObjectOptions) (minio.ObjectInfo, error) {
	args := m.Called(ctx, bucket, object, opts)
	return args.Get(0).(minio.ObjectInfo), args.Error(1)
}

func TestStore_Open(t *testing.T) {
	client := new(mockClient)
	store := NewStore(client, "datasets", "runs")

	t.Run("NotFound", func(t *testing.T) {
		client.On("StatObject", mock.Anything, "datasets", "runs/missing.txt", mock.Anything).
			Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"}).Once()

		_, err := store.Open(context.Background(), "missing.txt")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("OtherError", func(t *testing.T) {
		denied := minio.ErrorResponse{Code: "AccessDenied"}
		client.On("StatObject", mock.Anything, "datasets", "runs/locked.txt", mock.Anything).
			Return(minio.ObjectInfo{}, denied).Once()

		_, err := store.Open(context.Background(), "locked.txt")
		require.Error(t, err)
		assert.False(t, errors.Is(err, blobstore.ErrNotFound))
	})

	t.Run("Success", func(t *testing.T) {
		client.On("StatObject", mock.Anything, "datasets", "runs/points.txt", mock.Anything).
			Return(minio.ObjectInfo{Size: 42}, nil).Once()

		blob, err := store.Open(context.Background(), "points.txt")
		require.NoError(t, err)
		assert.Equal(t, int64(42), blob.Size())

		n, err := blob.ReadAt(context.Background(), make([]byte, 4), 42)
		assert.Equal(t, 0, n)
		assert.Error(t, err)
		assert.NoError(t, blob.Close())
	})

	client.AssertExpectations(t)
}

// TestStore_Integration requires a running MinIO instance.
func TestStore_Integration(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:9000"
	}
	bucket := "symnmf-test"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()
	if _, err := client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")

	data := []byte("0,0\n0,1\n10,10\n10,11\n")
	require.NoError(t, store.Put(ctx, "points.txt", data))

	got, err := blobstore.ReadFile(ctx, store, "points.txt")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	_, err = store.Open(ctx, "missing.txt")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
