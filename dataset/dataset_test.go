package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hupe1980/symnmf/blobstore"
	"github.com/hupe1980/symnmf/errs"
	"github.com/hupe1980/symnmf/resource"
	"github.com/hupe1980/symnmf/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	ds, err := Parse(strings.NewReader("0,0\n0,1\n10,10\n10,11\n"))
	require.NoError(t, err)

	assert.Equal(t, 4, ds.Len())
	assert.Equal(t, 2, ds.Dim())
	assert.Equal(t, [][]float64{{0, 0}, {0, 1}, {10, 10}, {10, 11}}, ds.Points)
}

func TestParse_Whitespace(t *testing.T) {
	input := "  1.5, -2e-3 \r\n\n\t3,4\n\n"
	ds, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1.5, -2e-3}, {3, 4}}, ds.Points)
}

func TestParse_NoTrailingNewline(t *testing.T) {
	ds, err := Parse(strings.NewReader("1,2\n3,4"))
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"Empty", "", "no points"},
		{"OnlyBlank", "\n \n", "no points"},
		{"Ragged", "1,2\n3,4,5\n", "line 2: got 3 values, want 2"},
		{"RaggedAfterBlank", "1,2\n\n3\n", "line 3: got 1 values, want 2"},
		{"NotANumber", "1,2\n3,x\n", `line 2: value 2: "x" is not a number`},
		{"EmptyField", "1,,2\n", `line 1: value 2: "" is not a number`},
		{"NaN", "1,NaN\n", "line 1: value 2 is not finite"},
		{"Inf", "-Inf,1\n", "line 1: value 1 is not finite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrIO)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestCompression(t *testing.T) {
	text := []byte(testutil.CSV(testutil.NewRNG(5).UniformPoints(200, 3)))
	want, err := ParseBytes(text)
	require.NoError(t, err)

	for _, c := range []Compression{CompressionNone, CompressionZSTD, CompressionLZ4} {
		t.Run(c.String(), func(t *testing.T) {
			packed, err := Compress(text, c)
			require.NoError(t, err)
			assert.Equal(t, c, Detect(packed))

			store := blobstore.NewMemoryStore()
			require.NoError(t, store.Put(context.Background(), "points.txt", packed))

			got, err := Load(context.Background(), store, "points.txt")
			require.NoError(t, err)
			assert.Equal(t, "points.txt", got.Name)
			assert.Equal(t, want.Points, got.Points)
		})
	}
}

func TestCompression_String(t *testing.T) {
	assert.Equal(t, "Unknown(9)", Compression(9).String())
	_, err := Compress([]byte("x"), Compression(9))
	assert.Error(t, err)
}

func TestDecompress_Corrupt(t *testing.T) {
	corrupt := append([]byte{0x28, 0xB5, 0x2F, 0xFD}, []byte("garbage")...)

	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(context.Background(), "bad.zst", corrupt))

	_, err := Load(context.Background(), store, "bad.zst")
	assert.ErrorIs(t, err, errs.ErrIO)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(context.Background(), blobstore.NewMemoryStore(), "missing.txt")
	assert.ErrorIs(t, err, errs.ErrIO)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestLoad_WithResourceController(t *testing.T) {
	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20})
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(context.Background(), "p", []byte("1,2\n3,4\n")))

	ds, err := Load(context.Background(), store, "p", WithResourceController(rc))
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
}

func TestOpen_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.txt")
	require.NoError(t, os.WriteFile(path, []byte("0,0\n0,1\n"), 0o600))

	ds, err := Open(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 0}, {0, 1}}, ds.Points)

	ds, err = Open(context.Background(), "file://"+filepath.ToSlash(path))
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, errs.ErrIO)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParseURI(t *testing.T) {
	tests := []struct {
		uri  string
		want Location
	}{
		{"points.txt", Location{Scheme: "file", Key: "points.txt"}},
		{"/data/points.txt", Location{Scheme: "file", Key: "/data/points.txt"}},
		{"s3://bucket/sets/points.txt", Location{Scheme: "s3", Bucket: "bucket", Key: "sets/points.txt"}},
		{"minio://localhost:9000/bucket/points.txt.zst", Location{Scheme: "minio", Endpoint: "localhost:9000", Bucket: "bucket", Key: "points.txt.zst"}},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := ParseURI(tt.uri)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "s3://bucket", "s3:///key", "minio://host/bucket", "ftp://host/x"} {
		t.Run("Invalid/"+bad, func(t *testing.T) {
			_, err := ParseURI(bad)
			assert.ErrorIs(t, err, errs.ErrUsage)
		})
	}
}
