package integration_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/symnmf"
	"github.com/hupe1980/symnmf/blobstore"
	"github.com/hupe1980/symnmf/dataset"
	"github.com/hupe1980/symnmf/report"
	"github.com/hupe1980/symnmf/resource"
	"github.com/hupe1980/symnmf/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestE2E_CompareAndArchive(t *testing.T) {
	ctx := context.Background()
	points := separatedBlobs(60)
	text := []byte(testutil.CSV(points))

	for _, c := range []dataset.Compression{dataset.CompressionNone, dataset.CompressionZSTD, dataset.CompressionLZ4} {
		t.Run(c.String(), func(t *testing.T) {
			data, err := dataset.Compress(text, c)
			require.NoError(t, err)

			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "blobs.txt"), data, 0o644))

			rc := resource.NewController(resource.Config{MaxWorkers: 2, IOLimitBytesPerSec: 1 << 20})
			ds, err := dataset.Load(ctx, blobstore.NewLocalStore(dir), "blobs.txt", dataset.WithResourceController(rc))
			require.NoError(t, err)
			require.Equal(t, 60, ds.Len())
			assert.InDeltaSlice(t, points[0], ds.Points[0], 1e-12)

			metrics := &symnmf.BasicMetricsCollector{}
			a := symnmf.New(
				symnmf.WithResourceController(rc),
				symnmf.WithMetricsCollector(metrics),
				symnmf.WithConcurrentPipelines(true),
			)
			r, err := a.Compare(ctx, ds, 3)
			require.NoError(t, err)
			assert.Greater(t, r.KMeans.Score, 0.5)
			assert.Greater(t, r.NMF.Score, 0.5)
			assert.Equal(t, int64(0), rc.MemoryUsage())

			stats := metrics.GetStats()
			assert.Equal(t, int64(1), stats.FactorizeCount)
			assert.Equal(t, int64(1), stats.KMeansCount)
			assert.Equal(t, int64(2), stats.ScoreCount)

			archive := blobstore.NewMemoryStore()
			require.NoError(t, report.NewBlobSink(archive, "reports").Archive(ctx, r))

			names := archive.List("reports/")
			require.Len(t, names, 1)

			raw, err := blobstore.ReadFile(ctx, archive, names[0])
			require.NoError(t, err)
			got, err := report.Decode(bytesReader(raw))
			require.NoError(t, err)
			assert.Equal(t, r.NMF.Score, got.NMF.Score)
			assert.Equal(t, r.KMeans.Labels, got.KMeans.Labels)
		})
	}
}

// separatedBlobs places n points in three unit-width squares far apart.
func separatedBlobs(n int) [][]float64 {
	centers := [][]float64{{-4, -4}, {0, 4}, {4, -4}}
	points := testutil.NewRNG(7).UniformPoints(n, 2)
	for i, p := range points {
		c := centers[i%len(centers)]
		for j := range p {
			p[j] = c[j] + 0.5*p[j]
		}
	}
	return points
}

func TestE2E_OpenURI(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "points.txt")
	require.NoError(t, os.WriteFile(path, []byte("0,0\n0,1\n10,10\n10,11\n"), 0o644))

	for _, uri := range []string{path, "file://" + filepath.ToSlash(path)} {
		ds, err := dataset.Open(context.Background(), uri)
		require.NoError(t, err, uri)
		assert.Equal(t, 4, ds.Len())
	}
}
