package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/hupe1980/symnmf/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestWriteMatrix(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{
		0, 1.23456, -0.00004,
		2, 0.5, 1e-5,
	})

	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, m))
	assert.Equal(t, "0.0000,1.2346,-0.0000\n2.0000,0.5000,0.0000\n", buf.String())
}

func TestWriteMatrix_Symmetric(t *testing.T) {
	m := mat.NewSymDense(2, []float64{0, 0.25, 0.25, 0})

	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, m))
	assert.Equal(t, "0.0000,0.2500\n0.2500,0.0000\n", buf.String())
}

func TestWriteCentroids(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCentroids(&buf, [][]float64{{0, 0.5}, {10, 10.5}}))
	assert.Equal(t, "0.0000,0.5000\n10.0000,10.5000\n", buf.String())
}

func TestWriteScores(t *testing.T) {
	r := New("points.txt", 2, 4, 2)
	r.NMF.Score = 0.93126
	r.KMeans.Score = 0.9312

	var buf bytes.Buffer
	require.NoError(t, WriteScores(&buf, r))
	assert.Equal(t, "nmf: 0.9313\nkmeans: 0.9312\n", buf.String())
}

func TestWriteScores_Failure(t *testing.T) {
	r := New("points.txt", 2, 4, 2)
	r.NMF.Score = 0.5
	r.KMeans.Fail(errs.Numerical("kmeans.Train", "cluster 1 is empty"))

	var buf bytes.Buffer
	err := WriteScores(&buf, r)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrNumerical)
	assert.Empty(t, buf.String())
}

func TestReport_Err(t *testing.T) {
	r := New("points.txt", 2, 4, 2)
	assert.NoError(t, r.Err())
	assert.True(t, r.NMF.OK())

	nmfErr := errors.New("nmf boom")
	kmErr := errs.Numerical("kmeans", "empty")
	r.NMF.Fail(nmfErr)
	r.KMeans.Fail(kmErr)

	err := r.Err()
	assert.ErrorIs(t, err, nmfErr)
	assert.ErrorIs(t, err, errs.ErrNumerical)
	assert.False(t, r.NMF.OK())
}
