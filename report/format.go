package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// Precision is the number of decimals printed for every value.
const Precision = 4

func appendValue(buf []byte, v float64) []byte {
	return strconv.AppendFloat(buf, v, 'f', Precision, 64)
}

// WriteMatrix writes m one row per line, values comma-separated.
func WriteMatrix(w io.Writer, m mat.Matrix) error {
	rows, cols := m.Dims()
	bw := bufio.NewWriter(w)
	var buf []byte
	for i := range rows {
		buf = buf[:0]
		for j := range cols {
			if j > 0 {
				buf = append(buf, ',')
			}
			buf = appendValue(buf, m.At(i, j))
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteCentroids writes each centroid on its own line.
func WriteCentroids(w io.Writer, centroids [][]float64) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	for _, c := range centroids {
		buf = buf[:0]
		for j, v := range c {
			if j > 0 {
				buf = append(buf, ',')
			}
			buf = appendValue(buf, v)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteScores writes the two silhouette scores. It refuses to print a
// partial result: if either pipeline failed the joined error is returned and
// nothing is written.
func WriteScores(w io.Writer, r *Report) error {
	if err := r.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "nmf: %.4f\nkmeans: %.4f\n", r.NMF.Score, r.KMeans.Score)
	return err
}
