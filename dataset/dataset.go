package dataset

import (
	"bufio"
	"bytes"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/hupe1980/symnmf/errs"
)

// Dataset is an ordered, immutable set of equal-dimension points.
type Dataset struct {
	// Name identifies where the points came from.
	Name string
	// Points holds one row per point.
	Points [][]float64
}

// Len returns the number of points.
func (d *Dataset) Len() int { return len(d.Points) }

// Dim returns the dimension shared by all points.
func (d *Dataset) Dim() int {
	if len(d.Points) == 0 {
		return 0
	}
	return len(d.Points[0])
}

// maxLine bounds a single line so wide datasets still scan.
const maxLine = 64 << 20

// Parse reads comma-separated points, one per line. Surrounding whitespace is
// trimmed and blank lines are skipped. Every malformed line is reported with
// its 1-based line number.
func Parse(r io.Reader) (*Dataset, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var (
		points [][]float64
		dim    int
		line   int
	)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		fields := strings.Split(text, ",")
		if dim == 0 {
			dim = len(fields)
		} else if len(fields) != dim {
			return nil, errs.IO("dataset.Parse", nil, "line %d: got %d values, want %d", line, len(fields), dim)
		}

		p := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, errs.IO("dataset.Parse", nil, "line %d: value %d: %q is not a number", line, i+1, f)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errs.IO("dataset.Parse", nil, "line %d: value %d is not finite", line, i+1)
			}
			p[i] = v
		}
		points = append(points, p)
	}
	if err := sc.Err(); err != nil {
		return nil, errs.IO("dataset.Parse", err, "line %d", line+1)
	}
	if len(points) == 0 {
		return nil, errs.IO("dataset.Parse", nil, "no points")
	}

	return &Dataset{Points: points}, nil
}

// ParseBytes parses an in-memory dataset.
func ParseBytes(data []byte) (*Dataset, error) {
	return Parse(bytes.NewReader(data))
}
