package report

import (
	"errors"
	"fmt"
	"io"
	"time"

	json "github.com/goccy/go-json"
)

// Algorithm names used in reports and metrics.
const (
	AlgorithmNMF    = "nmf"
	AlgorithmKMeans = "kmeans"
)

// Pipeline is the outcome of one clustering pipeline.
type Pipeline struct {
	Algorithm  string  `json:"algorithm"`
	Score      float64 `json:"score"`
	Iterations int     `json:"iterations"`
	Converged  bool    `json:"converged"`
	Labels     []int   `json:"labels,omitempty"`
	Error      string  `json:"error,omitempty"`

	err error
}

// Fail records err as the pipeline's failure.
func (p *Pipeline) Fail(err error) {
	p.err = err
	if err != nil {
		p.Error = err.Error()
	}
}

// Err returns the pipeline failure, if any. Decoded reports only carry the
// message.
func (p *Pipeline) Err() error {
	if p.err != nil {
		return p.err
	}
	if p.Error != "" {
		return errors.New(p.Error)
	}
	return nil
}

// OK reports whether the pipeline produced a score.
func (p *Pipeline) OK() bool { return p.Err() == nil }

// Report describes one comparison run.
type Report struct {
	Dataset   string    `json:"dataset"`
	K         int       `json:"k"`
	N         int       `json:"n"`
	Dim       int       `json:"dim"`
	NMF       Pipeline  `json:"nmf"`
	KMeans    Pipeline  `json:"kmeans"`
	CreatedAt time.Time `json:"created_at"`
}

// New returns an empty report for a dataset of n points in dim dimensions.
func New(dataset string, k, n, dim int) *Report {
	return &Report{
		Dataset:   dataset,
		K:         k,
		N:         n,
		Dim:       dim,
		NMF:       Pipeline{Algorithm: AlgorithmNMF},
		KMeans:    Pipeline{Algorithm: AlgorithmKMeans},
		CreatedAt: time.Now().UTC(),
	}
}

// Err joins the failures of both pipelines.
func (r *Report) Err() error {
	var errs []error
	if err := r.NMF.Err(); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", AlgorithmNMF, err))
	}
	if err := r.KMeans.Err(); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", AlgorithmKMeans, err))
	}
	return errors.Join(errs...)
}

// Marshal encodes r as indented JSON.
func (r *Report) Marshal() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Encode writes r as JSON to w.
func (r *Report) Encode(w io.Writer) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// Decode reads a JSON report.
func Decode(rd io.Reader) (*Report, error) {
	var r Report
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("report: decode: %w", err)
	}
	return &r, nil
}
