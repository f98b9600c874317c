package symnmf

import (
	"context"
	"errors"
	"time"

	"github.com/hupe1980/symnmf/dataset"
	"github.com/hupe1980/symnmf/errs"
	"github.com/hupe1980/symnmf/kmeans"
	"github.com/hupe1980/symnmf/nmf"
	"github.com/hupe1980/symnmf/report"
	"github.com/hupe1980/symnmf/resource"
	"github.com/hupe1980/symnmf/silhouette"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Analyzer runs the SymNMF and K-means pipelines over datasets.
// It holds no per-run state and is safe for concurrent use.
type Analyzer struct {
	opts options
}

// New creates an Analyzer.
func New(optFns ...Option) *Analyzer {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}
	if o.engine == nil {
		o.engine = NativeEngine{Workers: o.workers}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.workers > 1 {
		o.kmeansConfig.Workers = o.workers
	}
	return &Analyzer{opts: o}
}

func checkDataset(op string, ds *dataset.Dataset) error {
	if ds == nil || ds.Len() == 0 {
		return errs.Invalid(op, "empty dataset")
	}
	return nil
}

// reserve charges count dense n×n matrices to the resource controller and
// returns the matching release func.
func (a *Analyzer) reserve(ctx context.Context, n, count int) (func(), error) {
	rc := a.opts.rc
	bytes := resource.MatrixBytes(n, n) * int64(count)
	if err := rc.AcquireMemory(ctx, bytes); err != nil {
		if errors.Is(err, resource.ErrMemoryLimit) {
			return nil, errs.Wrap(errs.ErrInvalidArgument, "symnmf", err)
		}
		return nil, err
	}
	return func() { rc.ReleaseMemory(bytes) }, nil
}

// Compare clusters ds into k groups with both algorithms and scores each
// clustering with the silhouette coefficient.
//
// k is validated before any work. After that the pipelines are independent:
// a failure in one is recorded on its own report entry and the other still
// runs. The returned error joins both pipeline failures; the report is
// returned in either case.
func (a *Analyzer) Compare(ctx context.Context, ds *dataset.Dataset, k int) (*report.Report, error) {
	if err := checkDataset("symnmf.Compare", ds); err != nil {
		return nil, err
	}
	if err := nmf.CheckK(k, ds.Len()); err != nil {
		return nil, err
	}

	log := a.opts.logger.WithDataset(ds.Name).WithK(k).WithCount(ds.Len()).WithDimension(ds.Dim())
	r := report.New(ds.Name, k, ds.Len(), ds.Dim())

	runNMF := func() {
		if err := a.runNMF(ctx, log, ds, k, &r.NMF); err != nil {
			r.NMF.Fail(err)
		}
	}
	runKMeans := func() {
		if err := a.runKMeans(ctx, log, ds, k, &r.KMeans); err != nil {
			r.KMeans.Fail(err)
		}
	}

	if a.opts.concurrent {
		var g errgroup.Group
		g.Go(func() error { runNMF(); return nil })
		g.Go(func() error { runKMeans(); return nil })
		_ = g.Wait()
	} else {
		runNMF()
		runKMeans()
	}

	return r, r.Err()
}

func (a *Analyzer) runNMF(ctx context.Context, log *Logger, ds *dataset.Dataset, k int, out *report.Pipeline) error {
	if err := a.opts.rc.AcquireWorker(ctx); err != nil {
		return err
	}
	defer a.opts.rc.ReleaseWorker()

	start := time.Now()
	res, err := a.factorize(ctx, ds, k)
	elapsed := time.Since(start)

	iterations := 0
	if res != nil {
		iterations = res.Iterations
	}
	a.opts.metricsCollector.RecordFactorize(iterations, elapsed, err)
	if err != nil {
		log.LogFactorize(ctx, iterations, false, 0, elapsed, err)
		return err
	}
	log.LogFactorize(ctx, res.Iterations, res.Converged, res.Delta, elapsed, nil)

	out.Iterations = res.Iterations
	out.Converged = res.Converged
	out.Labels = nmf.Labels(res.H)

	score, err := silhouette.Score(ds.Points, out.Labels)
	a.opts.metricsCollector.RecordScore(report.AlgorithmNMF, score, err)
	log.LogScore(ctx, report.AlgorithmNMF, score, err)
	if err != nil {
		return err
	}
	out.Score = score
	return nil
}

func (a *Analyzer) runKMeans(ctx context.Context, log *Logger, ds *dataset.Dataset, k int, out *report.Pipeline) error {
	if err := a.opts.rc.AcquireWorker(ctx); err != nil {
		return err
	}
	defer a.opts.rc.ReleaseWorker()

	start := time.Now()
	res, err := kmeans.Train(ctx, ds.Points, k, a.opts.kmeansConfig)
	elapsed := time.Since(start)

	iterations := 0
	if res != nil {
		iterations = res.Iterations
	}
	a.opts.metricsCollector.RecordKMeans(iterations, elapsed, err)
	if err != nil {
		log.LogKMeans(ctx, iterations, false, elapsed, err)
		return err
	}
	log.LogKMeans(ctx, res.Iterations, res.Converged, elapsed, nil)

	out.Iterations = res.Iterations
	out.Converged = res.Converged
	out.Labels, err = kmeans.Assign(res.Centroids, ds.Points, a.opts.kmeansConfig.Metric)
	if err != nil {
		return err
	}

	score, err := silhouette.Score(ds.Points, out.Labels)
	a.opts.metricsCollector.RecordScore(report.AlgorithmKMeans, score, err)
	log.LogScore(ctx, report.AlgorithmKMeans, score, err)
	if err != nil {
		return err
	}
	out.Score = score
	return nil
}

// factorize builds the normalized similarity matrix of ds and factorizes it.
func (a *Analyzer) factorize(ctx context.Context, ds *dataset.Dataset, k int) (*nmf.Result, error) {
	release, err := a.reserve(ctx, ds.Len(), 2)
	if err != nil {
		return nil, err
	}
	defer release()

	norm, err := a.normalized(ctx, ds)
	if err != nil {
		return nil, err
	}
	return a.opts.engine.Factorize(ctx, norm, k, a.opts.nmfConfig)
}

func (a *Analyzer) normalized(ctx context.Context, ds *dataset.Dataset) (*mat.SymDense, error) {
	e := a.opts.engine
	w, err := e.Similarity(ctx, ds.Points)
	if err != nil {
		return nil, err
	}
	d, err := e.Degree(w)
	if err != nil {
		return nil, err
	}
	return e.Normalize(w, d)
}

// Matrix computes the matrix selected by goal: W, D, Wnorm or the final
// factor H. k is validated for every goal.
func (a *Analyzer) Matrix(ctx context.Context, ds *dataset.Dataset, k int, goal Goal) (mat.Matrix, error) {
	if err := checkDataset("symnmf.Matrix", ds); err != nil {
		return nil, err
	}
	if err := nmf.CheckK(k, ds.Len()); err != nil {
		return nil, err
	}
	log := a.opts.logger.WithDataset(ds.Name).WithGoal(goal).WithK(k)

	e := a.opts.engine
	switch goal {
	case GoalSym:
		release, err := a.reserve(ctx, ds.Len(), 1)
		if err != nil {
			return nil, err
		}
		defer release()
		return e.Similarity(ctx, ds.Points)
	case GoalDDG:
		release, err := a.reserve(ctx, ds.Len(), 1)
		if err != nil {
			return nil, err
		}
		defer release()
		w, err := e.Similarity(ctx, ds.Points)
		if err != nil {
			return nil, err
		}
		return e.Degree(w)
	case GoalNorm:
		release, err := a.reserve(ctx, ds.Len(), 2)
		if err != nil {
			return nil, err
		}
		defer release()
		return a.normalized(ctx, ds)
	case GoalSymNMF:
		start := time.Now()
		res, err := a.factorize(ctx, ds, k)
		elapsed := time.Since(start)
		if err != nil {
			a.opts.metricsCollector.RecordFactorize(0, elapsed, err)
			log.LogFactorize(ctx, 0, false, 0, elapsed, err)
			return nil, err
		}
		a.opts.metricsCollector.RecordFactorize(res.Iterations, elapsed, nil)
		log.LogFactorize(ctx, res.Iterations, res.Converged, res.Delta, elapsed, nil)
		return res.H, nil
	default:
		return nil, errs.Usage("symnmf.Matrix", "unknown goal %s", goal)
	}
}

// KMeans validates k and the iteration cap as given on the command line and
// returns the trained centroids.
func (a *Analyzer) KMeans(ctx context.Context, ds *dataset.Dataset, k, itr float64) (*kmeans.Result, error) {
	if err := checkDataset("symnmf.KMeans", ds); err != nil {
		return nil, err
	}
	if err := kmeans.Validate(k, itr, ds.Len()); err != nil {
		return nil, err
	}

	cfg := a.opts.kmeansConfig
	cfg.MaxIter = int(itr)

	log := a.opts.logger.WithDataset(ds.Name).WithK(int(k))
	start := time.Now()
	res, err := kmeans.Train(ctx, ds.Points, int(k), cfg)
	elapsed := time.Since(start)

	iterations := 0
	if res != nil {
		iterations = res.Iterations
	}
	a.opts.metricsCollector.RecordKMeans(iterations, elapsed, err)
	if err != nil {
		log.LogKMeans(ctx, iterations, false, elapsed, err)
		return nil, err
	}
	log.LogKMeans(ctx, res.Iterations, res.Converged, elapsed, nil)
	return res, nil
}
