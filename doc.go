// Package symnmf compares two clusterings of the same point set: symmetric
// non-negative matrix factorization of a similarity graph (SymNMF) and
// Lloyd's K-means. Each clustering is scored with the silhouette coefficient.
//
// # Quick Start
//
//	ctx := context.Background()
//	ds, _ := dataset.Open(ctx, "points.txt")
//
//	a := symnmf.New()
//	r, err := a.Compare(ctx, ds, 3)
//	if err != nil { ... }
//	fmt.Printf("nmf: %.4f\nkmeans: %.4f\n", r.NMF.Score, r.KMeans.Score)
//
// # Pipelines
//
// SymNMF builds the Gaussian similarity matrix W (Wij = exp(-||xi-xj||²/2),
// zero diagonal), its degree matrix D and the normalized matrix
// D^-1/2 W D^-1/2, then factorizes the latter as H·Hᵀ with damped
// multiplicative updates. Each point is labeled with the column of its
// largest H entry.
//
// K-means starts from the first k points and alternates nearest-centroid
// assignment with mean updates until no centroid moves by ε or more.
//
// The two pipelines share only the input. Compare records a failure of one
// on its own report entry; the other still completes. Use
// WithConcurrentPipelines to run them in parallel.
//
// # Inspection
//
// Matrix returns any intermediate matrix of the SymNMF pipeline (see Goal).
// KMeans runs K-means alone with command-line validation of k and the
// iteration cap.
//
// # Errors
//
// Every failure is classified as ErrUsage, ErrInvalidArgument, ErrIO or
// ErrNumerical (see package errs); test with errors.Is.
//
// # Observability
//
// Logger wraps log/slog with run-specific fields. MetricsCollector receives
// load, run and score events; BasicMetricsCollector keeps counters in memory
// and PrometheusCollector exports them.
package symnmf
