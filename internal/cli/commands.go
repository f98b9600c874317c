package cli

import (
	"context"
	"io"

	"github.com/hupe1980/symnmf"
	"github.com/hupe1980/symnmf/kmeans"
	"github.com/hupe1980/symnmf/report"
)

// Analysis returns the analysis tool: it clusters a dataset with SymNMF and
// K-means and prints both silhouette scores.
func Analysis(stdout, stderr io.Writer) *Tool {
	return newTool("analysis <k> <file_path>",
		"Compare SymNMF and K-means clusterings by silhouette score",
		exactArgs(2), runAnalysis, stdout, stderr)
}

// SymNMF returns the symnmf tool: it prints one of the graph matrices or
// the factor H.
func SymNMF(stdout, stderr io.Writer) *Tool {
	return newTool("symnmf <k> <goal> <file_path>",
		"Print the sym, ddg, norm or symnmf matrix of a dataset",
		exactArgs(3), runSymNMF, stdout, stderr)
}

// KMeans returns the kmeans tool: it prints the final centroids.
func KMeans(stdout, stderr io.Writer) *Tool {
	return newTool("kmeans <k> [max_iter] <file_path>",
		"Cluster a dataset with K-means and print the centroids",
		rangeArgs(2, 3), runKMeans, stdout, stderr)
}

func runAnalysis(ctx context.Context, e *env, out io.Writer, args []string) error {
	k, err := parseK(args[0])
	if err != nil {
		return err
	}
	ds, err := e.load(ctx, args[1])
	if err != nil {
		return err
	}

	r, err := e.analyzer.Compare(ctx, ds, k)
	if r != nil && e.cfg.Report != "" {
		sink, serr := newArchiver(ctx, e.cfg.Report, e.datasetOptions()...)
		if serr == nil {
			serr = sink.Archive(ctx, r)
		}
		if serr != nil {
			e.logger.ErrorContext(ctx, "report archive failed", "kind", symnmf.ErrorKind(serr), "error", serr)
			if err == nil {
				err = serr
			}
		}
	}
	if err != nil {
		return err
	}
	return report.WriteScores(out, r)
}

func runSymNMF(ctx context.Context, e *env, out io.Writer, args []string) error {
	k, err := parseK(args[0])
	if err != nil {
		return err
	}
	goal, err := symnmf.ParseGoal(args[1])
	if err != nil {
		return err
	}
	ds, err := e.load(ctx, args[2])
	if err != nil {
		return err
	}

	m, err := e.analyzer.Matrix(ctx, ds, k, goal)
	if err != nil {
		return err
	}
	return report.WriteMatrix(out, m)
}

func runKMeans(ctx context.Context, e *env, out io.Writer, args []string) error {
	k, err := kmeans.ParseArg(args[0])
	if err != nil {
		return err
	}
	itr := float64(e.cfg.KMeans.MaxIter)
	if len(args) == 3 {
		if itr, err = kmeans.ParseArg(args[1]); err != nil {
			return err
		}
	}
	ds, err := e.load(ctx, args[len(args)-1])
	if err != nil {
		return err
	}

	res, err := e.analyzer.KMeans(ctx, ds, k, itr)
	if err != nil {
		return err
	}
	return report.WriteCentroids(out, res.Centroids)
}
