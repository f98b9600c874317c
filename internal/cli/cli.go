package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/hupe1980/symnmf"
	"github.com/hupe1980/symnmf/dataset"
	"github.com/hupe1980/symnmf/errs"
	"github.com/hupe1980/symnmf/kmeans"
	"github.com/hupe1980/symnmf/resource"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ErrorLine is the only output of a failed run.
const ErrorLine = "An Error Has Occurred"

// env is the per-invocation state shared by the run funcs.
type env struct {
	cfg      Config
	logger   *symnmf.Logger
	closer   io.Closer
	metrics  symnmf.MetricsCollector
	prom     *symnmf.PrometheusCollector
	rc       *resource.Controller
	analyzer *symnmf.Analyzer
}

func newEnv(cfg Config, stderr io.Writer) (*env, error) {
	logger, closer, err := newLogger(cfg.Log, stderr)
	if err != nil {
		return nil, err
	}

	e := &env{
		cfg:     cfg,
		logger:  logger,
		closer:  closer,
		metrics: symnmf.NoopMetricsCollector{},
		rc: resource.NewController(resource.Config{
			MemoryLimitBytes:   cfg.MemoryLimit,
			MaxWorkers:         2,
			IOLimitBytesPerSec: cfg.IOLimit,
		}),
	}
	if cfg.MetricsFile != "" {
		e.prom = symnmf.NewPrometheusCollector()
		e.metrics = e.prom
	}

	e.analyzer = symnmf.New(
		symnmf.WithLogger(logger),
		symnmf.WithMetricsCollector(e.metrics),
		symnmf.WithNMFConfig(cfg.NMFConfig()),
		symnmf.WithKMeansConfig(cfg.KMeansConfig()),
		symnmf.WithResourceController(e.rc),
		symnmf.WithWorkers(cfg.Workers),
		symnmf.WithConcurrentPipelines(cfg.Workers > 1),
	)
	return e, nil
}

// writeMetrics writes the metrics textfile, if one is configured.
func (e *env) writeMetrics() error {
	if e.prom == nil {
		return nil
	}
	if err := e.prom.WriteToTextfile(e.cfg.MetricsFile); err != nil {
		return errs.IO("cli", err, "write metrics %s", e.cfg.MetricsFile)
	}
	return nil
}

func (e *env) datasetOptions() []dataset.Option {
	opts := []dataset.Option{dataset.WithResourceController(e.rc)}
	if e.cfg.Insecure {
		opts = append(opts, dataset.WithInsecure())
	}
	return opts
}

// load reads the dataset at uri and records the load.
func (e *env) load(ctx context.Context, uri string) (*dataset.Dataset, error) {
	start := time.Now()
	ds, err := dataset.Open(ctx, uri, e.datasetOptions()...)
	n, dim := 0, 0
	if ds != nil {
		n, dim = ds.Len(), ds.Dim()
	}
	e.metrics.RecordLoad(n, time.Since(start), err)
	e.logger.LogLoad(ctx, uri, n, dim, err)
	return ds, err
}

// runFunc is the body of a tool once the environment is ready.
type runFunc func(ctx context.Context, e *env, out io.Writer, args []string) error

// Tool is a runnable command-line tool: a cobra command carrying the
// shared flags around a runFunc.
type Tool struct {
	cmd    *cobra.Command
	env    *env
	stdout io.Writer
	stderr io.Writer
}

func newTool(use, short string, args cobra.PositionalArgs, run runFunc, stdout, stderr io.Writer) *Tool {
	t := &Tool{stdout: stdout, stderr: stderr}
	t.cmd = &cobra.Command{
		Use:           use,
		Short:         short,
		Args:          args,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(viper.New(), cmd.Flags())
			if err != nil {
				return err
			}
			e, err := newEnv(cfg, t.stderr)
			if err != nil {
				return err
			}
			t.env = e
			return run(cmd.Context(), e, t.stdout, args)
		},
	}
	t.cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errs.Usage("cli", "%v", err)
	})
	t.cmd.SetOut(stdout)
	t.cmd.SetErr(stderr)
	addFlags(t.cmd.Flags())
	return t
}

// Command exposes the underlying cobra command.
func (t *Tool) Command() *cobra.Command { return t.cmd }

// Execute runs the tool with args and returns the process exit status.
func (t *Tool) Execute(ctx context.Context, args []string) int {
	t.env = nil
	t.cmd.SetArgs(args)
	err := t.cmd.ExecuteContext(ctx)

	logger := symnmf.NewLogger(slog.NewTextHandler(t.stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	if t.env != nil {
		logger = t.env.logger
		defer t.env.closer.Close()
		if merr := t.env.writeMetrics(); merr != nil && err == nil {
			err = merr
		}
	}

	if err != nil {
		logger.ErrorContext(ctx, "command failed",
			"command", t.cmd.Name(),
			"kind", symnmf.ErrorKind(err),
			"error", err,
		)
		fmt.Fprintln(t.stdout, ErrorLine)
		return 1
	}
	return 0
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return errs.Usage("cli", "accepts %d args, received %d", n, len(args))
		}
		return nil
	}
}

func rangeArgs(lo, hi int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < lo || len(args) > hi {
			return errs.Usage("cli", "accepts between %d and %d args, received %d", lo, hi, len(args))
		}
		return nil
	}
}

// parseK parses an integral cluster count such as "3" or "3.0".
func parseK(s string) (int, error) {
	v, err := kmeans.ParseArg(s)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, errs.Invalid("cli", "invalid number of clusters: %s", s)
	}
	return int(v), nil
}
