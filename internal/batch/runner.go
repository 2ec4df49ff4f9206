package batch

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"attendcli/internal/config"
	"attendcli/internal/engine"
	"attendcli/internal/infrastructure"
	"attendcli/pkg/contracts/domain"
)

// Dataset is one independent set of punches, usually one input file
type Dataset struct {
	Name    string
	Punches []domain.PunchEvent
}

// Result is the outcome of one dataset. Exactly one of Report and Err is set.
type Result struct {
	Dataset string
	Punches int
	Report  *domain.Report
	Err     error
	Elapsed time.Duration
}

// Failed reports whether the dataset aborted
func (r Result) Failed() bool {
	return r.Err != nil
}

// Runner runs the engine over several datasets with bounded concurrency
type Runner struct {
	engine      *engine.Engine
	concurrency int
	logger      *slog.Logger
	metrics     *infrastructure.RunMetrics
}

// NewRunner creates a runner. A concurrency below 1 uses the default.
func NewRunner(e *engine.Engine, concurrency int, logger *slog.Logger) *Runner {
	if concurrency < 1 {
		concurrency = config.DefaultBatchConcurrency
	}
	return &Runner{
		engine:      e,
		concurrency: concurrency,
		logger:      infrastructure.WithComponent(logger, "batch"),
	}
}

// WithMetrics records every result in m
func (r *Runner) WithMetrics(m *infrastructure.RunMetrics) *Runner {
	r.metrics = m
	return r
}

// Run processes every dataset and returns results in input order. Each
// dataset gets its own copy of the punches and its own run ID; a failing
// dataset never cancels its siblings.
func (r *Runner) Run(ctx context.Context, datasets []Dataset) []Result {
	results := make([]Result, len(datasets))

	var g errgroup.Group
	g.SetLimit(r.concurrency)

	for i, ds := range datasets {
		punches := slices.Clone(ds.Punches)
		g.Go(func() error {
			results[i] = r.runOne(ctx, ds.Name, punches)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, res := range results {
		if res.Failed() {
			failed++
		}
	}
	r.logger.InfoContext(ctx, "Batch completed",
		slog.Int("datasets", len(datasets)),
		slog.Int("failed", failed))

	return results
}

func (r *Runner) runOne(ctx context.Context, name string, punches []domain.PunchEvent) Result {
	ctx = infrastructure.WithDataset(ctx, name)
	ctx = infrastructure.WithRunID(ctx, infrastructure.GenerateRunID())

	start := time.Now()
	report, err := r.engine.Run(ctx, punches)
	res := Result{
		Dataset: name,
		Punches: len(punches),
		Report:  report,
		Err:     err,
		Elapsed: time.Since(start),
	}

	if err != nil {
		r.logger.ErrorContext(ctx, "Dataset failed",
			slog.String("dataset", name),
			slog.String("error", err.Error()))
		if r.metrics != nil {
			r.metrics.ObserveFailure(name)
		}
		return res
	}

	if r.metrics != nil {
		r.metrics.ObserveReport(name, res.Punches, report, res.Elapsed)
	}
	return res
}

// Failures returns the failed results, in input order
func Failures(results []Result) []Result {
	var out []Result
	for _, res := range results {
		if res.Failed() {
			out = append(out, res)
		}
	}
	return out
}
