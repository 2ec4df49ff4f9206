package engine

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"attendcli/internal/analytics"
	"attendcli/internal/clustering"
	"attendcli/internal/config"
	"attendcli/internal/dataprocessing"
	"attendcli/internal/infrastructure"
	"attendcli/pkg/contracts"
	"attendcli/pkg/contracts/domain"
)

// Options configure one engine
type Options struct {
	OutlierFactor float64
	Clustering    clustering.Options
	Location      *time.Location
	DaysOff       analytics.DaysOff
}

// DefaultOptions mirrors the configuration defaults
func DefaultOptions() Options {
	return Options{
		OutlierFactor: analytics.DefaultOutlierFactor,
		Clustering:    clustering.DefaultOptions(),
		Location:      time.UTC,
	}
}

// OptionsFromConfig converts the engine section of the configuration
func OptionsFromConfig(cfg config.EngineConfig) (Options, error) {
	loc, err := cfg.TimeLocation()
	if err != nil {
		return Options{}, fmt.Errorf("invalid location %q: %w", cfg.Location, err)
	}
	holidays, err := parseDays(cfg.Holidays, loc)
	if err != nil {
		return Options{}, fmt.Errorf("invalid holiday: %w", err)
	}
	nonWorked, err := parseDays(cfg.NonWorkedDays, loc)
	if err != nil {
		return Options{}, fmt.Errorf("invalid non-worked day: %w", err)
	}
	return Options{
		OutlierFactor: cfg.OutlierFactor,
		Clustering: clustering.Options{
			K:             cfg.Clusters,
			Restarts:      cfg.Restarts,
			MaxIterations: cfg.MaxIterations,
			Tolerance:     cfg.Tolerance,
			Seed:          cfg.Seed,
		},
		Location: loc,
		DaysOff:  analytics.DaysOff{Holidays: holidays, NonWorked: nonWorked},
	}, nil
}

func parseDays(days []string, loc *time.Location) ([]time.Time, error) {
	out := make([]time.Time, 0, len(days))
	for _, d := range days {
		t, err := time.ParseInLocation(time.DateOnly, d, loc)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Engine turns one dataset of punches into a Report. It holds no per-run
// state, so one Engine may serve concurrent runs.
type Engine struct {
	opts       Options
	logger     *slog.Logger
	reconciler *dataprocessing.Reconciler
	deriver    *dataprocessing.Deriver
	detector   *analytics.OutlierDetector
	aggregator *analytics.Aggregator
	clusterer  *clustering.Clusterer
	now        func() time.Time
}

// New creates an engine
func New(opts Options, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	logger = infrastructure.WithComponent(logger, "engine")

	return &Engine{
		opts:       opts,
		logger:     logger,
		reconciler: dataprocessing.NewReconciler(opts.Location, logger),
		deriver:    dataprocessing.NewDeriver(),
		detector:   analytics.NewOutlierDetector(opts.OutlierFactor, logger),
		aggregator: analytics.NewAggregator(logger),
		clusterer:  clustering.NewClusterer(opts.Clustering, logger),
		now:        time.Now,
	}
}

// Run reconciles punches into shifts and computes every view of the report.
// punches is copied on entry and never modified. The only fatal error is a
// required field missing from the whole dataset.
func (e *Engine) Run(ctx context.Context, punches []domain.PunchEvent) (*domain.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx = infrastructure.EnsureRunID(ctx)
	ctx, span := infrastructure.StartSpan(ctx, "engine.run", attribute.Int("punches", len(punches)))
	defer span.End()

	start := time.Now()
	work := slices.Clone(punches)

	e.logger.DebugContext(ctx, "Run started", slog.Int("punches", len(work)))

	shifts, err := e.reconcile(ctx, work)
	if err != nil {
		infrastructure.RecordError(span, err)
		e.logger.ErrorContext(ctx, "Run aborted", slog.String("error", err.Error()))
		return nil, err
	}

	report := &domain.Report{
		RunID:             infrastructure.GetRunID(ctx),
		GeneratedAt:       e.now().UTC(),
		DataFormatVersion: contracts.DataFormatVersion,
		Shifts:            shifts,
		Warnings:          []domain.Warning{},
	}
	if period, ok := dataprocessing.DatasetPeriod(shifts); ok {
		report.Period = period
	}

	e.detectOutliers(ctx, report)
	e.aggregate(ctx, report)
	report.WeekdayClusters = e.cluster(ctx, report, domain.DayTypeWeekday)
	report.WeekendClusters = e.cluster(ctx, report, domain.DayTypeWeekend)
	e.qualityWarnings(report)

	for _, w := range report.Warnings {
		e.logger.WarnContext(ctx, w.Message, slog.String("code", string(w.Code)), slog.String("scope", w.Scope))
	}

	span.SetAttributes(
		attribute.Int("shifts", len(report.Shifts)),
		attribute.Int("employees", len(report.Employees)),
		attribute.Int("warnings", len(report.Warnings)))

	e.logger.InfoContext(ctx, "Run completed",
		slog.Int("punches", len(work)),
		slog.Int("shifts", len(report.Shifts)),
		slog.Int("employees", len(report.Employees)),
		slog.Int("warnings", len(report.Warnings)),
		slog.Duration("elapsed", time.Since(start)))

	return report, nil
}

func (e *Engine) reconcile(ctx context.Context, punches []domain.PunchEvent) ([]domain.ShiftRecord, error) {
	_, span := infrastructure.StartSpan(ctx, "engine.reconcile")
	defer span.End()

	records, err := e.reconciler.Reconcile(punches)
	if err != nil {
		infrastructure.RecordError(span, err)
		return nil, err
	}
	records = e.deriver.Derive(records)
	span.SetAttributes(attribute.Int("records", len(records)))
	return records, nil
}

func (e *Engine) detectOutliers(ctx context.Context, report *domain.Report) {
	_, span := infrastructure.StartSpan(ctx, "engine.outliers")
	defer span.End()

	report.Outliers = e.detector.Detect(report.Shifts)
	report.OutliersByMonth = analytics.OutliersByMonth(report.Outliers)
	n := analytics.CountOutliers(report.Outliers)
	span.SetAttributes(attribute.Int("outliers", n))

	if n == 0 {
		report.Warnings = append(report.Warnings, domain.Warning{
			Code:    domain.WarningNoOutliers,
			Scope:   "dataset",
			Message: "No outlier shifts found",
		})
	}
}

func (e *Engine) aggregate(ctx context.Context, report *domain.Report) {
	_, span := infrastructure.StartSpan(ctx, "engine.aggregate")
	defer span.End()

	views := e.aggregator.Build(report.Shifts)
	report.Details = views.Details
	report.DetailsByMonth = views.DetailsByMonth
	report.Monthly = views.Monthly
	report.EmployeeSummaries = views.Employees
	report.Fused = views.Fused
	report.FusedByMonth = views.Nested
	report.General = views.General

	report.Employees = make([]domain.Employee, 0, len(views.Employees))
	seen := make(map[string]bool)
	for _, s := range views.Employees {
		report.Employees = append(report.Employees, s.Employee)
		if d := s.Employee.Department; d != "" && !seen[d] {
			seen[d] = true
			report.Departments = append(report.Departments, d)
		}
	}
	slices.Sort(report.Departments)
	if report.Departments == nil {
		report.Departments = []string{}
	}

	report.Calendar = e.aggregator.Calendars(report.Period, report.Shifts, e.opts.DaysOff)

	span.SetAttributes(
		attribute.Int("fused_rows", len(report.Fused)),
		attribute.Int("calendar_months", len(report.Calendar)))
}

func (e *Engine) cluster(ctx context.Context, report *domain.Report, partition domain.DayType) domain.ClusterResult {
	_, span := infrastructure.StartSpan(ctx, "engine.cluster", attribute.String("partition", partition.String()))
	defer span.End()

	result := e.clusterer.Cluster(report.Shifts, partition)
	span.SetAttributes(attribute.Int("k", result.K), attribute.String("status", string(result.Status)))

	switch {
	case result.Empty():
		report.Warnings = append(report.Warnings, domain.Warning{
			Code:    domain.WarningEmptyPartition,
			Scope:   partition.String(),
			Message: fmt.Sprintf("No complete %s shifts, clustering skipped", partition.String()),
		})
	case result.K < result.RequestedK:
		report.Warnings = append(report.Warnings, domain.Warning{
			Code:  domain.WarningReducedK,
			Scope: partition.String(),
			Message: fmt.Sprintf("Clustering %s shifts with k=%d instead of %d",
				partition.String(), result.K, result.RequestedK),
		})
	}
	return result
}

// qualityWarnings summarizes flagged records, one warning per issue code
func (e *Engine) qualityWarnings(report *domain.Report) {
	counts := make(map[domain.IssueCode]int)
	var order []domain.IssueCode
	for _, rec := range report.Shifts {
		for _, issue := range rec.Issues {
			if counts[issue.Code] == 0 {
				order = append(order, issue.Code)
			}
			counts[issue.Code]++
		}
	}
	slices.Sort(order)
	for _, code := range order {
		report.Warnings = append(report.Warnings, domain.Warning{
			Code:    domain.WarningDataQuality,
			Scope:   string(code),
			Message: fmt.Sprintf("%d record(s) flagged %s and excluded from aggregates", counts[code], code),
		})
	}
}
