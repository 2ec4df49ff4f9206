package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"attendcli/pkg/contracts/domain"
)

// RunMetrics collects per-dataset gauges for one invocation of the tool.
// Each instance owns its registry so batch runs and tests never collide on
// the default registerer.
type RunMetrics struct {
	registry *prometheus.Registry

	punches     *prometheus.GaugeVec
	shifts      *prometheus.GaugeVec
	outliers    *prometheus.GaugeVec
	clusters    *prometheus.GaugeVec
	warnings    *prometheus.GaugeVec
	runDuration *prometheus.GaugeVec
	lastSuccess *prometheus.GaugeVec
	failures    *prometheus.CounterVec
}

// NewRunMetrics registers the attendance gauges on a fresh registry
func NewRunMetrics() *RunMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &RunMetrics{
		registry: reg,
		punches: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "attendance_punches",
			Help: "Punch events read for a dataset",
		}, []string{"dataset"}),
		shifts: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "attendance_shifts",
			Help: "Reconciled shift records by status",
		}, []string{"dataset", "status"}),
		outliers: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "attendance_outliers",
			Help: "Outlier shifts by tag",
		}, []string{"dataset", "tag"}),
		clusters: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "attendance_clusters",
			Help: "Effective number of behavioural clusters by partition",
		}, []string{"dataset", "partition"}),
		warnings: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "attendance_warnings",
			Help: "Non-fatal warnings emitted by a run, by code",
		}, []string{"dataset", "code"}),
		runDuration: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "attendance_run_duration_seconds",
			Help: "Wall time spent computing a dataset's report",
		}, []string{"dataset"}),
		lastSuccess: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "attendance_last_success_timestamp_seconds",
			Help: "Unix time of the last successful report for a dataset",
		}, []string{"dataset"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_run_failures_total",
			Help: "Runs that ended in error",
		}, []string{"dataset"}),
	}
}

// Registry exposes the underlying registry
func (m *RunMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveReport records the outcome of a successful run
func (m *RunMetrics) ObserveReport(dataset string, punches int, report *domain.Report, elapsed time.Duration) {
	if report == nil {
		return
	}

	m.punches.WithLabelValues(dataset).Set(float64(punches))

	var complete, incomplete int
	for _, s := range report.Shifts {
		if s.IsComplete() {
			complete++
		} else {
			incomplete++
		}
	}
	m.shifts.WithLabelValues(dataset, string(domain.ShiftStatusComplete)).Set(float64(complete))
	m.shifts.WithLabelValues(dataset, string(domain.ShiftStatusIncomplete)).Set(float64(incomplete))

	var low, high int
	for _, eo := range report.Outliers {
		for _, r := range eo.Records {
			if r.Tag == domain.OutlierHigh {
				high++
			} else {
				low++
			}
		}
	}
	m.outliers.WithLabelValues(dataset, string(domain.OutlierLow)).Set(float64(low))
	m.outliers.WithLabelValues(dataset, string(domain.OutlierHigh)).Set(float64(high))

	m.clusters.WithLabelValues(dataset, domain.DayTypeWeekday.String()).Set(float64(report.WeekdayClusters.K))
	m.clusters.WithLabelValues(dataset, domain.DayTypeWeekend.String()).Set(float64(report.WeekendClusters.K))

	counts := make(map[domain.WarningCode]int)
	for _, w := range report.Warnings {
		counts[w.Code]++
	}
	for code, n := range counts {
		m.warnings.WithLabelValues(dataset, string(code)).Set(float64(n))
	}

	m.runDuration.WithLabelValues(dataset).Set(elapsed.Seconds())
	m.lastSuccess.WithLabelValues(dataset).Set(float64(report.GeneratedAt.Unix()))
}

// ObserveFailure counts a dataset whose run failed
func (m *RunMetrics) ObserveFailure(dataset string) {
	m.failures.WithLabelValues(dataset).Inc()
}

// WriteTextfile writes the registry in the node-exporter textfile format
func (m *RunMetrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
