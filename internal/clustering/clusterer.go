package clustering

import (
	"log/slog"

	"attendcli/internal/analytics"
	"attendcli/pkg/contracts/domain"
)

// Options are the k-means parameters of a clustering run
type Options struct {
	K             int
	Restarts      int
	MaxIterations int
	Tolerance     float64
	Seed          uint64
}

// DefaultOptions returns k=3, seed 42, 10 restarts, 300 iterations and a
// 1e-4 tolerance
func DefaultOptions() Options {
	return Options{
		K:             3,
		Restarts:      10,
		MaxIterations: 300,
		Tolerance:     1e-4,
		Seed:          42,
	}
}

// Clusterer groups employees by attendance behaviour within one partition
// of the shift table
type Clusterer struct {
	opts   Options
	logger *slog.Logger
}

// NewClusterer creates a clusterer
func NewClusterer(opts Options, logger *slog.Logger) *Clusterer {
	if opts.K < 1 {
		opts.K = DefaultOptions().K
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Clusterer{opts: opts, logger: logger}
}

// Cluster runs k-means over the employees that have complete shifts of the
// given day type. An empty partition is reported with status "empty"; fewer
// employees than k lowers k to the employee count.
func (c *Clusterer) Cluster(records []domain.ShiftRecord, partition domain.DayType) domain.ClusterResult {
	result := domain.ClusterResult{
		Partition:   partition,
		Status:      domain.PartitionEmpty,
		RequestedK:  c.opts.K,
		Clusters:    []domain.Cluster{},
		Assignments: []domain.ClusterAssignment{},
	}

	features := ExtractFeatures(records, partition)
	if len(features) == 0 {
		c.logger.Debug("Partition empty, clustering skipped", slog.String("partition", partition.String()))
		return result
	}

	km := KMeans{
		K:             c.opts.K,
		Restarts:      c.opts.Restarts,
		MaxIterations: c.opts.MaxIterations,
		Tolerance:     c.opts.Tolerance,
		Seed:          c.opts.Seed,
	}
	fit := km.Fit(Standardize(features))

	result.Status = domain.PartitionComputed
	result.K = len(fit.Centroids)
	result.Inertia = fit.Inertia
	result.Clusters = summarize(features, fit.Labels, result.K)
	for i, f := range features {
		result.Assignments = append(result.Assignments, domain.ClusterAssignment{
			Employee:  f.Employee,
			ClusterID: fit.Labels[i],
			Feature:   f,
		})
	}

	c.logger.Debug("Partition clustered",
		slog.String("partition", partition.String()),
		slog.Int("employees", len(features)),
		slog.Int("k", result.K),
		slog.Float64("inertia", result.Inertia))

	return result
}

// summarize computes member lists and mean raw features per cluster id
func summarize(features []domain.EmployeeFeature, labels []int, k int) []domain.Cluster {
	hours := make([][]float64, k)
	days := make([][]float64, k)
	spread := make([][]float64, k)
	clusters := make([]domain.Cluster, k)

	for i, f := range features {
		id := labels[i]
		clusters[id].Members = append(clusters[id].Members, f.Employee)
		hours[id] = append(hours[id], f.MeanHours)
		days[id] = append(days[id], float64(f.DaysWorked))
		spread[id] = append(spread[id], f.StdDevHours)
	}

	for id := range clusters {
		cl := &clusters[id]
		cl.ID = id
		cl.MeanHours = analytics.Mean(hours[id])
		cl.MeanDays = analytics.Mean(days[id])
		cl.MeanVariability = analytics.Mean(spread[id])
		cl.Description = Describe(cl.MeanHours, cl.MeanDays, cl.MeanVariability)
	}
	return clusters
}
