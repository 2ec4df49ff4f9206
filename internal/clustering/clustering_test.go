package clustering

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendcli/internal/shared/testutil"
	"attendcli/pkg/contracts/domain"
)

// weekdays returns the first n Monday-to-Friday dates from 2024-01-01
func weekdays(n int) []string {
	var out []string
	for d := testutil.MustTime("2024-01-01"); len(out) < n; d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		out = append(out, d.Format(testutil.DateLayout))
	}
	return out
}

// behaviourFixture builds three well separated groups of weekday workers:
// L* long and daily, M* average and irregular, S* short and infrequent
func behaviourFixture() []domain.ShiftRecord {
	var records []domain.ShiftRecord
	for i := 1; i <= 3; i++ {
		for _, d := range weekdays(22) {
			records = append(records, testutil.CompleteShift(fmt.Sprintf("L%d", i), d, 10))
		}
		for j, d := range weekdays(16) {
			h := 6.0
			if j%2 == 1 {
				h = 10
			}
			records = append(records, testutil.CompleteShift(fmt.Sprintf("M%d", i), d, h))
		}
		for _, d := range weekdays(5) {
			records = append(records, testutil.CompleteShift(fmt.Sprintf("S%d", i), d, 5))
		}
	}
	return records
}

func TestCluster_SeparatesBehaviours(t *testing.T) {
	result := NewClusterer(DefaultOptions(), nil).Cluster(behaviourFixture(), domain.DayTypeWeekday)

	assert.Equal(t, domain.PartitionComputed, result.Status)
	assert.Equal(t, 3, result.RequestedK)
	require.Equal(t, 3, result.K)
	require.Len(t, result.Clusters, 3)
	require.Len(t, result.Assignments, 9)

	got := make(map[string]int)
	for _, a := range result.Assignments {
		got[a.Employee.Key()] = a.ClusterID
	}
	want := map[string]int{
		"L1": 0, "L2": 0, "L3": 0,
		"M1": 1, "M2": 1, "M3": 1,
		"S1": 2, "S2": 2, "S3": 2,
	}
	assert.Equal(t, want, got)

	long, mid, short := result.Clusters[0], result.Clusters[1], result.Clusters[2]
	assert.Equal(t, "Group characterized by long shifts, near-daily attendance, consistent schedule.", long.Description)
	assert.Equal(t, "Group characterized by average shifts, moderate attendance, high variability.", mid.Description)
	assert.Equal(t, "Group characterized by short shifts, infrequent attendance, consistent schedule.", short.Description)

	assert.InDelta(t, 10, long.MeanHours, 1e-9)
	assert.InDelta(t, 22, long.MeanDays, 1e-9)
	assert.InDelta(t, 0, long.MeanVariability, 1e-9)
	assert.Len(t, mid.Members, 3)
	assert.InDelta(t, 8, mid.MeanHours, 1e-9)
	assert.InDelta(t, 16, mid.MeanDays, 1e-9)
}

func TestCluster_DenseIDs(t *testing.T) {
	result := NewClusterer(DefaultOptions(), nil).Cluster(behaviourFixture(), domain.DayTypeWeekday)

	for i, cl := range result.Clusters {
		assert.Equal(t, i, cl.ID)
		assert.NotEmpty(t, cl.Members)
	}
	for _, a := range result.Assignments {
		assert.GreaterOrEqual(t, a.ClusterID, 0)
		assert.Less(t, a.ClusterID, result.K)
	}
}

func TestCluster_Reproducible(t *testing.T) {
	records := behaviourFixture()
	for i := 0; i < 6; i++ {
		h := 6 + float64(i)
		records = append(records, testutil.CompleteShift(fmt.Sprintf("X%d", i), "2024-01-03", h))
	}

	c := NewClusterer(DefaultOptions(), nil)
	first := c.Cluster(records, domain.DayTypeWeekday)
	second := NewClusterer(DefaultOptions(), nil).Cluster(records, domain.DayTypeWeekday)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("clustering not reproducible (-first +second):\n%s", diff)
	}
}

func TestCluster_EmptyPartition(t *testing.T) {
	result := NewClusterer(DefaultOptions(), nil).Cluster(behaviourFixture(), domain.DayTypeWeekend)

	assert.True(t, result.Empty())
	assert.Equal(t, domain.DayTypeWeekend, result.Partition)
	assert.Equal(t, 3, result.RequestedK)
	assert.Equal(t, 0, result.K)
	assert.NotNil(t, result.Clusters)
	assert.Empty(t, result.Clusters)
	assert.NotNil(t, result.Assignments)
}

func TestCluster_ReducesK(t *testing.T) {
	records := append(
		testutil.ShiftsWithHours("A", "2024-01-01", 8, 8),
		testutil.ShiftsWithHours("B", "2024-01-01", 4)...,
	)

	result := NewClusterer(DefaultOptions(), nil).Cluster(records, domain.DayTypeWeekday)
	assert.Equal(t, domain.PartitionComputed, result.Status)
	assert.Equal(t, 3, result.RequestedK)
	assert.Equal(t, 2, result.K)
	require.Len(t, result.Assignments, 2)
	assert.Equal(t, 0, result.Assignments[0].ClusterID)
	assert.Equal(t, 1, result.Assignments[1].ClusterID)
}

func TestCluster_IdenticalEmployees(t *testing.T) {
	var records []domain.ShiftRecord
	for _, key := range []string{"A", "B", "C"} {
		records = append(records, testutil.ShiftsWithHours(key, "2024-01-01", 8, 8)...)
	}

	result := NewClusterer(DefaultOptions(), nil).Cluster(records, domain.DayTypeWeekday)
	assert.Equal(t, 1, result.K)
	require.Len(t, result.Clusters, 1)
	assert.Len(t, result.Clusters[0].Members, 3)
}

func TestCluster_IgnoresIncompleteAndOtherPartition(t *testing.T) {
	records := []domain.ShiftRecord{
		testutil.CompleteShift("A", "2024-01-06", 8),
		testutil.IncompleteShift("B", "2024-01-06"),
		testutil.CompleteShift("C", "2024-01-02", 8),
	}

	result := NewClusterer(DefaultOptions(), nil).Cluster(records, domain.DayTypeWeekend)
	require.Len(t, result.Assignments, 1)
	assert.Equal(t, "A", result.Assignments[0].Employee.Key())
	assert.Equal(t, 1, result.K)
}

func TestExtractFeatures(t *testing.T) {
	records := append(
		testutil.ShiftsWithHours("B", "2024-01-01", 6, 10),
		testutil.CompleteShift("A", "2024-01-02", 9),
		testutil.IncompleteShift("A", "2024-01-03"),
	)

	features := ExtractFeatures(records, domain.DayTypeWeekday)
	require.Len(t, features, 2)

	assert.Equal(t, "A", features[0].Employee.Key())
	assert.InDelta(t, 9, features[0].MeanHours, 1e-9)
	assert.Equal(t, 1, features[0].DaysWorked)
	assert.Equal(t, 0.0, features[0].StdDevHours, "single observation")

	assert.Equal(t, "B", features[1].Employee.Key())
	assert.InDelta(t, 8, features[1].MeanHours, 1e-9)
	assert.Equal(t, 2, features[1].DaysWorked)
	assert.InDelta(t, 2.8284271, features[1].StdDevHours, 1e-6)
}

func TestStandardize(t *testing.T) {
	features := []domain.EmployeeFeature{
		{MeanHours: 6, DaysWorked: 10, StdDevHours: 1},
		{MeanHours: 10, DaysWorked: 10, StdDevHours: 3},
	}

	points := Standardize(features)
	require.Len(t, points, 2)
	assert.InDeltaSlice(t, []float64{-1, 0, -1}, points[0], 1e-12)
	assert.InDeltaSlice(t, []float64{1, 0, 1}, points[1], 1e-12)

	assert.Nil(t, Standardize(nil))
}

func TestKMeans_Fit(t *testing.T) {
	points := [][]float64{{10}, {0}, {10.1}, {0.1}}
	fit := KMeans{K: 2, Restarts: 5, MaxIterations: 100, Tolerance: 1e-9, Seed: 1}.Fit(points)

	assert.Equal(t, []int{0, 1, 0, 1}, fit.Labels)
	assert.InDelta(t, 0.01, fit.Inertia, 1e-9)
	require.Len(t, fit.Centroids, 2)
	assert.InDelta(t, 10.05, fit.Centroids[0][0], 1e-9)
	assert.InDelta(t, 0.05, fit.Centroids[1][0], 1e-9)

	assert.Empty(t, KMeans{K: 2}.Fit(nil).Labels)
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		hours, days, stddev float64
		want                string
	}{
		{9.5, 22, 0.2, "Group characterized by long shifts, near-daily attendance, consistent schedule."},
		{9, 21.9, 0.6, "Group characterized by average shifts, moderate attendance, moderate variability."},
		{7.01, 15, 1.5, "Group characterized by average shifts, moderate attendance, moderate variability."},
		{7, 14, 1.51, "Group characterized by short shifts, infrequent attendance, high variability."},
		{4, 1, 0.5, "Group characterized by short shifts, infrequent attendance, consistent schedule."},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.hours, tt.days, tt.stddev))
		})
	}
}
