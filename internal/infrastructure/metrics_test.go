package infrastructure

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendcli/pkg/contracts/domain"
)

func TestRunMetrics_WriteTextfile(t *testing.T) {
	hours := 8 * time.Hour
	report := &domain.Report{
		GeneratedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Shifts: []domain.ShiftRecord{
			{Status: domain.ShiftStatusComplete, Duration: &hours},
			{Status: domain.ShiftStatusComplete, Duration: &hours},
			{Status: domain.ShiftStatusIncomplete},
		},
		Outliers: map[string]domain.EmployeeOutliers{
			"E1": {Records: []domain.OutlierRecord{{Tag: domain.OutlierLow}, {Tag: domain.OutlierHigh}, {Tag: domain.OutlierHigh}}},
			"E2": {Records: []domain.OutlierRecord{}},
		},
		WeekdayClusters: domain.ClusterResult{K: 3},
		WeekendClusters: domain.ClusterResult{K: 0, Status: domain.PartitionEmpty},
		Warnings: []domain.Warning{
			{Code: domain.WarningEmptyPartition, Scope: "weekend"},
		},
	}

	m := NewRunMetrics()
	m.ObserveReport("march", 42, report, 1500*time.Millisecond)
	m.ObserveFailure("april")

	path := filepath.Join(t.TempDir(), "metrics", "attendance.prom")
	require.NoError(t, m.WriteTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, `attendance_punches{dataset="march"} 42`)
	assert.Contains(t, text, `attendance_shifts{dataset="march",status="complete"} 2`)
	assert.Contains(t, text, `attendance_shifts{dataset="march",status="incomplete"} 1`)
	assert.Contains(t, text, `attendance_outliers{dataset="march",tag="high"} 2`)
	assert.Contains(t, text, `attendance_outliers{dataset="march",tag="low"} 1`)
	assert.Contains(t, text, `attendance_clusters{dataset="march",partition="weekday"} 3`)
	assert.Contains(t, text, `attendance_warnings{code="empty_partition",dataset="march"} 1`)
	assert.Contains(t, text, `attendance_run_duration_seconds{dataset="march"} 1.5`)
	assert.Contains(t, text, `attendance_run_failures_total{dataset="april"} 1`)
}

func TestRunMetrics_NoPath(t *testing.T) {
	m := NewRunMetrics()
	m.ObserveReport("x", 0, nil, 0)
	assert.NoError(t, m.WriteTextfile(""))
}

func TestRunMetrics_IndependentRegistries(t *testing.T) {
	a, b := NewRunMetrics(), NewRunMetrics()
	assert.NotSame(t, a.Registry(), b.Registry())
}
