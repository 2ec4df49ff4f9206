package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendcli/internal/shared/testutil"
	"attendcli/pkg/contracts/domain"
)

func TestDerive_WeekendAcrossFullYear(t *testing.T) {
	var records []domain.ShiftRecord
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for d := start; d.Year() == 2024; d = d.AddDate(0, 0, 1) {
		records = append(records, domain.ShiftRecord{
			Employee: domain.Employee{ID: "E1"},
			Date:     d,
			Dated:    true,
			Entry:    d.Add(8 * time.Hour),
			Exit:     d.Add(16 * time.Hour),
			Status:   domain.ShiftStatusComplete,
		})
	}
	require.Len(t, records, 366)

	derived := NewDeriver().Derive(records)
	for _, rec := range derived {
		wantWeekend := rec.Date.Weekday() == time.Saturday || rec.Date.Weekday() == time.Sunday
		assert.Equal(t, wantWeekend, rec.IsWeekend, rec.Date.Format(testutil.DateLayout))
		assert.Equal(t, rec.Weekday >= 5, rec.IsWeekend)
		assert.Equal(t, domain.MonthOf(rec.Date), rec.Month)
	}
	assert.Equal(t, 0, derived[0].Weekday, "2024-01-01 is a Monday")
	assert.Equal(t, 6, derived[6].Weekday, "2024-01-07 is a Sunday")
}

func TestDerive_NegativeDuration(t *testing.T) {
	day := testutil.MustTime("2024-03-04")
	rec := domain.ShiftRecord{
		Employee: domain.Employee{ID: "E1"},
		Date:     day,
		Dated:    true,
		Entry:    day.Add(17 * time.Hour),
		Exit:     day.Add(8 * time.Hour),
		Status:   domain.ShiftStatusComplete,
	}

	out := NewDeriver().Derive([]domain.ShiftRecord{rec})
	require.Len(t, out, 1)
	assert.Equal(t, domain.ShiftStatusIncomplete, out[0].Status)
	assert.Nil(t, out[0].Duration)
	assert.True(t, out[0].HasIssue(domain.IssueNegativeDuration))

	assert.Equal(t, domain.ShiftStatusComplete, rec.Status, "input record untouched")
	assert.Empty(t, rec.Issues)
}

func TestDerive_IncompleteHasNoDuration(t *testing.T) {
	rec := testutil.IncompleteShift("E1", "2024-01-06")
	stale := time.Hour
	rec.Duration = &stale

	out := NewDeriver().Derive([]domain.ShiftRecord{rec})
	assert.Nil(t, out[0].Duration)
	_, ok := out[0].Hours()
	assert.False(t, ok)
}

func TestDerive_SubHourPrecision(t *testing.T) {
	day := testutil.MustTime("2024-01-02")
	out := NewDeriver().Derive([]domain.ShiftRecord{{
		Date:   day,
		Dated:  true,
		Entry:  day.Add(8*time.Hour + 7*time.Minute),
		Exit:   day.Add(16*time.Hour + 52*time.Minute + 30*time.Second),
		Status: domain.ShiftStatusComplete,
	}})

	h, ok := out[0].Hours()
	require.True(t, ok)
	assert.InDelta(t, 8.7583333, h, 1e-6)
}

func TestMondayIndex(t *testing.T) {
	tests := []struct {
		day  time.Weekday
		want int
	}{
		{time.Monday, 0},
		{time.Tuesday, 1},
		{time.Friday, 4},
		{time.Saturday, 5},
		{time.Sunday, 6},
	}

	for _, tt := range tests {
		t.Run(tt.day.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, domain.MondayIndex(tt.day))
		})
	}
}

func TestDatasetPeriod(t *testing.T) {
	records := []domain.ShiftRecord{
		testutil.CompleteShift("E1", "2024-02-10", 8),
		testutil.CompleteShift("E1", "2024-01-15", 8),
		{Employee: domain.Employee{ID: "E1"}},
		testutil.IncompleteShift("E2", "2024-03-01"),
	}

	p, ok := DatasetPeriod(records)
	require.True(t, ok)
	assert.Equal(t, testutil.MustTime("2024-01-15"), p.Start)
	assert.Equal(t, testutil.MustTime("2024-03-01"), p.End)

	_, ok = DatasetPeriod([]domain.ShiftRecord{{}})
	assert.False(t, ok)
}
