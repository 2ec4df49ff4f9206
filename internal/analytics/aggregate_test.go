package analytics

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendcli/internal/shared/testutil"
	"attendcli/pkg/contracts/domain"
)

func month(y int, m time.Month) domain.MonthKey {
	return domain.MonthKey{Year: y, Month: m}
}

func TestMonthly(t *testing.T) {
	records := []domain.ShiftRecord{
		testutil.CompleteShift("E1", "2024-02-01", 8),
		testutil.CompleteShift("E1", "2024-01-15", 9),
		testutil.CompleteShift("E1", "2024-01-16", 7.5),
		testutil.IncompleteShift("E1", "2024-01-17"),
		testutil.IncompleteShift("E2", "2024-01-17"),
	}

	monthly := NewAggregator(nil).Monthly(records)
	require.Len(t, monthly, 2)

	e1 := monthly["E1"]
	require.Len(t, e1, 2)
	assert.Equal(t, month(2024, time.January), e1[0].Month)
	assert.InDelta(t, 16.5, e1[0].TotalHours, 1e-9)
	assert.Equal(t, 2, e1[0].DistinctDays)
	assert.Equal(t, month(2024, time.February), e1[1].Month)
	assert.Equal(t, 1, e1[1].DistinctDays)

	assert.NotNil(t, monthly["E2"])
	assert.Empty(t, monthly["E2"])
}

func TestMonthly_OrderedAcrossYears(t *testing.T) {
	records := []domain.ShiftRecord{
		testutil.CompleteShift("E1", "2024-01-03", 8),
		testutil.CompleteShift("E1", "2023-12-29", 8),
		testutil.CompleteShift("E1", "2023-02-01", 8),
	}

	got := NewAggregator(nil).Monthly(records)["E1"]
	require.Len(t, got, 3)
	assert.Equal(t, "2023-02", got[0].Month.String())
	assert.Equal(t, "2023-12", got[1].Month.String())
	assert.Equal(t, "2024-01", got[2].Month.String())
}

func TestFused_Ordering(t *testing.T) {
	// 2024-01-01 Mon, 2024-01-06 Sat, 2024-01-07 Sun
	records := []domain.ShiftRecord{
		testutil.CompleteShift("C", "2024-01-01", 8),
		testutil.CompleteShift("C", "2024-01-02", 8),
		testutil.CompleteShift("A", "2024-01-01", 9),
		testutil.CompleteShift("B", "2024-01-01", 7),
		testutil.CompleteShift("B", "2024-01-02", 9),
		testutil.CompleteShift("D", "2024-01-01", 8),
		testutil.CompleteShift("D", "2024-01-02", 8),
		testutil.CompleteShift("A", "2024-01-06", 5),
		testutil.CompleteShift("B", "2024-01-06", 4),
		testutil.CompleteShift("B", "2024-01-07", 4),
		testutil.CompleteShift("A", "2024-02-05", 8),
		testutil.IncompleteShift("E", "2024-01-03"),
	}

	fused := NewAggregator(nil).Fused(records)

	type row struct {
		month   string
		dayType domain.DayType
		key     string
		days    int
	}
	var got []row
	for _, f := range fused {
		got = append(got, row{f.Month.String(), f.DayType, f.Employee.Key(), f.DaysWorked})
	}

	want := []row{
		{"2024-01", domain.DayTypeWeekday, "B", 2},
		{"2024-01", domain.DayTypeWeekday, "C", 2},
		{"2024-01", domain.DayTypeWeekday, "D", 2},
		{"2024-01", domain.DayTypeWeekday, "A", 1},
		{"2024-01", domain.DayTypeWeekend, "B", 2},
		{"2024-01", domain.DayTypeWeekend, "A", 1},
		{"2024-02", domain.DayTypeWeekday, "A", 1},
	}
	assert.Equal(t, want, got)

	// B averages 8 on weekdays, like C and D, so the key breaks the tie
	for _, f := range fused[:3] {
		assert.InDelta(t, 8.0, f.AverageHours, 1e-9)
	}
}

func TestFused_NonIncreasingWithinGroups(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	var records []domain.ShiftRecord
	employees := []string{"E1", "E2", "E3", "E4", "E5", "E6"}
	start := testutil.MustTime("2024-01-01")
	for d := 0; d < 90; d++ {
		date := start.AddDate(0, 0, d).Format(testutil.DateLayout)
		for _, e := range employees {
			if rng.IntN(3) == 0 {
				continue
			}
			records = append(records, testutil.CompleteShift(e, date, 4+rng.Float64()*8))
		}
	}

	fused := NewAggregator(nil).Fused(records)
	require.NotEmpty(t, fused)

	for i := 1; i < len(fused); i++ {
		prev, cur := fused[i-1], fused[i]
		if prev.Month != cur.Month || prev.DayType != cur.DayType {
			assert.True(t, prev.Month.Less(cur.Month) || prev.DayType < cur.DayType,
				"groups out of order at row %d", i)
			continue
		}
		assert.GreaterOrEqual(t, prev.DaysWorked, cur.DaysWorked, "row %d", i)
		if prev.DaysWorked == cur.DaysWorked {
			assert.GreaterOrEqual(t, prev.AverageHours, cur.AverageHours, "row %d", i)
		}
	}
}

func TestFused_MatchesMonthly(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1))
	var records []domain.ShiftRecord
	start := testutil.MustTime("2023-11-01")
	for d := 0; d < 120; d++ {
		date := start.AddDate(0, 0, d).Format(testutil.DateLayout)
		for _, e := range []string{"Ana", "Luis", "Marta"} {
			switch rng.IntN(4) {
			case 0:
				continue
			case 1:
				records = append(records, testutil.IncompleteShift(e, date))
			default:
				records = append(records, testutil.CompleteShift(e, date, 1+rng.Float64()*11))
			}
		}
	}

	agg := NewAggregator(nil)
	monthly := agg.Monthly(records)
	fused := agg.Fused(records)

	type key struct {
		employee string
		month    domain.MonthKey
	}
	hours := make(map[key]float64)
	days := make(map[key]int)
	for _, f := range fused {
		k := key{f.Employee.Key(), f.Month}
		hours[k] += f.TotalHours
		days[k] += f.DaysWorked
	}

	n := 0
	for emp, rows := range monthly {
		for _, m := range rows {
			k := key{emp, m.Month}
			assert.InDelta(t, m.TotalHours, hours[k], 1e-6, "%v", k)
			assert.Equal(t, m.DistinctDays, days[k], "%v", k)
			n++
		}
	}
	assert.Equal(t, len(hours), n)
}

func TestGeneral(t *testing.T) {
	records := []domain.ShiftRecord{
		testutil.CompleteShift("A", "2024-01-06", 5),
		testutil.CompleteShift("A", "2024-01-02", 8),
		testutil.CompleteShift("B", "2024-01-02", 7),
		testutil.CompleteShift("B", "2023-12-30", 4),
		testutil.IncompleteShift("C", "2024-01-02"),
	}

	general := NewAggregator(nil).General(records)
	require.Len(t, general, 3)

	assert.Equal(t, domain.GeneralSummary{Month: month(2023, time.December), DayType: domain.DayTypeWeekend, DayCount: 1, TotalHours: 4}, general[0])
	assert.Equal(t, domain.GeneralSummary{Month: month(2024, time.January), DayType: domain.DayTypeWeekday, DayCount: 2, TotalHours: 15}, general[1])
	assert.Equal(t, domain.GeneralSummary{Month: month(2024, time.January), DayType: domain.DayTypeWeekend, DayCount: 1, TotalHours: 5}, general[2])
}

func TestNest(t *testing.T) {
	records := []domain.ShiftRecord{
		testutil.CompleteShift("A", "2024-01-02", 8),
		testutil.CompleteShift("B", "2024-01-02", 8),
		testutil.CompleteShift("B", "2024-01-03", 8),
		testutil.CompleteShift("A", "2024-01-06", 5),
		testutil.CompleteShift("A", "2024-02-06", 5),
	}

	agg := NewAggregator(nil)
	fused := agg.Fused(records)
	nested := Nest(fused)

	require.Len(t, nested, 2)
	jan := nested[0]
	assert.Equal(t, month(2024, time.January), jan.Month)
	require.Len(t, jan.DayTypes, 2)
	assert.Equal(t, domain.DayTypeWeekday, jan.DayTypes[0].DayType)
	require.Len(t, jan.DayTypes[0].Rows, 2)
	assert.Equal(t, "B", jan.DayTypes[0].Rows[0].Employee.Key())
	assert.Equal(t, domain.DayTypeWeekend, jan.DayTypes[1].DayType)

	feb := nested[1]
	require.Len(t, feb.DayTypes, 1)
	assert.Equal(t, domain.DayTypeWeekday, feb.DayTypes[0].DayType)

	total := 0
	for _, mg := range nested {
		for _, dg := range mg.DayTypes {
			total += len(dg.Rows)
		}
	}
	assert.Equal(t, len(fused), total)

	assert.NotNil(t, Nest(nil))
}

func TestEmployeeSummaries(t *testing.T) {
	records := []domain.ShiftRecord{
		testutil.CompleteShift("B", "2024-01-02", 8),
		testutil.CompleteShift("B", "2024-01-03", 6),
		testutil.CompleteShift("B", "2024-01-04", 9),
		testutil.CompleteShift("B", "2024-01-05", 7),
		testutil.IncompleteShift("B", "2024-01-08"),
		testutil.IncompleteShift("A", "2024-01-02"),
	}

	summaries := NewAggregator(nil).EmployeeSummaries(records)
	require.Len(t, summaries, 2)

	assert.Equal(t, "A", summaries[0].Employee.Key())
	assert.Equal(t, 0, summaries[0].CompleteShifts)
	assert.Equal(t, 1, summaries[0].IncompleteShifts)
	assert.Equal(t, 0.0, summaries[0].TotalHours)

	b := summaries[1]
	assert.InDelta(t, 7.5, b.MedianDayHours, 1e-9)
	assert.InDelta(t, 30, b.TotalHours, 1e-9)
	assert.Equal(t, 4, b.CompleteShifts)
	assert.Equal(t, 1, b.IncompleteShifts)
}

func TestDetails_KeepsIncompleteAndOrder(t *testing.T) {
	undated := domain.ShiftRecord{
		Employee:   domain.Employee{ID: "A"},
		Status:     domain.ShiftStatusIncomplete,
		PunchCount: 1,
		Issues:     []domain.QualityIssue{{Code: domain.IssueMissingTimestamp}},
	}
	records := []domain.ShiftRecord{
		testutil.CompleteShift("A", "2024-01-02", 8),
		testutil.IncompleteShift("A", "2024-01-03"),
		undated,
	}

	details := NewAggregator(nil).Details(records)["A"]
	require.Len(t, details, 3)
	require.NotNil(t, details[0].DurationHours)
	assert.InDelta(t, 8, *details[0].DurationHours, 1e-9)
	assert.Nil(t, details[1].DurationHours)
	assert.False(t, details[2].Dated)

	byMonth := domain.DetailsByMonth(details)
	require.Len(t, byMonth, 1)
	assert.Len(t, byMonth[0].Records, 2)
}

func TestBuild(t *testing.T) {
	records := testutil.ShiftsWithHours("A", "2024-01-01", 8, 8, 8)
	v := NewAggregator(nil).Build(records)

	assert.Len(t, v.Details["A"], 3)
	require.Len(t, v.DetailsByMonth["A"], 1)
	assert.Len(t, v.DetailsByMonth["A"][0].Records, 3)
	assert.Len(t, v.Monthly["A"], 1)
	assert.Len(t, v.Employees, 1)
	assert.Len(t, v.Fused, 1)
	assert.Len(t, v.Nested, 1)
	assert.Len(t, v.General, 1)
	assert.False(t, math.IsNaN(v.Fused[0].AverageHours))
}

func TestAverage_ZeroDays(t *testing.T) {
	assert.Equal(t, 0.0, average(10, 0))
	assert.Equal(t, 2.5, average(10, 4))
}

func TestCalendars(t *testing.T) {
	records := []domain.ShiftRecord{
		testutil.CompleteShift("A", "2025-06-02", 8),
		testutil.CompleteShift("B", "2025-06-02", 7),
		testutil.IncompleteShift("C", "2025-06-02"),
		testutil.CompleteShift("A", "2025-07-01", 8),
	}
	period := domain.Period{Start: testutil.MustTime("2025-06-02"), End: testutil.MustTime("2025-07-01")}
	off := DaysOff{
		Holidays:  []time.Time{testutil.MustTime("2025-06-12"), testutil.MustTime("2025-06-13"), testutil.MustTime("2025-06-14")},
		NonWorked: []time.Time{testutil.MustTime("2025-06-04")},
	}

	cals := NewAggregator(nil).Calendars(period, records, off)
	require.Len(t, cals, 2)

	june := cals[0]
	assert.Equal(t, month(2025, time.June), june.Month)
	require.Len(t, june.Weeks, 6)
	assert.Nil(t, june.Weeks[0][0], "June 2025 starts on a Sunday")
	require.NotNil(t, june.Weeks[0][6])
	assert.Equal(t, 1, june.Weeks[0][6].Day)
	assert.Equal(t, domain.DayKindWeekend, june.Weeks[0][6].Kind)
	require.NotNil(t, june.Weeks[5][0])
	assert.Equal(t, 30, june.Weeks[5][0].Day)
	assert.Nil(t, june.Weeks[5][1])

	days := june.Days()
	require.Len(t, days, 30)
	tests := []struct {
		day  int
		kind domain.DayKind
	}{
		{2, domain.DayKindWorking},
		{4, domain.DayKindNonWorked},
		{12, domain.DayKindHoliday},
		{13, domain.DayKindHoliday},
		{14, domain.DayKindWeekend},
		{15, domain.DayKindWeekend},
		{16, domain.DayKindWorking},
	}
	for _, tt := range tests {
		d := days[tt.day-1]
		assert.Equal(t, tt.day, d.Day)
		assert.Equal(t, tt.kind, d.Kind, "June %d", tt.day)
		assert.Equal(t, domain.MondayIndex(d.Date.Weekday()), d.Weekday)
	}
	assert.Equal(t, 2, days[1].Present, "incomplete shifts do not count")
	assert.Equal(t, 0, days[2].Present)
	assert.Equal(t, 18, june.WorkingDays)

	july := cals[1]
	assert.Equal(t, month(2025, time.July), july.Month)
	assert.Equal(t, 1, july.Days()[0].Present)
	assert.Equal(t, 23, july.WorkingDays)
}

func TestCalendars_NoPeriod(t *testing.T) {
	cals := NewAggregator(nil).Calendars(domain.Period{}, nil, DaysOff{})
	assert.NotNil(t, cals)
	assert.Empty(t, cals)
}

func TestCalendars_YearBoundary(t *testing.T) {
	period := domain.Period{Start: testutil.MustTime("2024-12-30"), End: testutil.MustTime("2025-01-02")}
	cals := NewAggregator(nil).Calendars(period, nil, DaysOff{})

	require.Len(t, cals, 2)
	assert.Equal(t, month(2024, time.December), cals[0].Month)
	assert.Equal(t, month(2025, time.January), cals[1].Month)
}
