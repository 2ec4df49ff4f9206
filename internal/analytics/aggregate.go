package analytics

import (
	"cmp"
	"log/slog"
	"slices"
	"time"

	"attendcli/pkg/contracts/domain"
)

// Aggregator builds the summary views of an enriched shift table. Only
// complete records contribute hours and days.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates an aggregator
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

// Views bundles every aggregate of one run
type Views struct {
	Details        map[string][]domain.ShiftDetail
	DetailsByMonth map[string][]domain.MonthDetails
	Monthly        map[string][]domain.MonthlySummary
	Employees      []domain.EmployeeSummary
	Fused          []domain.FusedSummary
	Nested         []domain.MonthGroup
	General        []domain.GeneralSummary
}

// Build computes all views in one call
func (a *Aggregator) Build(records []domain.ShiftRecord) Views {
	fused := a.Fused(records)
	details := a.Details(records)
	v := Views{
		Details:        details,
		DetailsByMonth: DetailsByMonth(details),
		Monthly:        a.Monthly(records),
		Employees:      a.EmployeeSummaries(records),
		Fused:          fused,
		Nested:         Nest(fused),
		General:        a.General(records),
	}

	a.logger.Debug("Aggregates built",
		slog.Int("employees", len(v.Employees)),
		slog.Int("fused_rows", len(v.Fused)),
		slog.Int("general_rows", len(v.General)))

	return v
}

// Details returns every record of each employee, complete or not, in the
// order received
func (a *Aggregator) Details(records []domain.ShiftRecord) map[string][]domain.ShiftDetail {
	out := make(map[string][]domain.ShiftDetail)
	for _, rec := range records {
		key := rec.Employee.Key()
		out[key] = append(out[key], domain.DetailFromShift(rec))
	}
	return out
}

// DetailsByMonth regroups each employee's detail view into month buckets
func DetailsByMonth(details map[string][]domain.ShiftDetail) map[string][]domain.MonthDetails {
	out := make(map[string][]domain.MonthDetails, len(details))
	for key, d := range details {
		out[key] = domain.DetailsByMonth(d)
	}
	return out
}

type monthAcc struct {
	employee domain.Employee
	month    domain.MonthKey
	hours    float64
	days     map[time.Time]struct{}
}

// Monthly returns each employee's total hours and distinct days per month,
// ordered by month. Every employee in records gets an entry, possibly empty.
func (a *Aggregator) Monthly(records []domain.ShiftRecord) map[string][]domain.MonthlySummary {
	type key struct {
		employee string
		month    domain.MonthKey
	}

	out := make(map[string][]domain.MonthlySummary)
	accs := make(map[key]*monthAcc)
	for _, rec := range records {
		emp := rec.Employee.Key()
		if _, ok := out[emp]; !ok {
			out[emp] = []domain.MonthlySummary{}
		}
		h, ok := completeHours(rec)
		if !ok {
			continue
		}
		k := key{emp, rec.Month}
		acc, ok := accs[k]
		if !ok {
			acc = &monthAcc{employee: rec.Employee, month: rec.Month, days: make(map[time.Time]struct{})}
			accs[k] = acc
		}
		acc.hours += h
		acc.days[rec.Date] = struct{}{}
	}

	for k, acc := range accs {
		out[k.employee] = append(out[k.employee], domain.MonthlySummary{
			Employee:     acc.employee,
			Month:        acc.month,
			TotalHours:   acc.hours,
			DistinctDays: len(acc.days),
		})
	}
	for emp := range out {
		slices.SortFunc(out[emp], func(x, y domain.MonthlySummary) int {
			return x.Month.Compare(y.Month)
		})
	}
	return out
}

// Fused groups complete records by (month, day type, employee). Rows are
// ordered by month, then day type, then days worked descending, then
// average descending, then employee key.
func (a *Aggregator) Fused(records []domain.ShiftRecord) []domain.FusedSummary {
	type key struct {
		month    domain.MonthKey
		dayType  domain.DayType
		employee string
	}

	var order []key
	rows := make(map[key]*domain.FusedSummary)
	for _, rec := range records {
		h, ok := completeHours(rec)
		if !ok {
			continue
		}
		k := key{rec.Month, rec.DayType(), rec.Employee.Key()}
		row, ok := rows[k]
		if !ok {
			row = &domain.FusedSummary{Month: rec.Month, DayType: rec.DayType(), Employee: rec.Employee}
			rows[k] = row
			order = append(order, k)
		}
		row.DaysWorked++
		row.TotalHours += h
	}

	out := make([]domain.FusedSummary, 0, len(order))
	for _, k := range order {
		row := *rows[k]
		row.AverageHours = average(row.TotalHours, row.DaysWorked)
		out = append(out, row)
	}

	slices.SortStableFunc(out, compareFused)
	return out
}

func compareFused(x, y domain.FusedSummary) int {
	if c := x.Month.Compare(y.Month); c != 0 {
		return c
	}
	if c := cmp.Compare(x.DayType, y.DayType); c != 0 {
		return c
	}
	if c := cmp.Compare(y.DaysWorked, x.DaysWorked); c != 0 {
		return c
	}
	if c := cmp.Compare(y.AverageHours, x.AverageHours); c != 0 {
		return c
	}
	return cmp.Compare(x.Employee.Key(), y.Employee.Key())
}

// General totals complete records of all employees per (month, day type),
// ordered by month then day type
func (a *Aggregator) General(records []domain.ShiftRecord) []domain.GeneralSummary {
	type key struct {
		month   domain.MonthKey
		dayType domain.DayType
	}

	rows := make(map[key]*domain.GeneralSummary)
	for _, rec := range records {
		h, ok := completeHours(rec)
		if !ok {
			continue
		}
		k := key{rec.Month, rec.DayType()}
		row, ok := rows[k]
		if !ok {
			row = &domain.GeneralSummary{Month: rec.Month, DayType: rec.DayType()}
			rows[k] = row
		}
		row.DayCount++
		row.TotalHours += h
	}

	out := make([]domain.GeneralSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	slices.SortFunc(out, func(x, y domain.GeneralSummary) int {
		if c := x.Month.Compare(y.Month); c != 0 {
			return c
		}
		return cmp.Compare(x.DayType, y.DayType)
	})
	return out
}

// EmployeeSummaries returns the whole-period summary of every employee,
// ordered by employee key
func (a *Aggregator) EmployeeSummaries(records []domain.ShiftRecord) []domain.EmployeeSummary {
	type acc struct {
		summary domain.EmployeeSummary
		hours   []float64
	}

	var keys []string
	accs := make(map[string]*acc)
	for _, rec := range records {
		key := rec.Employee.Key()
		e, ok := accs[key]
		if !ok {
			e = &acc{summary: domain.EmployeeSummary{Employee: rec.Employee}}
			accs[key] = e
			keys = append(keys, key)
		}
		h, ok := completeHours(rec)
		if !ok {
			e.summary.IncompleteShifts++
			continue
		}
		e.summary.CompleteShifts++
		e.hours = append(e.hours, h)
	}

	slices.Sort(keys)
	out := make([]domain.EmployeeSummary, 0, len(keys))
	for _, key := range keys {
		e := accs[key]
		e.summary.TotalHours = Sum(e.hours)
		e.summary.MedianDayHours = Median(e.hours)
		out = append(out, e.summary)
	}
	return out
}

// Nest regroups ordered fused rows into month → day type → rows, keeping
// the row order within each group
func Nest(fused []domain.FusedSummary) []domain.MonthGroup {
	var out []domain.MonthGroup
	for _, row := range fused {
		if n := len(out); n == 0 || out[n-1].Month != row.Month {
			out = append(out, domain.MonthGroup{Month: row.Month})
		}
		mg := &out[len(out)-1]
		if n := len(mg.DayTypes); n == 0 || mg.DayTypes[n-1].DayType != row.DayType {
			mg.DayTypes = append(mg.DayTypes, domain.DayTypeGroup{DayType: row.DayType})
		}
		dg := &mg.DayTypes[len(mg.DayTypes)-1]
		dg.Rows = append(dg.Rows, row)
	}
	if out == nil {
		out = []domain.MonthGroup{}
	}
	return out
}

// completeHours returns the hours of a complete, dated record
func completeHours(rec domain.ShiftRecord) (float64, bool) {
	if !rec.IsComplete() || !rec.Dated {
		return 0, false
	}
	return rec.Hours()
}

func average(total float64, days int) float64 {
	if days == 0 {
		return 0
	}
	return total / float64(days)
}
