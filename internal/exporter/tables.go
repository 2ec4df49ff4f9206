package exporter

import (
	"strings"

	"attendcli/pkg/contracts/domain"
)

// Table is one flat view of a report, shared by the CSV and workbook
// writers. Cells hold string, int, float64 or bool values.
type Table struct {
	Name    string
	Title   string
	Headers []string
	Rows    [][]any
}

// StringRow renders a row as CSV text
func (t Table) StringRow(row []any) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = formatCell(v)
	}
	return out
}

// Table names, also used as CSV file names
const (
	TableShifts      = "shifts"
	TableOutliers    = "outliers"
	TableMonthly     = "monthly"
	TableEmployees   = "employees"
	TableFused       = "fused"
	TableGeneral     = "general"
	TableCalendar    = "calendar"
	TableClusters    = "clusters"
	TableAssignments = "cluster_assignments"
	TableWarnings    = "warnings"
)

// Tables flattens every view of the report in presentation order
func Tables(r *domain.Report) []Table {
	return []Table{
		shiftsTable(r),
		outliersTable(r),
		monthlyTable(r),
		employeesTable(r),
		fusedTable(r),
		generalTable(r),
		calendarTable(r),
		clustersTable(r),
		assignmentsTable(r),
		warningsTable(r),
	}
}

func shiftsTable(r *domain.Report) Table {
	t := Table{
		Name:  TableShifts,
		Title: "Shifts",
		Headers: []string{"employee_key", "employee_name", "department", "date", "entry", "exit",
			"duration_hours", "weekday", "is_weekend", "month", "status", "punch_count", "issues"},
	}
	for _, s := range r.Shifts {
		var hours any
		if h, ok := s.Hours(); ok {
			hours = h
		}
		var date, month string
		if s.Dated {
			date = formatDate(s.Date)
			month = s.Month.String()
		}
		t.Rows = append(t.Rows, []any{
			s.Employee.Key(), s.Employee.Label(), s.Employee.Department,
			date, formatClock(s.Entry), formatClock(s.Exit), hours,
			s.Weekday, s.IsWeekend, month, string(s.Status), s.PunchCount, issueCodes(s.Issues),
		})
	}
	return t
}

func outliersTable(r *domain.Report) Table {
	t := Table{
		Name:  TableOutliers,
		Title: "Outliers",
		Headers: []string{"employee_key", "employee_name", "month", "date", "duration_hours", "tag",
			"lower_bound", "upper_bound"},
	}
	for _, emp := range r.Employees {
		eo, ok := r.Outliers[emp.Key()]
		if !ok || eo.Bounds == nil {
			continue
		}
		for _, o := range eo.Records {
			t.Rows = append(t.Rows, []any{
				emp.Key(), emp.Label(), o.Shift.Month.String(), formatDate(o.Shift.Date), o.Hours,
				o.Tag.Label(), eo.Bounds.Lower, eo.Bounds.Upper,
			})
		}
	}
	return t
}

func monthlyTable(r *domain.Report) Table {
	t := Table{
		Name:    TableMonthly,
		Title:   "Monthly",
		Headers: []string{"employee_key", "employee_name", "month", "month_label", "total_hours", "days"},
	}
	for _, emp := range r.Employees {
		for _, m := range r.Monthly[emp.Key()] {
			t.Rows = append(t.Rows, []any{
				emp.Key(), emp.Label(), m.Month.String(), m.Month.Label(), m.TotalHours, m.DistinctDays,
			})
		}
	}
	return t
}

func employeesTable(r *domain.Report) Table {
	t := Table{
		Name:  TableEmployees,
		Title: "Employees",
		Headers: []string{"employee_key", "employee_name", "department", "median_day_hours", "total_hours",
			"complete_shifts", "incomplete_shifts"},
	}
	for _, s := range r.EmployeeSummaries {
		t.Rows = append(t.Rows, []any{
			s.Employee.Key(), s.Employee.Label(), s.Employee.Department, s.MedianDayHours, s.TotalHours,
			s.CompleteShifts, s.IncompleteShifts,
		})
	}
	return t
}

func fusedTable(r *domain.Report) Table {
	t := Table{
		Name:  TableFused,
		Title: "Fused",
		Headers: []string{"month", "month_label", "day_type", "employee_key", "employee_name", "days_worked",
			"total_hours", "average_hours"},
	}
	for _, f := range r.Fused {
		t.Rows = append(t.Rows, []any{
			f.Month.String(), f.Month.Label(), f.DayType.Label(), f.Employee.Key(), f.Employee.Label(),
			f.DaysWorked, f.TotalHours, f.AverageHours,
		})
	}
	return t
}

func generalTable(r *domain.Report) Table {
	t := Table{
		Name:    TableGeneral,
		Title:   "General",
		Headers: []string{"month", "month_label", "day_type", "day_count", "total_hours"},
	}
	for _, g := range r.General {
		t.Rows = append(t.Rows, []any{
			g.Month.String(), g.Month.Label(), g.DayType.Label(), g.DayCount, g.TotalHours,
		})
	}
	return t
}

func calendarTable(r *domain.Report) Table {
	t := Table{
		Name:    TableCalendar,
		Title:   "Calendar",
		Headers: []string{"month", "month_label", "date", "week", "weekday", "kind", "present"},
	}
	for _, cal := range r.Calendar {
		for w, week := range cal.Weeks {
			for _, d := range week {
				if d == nil {
					continue
				}
				t.Rows = append(t.Rows, []any{
					cal.Month.String(), cal.Month.Label(), formatDate(d.Date), w + 1, d.Weekday,
					d.Kind.Label(), d.Present,
				})
			}
		}
	}
	return t
}

func clustersTable(r *domain.Report) Table {
	t := Table{
		Name:  TableClusters,
		Title: "Clusters",
		Headers: []string{"partition", "status", "cluster_id", "members", "mean_hours", "mean_days",
			"mean_variability", "description"},
	}
	for _, res := range []domain.ClusterResult{r.WeekdayClusters, r.WeekendClusters} {
		if res.Empty() {
			t.Rows = append(t.Rows, []any{res.Partition.Label(), string(res.Status), nil, 0, nil, nil, nil, ""})
			continue
		}
		for _, cl := range res.Clusters {
			t.Rows = append(t.Rows, []any{
				res.Partition.Label(), string(res.Status), cl.ID, len(cl.Members),
				cl.MeanHours, cl.MeanDays, cl.MeanVariability, cl.Description,
			})
		}
	}
	return t
}

func assignmentsTable(r *domain.Report) Table {
	t := Table{
		Name:  TableAssignments,
		Title: "Assignments",
		Headers: []string{"partition", "employee_key", "employee_name", "cluster_id", "mean_hours",
			"days_worked", "stddev_hours"},
	}
	for _, res := range []domain.ClusterResult{r.WeekdayClusters, r.WeekendClusters} {
		for _, a := range res.Assignments {
			t.Rows = append(t.Rows, []any{
				res.Partition.Label(), a.Employee.Key(), a.Employee.Label(), a.ClusterID,
				a.Feature.MeanHours, a.Feature.DaysWorked, a.Feature.StdDevHours,
			})
		}
	}
	return t
}

func warningsTable(r *domain.Report) Table {
	t := Table{
		Name:    TableWarnings,
		Title:   "Warnings",
		Headers: []string{"code", "scope", "message"},
	}
	for _, w := range r.Warnings {
		t.Rows = append(t.Rows, []any{string(w.Code), w.Scope, w.Message})
	}
	return t
}

func issueCodes(issues []domain.QualityIssue) string {
	codes := make([]string, len(issues))
	for i, issue := range issues {
		codes[i] = string(issue.Code)
	}
	return strings.Join(codes, ";")
}
