package domain

import (
	"time"
)

// Report is the complete structured handoff of one engine run to the
// rendering collaborator. Every map is keyed by Employee.Key().
type Report struct {
	RunID             string                      `json:"run_id"`
	GeneratedAt       time.Time                   `json:"generated_at"`
	DataFormatVersion string                      `json:"data_format_version"`
	Period            Period                      `json:"period"`
	Departments       []string                    `json:"departments"`
	Employees         []Employee                  `json:"employees"`
	Shifts            []ShiftRecord               `json:"shifts"`
	Details           map[string][]ShiftDetail    `json:"details"`
	DetailsByMonth    map[string][]MonthDetails   `json:"details_by_month"`
	Outliers          map[string]EmployeeOutliers `json:"outliers"`
	OutliersByMonth   map[string][]MonthOutliers  `json:"outliers_by_month"`
	Monthly           map[string][]MonthlySummary `json:"monthly"`
	EmployeeSummaries []EmployeeSummary           `json:"employee_summaries"`
	Fused             []FusedSummary              `json:"fused"`
	FusedByMonth      []MonthGroup                `json:"fused_by_month"`
	General           []GeneralSummary            `json:"general"`
	WeekdayClusters   ClusterResult               `json:"weekday_clusters"`
	WeekendClusters   ClusterResult               `json:"weekend_clusters"`
	Calendar          []MonthCalendar             `json:"calendar"`
	Warnings          []Warning                   `json:"warnings"`
}

// Period is the first and last calendar day covered by dated shifts
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ShiftDetail is the per-day line of the detail view
type ShiftDetail struct {
	Date          time.Time      `json:"date"`
	Dated         bool           `json:"dated"`
	Entry         time.Time      `json:"entry"`
	Exit          time.Time      `json:"exit"`
	DurationHours *float64       `json:"duration_hours"`
	Status        ShiftStatus    `json:"status"`
	Issues        []QualityIssue `json:"issues,omitempty"`
}

// DetailFromShift projects a shift record onto the detail view
func DetailFromShift(s ShiftRecord) ShiftDetail {
	d := ShiftDetail{
		Date:   s.Date,
		Dated:  s.Dated,
		Entry:  s.Entry,
		Exit:   s.Exit,
		Status: s.Status,
		Issues: s.Issues,
	}
	if h, ok := s.Hours(); ok {
		d.DurationHours = &h
	}
	return d
}

// MonthDetails is one month of an employee's detail view
type MonthDetails struct {
	Month   MonthKey      `json:"month"`
	Records []ShiftDetail `json:"records"`
}

// DetailsByMonth splits an ordered detail list into month buckets, keeping
// chronological order. Undated lines are dropped from the month view.
func DetailsByMonth(details []ShiftDetail) []MonthDetails {
	out := []MonthDetails{}
	for _, d := range details {
		if !d.Dated {
			continue
		}
		key := MonthOf(d.Date)
		if n := len(out); n > 0 && out[n-1].Month == key {
			out[n-1].Records = append(out[n-1].Records, d)
			continue
		}
		out = append(out, MonthDetails{Month: key, Records: []ShiftDetail{d}})
	}
	return out
}

// MonthOutliers is one month of an employee's outliers
type MonthOutliers struct {
	Month   MonthKey        `json:"month"`
	Records []OutlierRecord `json:"records"`
}

// OutliersByMonth splits a date-ordered outlier list into month buckets
func OutliersByMonth(records []OutlierRecord) []MonthOutliers {
	out := []MonthOutliers{}
	for _, r := range records {
		key := r.Shift.Month
		if n := len(out); n > 0 && out[n-1].Month == key {
			out[n-1].Records = append(out[n-1].Records, r)
			continue
		}
		out = append(out, MonthOutliers{Month: key, Records: []OutlierRecord{r}})
	}
	return out
}

// WarningCode identifies a non-fatal condition of a run
type WarningCode string

const (
	WarningEmptyPartition WarningCode = "empty_partition"
	WarningNoOutliers     WarningCode = "no_outliers"
	WarningReducedK       WarningCode = "reduced_k"
	WarningDataQuality    WarningCode = "data_quality"
)

// Warning is a non-fatal condition the rendering layer may surface
type Warning struct {
	Code    WarningCode `json:"code"`
	Scope   string      `json:"scope,omitempty"`
	Message string      `json:"message"`
}

// HasWarning reports whether the report carries a warning with code and scope.
// An empty scope matches any scope.
func (r *Report) HasWarning(code WarningCode, scope string) bool {
	for _, w := range r.Warnings {
		if w.Code == code && (scope == "" || w.Scope == scope) {
			return true
		}
	}
	return false
}
