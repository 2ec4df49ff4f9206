package domain

// MonthlySummary is one employee's total for one month
type MonthlySummary struct {
	Employee     Employee `json:"employee"`
	Month        MonthKey `json:"month"`
	TotalHours   float64  `json:"total_hours"`
	DistinctDays int      `json:"distinct_days"`
}

// FusedSummary is keyed jointly by month, day type and employee
type FusedSummary struct {
	Month        MonthKey `json:"month"`
	DayType      DayType  `json:"day_type"`
	Employee     Employee `json:"employee"`
	DaysWorked   int      `json:"days_worked"`
	TotalHours   float64  `json:"total_hours"`
	AverageHours float64  `json:"average_hours"`
}

// GeneralSummary aggregates every employee for a (month, day type) pair
type GeneralSummary struct {
	Month      MonthKey `json:"month"`
	DayType    DayType  `json:"day_type"`
	DayCount   int      `json:"day_count"`
	TotalHours float64  `json:"total_hours"`
}

// EmployeeSummary is the whole-period summary of one employee
type EmployeeSummary struct {
	Employee         Employee `json:"employee"`
	MedianDayHours   float64  `json:"median_day_hours"`
	TotalHours       float64  `json:"total_hours"`
	CompleteShifts   int      `json:"complete_shifts"`
	IncompleteShifts int      `json:"incomplete_shifts"`
}

// DayTypeGroup holds the presentation-ordered fused rows of one day type
type DayTypeGroup struct {
	DayType DayType        `json:"day_type"`
	Rows    []FusedSummary `json:"rows"`
}

// MonthGroup is the nested month → day type → rows view of the fused summary
type MonthGroup struct {
	Month    MonthKey       `json:"month"`
	DayTypes []DayTypeGroup `json:"day_types"`
}
