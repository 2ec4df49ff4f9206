package domain

import "time"

// DayKind classifies a calendar day for attendance purposes
type DayKind string

const (
	DayKindWorking   DayKind = "working"
	DayKindWeekend   DayKind = "weekend"
	DayKindHoliday   DayKind = "holiday"
	DayKindNonWorked DayKind = "non_worked"
)

// Label returns the display form of the kind
func (k DayKind) Label() string {
	switch k {
	case DayKindWorking:
		return "Working"
	case DayKindWeekend:
		return "Weekend"
	case DayKindHoliday:
		return "Holiday"
	case DayKindNonWorked:
		return "Non-worked"
	default:
		return string(k)
	}
}

// CalendarDay is one day of a month grid
type CalendarDay struct {
	Date    time.Time `json:"date"`
	Day     int       `json:"day"`
	Weekday int       `json:"weekday"`
	Kind    DayKind   `json:"kind"`
	Present int       `json:"present"`
}

// CalendarWeek is a Monday-first row of the grid. Cells outside the month
// are nil.
type CalendarWeek [7]*CalendarDay

// MonthCalendar is the week-by-day grid of one month
type MonthCalendar struct {
	Month       MonthKey       `json:"month"`
	Weeks       []CalendarWeek `json:"weeks"`
	WorkingDays int            `json:"working_days"`
}

// Days returns the month's days in order, skipping padding cells
func (c MonthCalendar) Days() []CalendarDay {
	var days []CalendarDay
	for _, week := range c.Weeks {
		for _, d := range week {
			if d != nil {
				days = append(days, *d)
			}
		}
	}
	return days
}

// MondayIndex maps a time.Weekday onto Monday=0 ... Sunday=6
func MondayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}
