package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// ShiftStatus tells whether a shift has both ends of the working day
type ShiftStatus string

const (
	ShiftStatusComplete   ShiftStatus = "complete"
	ShiftStatusIncomplete ShiftStatus = "incomplete"
)

// DayType classifies a date as a weekday or a weekend day
type DayType int

const (
	DayTypeWeekday DayType = iota
	DayTypeWeekend
)

// DayTypes lists day types in presentation order
var DayTypes = []DayType{DayTypeWeekday, DayTypeWeekend}

// String returns the stable machine name of the day type
func (d DayType) String() string {
	if d == DayTypeWeekend {
		return "weekend"
	}
	return "weekday"
}

// Label returns the display label of the day type
func (d DayType) Label() string {
	if d == DayTypeWeekend {
		return "Weekend"
	}
	return "Weekday"
}

// MarshalJSON encodes the day type by its machine name
func (d DayType) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a machine name back into a day type
func (d *DayType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "weekday":
		*d = DayTypeWeekday
	case "weekend":
		*d = DayTypeWeekend
	default:
		return fmt.Errorf("unknown day type %q", s)
	}
	return nil
}

// DayTypeOf classifies a Monday-based weekday index (Saturday=5, Sunday=6)
func DayTypeOf(weekday int) DayType {
	if weekday >= 5 {
		return DayTypeWeekend
	}
	return DayTypeWeekday
}

// MonthKey is the sortable (year, month) bucket of a shift. Ordering never
// depends on the display label.
type MonthKey struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// MonthOf returns the bucket containing t
func MonthOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// Less orders month keys chronologically
func (m MonthKey) Less(other MonthKey) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

// Compare returns -1, 0 or 1 in chronological order
func (m MonthKey) Compare(other MonthKey) int {
	switch {
	case m.Less(other):
		return -1
	case other.Less(m):
		return 1
	default:
		return 0
	}
}

// IsZero reports whether the key was never set
func (m MonthKey) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// String renders the key as YYYY-MM
func (m MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Label renders the key for display, e.g. "January 2024"
func (m MonthKey) Label() string {
	return fmt.Sprintf("%s %d", m.Month.String(), m.Year)
}

// MarshalJSON emits the sortable fields together with both renderings
func (m MonthKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Year  int    `json:"year"`
		Month int    `json:"month"`
		Key   string `json:"key"`
		Label string `json:"label"`
	}{m.Year, int(m.Month), m.String(), m.Label()})
}

// IssueCode identifies a data-quality problem attached to a record
type IssueCode string

const (
	IssueMissingTimestamp     IssueCode = "missing_timestamp"
	IssueUnparseableTimestamp IssueCode = "unparseable_timestamp"
	IssueMissingEmployee      IssueCode = "missing_employee"
	IssueNegativeDuration     IssueCode = "negative_duration"
	IssueSinglePunch          IssueCode = "single_punch"
)

// QualityIssue is a non-fatal data-quality note. Records carrying an issue
// stay in the detail view but are excluded from numeric aggregation.
type QualityIssue struct {
	Code   IssueCode `json:"code"`
	Detail string    `json:"detail,omitempty"`
}

// ShiftRecord is one reconciled working day of one employee.
// Complete records always have a non-negative Duration; Incomplete ones
// have a nil Duration. Undated records (Dated=false) collect punches that
// could not be placed on a calendar day.
type ShiftRecord struct {
	Employee   Employee       `json:"employee"`
	Date       time.Time      `json:"date"`
	Dated      bool           `json:"dated"`
	Entry      time.Time      `json:"entry"`
	Exit       time.Time      `json:"exit"`
	Duration   *time.Duration `json:"-"`
	Weekday    int            `json:"weekday"`
	IsWeekend  bool           `json:"is_weekend"`
	Month      MonthKey       `json:"month"`
	Status     ShiftStatus    `json:"status"`
	PunchCount int            `json:"punch_count"`
	Issues     []QualityIssue `json:"issues,omitempty"`
}

// IsComplete reports whether the record contributes to numeric aggregates
func (s ShiftRecord) IsComplete() bool {
	return s.Status == ShiftStatusComplete && s.Duration != nil
}

// Hours returns the duration in hours and whether it is defined
func (s ShiftRecord) Hours() (float64, bool) {
	if s.Duration == nil {
		return 0, false
	}
	return s.Duration.Hours(), true
}

// DayType classifies the record's date
func (s ShiftRecord) DayType() DayType {
	if s.IsWeekend {
		return DayTypeWeekend
	}
	return DayTypeWeekday
}

// HasIssue reports whether the record carries the given issue code
func (s ShiftRecord) HasIssue(code IssueCode) bool {
	for _, issue := range s.Issues {
		if issue.Code == code {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no mutable state with s
func (s ShiftRecord) Clone() ShiftRecord {
	out := s
	if s.Duration != nil {
		d := *s.Duration
		out.Duration = &d
	}
	if s.Issues != nil {
		out.Issues = append([]QualityIssue(nil), s.Issues...)
	}
	return out
}

// MarshalJSON adds the nullable duration_hours field
func (s ShiftRecord) MarshalJSON() ([]byte, error) {
	type alias ShiftRecord
	var hours *float64
	if h, ok := s.Hours(); ok {
		hours = &h
	}
	return json.Marshal(struct {
		alias
		DurationHours *float64 `json:"duration_hours"`
	}{alias: alias(s), DurationHours: hours})
}
