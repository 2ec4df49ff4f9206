package testutil

import (
	"time"

	"attendcli/pkg/contracts/domain"
)

const (
	// DateLayout is the date format used by fixture helpers
	DateLayout = "2006-01-02"
	// TimestampLayout is the punch format used by fixture helpers
	TimestampLayout = "2006-01-02 15:04"
)

// MustTime parses a "2006-01-02 15:04" or "2006-01-02" string in UTC and
// panics on malformed input
func MustTime(s string) time.Time {
	layout := TimestampLayout
	if len(s) == len(DateLayout) {
		layout = DateLayout
	}
	t, err := time.ParseInLocation(layout, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

// Punch builds a punch for employee id/name at ts ("2006-01-02 15:04").
// An empty ts yields a punch without timestamp.
func Punch(id, name, ts string) domain.PunchEvent {
	p := domain.PunchEvent{Employee: domain.Employee{ID: id, Name: name}}
	if ts != "" {
		p.Timestamp = MustTime(ts)
	}
	return p
}

// CompleteShift builds a derived complete shift of the given length that
// starts at 08:00 on date. The key is used as the employee id.
func CompleteShift(key, date string, hours float64) domain.ShiftRecord {
	day := MustTime(date)
	entry := day.Add(8 * time.Hour)
	dur := time.Duration(hours * float64(time.Hour))
	weekday := (int(day.Weekday()) + 6) % 7

	return domain.ShiftRecord{
		Employee:   domain.Employee{ID: key, Name: key},
		Date:       day,
		Dated:      true,
		Entry:      entry,
		Exit:       entry.Add(dur),
		Duration:   &dur,
		Weekday:    weekday,
		IsWeekend:  weekday >= 5,
		Month:      domain.MonthOf(day),
		Status:     domain.ShiftStatusComplete,
		PunchCount: 2,
	}
}

// IncompleteShift builds a derived single-punch shift on date
func IncompleteShift(key, date string) domain.ShiftRecord {
	s := CompleteShift(key, date, 0)
	s.Duration = nil
	s.Exit = s.Entry
	s.Status = domain.ShiftStatusIncomplete
	s.PunchCount = 1
	s.Issues = []domain.QualityIssue{{Code: domain.IssueSinglePunch}}
	return s
}

// ShiftsWithHours builds one complete shift per value on consecutive days
// starting at start
func ShiftsWithHours(key, start string, hours ...float64) []domain.ShiftRecord {
	day := MustTime(start)
	out := make([]domain.ShiftRecord, 0, len(hours))
	for i, h := range hours {
		out = append(out, CompleteShift(key, day.AddDate(0, 0, i).Format(DateLayout), h))
	}
	return out
}
