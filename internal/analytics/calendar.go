package analytics

import (
	"log/slog"
	"time"

	"attendcli/pkg/contracts/domain"
)

// DaysOff lists the dates that are not working days besides weekends
type DaysOff struct {
	Holidays  []time.Time
	NonWorked []time.Time
}

type civilDate struct {
	year  int
	month time.Month
	day   int
}

func civilOf(t time.Time) civilDate {
	y, m, d := t.Date()
	return civilDate{y, m, d}
}

// Calendars builds the month grid of every month touched by period. A day
// is a weekend day first, then a holiday, then a non-worked day, otherwise
// a working day. Present counts employees with a complete shift that day.
func (a *Aggregator) Calendars(period domain.Period, records []domain.ShiftRecord, off DaysOff) []domain.MonthCalendar {
	out := []domain.MonthCalendar{}
	if period.Start.IsZero() || period.End.Before(period.Start) {
		return out
	}

	kinds := make(map[civilDate]domain.DayKind)
	for _, d := range off.NonWorked {
		kinds[civilOf(d)] = domain.DayKindNonWorked
	}
	for _, d := range off.Holidays {
		kinds[civilOf(d)] = domain.DayKindHoliday
	}

	present := make(map[civilDate]map[string]struct{})
	for _, rec := range records {
		if !rec.Dated || !rec.IsComplete() {
			continue
		}
		day := civilOf(rec.Date)
		if present[day] == nil {
			present[day] = make(map[string]struct{})
		}
		present[day][rec.Employee.Key()] = struct{}{}
	}

	loc := period.Start.Location()
	last := domain.MonthOf(period.End)
	for m := domain.MonthOf(period.Start); m.Compare(last) <= 0; m = nextMonth(m) {
		out = append(out, monthCalendar(m, loc, kinds, present))
	}

	a.logger.Debug("Calendars built", slog.Int("months", len(out)))
	return out
}

func monthCalendar(m domain.MonthKey, loc *time.Location, kinds map[civilDate]domain.DayKind,
	present map[civilDate]map[string]struct{}) domain.MonthCalendar {
	cal := domain.MonthCalendar{Month: m, Weeks: []domain.CalendarWeek{}}

	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, loc)
	var week domain.CalendarWeek
	for d := first; d.Month() == m.Month; d = d.AddDate(0, 0, 1) {
		col := domain.MondayIndex(d.Weekday())
		key := civilOf(d)

		kind := domain.DayKindWorking
		if domain.DayTypeOf(col) == domain.DayTypeWeekend {
			kind = domain.DayKindWeekend
		} else if k, ok := kinds[key]; ok {
			kind = k
		}
		if kind == domain.DayKindWorking {
			cal.WorkingDays++
		}

		week[col] = &domain.CalendarDay{
			Date:    d,
			Day:     d.Day(),
			Weekday: col,
			Kind:    kind,
			Present: len(present[key]),
		}
		if col == 6 {
			cal.Weeks = append(cal.Weeks, week)
			week = domain.CalendarWeek{}
		}
	}
	if week != (domain.CalendarWeek{}) {
		cal.Weeks = append(cal.Weeks, week)
	}
	return cal
}

func nextMonth(m domain.MonthKey) domain.MonthKey {
	if m.Month == time.December {
		return domain.MonthKey{Year: m.Year + 1, Month: time.January}
	}
	return domain.MonthKey{Year: m.Year, Month: m.Month + 1}
}
