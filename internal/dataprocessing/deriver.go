package dataprocessing

import (
	"fmt"

	"attendcli/pkg/contracts/domain"
)

// Deriver enriches reconciled records with duration, weekday, weekend flag
// and month bucket
type Deriver struct{}

// NewDeriver creates a metrics deriver
func NewDeriver() *Deriver {
	return &Deriver{}
}

// Derive returns enriched copies of records. A complete record whose exit
// precedes its entry is demoted to incomplete with a negative_duration issue.
func (d *Deriver) Derive(records []domain.ShiftRecord) []domain.ShiftRecord {
	out := make([]domain.ShiftRecord, len(records))
	for i, rec := range records {
		out[i] = d.derive(rec.Clone())
	}
	return out
}

func (d *Deriver) derive(rec domain.ShiftRecord) domain.ShiftRecord {
	rec.Duration = nil
	if rec.Dated {
		rec.Weekday = domain.MondayIndex(rec.Date.Weekday())
		rec.IsWeekend = domain.DayTypeOf(rec.Weekday) == domain.DayTypeWeekend
		rec.Month = domain.MonthOf(rec.Date)
	}

	if rec.Status != domain.ShiftStatusComplete {
		return rec
	}

	dur := rec.Exit.Sub(rec.Entry)
	if dur < 0 {
		rec.Status = domain.ShiftStatusIncomplete
		rec.Issues = append(rec.Issues, domain.QualityIssue{
			Code:   domain.IssueNegativeDuration,
			Detail: fmt.Sprintf("exit precedes entry by %s", (-dur).String()),
		})
		return rec
	}
	rec.Duration = &dur
	return rec
}

// DatasetPeriod returns the first and last dated day among records and
// whether any record is dated
func DatasetPeriod(records []domain.ShiftRecord) (domain.Period, bool) {
	var p domain.Period
	found := false
	for _, rec := range records {
		if !rec.Dated {
			continue
		}
		if !found || rec.Date.Before(p.Start) {
			p.Start = rec.Date
		}
		if !found || rec.Date.After(p.End) {
			p.End = rec.Date
		}
		found = true
	}
	return p, found
}
