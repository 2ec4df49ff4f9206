package dataprocessing

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	apperrors "attendcli/internal/errors"
	"attendcli/pkg/contracts/domain"
)

// Reconciler pairs raw punch events into one shift record per employee per
// calendar day. The earliest punch of a day is the entry and the latest is the
// exit; a lone punch yields an incomplete record.
type Reconciler struct {
	location *time.Location
	logger   *slog.Logger
}

// NewReconciler creates a reconciler that buckets punches into calendar days
// of loc (UTC when nil)
func NewReconciler(loc *time.Location, logger *slog.Logger) *Reconciler {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{location: loc, logger: logger}
}

// employeeGroup accumulates the punches of one employee key
type employeeGroup struct {
	employee domain.Employee
	days     map[time.Time][]domain.PunchEvent
	undated  []domain.PunchEvent
}

// Reconcile turns punches, in any order, into shift records ordered by
// employee key then date, with undated records last for each employee.
// The input slice is never modified.
func (r *Reconciler) Reconcile(punches []domain.PunchEvent) ([]domain.ShiftRecord, error) {
	if len(punches) == 0 {
		return []domain.ShiftRecord{}, nil
	}
	if err := checkRequiredFields(punches); err != nil {
		return nil, err
	}

	work := slices.Clone(punches)
	slices.SortStableFunc(work, func(a, b domain.PunchEvent) int {
		if c := cmp.Compare(a.Employee.Key(), b.Employee.Key()); c != 0 {
			return c
		}
		return a.Timestamp.Compare(b.Timestamp)
	})

	groups := make(map[string]*employeeGroup)
	var keys []string
	for _, p := range work {
		key := p.Employee.Key()
		g, ok := groups[key]
		if !ok {
			g = &employeeGroup{days: make(map[time.Time][]domain.PunchEvent)}
			groups[key] = g
			keys = append(keys, key)
		}
		g.employee = mergeEmployee(g.employee, p.Employee)

		if !p.HasTimestamp() {
			g.undated = append(g.undated, p)
			continue
		}
		day := r.dateOf(p.Timestamp)
		g.days[day] = append(g.days[day], p)
	}

	records := make([]domain.ShiftRecord, 0, len(work))
	for _, key := range keys {
		g := groups[key]
		days := make([]time.Time, 0, len(g.days))
		for day := range g.days {
			days = append(days, day)
		}
		slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })

		for _, day := range days {
			records = append(records, r.pairDay(g.employee, day, g.days[day]))
		}
		if len(g.undated) > 0 {
			records = append(records, undatedRecord(g.employee, g.undated))
		}
	}

	r.logger.Debug("Punches reconciled",
		slog.Int("punches", len(punches)),
		slog.Int("employees", len(keys)),
		slog.Int("records", len(records)))

	return records, nil
}

// pairDay builds the record of one (employee, day) group. Punches arrive
// sorted, so entry <= exit holds by construction.
func (r *Reconciler) pairDay(emp domain.Employee, day time.Time, punches []domain.PunchEvent) domain.ShiftRecord {
	first, last := punches[0], punches[len(punches)-1]
	rec := domain.ShiftRecord{
		Employee:   emp,
		Date:       day,
		Dated:      true,
		Entry:      first.Timestamp.In(r.location),
		Exit:       last.Timestamp.In(r.location),
		Status:     domain.ShiftStatusComplete,
		PunchCount: len(punches),
	}

	if len(punches) == 1 {
		rec.Status = domain.ShiftStatusIncomplete
		rec.Issues = append(rec.Issues, domain.QualityIssue{
			Code:   domain.IssueSinglePunch,
			Detail: "only one punch recorded for the day",
		})
	}
	if !emp.Identified() {
		rec.Status = domain.ShiftStatusIncomplete
		rec.Issues = append(rec.Issues, domain.QualityIssue{
			Code:   domain.IssueMissingEmployee,
			Detail: "punches carry neither employee id nor name",
		})
	}
	return rec
}

// undatedRecord collects an employee's punches that cannot be placed on a day
func undatedRecord(emp domain.Employee, punches []domain.PunchEvent) domain.ShiftRecord {
	rec := domain.ShiftRecord{
		Employee:   emp,
		Status:     domain.ShiftStatusIncomplete,
		PunchCount: len(punches),
	}

	var missing int
	var raw []string
	for _, p := range punches {
		if p.Unparseable() {
			raw = append(raw, strings.TrimSpace(p.RawTimestamp))
		} else {
			missing++
		}
	}
	if missing > 0 {
		rec.Issues = append(rec.Issues, domain.QualityIssue{
			Code:   domain.IssueMissingTimestamp,
			Detail: fmt.Sprintf("%d punch(es) without timestamp", missing),
		})
	}
	if len(raw) > 0 {
		rec.Issues = append(rec.Issues, domain.QualityIssue{
			Code:   domain.IssueUnparseableTimestamp,
			Detail: fmt.Sprintf("unparseable timestamp(s): %s", strings.Join(raw, ", ")),
		})
	}
	if !emp.Identified() {
		rec.Issues = append(rec.Issues, domain.QualityIssue{
			Code:   domain.IssueMissingEmployee,
			Detail: "punches carry neither employee id nor name",
		})
	}
	return rec
}

// dateOf returns midnight of t's calendar day in the reconciler's location
func (r *Reconciler) dateOf(t time.Time) time.Time {
	local := t.In(r.location)
	y, m, d := local.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, r.location)
}

// mergeEmployee fills blank identity fields of acc from next
func mergeEmployee(acc, next domain.Employee) domain.Employee {
	if acc.ID == "" {
		acc.ID = strings.TrimSpace(next.ID)
	}
	if acc.Name == "" {
		acc.Name = strings.TrimSpace(next.Name)
	}
	if acc.Department == "" {
		acc.Department = strings.TrimSpace(next.Department)
	}
	return acc
}

// checkRequiredFields fails when a required field is absent from the whole
// dataset. Individual gaps are tolerated and flagged on the records instead.
func checkRequiredFields(punches []domain.PunchEvent) error {
	var anyTimestamp, anyEmployee bool
	for _, p := range punches {
		anyTimestamp = anyTimestamp || p.HasTimestamp()
		anyEmployee = anyEmployee || p.Employee.Identified()
		if anyTimestamp && anyEmployee {
			return nil
		}
	}
	if !anyTimestamp {
		return apperrors.NewMissingFieldError("timestamp")
	}
	return apperrors.NewMissingFieldError("employee")
}
