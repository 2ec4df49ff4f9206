package analytics

import (
	"log/slog"

	"attendcli/pkg/contracts/domain"
)

// DefaultOutlierFactor scales the IQR into the outlier fences
const DefaultOutlierFactor = 1.5

// OutlierDetector flags shifts whose duration falls outside the per-employee
// IQR fences
type OutlierDetector struct {
	factor float64
	logger *slog.Logger
}

// NewOutlierDetector creates a detector with fence factor f. A non-positive
// factor falls back to DefaultOutlierFactor.
func NewOutlierDetector(factor float64, logger *slog.Logger) *OutlierDetector {
	if factor <= 0 {
		factor = DefaultOutlierFactor
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OutlierDetector{factor: factor, logger: logger}
}

// Bounds computes the fences of a set of durations in hours
func (d *OutlierDetector) Bounds(hours []float64) domain.OutlierBounds {
	q1, q3 := Quartiles(hours)
	iqr := q3 - q1
	return domain.OutlierBounds{
		Q1:           q1,
		Q3:           q3,
		IQR:          iqr,
		Lower:        q1 - d.factor*iqr,
		Upper:        q3 + d.factor*iqr,
		Observations: len(hours),
	}
}

// Classify tags a duration against bounds. With collapsed fences every
// value different from Q1 is an outlier.
func (d *OutlierDetector) Classify(hours float64, b domain.OutlierBounds) (domain.OutlierTag, bool) {
	if b.Degenerate() {
		switch {
		case hours < b.Q1:
			return domain.OutlierLow, true
		case hours > b.Q1:
			return domain.OutlierHigh, true
		}
		return "", false
	}

	switch {
	case hours < b.Lower:
		return domain.OutlierLow, true
	case hours > b.Upper:
		return domain.OutlierHigh, true
	}
	return "", false
}

// Detect returns the outliers of every employee present in records, keyed by
// employee key. Only complete shifts are considered; employees without any
// get an empty list. Records keep their input order.
func (d *OutlierDetector) Detect(records []domain.ShiftRecord) map[string]domain.EmployeeOutliers {
	type employeeShifts struct {
		employee domain.Employee
		shifts   []domain.ShiftRecord
		hours    []float64
	}

	byEmployee := make(map[string]*employeeShifts)
	for _, rec := range records {
		key := rec.Employee.Key()
		es, ok := byEmployee[key]
		if !ok {
			es = &employeeShifts{employee: rec.Employee}
			byEmployee[key] = es
		}
		if !rec.IsComplete() {
			continue
		}
		h, _ := rec.Hours()
		es.shifts = append(es.shifts, rec)
		es.hours = append(es.hours, h)
	}

	result := make(map[string]domain.EmployeeOutliers, len(byEmployee))
	total := 0
	for key, es := range byEmployee {
		out := domain.EmployeeOutliers{
			Employee: es.employee,
			Records:  []domain.OutlierRecord{},
		}
		if len(es.hours) > 0 {
			bounds := d.Bounds(es.hours)
			out.Bounds = &bounds
			for i, rec := range es.shifts {
				if tag, ok := d.Classify(es.hours[i], bounds); ok {
					out.Records = append(out.Records, domain.OutlierRecord{
						Shift: rec.Clone(),
						Hours: es.hours[i],
						Tag:   tag,
					})
				}
			}
		}
		total += len(out.Records)
		result[key] = out
	}

	d.logger.Debug("Outliers detected",
		slog.Int("employees", len(result)),
		slog.Int("outliers", total),
		slog.Float64("factor", d.factor))

	return result
}

// CountOutliers returns the number of flagged shifts across employees
func CountOutliers(outliers map[string]domain.EmployeeOutliers) int {
	n := 0
	for _, eo := range outliers {
		n += len(eo.Records)
	}
	return n
}

// OutliersByMonth regroups each employee's outliers into month buckets
func OutliersByMonth(outliers map[string]domain.EmployeeOutliers) map[string][]domain.MonthOutliers {
	out := make(map[string][]domain.MonthOutliers, len(outliers))
	for key, eo := range outliers {
		out[key] = domain.OutliersByMonth(eo.Records)
	}
	return out
}
