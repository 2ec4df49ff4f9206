package clustering

import (
	"slices"
	"time"

	"attendcli/internal/analytics"
	"attendcli/pkg/contracts/domain"
)

// ExtractFeatures computes the feature vector of every employee with at least
// one complete shift of the given day type, ordered by employee key
func ExtractFeatures(records []domain.ShiftRecord, partition domain.DayType) []domain.EmployeeFeature {
	type acc struct {
		employee domain.Employee
		hours    []float64
		days     map[time.Time]struct{}
	}

	var keys []string
	accs := make(map[string]*acc)
	for _, rec := range records {
		if !rec.IsComplete() || !rec.Dated || rec.DayType() != partition {
			continue
		}
		h, _ := rec.Hours()
		key := rec.Employee.Key()
		a, ok := accs[key]
		if !ok {
			a = &acc{employee: rec.Employee, days: make(map[time.Time]struct{})}
			accs[key] = a
			keys = append(keys, key)
		}
		a.hours = append(a.hours, h)
		a.days[rec.Date] = struct{}{}
	}

	slices.Sort(keys)
	out := make([]domain.EmployeeFeature, 0, len(keys))
	for _, key := range keys {
		a := accs[key]
		out = append(out, domain.EmployeeFeature{
			Employee:    a.employee,
			MeanHours:   analytics.Mean(a.hours),
			DaysWorked:  len(a.days),
			StdDevHours: analytics.SampleStdDev(a.hours),
		})
	}
	return out
}

// Standardize scales each feature column to zero mean and unit population
// variance. A constant column is only centered.
func Standardize(features []domain.EmployeeFeature) [][]float64 {
	if len(features) == 0 {
		return nil
	}

	points := make([][]float64, len(features))
	for i, f := range features {
		points[i] = f.Vector()
	}

	dims := len(points[0])
	column := make([]float64, len(points))
	for j := 0; j < dims; j++ {
		for i := range points {
			column[i] = points[i][j]
		}
		mean := analytics.Mean(column)
		scale := analytics.PopulationStdDev(column)
		if scale == 0 {
			scale = 1
		}
		for i := range points {
			points[i][j] = (points[i][j] - mean) / scale
		}
	}
	return points
}
