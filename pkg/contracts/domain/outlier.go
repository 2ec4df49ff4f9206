package domain

// OutlierTag marks which side of the IQR fence a shift fell on
type OutlierTag string

const (
	OutlierLow  OutlierTag = "low"
	OutlierHigh OutlierTag = "high"
)

// Label returns the display label of the tag
func (t OutlierTag) Label() string {
	if t == OutlierHigh {
		return "High"
	}
	return "Low"
}

// OutlierRecord is a shift whose duration fell outside its employee's fences
type OutlierRecord struct {
	Shift ShiftRecord `json:"shift"`
	Hours float64     `json:"hours"`
	Tag   OutlierTag  `json:"tag"`
}

// OutlierBounds are the per-employee fences used to tag a shift
type OutlierBounds struct {
	Q1           float64 `json:"q1"`
	Q3           float64 `json:"q3"`
	IQR          float64 `json:"iqr"`
	Lower        float64 `json:"lower"`
	Upper        float64 `json:"upper"`
	Observations int     `json:"observations"`
}

// Degenerate reports whether the fences collapsed to a single point, in
// which case every value different from Q1 is flagged
func (b OutlierBounds) Degenerate() bool {
	return b.IQR == 0
}

// EmployeeOutliers is the outlier list of one employee. Records is never nil,
// so an employee without outliers serializes as an empty list.
type EmployeeOutliers struct {
	Employee Employee        `json:"employee"`
	Bounds   *OutlierBounds  `json:"bounds,omitempty"`
	Records  []OutlierRecord `json:"records"`
}
