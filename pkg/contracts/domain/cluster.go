package domain

// EmployeeFeature is the behavioural feature vector of one employee within
// one partition
type EmployeeFeature struct {
	Employee    Employee `json:"employee"`
	MeanHours   float64  `json:"mean_hours"`
	DaysWorked  int      `json:"days_worked"`
	StdDevHours float64  `json:"stddev_hours"`
}

// Vector returns the features in clustering order
func (f EmployeeFeature) Vector() []float64 {
	return []float64{f.MeanHours, float64(f.DaysWorked), f.StdDevHours}
}

// Cluster is one behavioural group
type Cluster struct {
	ID              int        `json:"id"`
	Members         []Employee `json:"members"`
	MeanHours       float64    `json:"mean_hours"`
	MeanDays        float64    `json:"mean_days"`
	MeanVariability float64    `json:"mean_variability"`
	Description     string     `json:"description"`
}

// ClusterAssignment maps an employee to its cluster
type ClusterAssignment struct {
	Employee  Employee        `json:"employee"`
	ClusterID int             `json:"cluster_id"`
	Feature   EmployeeFeature `json:"feature"`
}

// PartitionStatus distinguishes a computed result from an empty partition
type PartitionStatus string

const (
	PartitionComputed PartitionStatus = "computed"
	PartitionEmpty    PartitionStatus = "empty"
)

// ClusterResult is the clustering output of one partition (weekday or
// weekend shifts)
type ClusterResult struct {
	Partition   DayType             `json:"partition"`
	Status      PartitionStatus     `json:"status"`
	RequestedK  int                 `json:"requested_k"`
	K           int                 `json:"k"`
	Inertia     float64             `json:"inertia"`
	Clusters    []Cluster           `json:"clusters"`
	Assignments []ClusterAssignment `json:"assignments"`
}

// Empty reports whether the partition had no employees to cluster
func (r ClusterResult) Empty() bool {
	return r.Status == PartitionEmpty
}
