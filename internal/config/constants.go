package config

// Application constants
const (
	// Application Info
	AppName   = "Attendance Report"
	AppBinary = "attendance-report"

	// EnvPrefix namespaces every environment variable (ATTEND_ENGINE_CLUSTERS, ...)
	EnvPrefix = "ATTEND"

	// Engine defaults
	DefaultOutlierFactor = 1.5
	DefaultClusters      = 3
	DefaultSeed          = 42
	DefaultRestarts      = 10
	DefaultMaxIterations = 300
	DefaultTolerance     = 1e-4

	// Batch defaults
	DefaultBatchConcurrency = 4

	// File Paths (relative to the working directory)
	DefaultReportsDir = "reports"
	DefaultLogFile    = "logs/attendance.log"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)
