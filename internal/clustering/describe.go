package clustering

import "fmt"

// Description thresholds
const (
	LongShiftHours    = 9.0
	AverageShiftHours = 7.0

	NearDailyDays = 22.0
	ModerateDays  = 15.0

	HighVariability     = 1.5
	ModerateVariability = 0.5
)

// Describe renders the summary sentence of a cluster from the mean raw
// features of its members
func Describe(meanHours, meanDays, meanStdDev float64) string {
	return fmt.Sprintf("Group characterized by %s, %s, %s.",
		durationPhrase(meanHours), attendancePhrase(meanDays), variabilityPhrase(meanStdDev))
}

func durationPhrase(hours float64) string {
	switch {
	case hours > LongShiftHours:
		return "long shifts"
	case hours > AverageShiftHours:
		return "average shifts"
	default:
		return "short shifts"
	}
}

func attendancePhrase(days float64) string {
	switch {
	case days >= NearDailyDays:
		return "near-daily attendance"
	case days >= ModerateDays:
		return "moderate attendance"
	default:
		return "infrequent attendance"
	}
}

func variabilityPhrase(stddev float64) string {
	switch {
	case stddev > HighVariability:
		return "high variability"
	case stddev > ModerateVariability:
		return "moderate variability"
	default:
		return "consistent schedule"
	}
}
