package engine

import (
	"time"

	"vulnguard/models"
)

// Classify maps a risk score to a priority tier and remediation SLA using
// the standard thresholds. It is total over [0,100]: thresholds are
// inclusive on the floor and exclusive on the ceiling, so exactly 85 is
// critical and exactly 70 is high. Callers clamp out-of-range scores.
func Classify(score float64) (models.Tier, int) {
	return classifyWith(DefaultSLATable(), score)
}

// SLA returns the remediation window for a score as a duration
func SLA(score float64) time.Duration {
	_, hours := Classify(score)
	return time.Duration(hours) * time.Hour
}

func classifyWith(table []SLAThreshold, score float64) (models.Tier, int) {
	for _, threshold := range table {
		if score >= threshold.MinScore {
			return threshold.Tier, threshold.SLAHours
		}
	}
	// Unreachable with a table whose last floor is 0; kept total anyway.
	return models.TierLow, 90 * 24
}
