package engine

import (
	"testing"
	"time"

	"vulnguard/models"
)

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		score    float64
		tier     models.Tier
		slaHours int
	}{
		{100, models.TierCritical, 24},
		{85, models.TierCritical, 24},
		{84.999, models.TierHigh, 7 * 24},
		{70, models.TierHigh, 7 * 24},
		{69.999, models.TierMedium, 30 * 24},
		{40, models.TierMedium, 30 * 24},
		{39.999, models.TierLow, 90 * 24},
		{0, models.TierLow, 90 * 24},
	}

	for _, tc := range cases {
		tier, slaHours := Classify(tc.score)
		if tier != tc.tier {
			t.Errorf("score %.3f: expected tier %s, got %s", tc.score, tc.tier, tier)
		}
		if slaHours != tc.slaHours {
			t.Errorf("score %.3f: expected SLA %dh, got %dh", tc.score, tc.slaHours, slaHours)
		}
	}
}

// Every integer score in [0,100] must map to exactly one tier.
func TestClassifyTotal(t *testing.T) {
	for score := 0; score <= 100; score++ {
		tier, slaHours := Classify(float64(score))
		switch tier {
		case models.TierCritical, models.TierHigh, models.TierMedium, models.TierLow:
		default:
			t.Fatalf("score %d mapped to unknown tier %q", score, tier)
		}
		if slaHours <= 0 {
			t.Fatalf("score %d mapped to non-positive SLA %d", score, slaHours)
		}
	}
}

func TestSLADuration(t *testing.T) {
	if sla := SLA(90); sla != 24*time.Hour {
		t.Errorf("expected 24h SLA for score 90, got %s", sla)
	}
	if sla := SLA(10); sla != 90*24*time.Hour {
		t.Errorf("expected 90d SLA for score 10, got %s", sla)
	}
}
