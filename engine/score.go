package engine

import (
	"log"

	"vulnguard/models"
)

// Score computes the normalized risk assessment for one finding.
//
// The model is additive: each factor contributes a pre-scaled number of
// points and the sum is clamped to [0,100]. Missing intel zeroes the
// intel-dependent terms; an out-of-range asset criticality is clamped, not
// rejected. The returned breakdown always carries the full factor key set
// and sums to the pre-clamp total.
//
// groupSize is the distinct-asset count of the finding's correlation group
// (see Correlate); pass 1 for an uncorrelated finding.
func (e *Engine) Score(finding models.Finding, asset models.Asset, intel *models.VulnerabilityIntel, groupSize int) (result models.RiskAssessment) {
	rd := e.refData()
	if rd == nil {
		return degradedAssessment(groupSize)
	}

	// A scoring fault must never fail the caller's request; it yields the
	// documented neutral result with the degraded flag set instead.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("risk scoring fault for finding %s: %v", finding.ID.Hex(), r)
			result = degradedAssessment(groupSize)
		}
	}()

	w := rd.Weights
	breakdown := emptyBreakdown()

	if intel != nil {
		breakdown[models.FactorCVSS] = clampFloat(intel.CVSSScore, 0, 10) / 10 * w.CVSSBudget
		if intel.EPSSScore != nil {
			breakdown[models.FactorEPSS] = clampFloat(*intel.EPSSScore, 0, 1) * w.EPSSBudget
		}
		if intel.KEVListed {
			breakdown[models.FactorKEV] = w.KEVBonus
		}
		if intel.ExploitAvailable {
			breakdown[models.FactorExploitAvailable] = w.ExploitBonus
		}
	}

	// Criticality 1 is the most critical tier, so the scale inverts:
	// criticality 1 earns the full budget, 5 the smallest slice.
	criticality := clampInt(asset.Criticality, models.CriticalityHighest, models.CriticalityLowest)
	breakdown[models.FactorAssetCriticality] = float64(models.CriticalityLowest+1-criticality) * w.CriticalityStep

	multiplier, ok := w.EnvMultipliers[asset.Environment]
	if !ok {
		multiplier = w.DefaultEnvMultiplier
	}
	breakdown[models.FactorEnvironment] = multiplier * w.EnvironmentBudget

	if groupSize < 1 {
		groupSize = 1
	}
	// Only groups spanning more than one asset earn cross-host points,
	// capped so a widespread low-severity issue cannot dominate alone.
	if groupSize > 1 {
		crossHost := groupSize
		if crossHost > w.CrossHostCap {
			crossHost = w.CrossHostCap
		}
		breakdown[models.FactorCrossHost] = float64(crossHost)
	}

	total := 0.0
	for _, points := range breakdown {
		total += points
	}

	tier, slaHours := classifyWith(rd.SLATable, clampFloat(total, 0, 100))

	return models.RiskAssessment{
		Total:     clampFloat(total, 0, 100),
		Breakdown: breakdown,
		Tier:      tier,
		SLAHours:  slaHours,
		GroupSize: groupSize,
	}
}

// degradedAssessment is the neutral fallback: medium risk, flagged so the
// caller can alert without the request failing
func degradedAssessment(groupSize int) models.RiskAssessment {
	if groupSize < 1 {
		groupSize = 1
	}
	tier, slaHours := Classify(50)
	return models.RiskAssessment{
		Total:     50,
		Breakdown: emptyBreakdown(),
		Tier:      tier,
		SLAHours:  slaHours,
		GroupSize: groupSize,
		Degraded:  true,
	}
}

// emptyBreakdown returns the fixed factor key set, all zeroed. Keys are
// never added or removed per call so callers can diff assessments.
func emptyBreakdown() map[string]float64 {
	breakdown := make(map[string]float64, len(models.BreakdownFactors))
	for _, factor := range models.BreakdownFactors {
		breakdown[factor] = 0
	}
	return breakdown
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
