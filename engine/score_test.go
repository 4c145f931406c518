package engine

import (
	"math"
	"testing"

	"vulnguard/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testEngine() *Engine {
	return New(DefaultRefData())
}

func floatPtr(v float64) *float64 {
	return &v
}

func breakdownSum(breakdown map[string]float64) float64 {
	sum := 0.0
	for _, points := range breakdown {
		sum += points
	}
	return sum
}

func TestScoreDangerousFinding(t *testing.T) {
	eng := testEngine()

	intel := &models.VulnerabilityIntel{
		CVEID:            "CVE-2021-44228",
		CVSSScore:        9.8,
		EPSSScore:        floatPtr(0.9),
		KEVListed:        true,
		ExploitAvailable: true,
	}
	asset := models.Asset{
		ID:          primitive.NewObjectID(),
		Criticality: 1,
		Environment: models.EnvProduction,
	}

	result := eng.Score(models.Finding{}, asset, intel, 1)

	if result.Degraded {
		t.Fatal("expected a normal assessment, got degraded")
	}
	if result.Tier != models.TierCritical {
		t.Errorf("expected tier critical, got %s", result.Tier)
	}
	if result.SLAHours != 24 {
		t.Errorf("expected 24h SLA, got %d", result.SLAHours)
	}
	if result.Total < 85 || result.Total > 100 {
		t.Errorf("expected total in critical band, got %.2f", result.Total)
	}

	// Every factor should be visible in the explanation.
	want := map[string]float64{
		models.FactorCVSS:             29.4,
		models.FactorEPSS:             18,
		models.FactorKEV:              15,
		models.FactorExploitAvailable: 10,
		models.FactorAssetCriticality: 10,
		models.FactorEnvironment:      10,
		models.FactorCrossHost:        0,
	}
	for factor, points := range want {
		if math.Abs(result.Breakdown[factor]-points) > 1e-6 {
			t.Errorf("factor %s: expected %.2f points, got %.2f", factor, points, result.Breakdown[factor])
		}
	}
}

func TestScoreNoIntel(t *testing.T) {
	eng := testEngine()

	asset := models.Asset{
		ID:          primitive.NewObjectID(),
		Criticality: 5,
		Environment: models.EnvDevelopment,
	}

	result := eng.Score(models.Finding{}, asset, nil, 1)

	// (6-5)*2 + 0.3*10 = 5, nothing else contributes.
	if math.Abs(result.Total-5) > 1e-6 {
		t.Errorf("expected total 5, got %.4f", result.Total)
	}
	if result.Tier != models.TierLow {
		t.Errorf("expected tier low, got %s", result.Tier)
	}
	if result.SLAHours != 90*24 {
		t.Errorf("expected 90d SLA, got %dh", result.SLAHours)
	}
	if result.Degraded {
		t.Error("missing intel must not degrade the assessment")
	}
}

func TestScoreBreakdownInvariants(t *testing.T) {
	eng := testEngine()

	cases := []struct {
		name      string
		intel     *models.VulnerabilityIntel
		asset     models.Asset
		groupSize int
	}{
		{
			name:  "no intel",
			asset: models.Asset{Criticality: 3, Environment: models.EnvStaging},
		},
		{
			name:      "full intel cross host",
			intel:     &models.VulnerabilityIntel{CVSSScore: 7.5, EPSSScore: floatPtr(0.4), KEVListed: true, ExploitAvailable: true},
			asset:     models.Asset{Criticality: 2, Environment: models.EnvProduction},
			groupSize: 3,
		},
		{
			name:  "unknown environment",
			intel: &models.VulnerabilityIntel{CVSSScore: 4.0},
			asset: models.Asset{Criticality: 4, Environment: "lab"},
		},
		{
			name:      "criticality out of range",
			asset:     models.Asset{Criticality: 42, Environment: models.EnvProduction},
			groupSize: 9,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := eng.Score(models.Finding{}, tc.asset, tc.intel, tc.groupSize)

			if result.Total < 0 || result.Total > 100 {
				t.Errorf("total %.2f outside [0,100]", result.Total)
			}
			if len(result.Breakdown) != len(models.BreakdownFactors) {
				t.Errorf("expected %d breakdown keys, got %d", len(models.BreakdownFactors), len(result.Breakdown))
			}
			for _, factor := range models.BreakdownFactors {
				if _, ok := result.Breakdown[factor]; !ok {
					t.Errorf("breakdown missing factor %s", factor)
				}
			}

			sum := breakdownSum(result.Breakdown)
			if sum <= 100 && math.Abs(sum-result.Total) > 1e-6 {
				t.Errorf("breakdown sums to %.4f, total is %.4f", sum, result.Total)
			}
			if sum > 100 && result.Total != 100 {
				t.Errorf("pre-clamp sum %.4f should clamp total to 100, got %.4f", sum, result.Total)
			}
		})
	}
}

func TestScoreClampCeiling(t *testing.T) {
	// The default budgets top out at exactly 100, so the ceiling only
	// fires with inflated weights, as an operator override can produce.
	rd := DefaultRefData()
	rd.Weights.CVSSBudget = 40
	rd.Weights.EPSSBudget = 25
	eng := New(rd)

	intel := &models.VulnerabilityIntel{
		CVSSScore:        10,
		EPSSScore:        floatPtr(1),
		KEVListed:        true,
		ExploitAvailable: true,
	}
	asset := models.Asset{Criticality: 1, Environment: models.EnvProduction}

	result := eng.Score(models.Finding{}, asset, intel, 5)

	if result.Degraded {
		t.Fatal("expected a normal assessment, got degraded")
	}
	// 40 + 25 + 15 + 10 + 10 + 10 + 5 = 115 before the clamp.
	sum := breakdownSum(result.Breakdown)
	if math.Abs(sum-115) > 1e-6 {
		t.Fatalf("expected pre-clamp sum 115, got %.4f", sum)
	}
	if result.Total != 100 {
		t.Errorf("expected total clamped to 100, got %.4f", result.Total)
	}
	if result.Tier != models.TierCritical || result.SLAHours != 24 {
		t.Errorf("clamped score should classify critical/24h, got %s/%dh", result.Tier, result.SLAHours)
	}
	// The breakdown keeps the uncapped terms so the clamp stays explainable.
	if result.Breakdown[models.FactorCVSS] != 40 {
		t.Errorf("breakdown should keep the uncapped CVSS term, got %.2f", result.Breakdown[models.FactorCVSS])
	}
}

func TestScoreCriticalityClamped(t *testing.T) {
	eng := testEngine()

	low := eng.Score(models.Finding{}, models.Asset{Criticality: 0, Environment: models.EnvProduction}, nil, 1)
	if low.Breakdown[models.FactorAssetCriticality] != 10 {
		t.Errorf("criticality 0 should clamp to 1 (10 points), got %.2f", low.Breakdown[models.FactorAssetCriticality])
	}

	high := eng.Score(models.Finding{}, models.Asset{Criticality: 99, Environment: models.EnvProduction}, nil, 1)
	if high.Breakdown[models.FactorAssetCriticality] != 2 {
		t.Errorf("criticality 99 should clamp to 5 (2 points), got %.2f", high.Breakdown[models.FactorAssetCriticality])
	}
}

func TestScoreCrossHostCap(t *testing.T) {
	eng := testEngine()
	asset := models.Asset{Criticality: 3, Environment: models.EnvProduction}

	small := eng.Score(models.Finding{}, asset, nil, 3)
	if small.Breakdown[models.FactorCrossHost] != 3 {
		t.Errorf("group size 3 should add 3 points, got %.2f", small.Breakdown[models.FactorCrossHost])
	}

	wide := eng.Score(models.Finding{}, asset, nil, 200)
	if wide.Breakdown[models.FactorCrossHost] != 5 {
		t.Errorf("cross-host term should cap at 5 points, got %.2f", wide.Breakdown[models.FactorCrossHost])
	}

	single := eng.Score(models.Finding{}, asset, nil, 1)
	if single.Breakdown[models.FactorCrossHost] != 0 {
		t.Errorf("single-asset group should add no cross-host points, got %.2f", single.Breakdown[models.FactorCrossHost])
	}
}

func TestScoreMonotonicity(t *testing.T) {
	eng := testEngine()

	base := models.Asset{Criticality: 3, Environment: models.EnvStaging}
	baseIntel := &models.VulnerabilityIntel{CVSSScore: 5.0, EPSSScore: floatPtr(0.2)}
	baseline := eng.Score(models.Finding{}, base, baseIntel, 2).Total

	variants := []struct {
		name  string
		intel *models.VulnerabilityIntel
		asset models.Asset
		group int
	}{
		{"higher cvss", &models.VulnerabilityIntel{CVSSScore: 9.0, EPSSScore: floatPtr(0.2)}, base, 2},
		{"higher epss", &models.VulnerabilityIntel{CVSSScore: 5.0, EPSSScore: floatPtr(0.8)}, base, 2},
		{"kev listed", &models.VulnerabilityIntel{CVSSScore: 5.0, EPSSScore: floatPtr(0.2), KEVListed: true}, base, 2},
		{"exploit available", &models.VulnerabilityIntel{CVSSScore: 5.0, EPSSScore: floatPtr(0.2), ExploitAvailable: true}, base, 2},
		{"more critical asset", baseIntel, models.Asset{Criticality: 1, Environment: models.EnvStaging}, 2},
		{"larger group", baseIntel, base, 4},
	}

	for _, tc := range variants {
		t.Run(tc.name, func(t *testing.T) {
			total := eng.Score(models.Finding{}, tc.asset, tc.intel, tc.group).Total
			if total < baseline {
				t.Errorf("increasing %s decreased the score: %.2f < %.2f", tc.name, total, baseline)
			}
		})
	}
}

func TestScoreDegradedFallback(t *testing.T) {
	eng := New(nil)

	result := eng.Score(models.Finding{}, models.Asset{Criticality: 1, Environment: models.EnvProduction}, nil, 2)

	if !result.Degraded {
		t.Fatal("expected degraded flag on fallback assessment")
	}
	if result.Total != 50 {
		t.Errorf("expected neutral total 50, got %.2f", result.Total)
	}
	if result.Tier != models.TierMedium {
		t.Errorf("expected neutral tier medium, got %s", result.Tier)
	}
	if len(result.Breakdown) != len(models.BreakdownFactors) {
		t.Errorf("degraded assessment must keep the fixed breakdown keys, got %d", len(result.Breakdown))
	}
}

func TestScoreReloadSwapsWeights(t *testing.T) {
	eng := testEngine()
	asset := models.Asset{Criticality: 5, Environment: models.EnvDevelopment}

	before := eng.Score(models.Finding{}, asset, nil, 1).Total

	rd := DefaultRefData()
	rd.Weights.EnvironmentBudget = 20
	eng.Reload(rd)

	after := eng.Score(models.Finding{}, asset, nil, 1).Total
	if math.Abs(after-before-3) > 1e-6 {
		t.Errorf("doubled environment budget should add 3 points at dev multiplier, got %.2f -> %.2f", before, after)
	}
}
