package models

// Tier represents the remediation priority derived from a risk score
type Tier string

const (
	TierCritical Tier = "critical"
	TierHigh     Tier = "high"
	TierMedium   Tier = "medium"
	TierLow      Tier = "low"
)

// Breakdown factor keys. Every RiskAssessment carries exactly this set so
// callers can diff assessments between runs.
const (
	FactorCVSS             = "cvss"
	FactorEPSS             = "epss"
	FactorKEV              = "kev"
	FactorExploitAvailable = "exploit_available"
	FactorAssetCriticality = "asset_criticality"
	FactorEnvironment      = "environment"
	FactorCrossHost        = "cross_host"
)

// BreakdownFactors lists every breakdown key in presentation order
var BreakdownFactors = []string{
	FactorCVSS,
	FactorEPSS,
	FactorKEV,
	FactorExploitAvailable,
	FactorAssetCriticality,
	FactorEnvironment,
	FactorCrossHost,
}

// RiskAssessment is the scored evaluation of a single finding.
// Total is always within [0,100]; Breakdown holds the uncapped
// per-factor contributions and sums to the pre-clamp total.
type RiskAssessment struct {
	Total     float64            `json:"total" bson:"total"`
	Breakdown map[string]float64 `json:"breakdown" bson:"breakdown"`
	Tier      Tier               `json:"tier" bson:"tier"`
	SLAHours  int                `json:"sla_hours" bson:"sla_hours"`
	GroupSize int                `json:"correlation_group_size" bson:"correlation_group_size"`

	// Degraded marks a neutral fallback result produced after an internal
	// fault. Callers should log it; the request itself still succeeds.
	Degraded bool `json:"degraded" bson:"degraded"`
}

// CorrelationGroup aggregates every finding carrying the same CVE.
// It is a derived view recomputed from the live finding set on demand.
type CorrelationGroup struct {
	CVEID       string   `json:"cve_id" bson:"cve_id"`
	AssetIDs    []string `json:"asset_ids" bson:"asset_ids"` // distinct, sorted
	Instances   int      `json:"instances" bson:"instances"`
	MaxSeverity Severity `json:"max_severity" bson:"max_severity"`
}

// Size returns the number of distinct assets in the group
func (g CorrelationGroup) Size() int {
	return len(g.AssetIDs)
}

// FindingAssessment bundles the outputs the API returns for one finding
type FindingAssessment struct {
	FindingID  string            `json:"finding_id"`
	Assessment RiskAssessment    `json:"assessment"`
	Compliance ComplianceMapping `json:"compliance"`
}
