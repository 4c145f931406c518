package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Severity represents normalized finding severity
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// Weight returns a numeric weight for ordering severities (higher = more severe)
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return 5
	case SeverityHigh:
		return 4
	case SeverityMedium:
		return 3
	case SeverityLow:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

func (s Severity) String() string {
	return string(s)
}

// NormalizeSeverity maps scanner-specific severity strings to Severity
func NormalizeSeverity(raw string) Severity {
	switch raw {
	case "critical", "CRITICAL":
		return SeverityCritical
	case "high", "HIGH", "error", "ERROR":
		return SeverityHigh
	case "medium", "MEDIUM", "moderate", "MODERATE", "warning", "WARNING":
		return SeverityMedium
	case "low", "LOW":
		return SeverityLow
	default:
		return SeverityInfo
	}
}

// NormalizeCVEIDs canonicalizes scanner-reported CVE ids: trimmed,
// uppercased, empties dropped. Correlation groups by CVE id string, so
// mixed-case reports of the same CVE must land on one form.
func NormalizeCVEIDs(raw []string) []string {
	ids := make([]string, 0, len(raw))
	for _, id := range raw {
		id = strings.ToUpper(strings.TrimSpace(id))
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// Finding statuses
const (
	FindingStatusOpen       = "open"
	FindingStatusInProgress = "in_progress"
	FindingStatusResolved   = "resolved"
	FindingStatusAccepted   = "accepted"
)

// Common finding types used by the compliance mapping tables
const (
	FindingTypeWeakAuthentication     = "weak_authentication"
	FindingTypeUnpatchedVulnerability = "unpatched_vulnerability"
	FindingTypeMisconfiguration       = "misconfiguration"
	FindingTypeExcessivePrivileges    = "excessive_privileges"
	FindingTypeInsufficientLogging    = "insufficient_logging"
)

// Finding represents a security finding reported against an asset
type Finding struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	AssetID     primitive.ObjectID `json:"asset_id" bson:"asset_id"`
	PluginID    string             `json:"plugin_id" bson:"plugin_id"`
	Type        string             `json:"type" bson:"type"` // weak_authentication, unpatched_vulnerability, ...
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	CVEIDs      []string           `json:"cve_ids" bson:"cve_ids"`
	Severity    Severity           `json:"severity" bson:"severity"`
	Status      string             `json:"status" bson:"status"`

	// AffectedHosts lists asset identifiers sharing this weakness,
	// used by cross-host correlation.
	AffectedHosts []string `json:"affected_hosts" bson:"affected_hosts"`

	// DedupKey identifies recurring occurrences of the same finding;
	// re-ingest bumps LastSeen instead of inserting a duplicate.
	DedupKey string `json:"-" bson:"dedup_key"`

	RiskScore  float64         `json:"risk_score" bson:"risk_score"`
	Assessment *RiskAssessment `json:"assessment,omitempty" bson:"assessment,omitempty"`

	RemediationNotes string    `json:"remediation_notes,omitempty" bson:"remediation_notes,omitempty"`
	FirstSeen        time.Time `json:"first_seen" bson:"first_seen"`
	LastSeen         time.Time `json:"last_seen" bson:"last_seen"`
}

// Collection names for findings
const (
	CollectionFindings = "findings"
)
