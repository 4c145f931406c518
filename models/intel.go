package models

import "time"

// VulnerabilityIntel carries external intelligence about a CVE.
// It is optional input everywhere it is consumed: a missing record
// degrades the dependent risk terms to zero, it never fails a request.
type VulnerabilityIntel struct {
	CVEID            string     `json:"cve_id" bson:"cve_id"`
	CVSSScore        float64    `json:"cvss_score" bson:"cvss_score"` // 0-10
	CVSSVector       string     `json:"cvss_vector,omitempty" bson:"cvss_vector,omitempty"`
	EPSSScore        *float64   `json:"epss_score,omitempty" bson:"epss_score,omitempty"` // 0-1
	KEVListed        bool       `json:"kev_listed" bson:"kev_listed"`
	ExploitAvailable bool       `json:"exploit_available" bson:"exploit_available"`
	PatchAvailable   bool       `json:"patch_available" bson:"patch_available"`
	Description      string     `json:"description,omitempty" bson:"description,omitempty"`
	Severity         Severity   `json:"severity,omitempty" bson:"severity,omitempty"`
	PublishedDate    *time.Time `json:"published_date,omitempty" bson:"published_date,omitempty"`
	ModifiedDate     *time.Time `json:"modified_date,omitempty" bson:"modified_date,omitempty"`
	References       []string   `json:"references" bson:"references"`
	FetchedAt        time.Time  `json:"fetched_at" bson:"fetched_at"`
}

// Collection names for vulnerability intelligence
const (
	CollectionVulnIntel = "vuln_intel"
)
