package models

// Compliance framework identifiers
const (
	FrameworkNIST80053 = "nist_800_53"
	FrameworkISO27001  = "iso_27001"
	FrameworkHIPAA     = "hipaa"
	FrameworkFedRAMP   = "fedramp"
)

// ComplianceControl describes a single control inside a compliance
// framework. Controls are reference data: loaded once, never mutated.
type ComplianceControl struct {
	Framework            string   `json:"framework" bson:"framework" yaml:"framework"`
	ControlID            string   `json:"control_id" bson:"control_id" yaml:"id"`
	Title                string   `json:"title" bson:"title" yaml:"title"`
	Family               string   `json:"family" bson:"family" yaml:"family"`
	Description          string   `json:"description" bson:"description" yaml:"description"`
	Guidance             string   `json:"implementation_guidance" bson:"implementation_guidance" yaml:"guidance"`
	AssessmentProcedures []string `json:"assessment_procedures" bson:"assessment_procedures" yaml:"assessment_procedures"`
	RelatedControls      []string `json:"related_controls" bson:"related_controls" yaml:"related_controls"`
	Priority             string   `json:"priority" bson:"priority" yaml:"priority"`
}

// MappingEntry links a finding type to one control with a relevance weight
type MappingEntry struct {
	Framework string  `json:"framework" bson:"framework"`
	ControlID string  `json:"control_id" bson:"control_id"`
	Relevance float64 `json:"relevance" bson:"relevance"` // 0-1
}

// ComplianceMapping is the result of mapping one finding type onto the
// configured frameworks. An empty Entries slice with Confidence 0 is the
// valid "unmapped" result, not an error.
type ComplianceMapping struct {
	FindingType string         `json:"finding_type" bson:"finding_type"`
	Entries     []MappingEntry `json:"entries" bson:"entries"`
	Confidence  float64        `json:"mapping_confidence" bson:"mapping_confidence"` // mean relevance, 0 if empty
}
