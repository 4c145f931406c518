package engine

import "vulnguard/models"

// MapFindingType maps a finding type onto the configured compliance
// frameworks. Lookup is exact-match only: an unrecognized type yields an
// empty mapping with confidence 0, which is a valid "unmapped" result.
//
// Entries are ordered by framework (catalog order), then by descending
// relevance with control id as tiebreak, so repeated calls over unchanged
// reference data return identical output. Confidence is the arithmetic
// mean of every returned relevance.
func (e *Engine) MapFindingType(findingType string) models.ComplianceMapping {
	mapping := models.ComplianceMapping{
		FindingType: findingType,
		Entries:     []models.MappingEntry{},
	}

	rd := e.refData()
	if rd == nil {
		return mapping
	}

	byFramework, ok := rd.Mappings[findingType]
	if !ok {
		return mapping
	}

	sum := 0.0
	for _, framework := range rd.Frameworks {
		for _, row := range byFramework[framework] {
			mapping.Entries = append(mapping.Entries, models.MappingEntry{
				Framework: framework,
				ControlID: row.ControlID,
				Relevance: row.Relevance,
			})
			sum += row.Relevance
		}
	}

	if len(mapping.Entries) > 0 {
		mapping.Confidence = sum / float64(len(mapping.Entries))
	}
	return mapping
}

// ControlsForFramework returns the control catalog of one framework,
// sorted by control id. Unknown frameworks yield an empty catalog.
func (e *Engine) ControlsForFramework(framework string) []models.ComplianceControl {
	rd := e.refData()
	if rd == nil {
		return []models.ComplianceControl{}
	}

	catalog := rd.Controls[framework]
	controls := make([]models.ComplianceControl, len(catalog))
	copy(controls, catalog)
	return controls
}

// Frameworks returns the configured framework identifiers in catalog order
func (e *Engine) Frameworks() []string {
	rd := e.refData()
	if rd == nil {
		return []string{}
	}
	frameworks := make([]string, len(rd.Frameworks))
	copy(frameworks, rd.Frameworks)
	return frameworks
}
