package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"vulnguard/models"

	"gopkg.in/yaml.v3"
)

// ScoreWeights holds the point budget of every risk factor. The budgets
// sum past 100 so overlapping signals can push a finding to the ceiling.
type ScoreWeights struct {
	CVSSBudget           float64            `yaml:"cvss_budget"`            // points at CVSS 10.0
	EPSSBudget           float64            `yaml:"epss_budget"`            // points at EPSS 1.0
	KEVBonus             float64            `yaml:"kev_bonus"`              // flat bonus when KEV-listed
	ExploitBonus         float64            `yaml:"exploit_bonus"`          // flat bonus when a public exploit exists
	CriticalityStep      float64            `yaml:"criticality_step"`       // points per inverted criticality step
	EnvironmentBudget    float64            `yaml:"environment_budget"`     // points at multiplier 1.0
	CrossHostCap         int                `yaml:"cross_host_cap"`         // max points from group size
	EnvMultipliers       map[string]float64 `yaml:"env_multipliers"`
	DefaultEnvMultiplier float64            `yaml:"default_env_multiplier"`
}

// SLAThreshold maps a score floor to a priority tier and remediation SLA
type SLAThreshold struct {
	MinScore float64     `yaml:"min_score"`
	Tier     models.Tier `yaml:"tier"`
	SLAHours int         `yaml:"sla_hours"`
}

// ControlRelevance links one control id to a relevance weight inside a
// finding-type mapping table
type ControlRelevance struct {
	ControlID string  `yaml:"control_id"`
	Relevance float64 `yaml:"relevance"`
}

// RefData is the read-only reference data store backing the engine:
// control catalogs, finding-type mapping tables, scoring weights and SLA
// thresholds. It is fully built before use and never mutated afterwards,
// so concurrent readers need no locking. Reload replaces the whole table.
type RefData struct {
	// Frameworks fixes the order frameworks appear in mapping results
	Frameworks []string

	// Controls holds the control catalog per framework
	Controls map[string][]models.ComplianceControl

	// Mappings maps finding type -> framework -> relevance-weighted controls
	Mappings map[string]map[string][]ControlRelevance

	Weights  ScoreWeights
	SLATable []SLAThreshold
}

// normalize sorts catalogs and mapping rows into their documented order so
// every lookup is deterministic without per-call sorting
func (rd *RefData) normalize() {
	for fw := range rd.Controls {
		controls := rd.Controls[fw]
		sort.Slice(controls, func(i, j int) bool {
			return controls[i].ControlID < controls[j].ControlID
		})
	}
	for _, byFramework := range rd.Mappings {
		for fw := range byFramework {
			rows := byFramework[fw]
			sort.Slice(rows, func(i, j int) bool {
				if rows[i].Relevance != rows[j].Relevance {
					return rows[i].Relevance > rows[j].Relevance
				}
				return rows[i].ControlID < rows[j].ControlID
			})
		}
	}
	sort.Slice(rd.SLATable, func(i, j int) bool {
		return rd.SLATable[i].MinScore > rd.SLATable[j].MinScore
	})
}

// refDoc is the YAML shape of a reference data file. A file may carry a
// framework catalog, mapping tables, weights, an SLA table, or any mix.
type refDoc struct {
	Framework string                                 `yaml:"framework"`
	Controls  []models.ComplianceControl             `yaml:"controls"`
	Mappings  map[string]map[string][]ControlRelevance `yaml:"mappings"`
	Weights   *ScoreWeights                          `yaml:"weights"`
	SLA       []SLAThreshold                         `yaml:"sla"`
}

// LoadRefDataDir builds a reference data store from the YAML files in dir,
// starting from the built-in defaults. Catalog files replace the catalog of
// the framework they declare; mapping files replace the mapping table per
// finding type; weights and SLA tables replace wholesale.
func LoadRefDataDir(dir string) (*RefData, error) {
	rd := DefaultRefData()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read refdata directory: %w", err)
	}

	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		var doc refDoc
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", entry.Name(), err)
		}

		if doc.Framework != "" {
			controls := make([]models.ComplianceControl, 0, len(doc.Controls))
			for _, ctrl := range doc.Controls {
				ctrl.Framework = doc.Framework
				controls = append(controls, ctrl)
			}
			rd.Controls[doc.Framework] = controls
			if !containsString(rd.Frameworks, doc.Framework) {
				rd.Frameworks = append(rd.Frameworks, doc.Framework)
			}
		}
		for findingType, byFramework := range doc.Mappings {
			rd.Mappings[findingType] = byFramework
		}
		if doc.Weights != nil {
			rd.Weights = *doc.Weights
		}
		if len(doc.SLA) > 0 {
			rd.SLATable = doc.SLA
		}
	}

	rd.normalize()
	return rd, nil
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
