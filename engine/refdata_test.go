package engine

import (
	"os"
	"path/filepath"
	"testing"

	"vulnguard/models"
)

func TestLoadRefDataDir(t *testing.T) {
	dir := t.TempDir()

	catalog := `framework: pci_dss
controls:
  - id: "2.2"
    title: Configuration standards
    family: Secure Configuration
    description: Develop configuration standards for all system components.
    priority: high
  - id: "1.1"
    title: Firewall configuration
    family: Network Security
    description: Establish firewall and router configuration standards.
    priority: critical
`
	mappings := `mappings:
  misconfiguration:
    pci_dss:
      - control_id: "2.2"
        relevance: 0.9
      - control_id: "1.1"
        relevance: 0.9
`
	weights := `weights:
  cvss_budget: 40
  epss_budget: 20
  kev_bonus: 15
  exploit_bonus: 10
  criticality_step: 2
  environment_budget: 10
  cross_host_cap: 5
  env_multipliers:
    production: 1.0
  default_env_multiplier: 0.5
`
	for name, content := range map[string]string{
		"pci_dss.yaml":  catalog,
		"mappings.yaml": mappings,
		"weights.yaml":  weights,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	rd, err := LoadRefDataDir(dir)
	if err != nil {
		t.Fatalf("LoadRefDataDir failed: %v", err)
	}

	t.Run("new framework appended", func(t *testing.T) {
		if !containsString(rd.Frameworks, "pci_dss") {
			t.Fatalf("pci_dss missing from frameworks: %v", rd.Frameworks)
		}
		controls := rd.Controls["pci_dss"]
		if len(controls) != 2 {
			t.Fatalf("expected 2 pci_dss controls, got %d", len(controls))
		}
		if controls[0].ControlID != "1.1" {
			t.Errorf("catalog should be sorted by control id, got %s first", controls[0].ControlID)
		}
		if controls[0].Framework != "pci_dss" {
			t.Errorf("loader should stamp the framework, got %q", controls[0].Framework)
		}
	})

	t.Run("mapping override", func(t *testing.T) {
		eng := New(rd)
		mapping := eng.MapFindingType(models.FindingTypeMisconfiguration)
		// The file replaces the built-in misconfiguration table.
		if len(mapping.Entries) != 2 {
			t.Fatalf("expected 2 entries after override, got %d", len(mapping.Entries))
		}
		// Equal relevance: control id ascending breaks the tie.
		if mapping.Entries[0].ControlID != "1.1" {
			t.Errorf("expected control 1.1 first, got %s", mapping.Entries[0].ControlID)
		}
	})

	t.Run("weights override", func(t *testing.T) {
		if rd.Weights.CVSSBudget != 40 {
			t.Errorf("expected CVSS budget 40, got %.0f", rd.Weights.CVSSBudget)
		}
	})

	t.Run("defaults preserved", func(t *testing.T) {
		if len(rd.Controls[models.FrameworkNIST80053]) != 5 {
			t.Errorf("built-in NIST catalog should survive, got %d controls", len(rd.Controls[models.FrameworkNIST80053]))
		}
		if len(rd.SLATable) != 4 {
			t.Errorf("built-in SLA table should survive, got %d rows", len(rd.SLATable))
		}
	})
}

func TestLoadRefDataDirMissing(t *testing.T) {
	if _, err := LoadRefDataDir("/nonexistent/refdata"); err == nil {
		t.Error("expected error for missing directory")
	}
}
