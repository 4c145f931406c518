package engine

import (
	"math"
	"reflect"
	"testing"

	"vulnguard/models"
)

func TestMapFindingTypeConfidence(t *testing.T) {
	// Two frameworks with relevances 0.9/0.8 and 0.9/0.85:
	// mean(0.9, 0.8, 0.9, 0.85) = 0.8625.
	rd := &RefData{
		Frameworks: []string{"framework_a", "framework_b"},
		Controls:   map[string][]models.ComplianceControl{},
		Mappings: map[string]map[string][]ControlRelevance{
			models.FindingTypeWeakAuthentication: {
				"framework_a": {
					{ControlID: "A-1", Relevance: 0.9},
					{ControlID: "A-2", Relevance: 0.8},
				},
				"framework_b": {
					{ControlID: "B-1", Relevance: 0.9},
					{ControlID: "B-2", Relevance: 0.85},
				},
			},
		},
		Weights:  DefaultWeights(),
		SLATable: DefaultSLATable(),
	}
	rd.normalize()
	eng := New(rd)

	mapping := eng.MapFindingType(models.FindingTypeWeakAuthentication)

	if len(mapping.Entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(mapping.Entries))
	}
	if math.Abs(mapping.Confidence-0.8625) > 1e-9 {
		t.Errorf("expected confidence 0.8625, got %.6f", mapping.Confidence)
	}

	// Per framework: descending relevance, control id breaks ties.
	wantOrder := []string{"A-1", "A-2", "B-1", "B-2"}
	for i, entry := range mapping.Entries {
		if entry.ControlID != wantOrder[i] {
			t.Errorf("entry %d: expected control %s, got %s", i, wantOrder[i], entry.ControlID)
		}
	}
}

func TestMapFindingTypeBuiltinCatalog(t *testing.T) {
	eng := testEngine()

	mapping := eng.MapFindingType(models.FindingTypeWeakAuthentication)
	if len(mapping.Entries) != 11 {
		t.Fatalf("expected 11 entries for weak_authentication, got %d", len(mapping.Entries))
	}

	// NIST entries come first and lead with IA-2 at 0.95.
	first := mapping.Entries[0]
	if first.Framework != models.FrameworkNIST80053 || first.ControlID != "IA-2" || first.Relevance != 0.95 {
		t.Errorf("unexpected leading entry: %+v", first)
	}

	sum := 0.0
	for _, entry := range mapping.Entries {
		sum += entry.Relevance
	}
	if math.Abs(mapping.Confidence-sum/11) > 1e-9 {
		t.Errorf("confidence %.6f is not the mean relevance %.6f", mapping.Confidence, sum/11)
	}
}

func TestMapFindingTypeUnknown(t *testing.T) {
	eng := testEngine()

	mapping := eng.MapFindingType("quantum_entanglement_leak")

	if len(mapping.Entries) != 0 {
		t.Errorf("unknown type should map to no controls, got %d entries", len(mapping.Entries))
	}
	if mapping.Confidence != 0 {
		t.Errorf("unmapped result must carry confidence 0, got %.4f", mapping.Confidence)
	}
	if mapping.FindingType != "quantum_entanglement_leak" {
		t.Errorf("mapping should echo the queried type, got %s", mapping.FindingType)
	}
}

func TestMapFindingTypeDeterministic(t *testing.T) {
	eng := testEngine()

	first := eng.MapFindingType(models.FindingTypeMisconfiguration)
	for i := 0; i < 50; i++ {
		again := eng.MapFindingType(models.FindingTypeMisconfiguration)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d returned different mapping", i)
		}
	}
}

func TestControlsForFramework(t *testing.T) {
	eng := testEngine()

	t.Run("known framework", func(t *testing.T) {
		controls := eng.ControlsForFramework(models.FrameworkNIST80053)
		if len(controls) != 5 {
			t.Fatalf("expected 5 NIST controls, got %d", len(controls))
		}
		for i := 1; i < len(controls); i++ {
			if controls[i-1].ControlID >= controls[i].ControlID {
				t.Errorf("controls not sorted by id: %s before %s", controls[i-1].ControlID, controls[i].ControlID)
			}
		}
		for _, ctrl := range controls {
			if ctrl.Framework != models.FrameworkNIST80053 {
				t.Errorf("control %s tagged with framework %s", ctrl.ControlID, ctrl.Framework)
			}
		}
	})

	t.Run("unknown framework", func(t *testing.T) {
		controls := eng.ControlsForFramework("pci_dss")
		if len(controls) != 0 {
			t.Errorf("expected empty catalog for unknown framework, got %d", len(controls))
		}
	})
}

func TestFrameworksOrder(t *testing.T) {
	eng := testEngine()

	want := []string{
		models.FrameworkNIST80053,
		models.FrameworkISO27001,
		models.FrameworkHIPAA,
		models.FrameworkFedRAMP,
	}
	if got := eng.Frameworks(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected frameworks %v, got %v", want, got)
	}
}
