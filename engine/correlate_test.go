package engine

import (
	"reflect"
	"testing"

	"vulnguard/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func findingOn(asset primitive.ObjectID, severity models.Severity, cves ...string) models.Finding {
	return models.Finding{
		ID:       primitive.NewObjectID(),
		AssetID:  asset,
		Severity: severity,
		CVEIDs:   cves,
	}
}

func TestCorrelateLog4Shell(t *testing.T) {
	a, b, c := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	findings := []models.Finding{
		findingOn(a, models.SeverityHigh, "CVE-2021-44228"),
		findingOn(b, models.SeverityCritical, "CVE-2021-44228"),
		findingOn(c, models.SeverityMedium, "CVE-2021-44228"),
	}

	groups := Correlate(findings)
	if len(groups) != 1 {
		t.Fatalf("expected one group, got %d", len(groups))
	}

	group := groups[0]
	if group.CVEID != "CVE-2021-44228" {
		t.Errorf("unexpected group key %s", group.CVEID)
	}
	if group.Size() != 3 {
		t.Errorf("expected 3 distinct assets, got %d", group.Size())
	}
	if group.Instances != 3 {
		t.Errorf("expected 3 instances, got %d", group.Instances)
	}
	if group.MaxSeverity != models.SeverityCritical {
		t.Errorf("expected max severity critical, got %s", group.MaxSeverity)
	}

	// The group size should feed a +3 cross-host term into each score.
	eng := testEngine()
	sizes := GroupSizes(groups)
	for _, finding := range findings {
		result := eng.Score(finding, models.Asset{Criticality: 3, Environment: models.EnvProduction}, nil, GroupSizeFor(finding, sizes))
		if result.Breakdown[models.FactorCrossHost] != 3 {
			t.Errorf("expected +3 cross-host points, got %.2f", result.Breakdown[models.FactorCrossHost])
		}
	}
}

func TestCorrelateMultiCVEFinding(t *testing.T) {
	asset := primitive.NewObjectID()
	findings := []models.Finding{
		findingOn(asset, models.SeverityHigh, "CVE-2021-41773", "CVE-2021-42013"),
	}

	groups := Correlate(findings)
	if len(groups) != 2 {
		t.Fatalf("finding with 2 CVEs should join 2 groups, got %d", len(groups))
	}
	for _, group := range groups {
		if group.Size() != 1 || group.Instances != 1 {
			t.Errorf("group %s: expected size 1/instances 1, got %d/%d", group.CVEID, group.Size(), group.Instances)
		}
	}
}

func TestCorrelateAffectedHosts(t *testing.T) {
	asset := primitive.NewObjectID()
	finding := findingOn(asset, models.SeverityLow, "CVE-2008-5161")
	finding.AffectedHosts = []string{"web-01", "web-02", "web-02"}

	groups := Correlate([]models.Finding{finding})
	if len(groups) != 1 {
		t.Fatalf("expected one group, got %d", len(groups))
	}
	// The owning asset plus two distinct affected hosts.
	if groups[0].Size() != 3 {
		t.Errorf("expected 3 distinct assets, got %d: %v", groups[0].Size(), groups[0].AssetIDs)
	}
}

func TestCorrelateIdempotent(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	findings := []models.Finding{
		findingOn(a, models.SeverityHigh, "CVE-2014-0160"),
		findingOn(b, models.SeverityMedium, "CVE-2014-0160", "CVE-2021-44228"),
		findingOn(a, models.SeverityInfo),
	}

	first := Correlate(findings)
	second := Correlate(findings)
	if !reflect.DeepEqual(first, second) {
		t.Error("re-running correlation on the same finding set changed the result")
	}

	// The CVE-less finding joins no group.
	if len(first) != 2 {
		t.Errorf("expected 2 groups, got %d", len(first))
	}
}

func TestGroupSizeFor(t *testing.T) {
	sizes := map[string]int{"CVE-2014-0160": 4, "CVE-2021-44228": 2}

	multi := models.Finding{CVEIDs: []string{"CVE-2021-44228", "CVE-2014-0160"}}
	if got := GroupSizeFor(multi, sizes); got != 4 {
		t.Errorf("expected the largest group (4), got %d", got)
	}

	none := models.Finding{}
	if got := GroupSizeFor(none, sizes); got != 1 {
		t.Errorf("finding without CVEs should default to group size 1, got %d", got)
	}
}
