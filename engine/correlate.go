package engine

import (
	"sort"

	"vulnguard/models"
)

// Correlate groups the given findings by CVE id and reports, per CVE, the
// distinct assets affected, the number of finding instances and the
// maximum observed severity. A finding carrying N CVE ids joins N groups,
// since each CVE is an independently trackable weakness. Groups with a
// single affected asset are still produced so callers can always ask for
// a finding's group size; "cross-host" is simply Size() > 1.
//
// The result is a derived view over the input: recomputing on the same
// finding set yields the same groups, in ascending CVE id order.
func Correlate(findings []models.Finding) []models.CorrelationGroup {
	type accumulator struct {
		assets      map[string]struct{}
		instances   int
		maxSeverity models.Severity
	}

	byCVE := make(map[string]*accumulator)
	for _, finding := range findings {
		for _, cveID := range finding.CVEIDs {
			if cveID == "" {
				continue
			}
			acc, ok := byCVE[cveID]
			if !ok {
				acc = &accumulator{assets: make(map[string]struct{})}
				byCVE[cveID] = acc
			}
			acc.instances++
			if !finding.AssetID.IsZero() {
				acc.assets[finding.AssetID.Hex()] = struct{}{}
			}
			for _, host := range finding.AffectedHosts {
				if host != "" {
					acc.assets[host] = struct{}{}
				}
			}
			if finding.Severity.Weight() > acc.maxSeverity.Weight() {
				acc.maxSeverity = finding.Severity
			}
		}
	}

	groups := make([]models.CorrelationGroup, 0, len(byCVE))
	for cveID, acc := range byCVE {
		assetIDs := make([]string, 0, len(acc.assets))
		for id := range acc.assets {
			assetIDs = append(assetIDs, id)
		}
		sort.Strings(assetIDs)

		groups = append(groups, models.CorrelationGroup{
			CVEID:       cveID,
			AssetIDs:    assetIDs,
			Instances:   acc.instances,
			MaxSeverity: acc.maxSeverity,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].CVEID < groups[j].CVEID
	})
	return groups
}

// GroupSizes indexes correlation groups by CVE id to their distinct-asset
// count, the shape the scorer consumes.
func GroupSizes(groups []models.CorrelationGroup) map[string]int {
	sizes := make(map[string]int, len(groups))
	for _, group := range groups {
		sizes[group.CVEID] = group.Size()
	}
	return sizes
}

// GroupSizeFor returns the correlation group size to score a finding
// with: the largest group among its CVE ids, and at least 1 so findings
// without CVEs or correlations score uniformly.
func GroupSizeFor(finding models.Finding, sizes map[string]int) int {
	size := 1
	for _, cveID := range finding.CVEIDs {
		if s, ok := sizes[cveID]; ok && s > size {
			size = s
		}
	}
	return size
}
