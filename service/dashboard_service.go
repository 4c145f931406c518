package service

import (
	"errors"
	"sort"

	"vulnguard/database"
	"vulnguard/engine"
	"vulnguard/models"

	"go.mongodb.org/mongo-driver/bson"
)

type DashboardService struct {
	findings *FindingService
}

func NewDashboardService() *DashboardService {
	return &DashboardService{findings: NewFindingService()}
}

// DashboardStats summarizes the current security posture
type DashboardStats struct {
	TotalAssets       int64                     `json:"total_assets"`
	TotalFindings     int64                     `json:"total_findings"`
	OpenFindings      int64                     `json:"open_findings"`
	SeverityBreakdown map[string]int64          `json:"severity_breakdown"`
	TierBreakdown     map[string]int64          `json:"tier_breakdown"`
	CrossHostGroups   int                       `json:"cross_host_groups"`
	TopCrossHostCVEs  []models.CorrelationGroup `json:"top_cross_host_cves"`
}

// GetStats assembles the dashboard summary
func (s *DashboardService) GetStats() (*DashboardStats, error) {
	ctx, cancel := database.NewLongContext()
	defer cancel()

	stats := &DashboardStats{
		SeverityBreakdown: make(map[string]int64),
		TierBreakdown:     make(map[string]int64),
		TopCrossHostCVEs:  []models.CorrelationGroup{},
	}

	assetColl := database.GetCollection(models.CollectionAssets)
	findingColl := database.GetCollection(models.CollectionFindings)

	var err error
	if stats.TotalAssets, err = assetColl.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, errors.New("failed to count assets")
	}
	if stats.TotalFindings, err = findingColl.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, errors.New("failed to count findings")
	}
	if stats.OpenFindings, err = findingColl.CountDocuments(ctx, bson.M{"status": models.FindingStatusOpen}); err != nil {
		return nil, errors.New("failed to count open findings")
	}

	// Severity breakdown over open findings
	cursor, err := findingColl.Aggregate(ctx, []bson.M{
		{"$match": bson.M{"status": models.FindingStatusOpen}},
		{"$group": bson.M{"_id": "$severity", "count": bson.M{"$sum": 1}}},
	})
	if err != nil {
		return nil, errors.New("failed to aggregate severities")
	}
	var severityRows []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &severityRows); err != nil {
		return nil, errors.New("failed to decode severity aggregation")
	}
	for _, row := range severityRows {
		stats.SeverityBreakdown[row.ID] = row.Count
	}

	// Tier breakdown over assessed findings
	cursor, err = findingColl.Aggregate(ctx, []bson.M{
		{"$match": bson.M{"status": models.FindingStatusOpen, "assessment": bson.M{"$ne": nil}}},
		{"$group": bson.M{"_id": "$assessment.tier", "count": bson.M{"$sum": 1}}},
	})
	if err != nil {
		return nil, errors.New("failed to aggregate tiers")
	}
	var tierRows []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &tierRows); err != nil {
		return nil, errors.New("failed to decode tier aggregation")
	}
	for _, row := range tierRows {
		if row.ID != "" {
			stats.TierBreakdown[row.ID] = row.Count
		}
	}

	// Cross-host exposure from live correlation
	open, err := s.findings.AllOpenFindings()
	if err != nil {
		return nil, err
	}
	groups := engine.Correlate(open)

	var crossHost []models.CorrelationGroup
	for _, g := range groups {
		if g.Size() > 1 {
			crossHost = append(crossHost, g)
		}
	}
	stats.CrossHostGroups = len(crossHost)

	sort.SliceStable(crossHost, func(i, j int) bool {
		if crossHost[i].Size() != crossHost[j].Size() {
			return crossHost[i].Size() > crossHost[j].Size()
		}
		return crossHost[i].CVEID < crossHost[j].CVEID
	})
	if len(crossHost) > 5 {
		crossHost = crossHost[:5]
	}
	if crossHost != nil {
		stats.TopCrossHostCVEs = crossHost
	}

	return stats, nil
}
