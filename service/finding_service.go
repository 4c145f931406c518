package service

import (
	"context"
	"errors"
	"time"

	"vulnguard/database"
	"vulnguard/engine"
	"vulnguard/models"
	"vulnguard/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FindingService struct{}

func NewFindingService() *FindingService {
	return &FindingService{}
}

// FindingFilter holds the list query conditions
type FindingFilter struct {
	AssetID   string
	Severity  string
	Type      string
	Status    string
	CVEID     string
	CrossHost bool
}

// IngestFinding inserts a finding, deduplicating by content key.
// A re-reported finding bumps last_seen and refreshes mutable fields
// instead of creating a duplicate document.
func (s *FindingService) IngestFinding(finding *models.Finding) (*models.Finding, bool, error) {
	ctx, cancel := database.NewContext()
	defer cancel()

	collection := database.GetCollection(models.CollectionFindings)

	finding.Severity = models.NormalizeSeverity(string(finding.Severity))
	if finding.Status == "" {
		finding.Status = models.FindingStatusOpen
	}
	// Canonical CVE ids before the dedup key, so case variants from
	// different scanners dedup and correlate as one weakness.
	finding.CVEIDs = models.NormalizeCVEIDs(finding.CVEIDs)
	if finding.AffectedHosts == nil {
		finding.AffectedHosts = []string{}
	}

	finding.DedupKey = utils.FindingDedupKey(finding.AssetID.Hex(), finding.PluginID, finding.Title, finding.CVEIDs)

	now := time.Now()

	var existing models.Finding
	err := collection.FindOne(ctx, bson.M{"dedup_key": finding.DedupKey}).Decode(&existing)
	if err == nil {
		update := bson.M{
			"$set": bson.M{
				"severity":       finding.Severity,
				"description":    finding.Description,
				"affected_hosts": finding.AffectedHosts,
				"last_seen":      now,
			},
		}
		if _, err := collection.UpdateOne(ctx, bson.M{"_id": existing.ID}, update); err != nil {
			return nil, false, errors.New("failed to update existing finding")
		}
		existing.Severity = finding.Severity
		existing.LastSeen = now
		return &existing, false, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, false, err
	}

	finding.ID = primitive.NewObjectID()
	finding.FirstSeen = now
	finding.LastSeen = now

	if _, err := collection.InsertOne(ctx, finding); err != nil {
		return nil, false, errors.New("failed to create finding")
	}

	return finding, true, nil
}

// GetFindingByID retrieves a finding by ID
func (s *FindingService) GetFindingByID(findingID string) (*models.Finding, error) {
	ctx, cancel := database.NewContext()
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(findingID)
	if err != nil {
		return nil, errors.New("invalid finding ID")
	}

	var finding models.Finding
	err = database.GetCollection(models.CollectionFindings).FindOne(ctx, bson.M{"_id": objID}).Decode(&finding)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("finding not found")
		}
		return nil, err
	}

	return &finding, nil
}

// ListFindings lists findings with filtering and pagination.
// Cross-host filtering is computed from live correlation groups rather
// than a stored flag, so it always reflects the current dataset.
func (s *FindingService) ListFindings(filter FindingFilter, page, pageSize int) ([]*models.Finding, int64, error) {
	ctx, cancel := database.NewContext()
	defer cancel()

	collection := database.GetCollection(models.CollectionFindings)

	query := bson.M{}
	if filter.AssetID != "" {
		objID, err := primitive.ObjectIDFromHex(filter.AssetID)
		if err != nil {
			return nil, 0, errors.New("invalid asset ID")
		}
		query["asset_id"] = objID
	}
	if filter.Severity != "" {
		query["severity"] = models.NormalizeSeverity(filter.Severity)
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.CVEID != "" {
		query["cve_ids"] = filter.CVEID
	}

	if filter.CrossHost {
		return s.listCrossHost(ctx, collection, query, page, pageSize)
	}

	total, err := collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, errors.New("failed to count findings")
	}

	opts := options.Find().
		SetSort(bson.M{"last_seen": -1}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, errors.New("failed to query findings")
	}
	defer cursor.Close(ctx)

	var findings []*models.Finding
	if err := cursor.All(ctx, &findings); err != nil {
		return nil, 0, errors.New("failed to decode findings")
	}
	if findings == nil {
		findings = []*models.Finding{}
	}

	return findings, total, nil
}

func (s *FindingService) listCrossHost(ctx context.Context, collection *mongo.Collection, query bson.M, page, pageSize int) ([]*models.Finding, int64, error) {
	sizes, err := s.correlationSizes()
	if err != nil {
		return nil, 0, err
	}

	cursor, err := collection.Find(ctx, query, options.Find().SetSort(bson.M{"last_seen": -1}))
	if err != nil {
		return nil, 0, errors.New("failed to query findings")
	}
	defer cursor.Close(ctx)

	var all []*models.Finding
	if err := cursor.All(ctx, &all); err != nil {
		return nil, 0, errors.New("failed to decode findings")
	}

	var matched []*models.Finding
	for _, f := range all {
		if engine.GroupSizeFor(*f, sizes) > 1 {
			matched = append(matched, f)
		}
	}

	total := int64(len(matched))
	start := (page - 1) * pageSize
	if start >= len(matched) {
		return []*models.Finding{}, total, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], total, nil
}

// AllOpenFindings returns every open finding, used as the correlation scope
func (s *FindingService) AllOpenFindings() ([]models.Finding, error) {
	ctx, cancel := database.NewLongContext()
	defer cancel()

	collection := database.GetCollection(models.CollectionFindings)

	cursor, err := collection.Find(ctx, bson.M{"status": models.FindingStatusOpen})
	if err != nil {
		return nil, errors.New("failed to query findings")
	}
	defer cursor.Close(ctx)

	var findings []models.Finding
	if err := cursor.All(ctx, &findings); err != nil {
		return nil, errors.New("failed to decode findings")
	}
	if findings == nil {
		findings = []models.Finding{}
	}

	return findings, nil
}

// correlationSizes builds the CVE -> group size map over open findings
func (s *FindingService) correlationSizes() (map[string]int, error) {
	open, err := s.AllOpenFindings()
	if err != nil {
		return nil, err
	}
	groups := engine.Correlate(open)
	return engine.GroupSizes(groups), nil
}

// CrossHostAnalysis returns the correlation groups spanning more than one asset
func (s *FindingService) CrossHostAnalysis() ([]models.CorrelationGroup, error) {
	open, err := s.AllOpenFindings()
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
	if crossHost == nil {
		crossHost = []models.CorrelationGroup{}
	}

	return crossHost, nil
}

// UpdateFindingStatus transitions a finding between open/in_progress/resolved/accepted
func (s *FindingService) UpdateFindingStatus(findingID, status string) error {
	switch status {
	case models.FindingStatusOpen, models.FindingStatusInProgress,
		models.FindingStatusResolved, models.FindingStatusAccepted:
	default:
		return errors.New("invalid finding status")
	}

	ctx, cancel := database.NewContext()
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(findingID)
	if err != nil {
		return errors.New("invalid finding ID")
	}

	result, err := database.GetCollection(models.CollectionFindings).UpdateOne(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"status": status, "last_seen": time.Now()}},
	)
	if err != nil {
		return errors.New("failed to update finding")
	}
	if result.MatchedCount == 0 {
		return errors.New("finding not found")
	}

	return nil
}

// DeleteFinding deletes a finding
func (s *FindingService) DeleteFinding(findingID string) error {
	ctx, cancel := database.NewContext()
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(findingID)
	if err != nil {
		return errors.New("invalid finding ID")
	}

	result, err := database.GetCollection(models.CollectionFindings).DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return errors.New("failed to delete finding")
	}
	if result.DeletedCount == 0 {
		return errors.New("finding not found")
	}

	return nil
}
