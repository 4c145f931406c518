package service

import (
	"context"
	"errors"
	"log"

	"vulnguard/database"
	"vulnguard/engine"
	"vulnguard/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssessmentService orchestrates the decision pipeline for findings:
// correlate across hosts, score, classify, and map to compliance
// controls. Results are persisted back onto the finding document so
// list endpoints can sort by risk without recomputing.
type AssessmentService struct {
	engine   *engine.Engine
	findings *FindingService
	assets   *AssetService
	intel    *IntelService
}

func NewAssessmentService(eng *engine.Engine) *AssessmentService {
	return &AssessmentService{
		engine:   eng,
		findings: NewFindingService(),
		assets:   NewAssetService(),
		intel:    NewIntelService(),
	}
}

// AssessFinding runs the full pipeline for one finding
func (s *AssessmentService) AssessFinding(findingID string) (*models.FindingAssessment, error) {
	finding, err := s.findings.GetFindingByID(findingID)
	if err != nil {
		return nil, err
	}

	asset, err := s.assets.GetAssetByID(finding.AssetID.Hex())
	if err != nil {
		return nil, errors.New("asset for finding not found")
	}

	sizes, err := s.findings.correlationSizes()
	if err != nil {
		return nil, err
	}

	assessment := s.assessWithSizes(*finding, *asset, sizes)

	ctx, cancel := database.NewContext()
	defer cancel()
	if err := s.persistAssessment(ctx, finding.ID, assessment); err != nil {
		log.Printf("Failed to persist assessment for finding %s: %v", findingID, err)
	}

	return &models.FindingAssessment{
		FindingID:  finding.ID.Hex(),
		Assessment: assessment,
		Compliance: s.engine.MapFindingType(finding.Type),
	}, nil
}

// AssessAll reassesses every open finding, returning the per-finding results.
// Group sizes are computed once over the whole scope so the cross-host
// term is consistent across the batch.
func (s *AssessmentService) AssessAll() ([]models.FindingAssessment, error) {
	open, err := s.findings.AllOpenFindings()
	if err != nil {
		return nil, err
	}

	groups := engine.Correlate(open)
	sizes := engine.GroupSizes(groups)

	// One batch-sized deadline covers all the writes of the sweep.
	ctx, cancel := database.NewBatchContext()
	defer cancel()

	assetCache := make(map[string]*models.Asset)

	results := make([]models.FindingAssessment, 0, len(open))
	for i := range open {
		finding := open[i]

		asset, ok := assetCache[finding.AssetID.Hex()]
		if !ok {
			asset, err = s.assets.GetAssetByID(finding.AssetID.Hex())
			if err != nil {
				log.Printf("Skipping finding %s: %v", finding.ID.Hex(), err)
				continue
			}
			assetCache[finding.AssetID.Hex()] = asset
		}

		assessment := s.assessWithSizes(finding, *asset, sizes)
		if err := s.persistAssessment(ctx, finding.ID, assessment); err != nil {
			log.Printf("Failed to persist assessment for finding %s: %v", finding.ID.Hex(), err)
		}

		results = append(results, models.FindingAssessment{
			FindingID:  finding.ID.Hex(),
			Assessment: assessment,
			Compliance: s.engine.MapFindingType(finding.Type),
		})
	}

	return results, nil
}

// MapFinding returns the compliance mapping for a finding without rescoring it
func (s *AssessmentService) MapFinding(findingID string) (*models.ComplianceMapping, error) {
	finding, err := s.findings.GetFindingByID(findingID)
	if err != nil {
		return nil, err
	}

	mapping := s.engine.MapFindingType(finding.Type)
	return &mapping, nil
}

// MapFindingType maps a finding type directly, for catalog exploration
func (s *AssessmentService) MapFindingType(findingType string) models.ComplianceMapping {
	return s.engine.MapFindingType(findingType)
}

// Frameworks returns the supported framework identifiers in catalog order
func (s *AssessmentService) Frameworks() []string {
	return s.engine.Frameworks()
}

// ControlsForFramework returns the control catalog of one framework
func (s *AssessmentService) ControlsForFramework(framework string) ([]models.ComplianceControl, error) {
	for _, known := range s.engine.Frameworks() {
		if known == framework {
			return s.engine.ControlsForFramework(framework), nil
		}
	}
	return nil, errors.New("unknown compliance framework")
}

func (s *AssessmentService) assessWithSizes(finding models.Finding, asset models.Asset, sizes map[string]int) models.RiskAssessment {
	groupSize := engine.GroupSizeFor(finding, sizes)

	// Intel attaches to the first CVE; additional CVEs on the same
	// finding get their own correlation groups but not separate scores.
	var intel *models.VulnerabilityIntel
	if len(finding.CVEIDs) > 0 {
		loaded, err := s.intel.GetIntel(finding.CVEIDs[0])
		if err != nil {
			log.Printf("Intel lookup failed for %s, scoring without it: %v", finding.CVEIDs[0], err)
		} else {
			intel = loaded
		}
	}

	return s.engine.Score(finding, asset, intel, groupSize)
}

func (s *AssessmentService) persistAssessment(ctx context.Context, findingID primitive.ObjectID, assessment models.RiskAssessment) error {
	_, err := database.GetCollection(models.CollectionFindings).UpdateOne(
		ctx,
		bson.M{"_id": findingID},
		bson.M{"$set": bson.M{
			"risk_score": assessment.Total,
			"assessment": assessment,
		}},
	)
	return err
}
