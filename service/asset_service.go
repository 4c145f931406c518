package service

import (
	"errors"
	"time"

	"vulnguard/database"
	"vulnguard/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AssetService struct{}

func NewAssetService() *AssetService {
	return &AssetService{}
}

// CreateAsset creates a new asset
func (s *AssetService) CreateAsset(asset *models.Asset) error {
	ctx, cancel := database.NewContext()
	defer cancel()

	collection := database.GetCollection(models.CollectionAssets)

	// Hostnames identify assets for ingest collaborators
	var existing models.Asset
	err := collection.FindOne(ctx, bson.M{"hostname": asset.Hostname}).Decode(&existing)
	if err == nil {
		return errors.New("asset with this hostname already exists")
	}

	if asset.Environment == "" {
		asset.Environment = models.EnvProduction
	}
	if asset.Criticality == 0 {
		asset.Criticality = 3
	}
	if asset.ComplianceRequirements == nil {
		asset.ComplianceRequirements = []string{}
	}
	if asset.Tags == nil {
		asset.Tags = []string{}
	}

	asset.ID = primitive.NewObjectID()
	asset.CreatedAt = time.Now()
	asset.UpdatedAt = time.Now()

	_, err = collection.InsertOne(ctx, asset)
	if err != nil {
		return errors.New("failed to create asset")
	}

	return nil
}

// GetAssetByID retrieves an asset by ID
func (s *AssetService) GetAssetByID(assetID string) (*models.Asset, error) {
	ctx, cancel := database.NewContext()
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(assetID)
	if err != nil {
		return nil, errors.New("invalid asset ID")
	}

	var asset models.Asset
	err = database.GetCollection(models.CollectionAssets).FindOne(ctx, bson.M{"_id": objID}).Decode(&asset)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("asset not found")
		}
		return nil, err
	}

	return &asset, nil
}

// ListAssets lists assets with filtering and pagination
func (s *AssetService) ListAssets(environment, businessUnit, keyword string, page, pageSize int) ([]*models.Asset, int64, error) {
	ctx, cancel := database.NewContext()
	defer cancel()

	collection := database.GetCollection(models.CollectionAssets)

	filter := bson.M{}
	if environment != "" {
		filter["environment"] = environment
	}
	if businessUnit != "" {
		filter["business_unit"] = businessUnit
	}
	if keyword != "" {
		filter["$or"] = []bson.M{
			{"hostname": bson.M{"$regex": keyword, "$options": "i"}},
			{"ip_address": bson.M{"$regex": keyword, "$options": "i"}},
			{"owner": bson.M{"$regex": keyword, "$options": "i"}},
		}
	}

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, errors.New("failed to count assets")
	}

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, errors.New("failed to query assets")
	}
	defer cursor.Close(ctx)

	var assets []*models.Asset
	if err := cursor.All(ctx, &assets); err != nil {
		return nil, 0, errors.New("failed to decode assets")
	}
	if assets == nil {
		assets = []*models.Asset{}
	}

	return assets, total, nil
}

// UpdateAsset updates asset fields like criticality and environment,
// which ownership teams adjust out-of-band
func (s *AssetService) UpdateAsset(assetID string, updates bson.M) error {
	ctx, cancel := database.NewContext()
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(assetID)
	if err != nil {
		return errors.New("invalid asset ID")
	}

	updates["updated_at"] = time.Now()

	result, err := database.GetCollection(models.CollectionAssets).UpdateOne(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": updates},
	)
	if err != nil {
		return errors.New("failed to update asset")
	}
	if result.MatchedCount == 0 {
		return errors.New("asset not found")
	}

	return nil
}

// DeleteAsset deletes an asset
func (s *AssetService) DeleteAsset(assetID string) error {
	ctx, cancel := database.NewContext()
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(assetID)
	if err != nil {
		return errors.New("invalid asset ID")
	}

	result, err := database.GetCollection(models.CollectionAssets).DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return errors.New("failed to delete asset")
	}
	if result.DeletedCount == 0 {
		return errors.New("asset not found")
	}

	return nil
}
