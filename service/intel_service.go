package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"vulnguard/config"
	"vulnguard/database"
	"vulnguard/models"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type IntelService struct{}

func NewIntelService() *IntelService {
	return &IntelService{}
}

const intelCacheKeyPrefix = "vulnguard:intel:"

func intelCacheKey(cveID string) string {
	return intelCacheKeyPrefix + strings.ToUpper(cveID)
}

func intelCacheTTL() time.Duration {
	if ttl := config.GetConfig().Intel.CacheTTL; ttl > 0 {
		return time.Duration(ttl) * time.Second
	}
	return time.Hour
}

// GetIntel looks up intelligence for a CVE: Redis hot cache first, then
// Mongo. A missing record returns (nil, nil) — absence of intel is a
// normal condition, never an error.
func (s *IntelService) GetIntel(cveID string) (*models.VulnerabilityIntel, error) {
	if cveID == "" {
		return nil, nil
	}
	cveID = strings.ToUpper(cveID)

	ctx, cancel := database.NewContext()
	defer cancel()

	rdb := database.GetRedis()
	cached, err := rdb.Get(ctx, intelCacheKey(cveID)).Result()
	if err == nil {
		var intel models.VulnerabilityIntel
		if err := json.Unmarshal([]byte(cached), &intel); err == nil {
			return &intel, nil
		}
		// Corrupt entry; fall through to Mongo and let the rewrite fix it
		log.Printf("Discarding unreadable intel cache entry for %s", cveID)
	} else if err != redis.Nil {
		log.Printf("Redis intel lookup failed for %s: %v", cveID, err)
	}

	var intel models.VulnerabilityIntel
	err = database.GetCollection(models.CollectionVulnIntel).
		FindOne(ctx, bson.M{"cve_id": cveID}).Decode(&intel)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query vulnerability intel: %w", err)
	}

	s.cacheIntel(&intel)

	return &intel, nil
}

// UpsertIntel stores or refreshes an intel record and rewrites its cache entry
func (s *IntelService) UpsertIntel(intel *models.VulnerabilityIntel) error {
	if intel.CVEID == "" {
		return errors.New("CVE ID is required")
	}
	intel.CVEID = strings.ToUpper(intel.CVEID)
	intel.FetchedAt = time.Now()
	if intel.References == nil {
		intel.References = []string{}
	}

	ctx, cancel := database.NewContext()
	defer cancel()

	_, err := database.GetCollection(models.CollectionVulnIntel).UpdateOne(
		ctx,
		bson.M{"cve_id": intel.CVEID},
		bson.M{"$set": intel},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return errors.New("failed to store vulnerability intel")
	}

	s.cacheIntel(intel)

	return nil
}

// ListIntel lists stored intel records with pagination
func (s *IntelService) ListIntel(keyword string, page, pageSize int) ([]*models.VulnerabilityIntel, int64, error) {
	ctx, cancel := database.NewContext()
	defer cancel()

	collection := database.GetCollection(models.CollectionVulnIntel)

	filter := bson.M{}
	if keyword != "" {
		filter["cve_id"] = bson.M{"$regex": keyword, "$options": "i"}
	}

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, errors.New("failed to count intel records")
	}

	opts := options.Find().
		SetSort(bson.M{"fetched_at": -1}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, errors.New("failed to query intel records")
	}
	defer cursor.Close(ctx)

	var records []*models.VulnerabilityIntel
	if err := cursor.All(ctx, &records); err != nil {
		return nil, 0, errors.New("failed to decode intel records")
	}
	if records == nil {
		records = []*models.VulnerabilityIntel{}
	}

	return records, total, nil
}

// DeleteIntel removes an intel record and its cache entry
func (s *IntelService) DeleteIntel(cveID string) error {
	cveID = strings.ToUpper(cveID)

	ctx, cancel := database.NewContext()
	defer cancel()

	result, err := database.GetCollection(models.CollectionVulnIntel).
		DeleteOne(ctx, bson.M{"cve_id": cveID})
	if err != nil {
		return errors.New("failed to delete intel record")
	}
	if result.DeletedCount == 0 {
		return errors.New("intel record not found")
	}

	if err := database.GetRedis().Del(ctx, intelCacheKey(cveID)).Err(); err != nil {
		log.Printf("Failed to evict intel cache entry for %s: %v", cveID, err)
	}

	return nil
}

func (s *IntelService) cacheIntel(intel *models.VulnerabilityIntel) {
	data, err := json.Marshal(intel)
	if err != nil {
		return
	}

	ctx, cancel := database.NewContext()
	defer cancel()

	if err := database.GetRedis().Set(ctx, intelCacheKey(intel.CVEID), data, intelCacheTTL()).Err(); err != nil {
		log.Printf("Failed to cache intel for %s: %v", intel.CVEID, err)
	}
}
