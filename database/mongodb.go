// Package database owns the MongoDB and Redis singletons behind the
// asset/finding/intel stores and the timeout contexts their operations
// run under. The decision engine never imports this package; persistence
// stays on the service side of the boundary.
package database

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"vulnguard/config"
	"vulnguard/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	mongoClient *mongo.Client
	mongoOnce   sync.Once
)

func InitMongoDB(cfg *config.MongoDBConfig) *mongo.Client {
	mongoOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Timeout)*time.Second)
		defer cancel()

		clientOptions := options.Client().ApplyURI(cfg.URI)
		client, err := mongo.Connect(ctx, clientOptions)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}

		if err := client.Ping(ctx, nil); err != nil {
			log.Fatalf("Failed to ping MongoDB: %v", err)
		}

		log.Println("Connected to MongoDB successfully")
		mongoClient = client

		if err := ensureIndexes(cfg.Database); err != nil {
			log.Printf("Warning: failed to ensure indexes: %v", err)
		}
	})

	return mongoClient
}

// ensureIndexes creates the indexes the finding ingest and correlation
// paths rely on: the unique dedup key, the per-CVE lookup used when
// grouping, and the intel lookup by CVE id.
func ensureIndexes(dbName string) error {
	ctx, cancel := NewLongContext()
	defer cancel()

	db := mongoClient.Database(dbName)

	findingIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "dedup_key", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "cve_ids", Value: 1}}},
		{Keys: bson.D{{Key: "asset_id", Value: 1}, {Key: "status", Value: 1}}},
	}
	if _, err := db.Collection(models.CollectionFindings).Indexes().CreateMany(ctx, findingIndexes); err != nil {
		return err
	}

	intelIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "cve_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection(models.CollectionVulnIntel).Indexes().CreateOne(ctx, intelIndex); err != nil {
		return err
	}

	assetIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "hostname", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, err := db.Collection(models.CollectionAssets).Indexes().CreateOne(ctx, assetIndex)
	return err
}

func GetMongoDB() *mongo.Client {
	if mongoClient == nil {
		log.Fatal("MongoDB not initialized. Call InitMongoDB first.")
	}
	return mongoClient
}

func GetCollection(collection string) *mongo.Collection {
	cfg := config.GetConfig()
	return GetMongoDB().Database(cfg.MongoDB.Database).Collection(collection)
}

func CloseMongoDB() {
	if mongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Printf("Error disconnecting MongoDB: %v", err)
		}
		fmt.Println("MongoDB connection closed")
	}
}
