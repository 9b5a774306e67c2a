package migrations

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func init() {
	Register(Migration{
		Version:     "001_create_extraction_runs_indexes",
		Description: "Create indexes for the extraction_runs collection",
		Up:          up001,
		Down:        down001,
	})
}

func up001(ctx context.Context, db *mongo.Database) error {
	runsCollection := db.Collection("extraction_runs")
	runIndexes := []mongo.IndexModel{
		{
			// ListRuns sorts newest first
			Keys: bson.D{{Key: "started_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "started_at", Value: -1}},
		},
	}

	if _, err := runsCollection.Indexes().CreateMany(ctx, runIndexes); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func down001(ctx context.Context, db *mongo.Database) error {
	// Drop all indexes except _id
	runsCollection := db.Collection("extraction_runs")
	if _, err := runsCollection.Indexes().DropAll(ctx); err != nil {
		return err
	}

	return nil
}
