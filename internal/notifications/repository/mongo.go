package repository

import (
	"context"
	"fmt"

	"hotelbook/pkg/config"
	mongodb "hotelbook/pkg/db/mongo"
	"hotelbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoSnapshotRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoSnapshotRepository(cfg *config.Config) SnapshotRepository {
	return &mongoSnapshotRepository{
		cfg:        cfg,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(mongodb.CapacitySnapshotsCollection),
	}
}

func (r *mongoSnapshotRepository) Upsert(ctx context.Context, snapshot *model.CapacitySnapshot) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": snapshot.HotelID},
		snapshot,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert capacity snapshot: %w", err)
	}
	return nil
}

func (r *mongoSnapshotRepository) FindAll(ctx context.Context) ([]*model.CapacitySnapshot, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find capacity snapshots: %w", err)
	}
	defer cursor.Close(ctx)

	snapshots := make([]*model.CapacitySnapshot, 0)
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, fmt.Errorf("failed to decode capacity snapshots: %w", err)
	}
	return snapshots, nil
}
