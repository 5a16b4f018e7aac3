package main

import (
	"context"
	"fmt"
	"time"

	mongoMigration "hotelbook/internal/migrations/mongo"
	"hotelbook/pkg/config"
	"hotelbook/pkg/db/dynamo"
)

const JobName = "migration"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()
	cfg := config.Load(JobName)
	defer cfg.GracefulShutdown()

	switch cfg.StoreBackend {
	case config.StoreDynamoDB:
		migrateDynamo(ctx, cfg)
	case config.StoreMemory:
		cfg.Log.Info("Memory backend needs no migration")
		return
	default:
		migrateMongo(ctx, cfg)
	}
	fmt.Println("Migration completed successfully.")
}

func migrateMongo(ctx context.Context, cfg *config.Config) {
	cfg.SetMongo()
	cfg.Log.Info("Starting Mongo migration job", "database", cfg.MongoDatabaseName)
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	if err := mongoMigration.RunMigration(ctx, db, cfg.Log); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
}

func migrateDynamo(ctx context.Context, cfg *config.Config) {
	cfg.SetDynamo()
	cfg.Log.Info("Starting DynamoDB migration job", "table", cfg.DynamoTable)
	created, err := dynamo.EnsureTable(ctx, cfg.Client.Dynamo, cfg.DynamoTable)
	if err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
	cfg.Log.Info("DynamoDB table ready", "table", cfg.DynamoTable, "created", created)
}
