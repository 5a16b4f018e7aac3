package repository

import (
	"context"
	"fmt"
	"time"

	mongodb "hotelbook/pkg/db/mongo"
	"hotelbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// roomGuards serializes booking transactions per room class. Every booking
// transaction increments the guard of its room before reading, which makes
// concurrent transactions on the same room conflict on that document.
type roomGuards struct {
	collection *mongo.Collection
}

func newRoomGuards(db *mongo.Database) *roomGuards {
	return &roomGuards{collection: db.Collection(mongodb.RoomGuardsCollection)}
}

func (g *roomGuards) bump(ctx context.Context, hotelID, roomType string) error {
	filter := bson.M{"_id": model.RoomGuardID(hotelID, roomType)}
	update := bson.M{
		"$inc": bson.M{"version": 1},
		"$set": bson.M{"updated_at": time.Now().UTC()},
		"$setOnInsert": bson.M{
			"hotel_id":  hotelID,
			"room_type": roomType,
		},
	}

	if _, err := g.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to acquire room guard: %w", err)
	}
	return nil
}
