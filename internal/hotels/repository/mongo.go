package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	hotelserrors "hotelbook/internal/hotels/errors"
	"hotelbook/pkg/config"
	mongodb "hotelbook/pkg/db/mongo"
	"hotelbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type mongoHotelRepository struct {
	cfg        *config.Config
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoHotelRepository(cfg *config.Config) HotelRepository {
	return &mongoHotelRepository{
		cfg:        cfg,
		client:     cfg.Client.Mongo,
		collection: cfg.Client.Mongo.Database(cfg.MongoDatabaseName).Collection(mongodb.HotelsCollection),
	}
}

func (r *mongoHotelRepository) Create(ctx context.Context, hotel *model.Hotel) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, hotel); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return hotelserrors.ErrDuplicateID
		}
		return classify(fmt.Errorf("failed to create hotel: %w", err))
	}
	return nil
}

func (r *mongoHotelRepository) FindByID(ctx context.Context, id string) (*model.Hotel, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var hotel model.Hotel
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&hotel); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, hotelserrors.ErrNotFound
		}
		return nil, classify(fmt.Errorf("failed to find hotel: %w", err))
	}
	return &hotel, nil
}

func (r *mongoHotelRepository) FindAll(ctx context.Context) ([]*model.Hotel, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoHotelRepository) Search(ctx context.Context, term string) ([]*model.Hotel, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return r.find(ctx, bson.M{})
	}

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	return r.find(ctx, bson.M{"$or": bson.A{
		bson.M{"location": pattern},
		bson.M{"name": pattern},
	}})
}

func (r *mongoHotelRepository) find(ctx context.Context, filter bson.M) ([]*model.Hotel, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetCollation(&options.Collation{Locale: "en", Strength: 2})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to find hotels: %w", err))
	}
	defer cursor.Close(ctx)

	hotels := make([]*model.Hotel, 0)
	if err := cursor.All(ctx, &hotels); err != nil {
		return nil, fmt.Errorf("failed to decode hotels: %w", err)
	}
	return hotels, nil
}

func (r *mongoHotelRepository) Replace(ctx context.Context, hotel *model.Hotel) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": hotel.ID}, hotel)
	if err != nil {
		return classify(fmt.Errorf("failed to replace hotel: %w", err))
	}
	if result.MatchedCount == 0 {
		return hotelserrors.ErrNotFound
	}
	return nil
}

func (r *mongoHotelRepository) Ping(ctx context.Context) error {
	ctx, cancel := mongodb.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return r.client.Ping(ctx, readpref.Primary())
}

func classify(err error) error {
	if mongodb.IsUnavailable(err) {
		return fmt.Errorf("%w: %w", hotelserrors.ErrStoreUnavailable, err)
	}
	return err
}
