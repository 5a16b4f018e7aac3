package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "hotelbook/internal/bookings/errors"
	"hotelbook/pkg/config"
	mongodb "hotelbook/pkg/db/mongo"
	"hotelbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type mongoBookingRepository struct {
	cfg          *config.Config
	client       *mongo.Client
	hotels       *mongo.Collection
	reservations *mongo.Collection
	guards       *roomGuards
	txManager    mongodb.TransactionManager
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:          cfg,
		client:       cfg.Client.Mongo,
		hotels:       db.Collection(mongodb.HotelsCollection),
		reservations: db.Collection(mongodb.ReservationsCollection),
		guards:       newRoomGuards(db),
		txManager:    mongodb.NewTransactionManager(cfg.Client.Mongo),
	}
}

// ExecuteBookingTransaction bumps the room guard as the first statement, so
// two transactions on the same room write-conflict and the driver re-runs the
// loser against the winner's committed reservation.
func (r *mongoBookingRepository) ExecuteBookingTransaction(ctx context.Context, hotelID, roomType string, fn TxFunc) error {
	err := r.txManager.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := r.guards.bump(sessCtx, hotelID, roomType); err != nil {
			return err
		}
		return fn(sessCtx, &mongoTx{repo: r})
	})
	return classifyMongoError(err)
}

type mongoTx struct {
	repo *mongoBookingRepository
}

func (t *mongoTx) FindHotel(ctx context.Context, hotelID string) (*model.Hotel, error) {
	var hotel model.Hotel
	if err := t.repo.hotels.FindOne(ctx, bson.M{"_id": hotelID}).Decode(&hotel); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", bookingserrors.ErrHotelNotFound, hotelID)
		}
		return nil, fmt.Errorf("failed to read hotel: %w", err)
	}
	return &hotel, nil
}

func (t *mongoTx) FindRoomReservations(ctx context.Context, hotelID, roomType string, from time.Time) ([]*model.Reservation, error) {
	filter := bson.M{
		"hotel_id":  hotelID,
		"room_type": roomType,
		"status":    model.StatusConfirmed,
		"end_date":  bson.M{"$gt": from},
	}
	opts := options.Find().SetProjection(bson.M{"start_date": 1, "end_date": 1, "status": 1, "hotel_id": 1, "room_type": 1})

	cursor, err := t.repo.reservations.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []*model.Reservation
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}
	return reservations, nil
}

func (t *mongoTx) CreateReservation(ctx context.Context, reservation *model.Reservation) error {
	if _, err := t.repo.reservations.InsertOne(ctx, reservation); err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var reservation model.Reservation
	if err := r.reservations.FindOne(ctx, bson.M{"_id": id}).Decode(&reservation); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, classifyMongoError(fmt.Errorf("failed to find reservation: %w", err))
	}
	return &reservation, nil
}

func (r *mongoBookingRepository) FindByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Reservation, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	return r.find(ctx, bson.M{"user_id": userID}, opts)
}

func (r *mongoBookingRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.reservations.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, classifyMongoError(fmt.Errorf("failed to count reservations: %w", err))
	}
	return count, nil
}

func (r *mongoBookingRepository) FindByHotel(ctx context.Context, hotelID string) ([]*model.Reservation, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: -1}})
	return r.find(ctx, bson.M{"hotel_id": hotelID}, opts)
}

func (r *mongoBookingRepository) FindConfirmedInWindow(ctx context.Context, hotelID string, from, to time.Time) ([]*model.Reservation, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"hotel_id":   hotelID,
		"status":     model.StatusConfirmed,
		"start_date": bson.M{"$lt": to},
		"end_date":   bson.M{"$gt": from},
	}
	return r.find(ctx, filter, options.Find())
}

func (r *mongoBookingRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Reservation, error) {
	cursor, err := r.reservations.Find(ctx, filter, opts)
	if err != nil {
		return nil, classifyMongoError(fmt.Errorf("failed to find reservations: %w", err))
	}
	defer cursor.Close(ctx)

	reservations := make([]*model.Reservation, 0)
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}
	return reservations, nil
}

func (r *mongoBookingRepository) Ping(ctx context.Context) error {
	ctx, cancel := mongodb.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return r.client.Ping(ctx, readpref.Primary())
}

// classifyMongoError keeps domain sentinels and marks connectivity and
// timeout faults as ErrStoreUnavailable.
func classifyMongoError(err error) error {
	if err == nil {
		return nil
	}
	if isDomainError(err) {
		return err
	}
	if mongodb.IsUnavailable(err) {
		return fmt.Errorf("%w: %w", bookingserrors.ErrStoreUnavailable, err)
	}
	return err
}

func isDomainError(err error) bool {
	return errors.Is(err, bookingserrors.ErrHotelNotFound) ||
		errors.Is(err, bookingserrors.ErrRoomTypeNotFound) ||
		errors.Is(err, bookingserrors.ErrSoldOut) ||
		errors.Is(err, bookingserrors.ErrNotFound)
}
