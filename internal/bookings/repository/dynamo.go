package repository

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	bookingserrors "hotelbook/internal/bookings/errors"
	"hotelbook/pkg/db/dynamo"
	"hotelbook/pkg/logger"
	"hotelbook/pkg/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	attrStatus    = "status"
	attrStartDate = "start_date"
	attrEndDate   = "end_date"
	attrVersion   = "version"
)

type dynamoBookingRepository struct {
	client      dynamo.API
	table       string
	maxAttempts int
	log         *logger.Logger
}

func NewDynamoBookingRepository(client dynamo.API, table string, maxAttempts int, log *logger.Logger) BookingRepository {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &dynamoBookingRepository{
		client:      client,
		table:       table,
		maxAttempts: maxAttempts,
		log:         log,
	}
}

// ExecuteBookingTransaction reads the room guard version, runs fn, then
// commits the buffered reservations together with a conditional bump of the
// guard. A concurrent commit on the same room cancels ours and the whole
// read-check-write cycle runs again.
func (r *dynamoBookingRepository) ExecuteBookingTransaction(ctx context.Context, hotelID, roomType string, fn TxFunc) error {
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		version, err := r.guardVersion(ctx, hotelID, roomType)
		if err != nil {
			return classifyDynamoError(err)
		}

		tx := &dynamoTx{repo: r}
		if err := fn(ctx, tx); err != nil {
			return classifyDynamoError(err)
		}
		if len(tx.pending) == 0 {
			return nil
		}

		err = r.commit(ctx, hotelID, roomType, version, tx.pending)
		if err == nil {
			return nil
		}
		if !dynamo.IsConflict(err) {
			return classifyDynamoError(err)
		}

		r.log.Debug("Room guard conflict, retrying booking transaction",
			"hotel_id", hotelID,
			"room_type", roomType,
			"attempt", attempt,
		)
		if err := backoff(ctx, attempt); err != nil {
			return classifyDynamoError(err)
		}
	}
	return fmt.Errorf("%w: %s/%s after %d attempts", bookingserrors.ErrWriteConflict, hotelID, roomType, r.maxAttempts)
}

func (r *dynamoBookingRepository) guardVersion(ctx context.Context, hotelID, roomType string) (int64, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.table),
		Key:            dynamo.Key(dynamo.HotelPK(hotelID), dynamo.GuardSK(roomType)),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to read room guard: %w", err)
	}
	return dynamo.Int(out.Item, attrVersion)
}

func (r *dynamoBookingRepository) commit(ctx context.Context, hotelID, roomType string, expected int64, pending []*model.Reservation) error {
	guard := &types.Update{
		TableName:        aws.String(r.table),
		Key:              dynamo.Key(dynamo.HotelPK(hotelID), dynamo.GuardSK(roomType)),
		UpdateExpression: aws.String("SET #version = :next, updated_at = :now"),
		ExpressionAttributeNames: map[string]string{
			"#version": attrVersion,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":next": dynamo.N(expected + 1),
			":now":  dynamo.S(time.Now().UTC().Format(time.RFC3339Nano)),
		},
	}
	if expected == 0 {
		guard.ConditionExpression = aws.String("attribute_not_exists(#version)")
	} else {
		guard.ConditionExpression = aws.String("#version = :expected")
		guard.ExpressionAttributeValues[":expected"] = dynamo.N(expected)
	}

	items := []types.TransactWriteItem{{Update: guard}}
	for _, res := range pending {
		puts, err := r.reservationItems(res)
		if err != nil {
			return err
		}
		for _, item := range puts {
			items = append(items, types.TransactWriteItem{Put: &types.Put{
				TableName:           aws.String(r.table),
				Item:                item,
				ConditionExpression: aws.String("attribute_not_exists(PK)"),
			}})
		}
	}

	_, err := r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	return err
}

// reservationItems returns the reservation under its hotel partition, which
// feeds availability and the user index, and its lookup item by id.
func (r *dynamoBookingRepository) reservationItems(res *model.Reservation) ([]map[string]types.AttributeValue, error) {
	start := res.StartDate.UTC().Format(model.DateLayout)
	end := res.EndDate.UTC().Format(model.DateLayout)

	byHotel, err := dynamo.Item(dynamo.HotelPK(res.HotelID), dynamo.ReservationSK(res.RoomType, start, res.ID), res, map[string]string{
		attrStatus:        res.Status,
		attrStartDate:     start,
		attrEndDate:       end,
		dynamo.AttrGSI1PK: dynamo.UserPK(res.UserID),
		dynamo.AttrGSI1SK: res.CreatedAt.UTC().Format(time.RFC3339Nano) + "#" + res.ID,
	})
	if err != nil {
		return nil, err
	}
	byID, err := dynamo.Item(dynamo.ReservationPK(res.ID), dynamo.SKInfo, res, nil)
	if err != nil {
		return nil, err
	}
	return []map[string]types.AttributeValue{byHotel, byID}, nil
}

type dynamoTx struct {
	repo    *dynamoBookingRepository
	pending []*model.Reservation
}

func (t *dynamoTx) FindHotel(ctx context.Context, hotelID string) (*model.Hotel, error) {
	out, err := t.repo.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(t.repo.table),
		Key:            dynamo.Key(dynamo.HotelPK(hotelID), dynamo.SKInfo),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read hotel: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrHotelNotFound, hotelID)
	}
	var hotel model.Hotel
	if err := dynamo.Decode(out.Item, &hotel); err != nil {
		return nil, fmt.Errorf("failed to decode hotel: %w", err)
	}
	return &hotel, nil
}

func (t *dynamoTx) FindRoomReservations(ctx context.Context, hotelID, roomType string, from time.Time) ([]*model.Reservation, error) {
	items, err := dynamo.QueryAll(ctx, t.repo.client, &dynamodb.QueryInput{
		TableName:              aws.String(t.repo.table),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		FilterExpression:       aws.String("#status = :confirmed AND end_date > :from"),
		ExpressionAttributeNames: map[string]string{
			"#status": attrStatus,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":        dynamo.S(dynamo.HotelPK(hotelID)),
			":prefix":    dynamo.S(dynamo.RoomReservationsPrefix(roomType)),
			":confirmed": dynamo.S(model.StatusConfirmed),
			":from":      dynamo.S(from.UTC().Format(model.DateLayout)),
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read reservations: %w", err)
	}
	reservations, err := decodeReservations(items)
	if err != nil {
		return nil, err
	}
	for _, res := range t.pending {
		if res.RoomType == roomType && res.EndDate.After(from) {
			reservations = append(reservations, res)
		}
	}
	return reservations, nil
}

func (t *dynamoTx) CreateReservation(_ context.Context, reservation *model.Reservation) error {
	t.pending = append(t.pending, reservation)
	return nil
}

func (r *dynamoBookingRepository) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       dynamo.Key(dynamo.ReservationPK(id), dynamo.SKInfo),
	})
	if err != nil {
		return nil, classifyDynamoError(fmt.Errorf("failed to find reservation: %w", err))
	}
	if len(out.Item) == 0 {
		return nil, bookingserrors.ErrNotFound
	}
	var res model.Reservation
	if err := dynamo.Decode(out.Item, &res); err != nil {
		return nil, fmt.Errorf("failed to decode reservation: %w", err)
	}
	return &res, nil
}

func (r *dynamoBookingRepository) userReservations(ctx context.Context, userID string) ([]*model.Reservation, error) {
	items, err := dynamo.QueryAll(ctx, r.client, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		IndexName:              aws.String(dynamo.IndexGSI1),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": dynamo.S(dynamo.UserPK(userID)),
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, classifyDynamoError(fmt.Errorf("failed to find reservations: %w", err))
	}
	return decodeReservations(items)
}

func (r *dynamoBookingRepository) FindByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Reservation, error) {
	all, err := r.userReservations(ctx, userID)
	if err != nil {
		return nil, err
	}
	return page(all, limit, offset), nil
}

func (r *dynamoBookingRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	all, err := r.userReservations(ctx, userID)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}

func (r *dynamoBookingRepository) hotelReservations(ctx context.Context, hotelID string, filter string, values map[string]types.AttributeValue) ([]*model.Reservation, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     dynamo.S(dynamo.HotelPK(hotelID)),
			":prefix": dynamo.S(dynamo.AllReservationsPrefix),
		},
	}
	if filter != "" {
		input.FilterExpression = aws.String(filter)
		input.ExpressionAttributeNames = map[string]string{"#status": attrStatus}
		for k, v := range values {
			input.ExpressionAttributeValues[k] = v
		}
	}

	items, err := dynamo.QueryAll(ctx, r.client, input)
	if err != nil {
		return nil, classifyDynamoError(fmt.Errorf("failed to find reservations: %w", err))
	}
	return decodeReservations(items)
}

func (r *dynamoBookingRepository) FindByHotel(ctx context.Context, hotelID string) ([]*model.Reservation, error) {
	all, err := r.hotelReservations(ctx, hotelID, "", nil)
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].StartDate.After(all[j].StartDate) })
	return all, nil
}

func (r *dynamoBookingRepository) FindConfirmedInWindow(ctx context.Context, hotelID string, from, to time.Time) ([]*model.Reservation, error) {
	return r.hotelReservations(ctx, hotelID,
		"#status = :confirmed AND start_date < :to AND end_date > :from",
		map[string]types.AttributeValue{
			":confirmed": dynamo.S(model.StatusConfirmed),
			":from":      dynamo.S(from.UTC().Format(model.DateLayout)),
			":to":        dynamo.S(to.UTC().Format(model.DateLayout)),
		})
}

func (r *dynamoBookingRepository) Ping(ctx context.Context) error {
	return dynamo.Ping(ctx, r.client, r.table)
}

func decodeReservations(items []map[string]types.AttributeValue) ([]*model.Reservation, error) {
	out := make([]*model.Reservation, 0, len(items))
	for _, item := range items {
		var res model.Reservation
		if err := dynamo.Decode(item, &res); err != nil {
			return nil, fmt.Errorf("failed to decode reservation: %w", err)
		}
		out = append(out, &res)
	}
	return out, nil
}

func classifyDynamoError(err error) error {
	if err == nil || isDomainError(err) || errors.Is(err, bookingserrors.ErrStoreUnavailable) {
		return err
	}
	if dynamo.IsUnavailable(err) {
		return fmt.Errorf("%w: %w", bookingserrors.ErrStoreUnavailable, err)
	}
	return err
}

func backoff(ctx context.Context, attempt int) error {
	delay := time.Duration(attempt*10+rand.Intn(10)) * time.Millisecond
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}
