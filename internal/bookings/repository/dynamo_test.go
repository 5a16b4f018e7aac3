package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingserrors "hotelbook/internal/bookings/errors"
	"hotelbook/pkg/db/dynamo"
	"hotelbook/pkg/logger"
	"hotelbook/pkg/model"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockDynamo struct {
	getItemFunc  func(ctx context.Context, in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	queryFunc    func(ctx context.Context, in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error)
	transactFunc func(ctx context.Context, in *dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error)
}

func (m *mockDynamo) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return m.getItemFunc(ctx, in)
}

func (m *mockDynamo) PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDynamo) Query(ctx context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return m.queryFunc(ctx, in)
}

func (m *mockDynamo) TransactWriteItems(ctx context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	return m.transactFunc(ctx, in)
}

func (m *mockDynamo) DescribeTable(context.Context, *dynamodb.DescribeTableInput, ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	return &dynamodb.DescribeTableOutput{}, nil
}

func hotelItem(t *testing.T) map[string]types.AttributeValue {
	item, err := dynamo.Item(dynamo.HotelPK("h1"), dynamo.SKInfo, model.Hotel{
		ID:    "h1",
		Name:  "H1",
		Rooms: []model.RoomClass{{Type: "Standard", Capacity: 2, Count: 1, Price: 100}},
	}, nil)
	require.NoError(t, err)
	return item
}

func TestDynamo_RetriesOnConflict(t *testing.T) {
	guardVersion := int64(3)
	commits := 0

	mock := &mockDynamo{
		getItemFunc: func(_ context.Context, in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			sk := in.Key[dynamo.AttrSK].(*types.AttributeValueMemberS).Value
			if sk == dynamo.SKInfo {
				return &dynamodb.GetItemOutput{Item: hotelItem(t)}, nil
			}
			return &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{"version": dynamo.N(guardVersion)}}, nil
		},
		queryFunc: func(context.Context, *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			return &dynamodb.QueryOutput{}, nil
		},
		transactFunc: func(_ context.Context, in *dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
			commits++
			guard := in.TransactItems[0].Update
			expected := guard.ExpressionAttributeValues[":expected"].(*types.AttributeValueMemberN).Value
			if commits == 1 {
				assert.Equal(t, "3", expected)
				guardVersion = 4
				return nil, &types.TransactionCanceledException{}
			}
			assert.Equal(t, "4", expected)
			assert.Len(t, in.TransactItems, 3, "guard update plus two reservation items")
			return &dynamodb.TransactWriteItemsOutput{}, nil
		},
	}

	repo := NewDynamoBookingRepository(mock, "table", 3, logger.Discard())
	runs := 0
	err := repo.ExecuteBookingTransaction(context.Background(), "h1", "Standard", func(ctx context.Context, tx Tx) error {
		runs++
		if _, err := tx.FindHotel(ctx, "h1"); err != nil {
			return err
		}
		return tx.CreateReservation(ctx, &model.Reservation{
			ID: "r1", HotelID: "h1", RoomType: "Standard", UserID: "u1",
			StartDate: day("2025-07-01"), EndDate: day("2025-07-02"),
			Status: model.StatusConfirmed, CreatedAt: time.Now(),
		})
	})

	require.NoError(t, err)
	assert.Equal(t, 2, runs, "the read-check-write cycle re-runs after a conflict")
	assert.Equal(t, 2, commits)
}

func TestDynamo_GivesUpAfterMaxAttempts(t *testing.T) {
	mock := &mockDynamo{
		getItemFunc: func(context.Context, *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{}, nil
		},
		transactFunc: func(context.Context, *dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
			return nil, &types.TransactionCanceledException{}
		},
	}

	repo := NewDynamoBookingRepository(mock, "table", 2, logger.Discard())
	err := repo.ExecuteBookingTransaction(context.Background(), "h1", "Standard", func(ctx context.Context, tx Tx) error {
		return tx.CreateReservation(ctx, &model.Reservation{ID: "r1", HotelID: "h1", RoomType: "Standard"})
	})
	assert.ErrorIs(t, err, bookingserrors.ErrWriteConflict)
}

func TestDynamo_NoWriteSkipsCommit(t *testing.T) {
	mock := &mockDynamo{
		getItemFunc: func(context.Context, *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{}, nil
		},
		transactFunc: func(context.Context, *dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
			t.Fatal("commit must not run when the transaction aborts")
			return nil, nil
		},
	}

	repo := NewDynamoBookingRepository(mock, "table", 3, logger.Discard())
	err := repo.ExecuteBookingTransaction(context.Background(), "h1", "Standard", func(ctx context.Context, tx Tx) error {
		return bookingserrors.ErrSoldOut
	})
	assert.ErrorIs(t, err, bookingserrors.ErrSoldOut)
}

func TestDynamo_UnavailableIsClassified(t *testing.T) {
	mock := &mockDynamo{
		getItemFunc: func(context.Context, *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return nil, &types.ProvisionedThroughputExceededException{}
		},
	}

	repo := NewDynamoBookingRepository(mock, "table", 3, logger.Discard())
	err := repo.ExecuteBookingTransaction(context.Background(), "h1", "Standard", func(context.Context, Tx) error { return nil })
	assert.ErrorIs(t, err, bookingserrors.ErrStoreUnavailable)

	_, err = repo.FindByID(context.Background(), "r1")
	assert.True(t, errors.Is(err, bookingserrors.ErrStoreUnavailable))
}

func TestDynamo_FindByIDMissing(t *testing.T) {
	mock := &mockDynamo{
		getItemFunc: func(context.Context, *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{}, nil
		},
	}
	repo := NewDynamoBookingRepository(mock, "table", 1, logger.Discard())
	_, err := repo.FindByID(context.Background(), "nope")
	assert.ErrorIs(t, err, bookingserrors.ErrNotFound)
}
