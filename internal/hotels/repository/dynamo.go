package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	hotelserrors "hotelbook/internal/hotels/errors"
	"hotelbook/pkg/db/dynamo"
	"hotelbook/pkg/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type dynamoHotelRepository struct {
	client dynamo.API
	table  string
}

func NewDynamoHotelRepository(client dynamo.API, table string) HotelRepository {
	return &dynamoHotelRepository{client: client, table: table}
}

func (r *dynamoHotelRepository) item(hotel *model.Hotel) (map[string]types.AttributeValue, error) {
	return dynamo.Item(dynamo.HotelPK(hotel.ID), dynamo.SKInfo, hotel, map[string]string{
		dynamo.AttrGSI1PK: dynamo.HotelsPartition,
		dynamo.AttrGSI1SK: dynamo.HotelSortKey(hotel.Name, hotel.ID),
	})
}

func (r *dynamoHotelRepository) put(ctx context.Context, hotel *model.Hotel, condition string) error {
	item, err := r.item(hotel)
	if err != nil {
		return err
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String(condition),
	})
	return err
}

func (r *dynamoHotelRepository) Create(ctx context.Context, hotel *model.Hotel) error {
	err := r.put(ctx, hotel, "attribute_not_exists(PK)")
	if dynamo.IsConflict(err) {
		return hotelserrors.ErrDuplicateID
	}
	return classifyDynamo(err, "failed to create hotel")
}

func (r *dynamoHotelRepository) Replace(ctx context.Context, hotel *model.Hotel) error {
	err := r.put(ctx, hotel, "attribute_exists(PK)")
	if dynamo.IsConflict(err) {
		return hotelserrors.ErrNotFound
	}
	return classifyDynamo(err, "failed to replace hotel")
}

func (r *dynamoHotelRepository) FindByID(ctx context.Context, id string) (*model.Hotel, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       dynamo.Key(dynamo.HotelPK(id), dynamo.SKInfo),
	})
	if err != nil {
		return nil, classifyDynamo(err, "failed to find hotel")
	}
	if len(out.Item) == 0 {
		return nil, hotelserrors.ErrNotFound
	}
	var hotel model.Hotel
	if err := dynamo.Decode(out.Item, &hotel); err != nil {
		return nil, fmt.Errorf("failed to decode hotel: %w", err)
	}
	return &hotel, nil
}

// FindAll reads the HOTELS partition of GSI1, which is sorted by name.
func (r *dynamoHotelRepository) FindAll(ctx context.Context) ([]*model.Hotel, error) {
	items, err := dynamo.QueryAll(ctx, r.client, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		IndexName:              aws.String(dynamo.IndexGSI1),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": dynamo.S(dynamo.HotelsPartition),
		},
	})
	if err != nil {
		return nil, classifyDynamo(err, "failed to list hotels")
	}

	hotels := make([]*model.Hotel, 0, len(items))
	for _, item := range items {
		var hotel model.Hotel
		if err := dynamo.Decode(item, &hotel); err != nil {
			return nil, fmt.Errorf("failed to decode hotel: %w", err)
		}
		hotels = append(hotels, &hotel)
	}
	return hotels, nil
}

// Search filters in process; DynamoDB has no case-insensitive contains.
func (r *dynamoHotelRepository) Search(ctx context.Context, term string) ([]*model.Hotel, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.TrimSpace(term)
	out := make([]*model.Hotel, 0, len(all))
	for _, h := range all {
		if matches(h, term) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *dynamoHotelRepository) Ping(ctx context.Context) error {
	return dynamo.Ping(ctx, r.client, r.table)
}

func classifyDynamo(err error, message string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, hotelserrors.ErrNotFound) {
		return err
	}
	if dynamo.IsUnavailable(err) {
		return fmt.Errorf("%w: %s: %w", hotelserrors.ErrStoreUnavailable, message, err)
	}
	return fmt.Errorf("%s: %w", message, err)
}
