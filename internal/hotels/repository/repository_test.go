package repository

import (
	"context"
	"testing"

	hotelserrors "hotelbook/internal/hotels/errors"
	"hotelbook/pkg/db/dynamo"
	"hotelbook/pkg/db/memory"
	"hotelbook/pkg/model"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hotel(id, name, location string) *model.Hotel {
	return &model.Hotel{
		ID:        id,
		Name:      name,
		Location:  location,
		BasePrice: 100,
		Rooms:     []model.RoomClass{{Type: "Standard", Capacity: 2, Count: 3, Price: 100}},
	}
}

func TestMemory_CreateFindReplace(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryHotelRepository(memory.NewStore())

	require.NoError(t, repo.Create(ctx, hotel("h1", "Sea View", "Bodrum")))
	assert.ErrorIs(t, repo.Create(ctx, hotel("h1", "Other", "Izmir")), hotelserrors.ErrDuplicateID)

	got, err := repo.FindByID(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, "Sea View", got.Name)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, hotelserrors.ErrNotFound)

	updated := hotel("h1", "Sea View Deluxe", "Bodrum")
	require.NoError(t, repo.Replace(ctx, updated))
	got, err = repo.FindByID(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, "Sea View Deluxe", got.Name)

	assert.ErrorIs(t, repo.Replace(ctx, hotel("h2", "X", "Y")), hotelserrors.ErrNotFound)
}

func TestMemory_SearchMatchesLocationOrNameIgnoringCase(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryHotelRepository(memory.NewStore())
	require.NoError(t, repo.Create(ctx, hotel("h1", "Sea View", "Bodrum")))
	require.NoError(t, repo.Create(ctx, hotel("h2", "Bodrum Palace", "Mugla")))
	require.NoError(t, repo.Create(ctx, hotel("h3", "City Inn", "Ankara")))

	tests := []struct {
		term string
		want []string
	}{
		{"bodrum", []string{"Bodrum Palace", "Sea View"}},
		{"  ANK ", []string{"City Inn"}},
		{"", []string{"Bodrum Palace", "City Inn", "Sea View"}},
		{"paris", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			hotels, err := repo.Search(ctx, tt.term)
			require.NoError(t, err)
			names := make([]string, 0, len(hotels))
			for _, h := range hotels {
				names = append(names, h.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

type fakeDynamo struct {
	dynamo.API
	items  map[string]map[string]types.AttributeValue
	putErr error
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	pk := in.Item[dynamo.AttrPK].(*types.AttributeValueMemberS).Value
	_, exists := f.items[pk]
	switch *in.ConditionExpression {
	case "attribute_not_exists(PK)":
		if exists {
			return nil, &types.ConditionalCheckFailedException{}
		}
	case "attribute_exists(PK)":
		if !exists {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	f.items[pk] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	pk := in.Key[dynamo.AttrPK].(*types.AttributeValueMemberS).Value
	return &dynamodb.GetItemOutput{Item: f.items[pk]}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	out := &dynamodb.QueryOutput{}
	for _, item := range f.items {
		out.Items = append(out.Items, item)
	}
	return out, nil
}

func TestDynamo_ConditionalWrites(t *testing.T) {
	ctx := context.Background()
	repo := NewDynamoHotelRepository(&fakeDynamo{items: map[string]map[string]types.AttributeValue{}}, "hotels")

	require.NoError(t, repo.Create(ctx, hotel("h1", "Sea View", "Bodrum")))
	assert.ErrorIs(t, repo.Create(ctx, hotel("h1", "Sea View", "Bodrum")), hotelserrors.ErrDuplicateID)
	assert.ErrorIs(t, repo.Replace(ctx, hotel("h2", "Other", "Izmir")), hotelserrors.ErrNotFound)

	got, err := repo.FindByID(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, "Bodrum", got.Location)

	_, err = repo.FindByID(ctx, "h2")
	assert.ErrorIs(t, err, hotelserrors.ErrNotFound)

	found, err := repo.Search(ctx, "sea")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestDynamo_ThrottlingIsUnavailable(t *testing.T) {
	repo := NewDynamoHotelRepository(&fakeDynamo{
		items:  map[string]map[string]types.AttributeValue{},
		putErr: &types.ProvisionedThroughputExceededException{},
	}, "hotels")

	err := repo.Create(context.Background(), hotel("h1", "Sea View", "Bodrum"))
	assert.ErrorIs(t, err, hotelserrors.ErrStoreUnavailable)
}
