package dynamo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestItemRoundTrip(t *testing.T) {
	item, err := Item("HOTEL#1", "INFO", doc{Name: "Mock", Count: 3}, map[string]string{AttrGSI1PK: "HOTELS"})
	require.NoError(t, err)

	assert.Equal(t, "HOTEL#1", item[AttrPK].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, "HOTELS", item[AttrGSI1PK].(*types.AttributeValueMemberS).Value)

	var out doc
	require.NoError(t, Decode(item, &out))
	assert.Equal(t, doc{Name: "Mock", Count: 3}, out)

	assert.Error(t, Decode(Key("a", "b"), &out))
}

func TestInt(t *testing.T) {
	v, err := Int(map[string]types.AttributeValue{"version": N(7)}, "version")
	require.NoError(t, err)
	assert.EqualValues(t, 7, v)

	v, err = Int(map[string]types.AttributeValue{}, "version")
	require.NoError(t, err)
	assert.Zero(t, v)
}

type pagedQuery struct {
	API
	pages [][]map[string]types.AttributeValue
	calls int
}

func (p *pagedQuery) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	page := p.pages[p.calls]
	p.calls++
	out := &dynamodb.QueryOutput{Items: page}
	if p.calls < len(p.pages) {
		out.LastEvaluatedKey = Key("next", fmt.Sprint(p.calls))
	}
	return out, nil
}

func TestQueryAll_FollowsPages(t *testing.T) {
	q := &pagedQuery{pages: [][]map[string]types.AttributeValue{
		{Key("a", "1"), Key("a", "2")},
		{Key("a", "3")},
	}}

	items, err := QueryAll(context.Background(), q, &dynamodb.QueryInput{})
	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Equal(t, 2, q.calls)
}

func TestErrorClassification(t *testing.T) {
	assert.True(t, IsConflict(fmt.Errorf("commit: %w", &types.TransactionCanceledException{})))
	assert.True(t, IsConflict(&types.ConditionalCheckFailedException{}))
	assert.False(t, IsConflict(errors.New("other")))

	assert.True(t, IsUnavailable(context.DeadlineExceeded))
	assert.True(t, IsUnavailable(&types.ProvisionedThroughputExceededException{}))
	assert.False(t, IsUnavailable(errors.New("validation")))
}
