package dynamo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func S(v string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: v}
}

func N(v int64) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: strconv.FormatInt(v, 10)}
}

func Key(pk, sk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{AttrPK: S(pk), AttrSK: S(sk)}
}

// Item builds an item with the JSON encoding of doc under "data". attrs adds
// plain string attributes used by indexes and filters.
func Item(pk, sk string, doc any, attrs map[string]string) (map[string]types.AttributeValue, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode item %s/%s: %w", pk, sk, err)
	}
	item := Key(pk, sk)
	item[AttrData] = S(string(raw))
	for k, v := range attrs {
		item[k] = S(v)
	}
	return item, nil
}

// Decode unmarshals the "data" attribute of item into dst.
func Decode(item map[string]types.AttributeValue, dst any) error {
	attr, ok := item[AttrData].(*types.AttributeValueMemberS)
	if !ok {
		return errors.New("item has no data attribute")
	}
	return json.Unmarshal([]byte(attr.Value), dst)
}

// Int reads a numeric attribute, returning 0 when it is absent.
func Int(item map[string]types.AttributeValue, name string) (int64, error) {
	attr, ok := item[name].(*types.AttributeValueMemberN)
	if !ok {
		return 0, nil
	}
	return strconv.ParseInt(attr.Value, 10, 64)
}

// QueryAll follows LastEvaluatedKey until the result set is exhausted.
func QueryAll(ctx context.Context, client API, input *dynamodb.QueryInput) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	for {
		out, err := client.Query(ctx, input)
		if err != nil {
			return nil, err
		}
		items = append(items, out.Items...)
		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// IsConflict reports whether err is a failed condition or a cancelled
// transaction, both of which mean another writer got there first.
func IsConflict(err error) bool {
	var cancelled *types.TransactionCanceledException
	if errors.As(err, &cancelled) {
		return true
	}
	var condFailed *types.ConditionalCheckFailedException
	if errors.As(err, &condFailed) {
		return true
	}
	var inProgress *types.TransactionConflictException
	return errors.As(err, &inProgress)
}

// IsUnavailable reports whether err means DynamoDB could not be reached or
// throttled the request.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var throttled *types.ProvisionedThroughputExceededException
	if errors.As(err, &throttled) {
		return true
	}
	var limit *types.RequestLimitExceeded
	if errors.As(err, &limit) {
		return true
	}
	var internal *types.InternalServerError
	return errors.As(err, &internal)
}
