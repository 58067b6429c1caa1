package teamcache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDBAPI is the subset of the DynamoDB client DynamoStore uses.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoStore keeps one item per key: PK CacheKey (S), Payload (S, the team
// list as JSON), CachedAt (N, epoch seconds).
type DynamoStore struct {
	ddb   DynamoDBAPI
	table string
}

// NewDynamoStore loads the default AWS config and targets table.
func NewDynamoStore(ctx context.Context, table string) (*DynamoStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return NewDynamoStoreWithClient(dynamodb.NewFromConfig(cfg), table), nil
}

// NewDynamoStoreWithClient wraps an existing client.
func NewDynamoStoreWithClient(ddb DynamoDBAPI, table string) *DynamoStore {
	return &DynamoStore{ddb: ddb, table: table}
}

func (d *DynamoStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	out, err := d.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key: map[string]types.AttributeValue{
			"CacheKey": &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return Entry{}, false, fmt.Errorf("dynamodb get: %w", err)
	}
	if len(out.Item) == 0 {
		return Entry{}, false, nil
	}

	var e Entry
	if p, ok := out.Item["Payload"].(*types.AttributeValueMemberS); ok {
		if err := json.Unmarshal([]byte(p.Value), &e.Teams); err != nil {
			return Entry{}, false, fmt.Errorf("decoding cached teams: %w", err)
		}
	}
	if n, ok := out.Item["CachedAt"].(*types.AttributeValueMemberN); ok {
		// unparseable timestamps stay zero, which reads as stale
		e.CachedAt, _ = strconv.ParseFloat(n.Value, 64)
	}
	return e, true, nil
}

func (d *DynamoStore) Put(ctx context.Context, key string, entry Entry) error {
	payload, err := json.Marshal(entry.Teams)
	if err != nil {
		return fmt.Errorf("encoding teams: %w", err)
	}

	_, err = d.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item: map[string]types.AttributeValue{
			"CacheKey": &types.AttributeValueMemberS{Value: key},
			"Payload":  &types.AttributeValueMemberS{Value: string(payload)},
			"CachedAt": &types.AttributeValueMemberN{Value: strconv.FormatFloat(entry.CachedAt, 'f', 3, 64)},
		},
	})
	if err != nil {
		return fmt.Errorf("dynamodb put: %w", err)
	}
	return nil
}

func (d *DynamoStore) Close() error {
	return nil
}
