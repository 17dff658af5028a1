package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/hupe1980/subsample/codec"
)

// DynamoClient is the interface for DynamoDB operations.
// *dynamodb.Client satisfies it.
type DynamoClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Dynamo is a Catalog backed by a DynamoDB table, for pipelines whose
// stages run on different hosts.
//
// Table schema:
//   - Partition key: dataset (string)
//   - Sort key: run_id (string, UUID)
//
// The run record itself is stored codec-encoded in the "record" attribute.
// Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name sampling-runs \
//	  --attribute-definitions AttributeName=dataset,AttributeType=S AttributeName=run_id,AttributeType=S \
//	  --key-schema AttributeName=dataset,KeyType=HASH AttributeName=run_id,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type Dynamo struct {
	client    DynamoClient
	tableName string
	codec     codec.Codec
}

var _ Catalog = (*Dynamo)(nil)

// NewDynamo creates a DynamoDB-backed catalog using the given table.
// If c is nil, codec.Default is used.
func NewDynamo(client DynamoClient, tableName string, c codec.Codec) *Dynamo {
	if c == nil {
		c = codec.Default
	}
	return &Dynamo{
		client:    client,
		tableName: tableName,
		codec:     c,
	}
}

// SaveRun implements Catalog.
func (d *Dynamo) SaveRun(ctx context.Context, run Run) error {
	data, err := d.codec.Marshal(run)
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}

	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.tableName),
		Item: map[string]types.AttributeValue{
			"dataset": &types.AttributeValueMemberS{Value: run.Dataset},
			"run_id":  &types.AttributeValueMemberS{Value: run.ID.String()},
			"record":  &types.AttributeValueMemberB{Value: data},
		},
	})
	if err != nil {
		return fmt.Errorf("put run to dynamodb: %w", err)
	}
	return nil
}

// GetRun implements Catalog.
func (d *Dynamo) GetRun(ctx context.Context, dataset string, id uuid.UUID) (Run, error) {
	resp, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.tableName),
		Key: map[string]types.AttributeValue{
			"dataset": &types.AttributeValueMemberS{Value: dataset},
			"run_id":  &types.AttributeValueMemberS{Value: id.String()},
		},
	})
	if err != nil {
		return Run{}, fmt.Errorf("get run from dynamodb: %w", err)
	}
	if len(resp.Item) == 0 {
		return Run{}, ErrRunNotFound
	}

	return d.decodeItem(resp.Item)
}

// ListRuns implements Catalog.
func (d *Dynamo) ListRuns(ctx context.Context, dataset string) ([]Run, error) {
	var runs []Run
	var startKey map[string]types.AttributeValue

	for {
		resp, err := d.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(d.tableName),
			KeyConditionExpression: aws.String("dataset = :dataset"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":dataset": &types.AttributeValueMemberS{Value: dataset},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("query runs from dynamodb: %w", err)
		}

		for _, item := range resp.Items {
			run, err := d.decodeItem(item)
			if err != nil {
				return nil, err
			}
			runs = append(runs, run)
		}

		if len(resp.LastEvaluatedKey) == 0 {
			break
		}
		startKey = resp.LastEvaluatedKey
	}

	return runs, nil
}

// DeleteRun implements Catalog.
func (d *Dynamo) DeleteRun(ctx context.Context, dataset string, id uuid.UUID) error {
	_, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(d.tableName),
		Key: map[string]types.AttributeValue{
			"dataset": &types.AttributeValueMemberS{Value: dataset},
			"run_id":  &types.AttributeValueMemberS{Value: id.String()},
		},
	})
	if err != nil {
		return fmt.Errorf("delete run from dynamodb: %w", err)
	}
	return nil
}

// Close implements Catalog. The client lifecycle belongs to the caller.
func (d *Dynamo) Close() error {
	return nil
}

func (d *Dynamo) decodeItem(item map[string]types.AttributeValue) (Run, error) {
	recordAttr, ok := item["record"].(*types.AttributeValueMemberB)
	if !ok {
		return Run{}, errors.New("invalid record attribute in dynamodb item")
	}

	var run Run
	if err := d.codec.Unmarshal(recordAttr.Value, &run); err != nil {
		return Run{}, fmt.Errorf("decode run: %w", err)
	}
	return run, nil
}
