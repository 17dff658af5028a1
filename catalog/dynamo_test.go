package catalog

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDynamoClient is a testify mock of the DynamoClient interface.
type MockDynamoClient struct {
	mock.Mock
}

func (m *MockDynamoClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*dynamodb.PutItemOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDynamoClient) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*dynamodb.GetItemOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDynamoClient) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*dynamodb.QueryOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDynamoClient) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*dynamodb.DeleteItemOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestDynamo_SaveRun(t *testing.T) {
	mockClient := new(MockDynamoClient)
	cat := NewDynamo(mockClient, "sampling-runs", nil)

	run := testRun("iris")

	mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.PutItemInput) bool {
		if *input.TableName != "sampling-runs" {
			return false
		}
		dataset, ok := input.Item["dataset"].(*types.AttributeValueMemberS)
		if !ok || dataset.Value != "iris" {
			return false
		}
		runID, ok := input.Item["run_id"].(*types.AttributeValueMemberS)
		return ok && runID.Value == run.ID.String()
	})).Return(&dynamodb.PutItemOutput{}, nil).Once()

	require.NoError(t, cat.SaveRun(context.Background(), run))
	mockClient.AssertExpectations(t)
}

func TestDynamo_GetRun(t *testing.T) {
	mockClient := new(MockDynamoClient)
	cat := NewDynamo(mockClient, "sampling-runs", nil)

	run := testRun("iris")
	record, err := cat.codec.Marshal(run)
	require.NoError(t, err)

	t.Run("Found", func(t *testing.T) {
		mockClient.On("GetItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.GetItemInput) bool {
			runID, ok := input.Key["run_id"].(*types.AttributeValueMemberS)
			return ok && runID.Value == run.ID.String()
		})).Return(&dynamodb.GetItemOutput{
			Item: map[string]types.AttributeValue{
				"dataset": &types.AttributeValueMemberS{Value: "iris"},
				"run_id":  &types.AttributeValueMemberS{Value: run.ID.String()},
				"record":  &types.AttributeValueMemberB{Value: record},
			},
		}, nil).Once()

		got, err := cat.GetRun(context.Background(), "iris", run.ID)
		require.NoError(t, err)
		assert.Equal(t, run, got)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockClient.On("GetItem", mock.Anything, mock.Anything).
			Return(&dynamodb.GetItemOutput{}, nil).Once()

		_, err := cat.GetRun(context.Background(), "iris", uuid.New())
		assert.ErrorIs(t, err, ErrRunNotFound)
	})
}

func TestDynamo_ListRuns(t *testing.T) {
	mockClient := new(MockDynamoClient)
	cat := NewDynamo(mockClient, "sampling-runs", nil)

	a := testRun("wine")
	b := testRun("wine")
	recordA, err := cat.codec.Marshal(a)
	require.NoError(t, err)
	recordB, err := cat.codec.Marshal(b)
	require.NoError(t, err)

	// Two pages to exercise pagination.
	mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
		return input.ExclusiveStartKey == nil
	})).Return(&dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{
			{"record": &types.AttributeValueMemberB{Value: recordA}},
		},
		LastEvaluatedKey: map[string]types.AttributeValue{
			"run_id": &types.AttributeValueMemberS{Value: a.ID.String()},
		},
	}, nil).Once()

	mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
		return input.ExclusiveStartKey != nil
	})).Return(&dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{
			{"record": &types.AttributeValueMemberB{Value: recordB}},
		},
	}, nil).Once()

	runs, err := cat.ListRuns(context.Background(), "wine")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, a.ID, runs[0].ID)
	assert.Equal(t, b.ID, runs[1].ID)
}

func TestDynamo_DeleteRun(t *testing.T) {
	mockClient := new(MockDynamoClient)
	cat := NewDynamo(mockClient, "sampling-runs", nil)

	id := uuid.New()
	mockClient.On("DeleteItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.DeleteItemInput) bool {
		runID, ok := input.Key["run_id"].(*types.AttributeValueMemberS)
		return ok && runID.Value == id.String()
	})).Return(&dynamodb.DeleteItemOutput{}, nil).Once()

	require.NoError(t, cat.DeleteRun(context.Background(), "wine", id))
	mockClient.AssertExpectations(t)
}
