package repository

import (
	"context"
	"errors"
	"testing"

	"dining-concierge/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockDynamoDB is a function-field fake of the DynamoDB client.
type MockDynamoDB struct {
	QueryFunc   func(ctx context.Context, params *dynamodb.QueryInput) (*dynamodb.QueryOutput, error)
	GetItemFunc func(ctx context.Context, params *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	PutItemFunc func(ctx context.Context, params *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error)
}

func (m *MockDynamoDB) Query(ctx context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return m.QueryFunc(ctx, params)
}

func (m *MockDynamoDB) GetItem(ctx context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return m.GetItemFunc(ctx, params)
}

func (m *MockDynamoDB) PutItem(ctx context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return m.PutItemFunc(ctx, params)
}

func TestDynamoRestaurant_GetByBusinessID(t *testing.T) {
	mock := &MockDynamoDB{
		QueryFunc: func(_ context.Context, p *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			assert.Equal(t, "yelp-restaurants", aws.ToString(p.TableName))
			assert.Equal(t, "BusinessID = :id", aws.ToString(p.KeyConditionExpression))
			id := p.ExpressionAttributeValues[":id"].(*types.AttributeValueMemberS)
			assert.Equal(t, "b1", id.Value)
			return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{{
				"BusinessID": &types.AttributeValueMemberS{Value: "b1"},
				"Name":       &types.AttributeValueMemberS{Value: "Los Tacos No. 1"},
				"Cuisine":    &types.AttributeValueMemberS{Value: "Mexican"},
				"Rating":     &types.AttributeValueMemberN{Value: "4.8"},
				"Reviews":    &types.AttributeValueMemberN{Value: "5000"},
				"Zip Code":   &types.AttributeValueMemberS{Value: "10011"},
			}}}, nil
		},
	}

	records, err := NewDynamoRestaurantRepository(mock, "yelp-restaurants").GetByBusinessID(context.Background(), "b1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Los Tacos No. 1", records[0].Name)
	assert.Equal(t, 4.8, records[0].Rating)
	assert.Equal(t, 5000, records[0].Reviews)
	assert.Equal(t, "10011", records[0].ZipCode)
}

func TestDynamoRestaurant_QueryError(t *testing.T) {
	mock := &MockDynamoDB{
		QueryFunc: func(context.Context, *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			return nil, errors.New("throttled")
		},
	}
	_, err := NewDynamoRestaurantRepository(mock, "t").GetByBusinessID(context.Background(), "b1")
	assert.ErrorContains(t, err, "throttled")
}

func TestDynamoUserState_GetMissing(t *testing.T) {
	mock := &MockDynamoDB{
		GetItemFunc: func(context.Context, *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{}, nil
		},
	}
	state, err := NewDynamoUserStateRepository(mock, "user-state").Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestDynamoUserState_UpsertThenGet(t *testing.T) {
	var stored map[string]types.AttributeValue
	mock := &MockDynamoDB{
		PutItemFunc: func(_ context.Context, p *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			assert.Equal(t, "user-state", aws.ToString(p.TableName))
			stored = p.Item
			return &dynamodb.PutItemOutput{}, nil
		},
		GetItemFunc: func(_ context.Context, p *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			key := p.Key["userId"].(*types.AttributeValueMemberS)
			assert.Equal(t, "u1", key.Value)
			return &dynamodb.GetItemOutput{Item: stored}, nil
		},
	}
	repo := NewDynamoUserStateRepository(mock, "user-state")
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, models.UserState{UserID: "u1", RecentRecommendation: "Name: Carbone"}))
	state, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, "Name: Carbone", state.RecentRecommendation)
}
