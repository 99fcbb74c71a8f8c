package repository

import (
	"context"
	"fmt"

	"dining-concierge/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoUserStateRepository keeps user state in a table keyed by userId.
type DynamoUserStateRepository struct {
	client DynamoDBAPI
	table  string
}

func NewDynamoUserStateRepository(client DynamoDBAPI, table string) *DynamoUserStateRepository {
	return &DynamoUserStateRepository{client: client, table: table}
}

func (r *DynamoUserStateRepository) Get(ctx context.Context, userID string) (*models.UserState, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get user state %s: %w", userID, err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var state models.UserState
	if err := attributevalue.UnmarshalMap(out.Item, &state); err != nil {
		return nil, fmt.Errorf("decode user state: %w", err)
	}
	return &state, nil
}

// Upsert overwrites the whole item; the record has no other attributes to preserve.
func (r *DynamoUserStateRepository) Upsert(ctx context.Context, state models.UserState) error {
	item, err := attributevalue.MarshalMap(state)
	if err != nil {
		return fmt.Errorf("encode user state: %w", err)
	}
	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("put user state %s: %w", state.UserID, err)
	}
	return nil
}
