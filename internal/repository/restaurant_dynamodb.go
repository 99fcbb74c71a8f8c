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

// DynamoRestaurantRepository reads a table keyed by BusinessID (partition) and
// InsertedAtTimestamp (sort).
type DynamoRestaurantRepository struct {
	client DynamoDBAPI
	table  string
}

func NewDynamoRestaurantRepository(client DynamoDBAPI, table string) *DynamoRestaurantRepository {
	return &DynamoRestaurantRepository{client: client, table: table}
}

func (r *DynamoRestaurantRepository) GetByBusinessID(ctx context.Context, businessID string) ([]models.RestaurantRecord, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		KeyConditionExpression: aws.String("BusinessID = :id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: businessID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("query %s for %s: %w", r.table, businessID, err)
	}

	var records []models.RestaurantRecord
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &records); err != nil {
		return nil, fmt.Errorf("decode restaurant items: %w", err)
	}
	return records, nil
}

func (r *DynamoRestaurantRepository) Put(ctx context.Context, record models.RestaurantRecord) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("encode restaurant %s: %w", record.BusinessID, err)
	}
	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("put restaurant %s: %w", record.BusinessID, err)
	}
	return nil
}
