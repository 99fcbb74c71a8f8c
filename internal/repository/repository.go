// Package repository holds the restaurant and user-state stores.
package repository

import (
	"context"

	"dining-concierge/internal/models"
)

// RestaurantRepository reads and loads restaurant reference data. A business id may map to
// several records when the dataset was loaded more than once.
type RestaurantRepository interface {
	GetByBusinessID(ctx context.Context, businessID string) ([]models.RestaurantRecord, error)
	Put(ctx context.Context, record models.RestaurantRecord) error
}

// UserStateRepository keeps one record per user. Get returns (nil, nil) for unknown users.
type UserStateRepository interface {
	Get(ctx context.Context, userID string) (*models.UserState, error)
	Upsert(ctx context.Context, state models.UserState) error
}
