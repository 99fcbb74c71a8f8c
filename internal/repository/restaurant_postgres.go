package repository

import (
	"context"
	"fmt"

	"dining-concierge/internal/common/aws"
	"dining-concierge/internal/models"

	"github.com/jmoiron/sqlx"
)

// PostgresRestaurantRepository stores restaurants in the restaurants table.
type PostgresRestaurantRepository struct {
	db *sqlx.DB
}

func NewPostgresRestaurantRepository(db *sqlx.DB) *PostgresRestaurantRepository {
	return &PostgresRestaurantRepository{db: db}
}

// GetByBusinessID returns every stored record for businessID, oldest first.
func (r *PostgresRestaurantRepository) GetByBusinessID(ctx context.Context, businessID string) ([]models.RestaurantRecord, error) {
	ctx, done := aws.BeginSubsegment(ctx, "RestaurantRepository.GetByBusinessID")

	query := `
		SELECT business_id, name, cuisine, address, rating, reviews, city, zip_code, inserted_at
		FROM restaurants
		WHERE business_id = $1
		ORDER BY inserted_at`

	var records []models.RestaurantRecord
	if err := r.db.SelectContext(ctx, &records, query, businessID); err != nil {
		done(err)
		return nil, fmt.Errorf("select restaurant %s: %w", businessID, err)
	}
	done(nil)
	return records, nil
}

// Put inserts record, replacing a row with the same business id and insert timestamp.
func (r *PostgresRestaurantRepository) Put(ctx context.Context, record models.RestaurantRecord) error {
	ctx, done := aws.BeginSubsegment(ctx, "RestaurantRepository.Put")

	query := `
		INSERT INTO restaurants (
			business_id, name, cuisine, address, rating, reviews, city, zip_code, inserted_at
		) VALUES (
			:business_id, :name, :cuisine, :address, :rating, :reviews, :city, :zip_code, :inserted_at
		)
		ON CONFLICT (business_id, inserted_at) DO UPDATE SET
			name = EXCLUDED.name,
			cuisine = EXCLUDED.cuisine,
			address = EXCLUDED.address,
			rating = EXCLUDED.rating,
			reviews = EXCLUDED.reviews,
			city = EXCLUDED.city,
			zip_code = EXCLUDED.zip_code`

	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		done(err)
		return fmt.Errorf("insert restaurant %s: %w", record.BusinessID, err)
	}
	done(nil)
	return nil
}
