package repository

import (
	"context"
	"errors"
	"testing"

	"dining-concierge/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PostgresRestaurantRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRestaurantRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestPostgresGetByBusinessID_ReturnsDuplicates(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"business_id", "name", "cuisine", "address", "rating", "reviews", "city", "zip_code", "inserted_at"}).
		AddRow("b1", "Joe's Shanghai", "Chinese", "46 Bowery", 4.5, 2000, "New York", "10013", "2025-02-01T10:00:00").
		AddRow("b1", "Joe's Shanghai", "Chinese", "46 Bowery St", 4.0, 2100, "New York", "10013", "2025-03-01T10:00:00")

	mock.ExpectQuery("SELECT business_id, name, cuisine").
		WithArgs("b1").
		WillReturnRows(rows)

	records, err := repo.GetByBusinessID(context.Background(), "b1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "46 Bowery", records[0].Address)
	assert.Equal(t, 4.5, records[0].Rating)
	assert.Equal(t, 2100, records[1].Reviews)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetByBusinessID_Miss(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT business_id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"business_id"}))

	records, err := repo.GetByBusinessID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestPostgresGetByBusinessID_Error(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT business_id").WillReturnError(errors.New("connection reset"))

	_, err := repo.GetByBusinessID(context.Background(), "b1")
	assert.ErrorContains(t, err, "connection reset")
}

func TestPostgresPut(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("INSERT INTO restaurants").
		WithArgs("b2", "Carbone", "Italian", "181 Thompson St", 4.3, 3000, "New York", "10012", "2025-02-01T10:00:00").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Put(context.Background(), models.RestaurantRecord{
		BusinessID:          "b2",
		Name:                "Carbone",
		Cuisine:             "Italian",
		Address:             "181 Thompson St",
		Rating:              4.3,
		Reviews:             3000,
		City:                "New York",
		ZipCode:             "10012",
		InsertedAtTimestamp: "2025-02-01T10:00:00",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
