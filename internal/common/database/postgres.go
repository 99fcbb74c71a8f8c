// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dining-concierge/internal/common/config"

	_ "github.com/lib/pq"
)

// restaurantsSchema allows duplicate business ids across loads; readers pick one.
const restaurantsSchema = `
CREATE TABLE IF NOT EXISTS restaurants (
	business_id  TEXT        NOT NULL,
	inserted_at  TEXT        NOT NULL,
	name         TEXT        NOT NULL DEFAULT '',
	cuisine      TEXT        NOT NULL DEFAULT '',
	address      TEXT        NOT NULL DEFAULT '',
	rating       NUMERIC(2,1) NOT NULL DEFAULT 0,
	reviews      INTEGER     NOT NULL DEFAULT 0,
	city         TEXT        NOT NULL DEFAULT '',
	zip_code     TEXT        NOT NULL DEFAULT '',
	PRIMARY KEY (business_id, inserted_at)
)`

// PostgresClient wraps the SQL database connection
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres creates a new PostgreSQL client
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

// Ping tests the database connection
func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// EnsureSchema creates the restaurants table when missing.
func (c *PostgresClient) EnsureSchema(ctx context.Context) error {
	if _, err := c.DB.ExecContext(ctx, restaurantsSchema); err != nil {
		return fmt.Errorf("create restaurants table: %w", err)
	}
	return nil
}

// Close closes the database connection
func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
