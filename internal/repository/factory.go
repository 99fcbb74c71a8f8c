package repository

import (
	"context"
	"fmt"

	"dining-concierge/internal/common/aws"
	"dining-concierge/internal/common/config"
	"dining-concierge/internal/common/database"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/jmoiron/sqlx"
)

// CloseFunc releases whatever connection a store opened.
type CloseFunc func() error

func noopClose() error { return nil }

// NewRestaurantStore builds the restaurant store selected by stores.restaurants.backend.
func NewRestaurantStore(ctx context.Context, cfg *config.Config, dynamo DynamoDBAPI) (RestaurantRepository, CloseFunc, error) {
	switch cfg.Stores.Restaurants.Backend {
	case "postgres":
		db, err := openPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("postgres ping failed: %w", err)
		}
		return NewPostgresRestaurantRepository(db), db.Close, nil
	case "dynamodb":
		return NewDynamoRestaurantRepository(dynamo, cfg.Stores.Restaurants.Table), noopClose, nil
	default:
		return nil, nil, fmt.Errorf("unknown restaurant store backend %q", cfg.Stores.Restaurants.Backend)
	}
}

// NewUserStateStore builds the user-state store selected by stores.user_state.backend.
func NewUserStateStore(ctx context.Context, cfg *config.Config, dynamo DynamoDBAPI) (UserStateRepository, CloseFunc, error) {
	switch cfg.Stores.UserState.Backend {
	case "redis":
		rc, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return nil, nil, err
		}
		if err := rc.Ping(ctx); err != nil {
			rc.Close()
			return nil, nil, err
		}
		return NewRedisUserStateRepository(rc.Client, cfg.Stores.UserState.KeyPrefix), rc.Close, nil
	case "dynamodb":
		return NewDynamoUserStateRepository(dynamo, cfg.Stores.UserState.Table), noopClose, nil
	default:
		return nil, nil, fmt.Errorf("unknown user state store backend %q", cfg.Stores.UserState.Backend)
	}
}

// openPostgres opens the pool through the X-Ray SQL wrapper when tracing is on.
func openPostgres(cfg config.PostgresConfig) (*sqlx.DB, error) {
	if !aws.TracingEnabled() {
		pg, err := database.NewPostgres(cfg)
		if err != nil {
			return nil, err
		}
		return sqlx.NewDb(pg.DB, "postgres"), nil
	}

	db, err := xray.SQLContext("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to create X-Ray SQL context: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	return sqlx.NewDb(db, "postgres"), nil
}

// EnsureRestaurantSchema creates the Postgres table when that backend is selected.
func EnsureRestaurantSchema(ctx context.Context, cfg *config.Config) error {
	if cfg.Stores.Restaurants.Backend != "postgres" {
		return nil
	}
	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return err
	}
	defer pg.Close()
	return pg.EnsureSchema(ctx)
}
