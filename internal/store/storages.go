package store

import (
	"context"

	"github.com/stocktree/stocktree-auth/internal/config"
	"github.com/stocktree/stocktree-auth/internal/logger"
)

// Storages groups all server-side storage backends into a single dependency
// handed to the service layer.
type Storages struct {
	UserRepository         UserRepository
	RefreshTokenRepository RefreshTokenRepository
	OTPCache               OTPCache
}

// NewStorages initialises the storage layer using the supplied configs:
//
//  1. Connects to PostgreSQL and applies pending migrations.
//  2. Connects to Redis for the OTP cache.
//  3. Constructs and returns a [Storages] value wired to both backends.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, err
	}

	redisClient, err := NewRedisClient(ctx, cfg.Redis, logger)
	if err != nil {
		return nil, err
	}

	return &Storages{
		UserRepository:         NewUserRepository(db, logger),
		RefreshTokenRepository: NewRefreshTokenRepository(db, logger),
		OTPCache:               NewOTPCache(redisClient, logger),
	}, nil
}
