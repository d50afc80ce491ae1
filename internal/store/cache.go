// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stocktree/stocktree-auth/internal/config"
	"github.com/stocktree/stocktree-auth/internal/logger"
)

// otpCache stores sealed one-time-password signatures in Redis with a
// per-entry TTL. Expiry is handled entirely by Redis: a lookup after the TTL
// has elapsed behaves exactly like a lookup of a key that was never stored.
type otpCache struct {
	logger *logger.Logger
	client *redis.Client
}

// NewRedisClient dials Redis using the given configs and verifies the
// connection with a ping.
func NewRedisClient(ctx context.Context, cfg config.Redis, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("addr", cfg.Addr).Msg("error connecting to redis")
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}
	log.Info().Str("addr", cfg.Addr).Msg("connected to redis")

	return client, nil
}

// NewOTPCache constructs an [OTPCache] backed by the provided Redis client.
func NewOTPCache(client *redis.Client, logger *logger.Logger) OTPCache {
	logger.Debug().Msg("creating OTP cache")
	return &otpCache{
		client: client,
		logger: logger,
	}
}

func (c *otpCache) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	log := logger.FromContext(ctx)

	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Err(err).Str("func", "*otpCache.Put").Msg("error writing cache entry")
		return fmt.Errorf("error writing cache entry: %w", err)
	}

	return nil
}

func (c *otpCache) Get(ctx context.Context, key string) (string, error) {
	log := logger.FromContext(ctx)

	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrOTPNotCached
		}
		log.Err(err).Str("func", "*otpCache.Get").Msg("error reading cache entry")
		return "", fmt.Errorf("error reading cache entry: %w", err)
	}

	return value, nil
}

func (c *otpCache) Del(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		log.Err(err).Str("func", "*otpCache.Del").Msg("error deleting cache entry")
		return fmt.Errorf("error deleting cache entry: %w", err)
	}

	return nil
}
