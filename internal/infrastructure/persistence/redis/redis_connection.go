// Package redis provides the Redis connection and the two-tier score cache.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/seclearn/analytics/internal/config"
	"github.com/seclearn/analytics/pkg/logger"
)

// RedisConnection wraps the go-redis client lifecycle.
type RedisConnection struct {
	Client redis.UniversalClient
	log    logger.Logger
}

// NewRedisConnection creates the Redis client and verifies connectivity.
// A single address yields a standalone client; multiple addresses a cluster
// client.
func NewRedisConnection(ctx context.Context, cfg *config.RedisConfig, log logger.Logger) (*RedisConnection, error) {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        cfg.Addresses,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis unreachable: %w", err)
	}

	log.Info(ctx, "redis connection established", logger.Fields{
		"addresses": cfg.Addresses,
	})
	return &RedisConnection{Client: client, log: log}, nil
}

// Ping verifies Redis connectivity.
func (r *RedisConnection) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

// Close releases the client's connections.
func (r *RedisConnection) Close() error {
	return r.Client.Close()
}
