package db

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"prism-ads/internal/config/configs"
)

// NewRedisClient connects to Redis and verifies connectivity with a bounded
// ping. The caller owns the client and must close it.
func NewRedisClient(ctx context.Context, cfg configs.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctxPing).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
