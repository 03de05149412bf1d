package redisinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/loan-landing-api/internal/config"
	"github.com/redis/go-redis/v9"
)

const pingTimeout = 1500 * time.Millisecond

// NewClient connects to a single Redis instance and pings it.
func NewClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            cfg.RedisAddr,
		Password:        cfg.RedisPassword,
		DB:              0,
		PoolSize:        50,
		ConnMaxIdleTime: 170 * time.Second,
		DialTimeout:     time.Second,
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}
	return client, nil
}
