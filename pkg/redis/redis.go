package redis

import (
	"context"
	"fmt"

	"github.com/healthassist/healthassist-go/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates a Redis client
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// verify the connection before handing the client out
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return client, nil
}
