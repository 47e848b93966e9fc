package database

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"project-hub-api/internal/config"
)

// RedisClient is the shared redis client, nil when redis is unavailable
var RedisClient *redis.Client

// InitRedis connects to redis and verifies the connection
func InitRedis(cfg config.RedisConfig) (*redis.Client, error) {
	var client *redis.Client
	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		client = redis.NewClient(opts)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     cfg.Host + ":" + cfg.Port,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	RedisClient = client
	return client, nil
}

// CloseRedis closes the shared redis client if present
func CloseRedis() error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Close()
}
