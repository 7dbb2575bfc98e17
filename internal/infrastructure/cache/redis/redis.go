package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/alimikegami/point-of-sales/storefront-service/config"
	"github.com/redis/go-redis/v9"
)

func CreateRedisClient(config *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         config.RedisConfig.Address,
		Password:     config.RedisConfig.Password,
		DB:           config.RedisConfig.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis at %s: %w", config.RedisConfig.Address, err)
	}

	return client, nil
}
