package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type RedisRepositoryImpl struct {
	client *redis.Client
}

func CreateRedisRepository(client *redis.Client) CacheRepository {
	return &RedisRepositoryImpl{
		client: client,
	}
}

func (r *RedisRepositoryImpl) Get(ctx context.Context, key string) (value []byte, found bool, err error) {
	value, err = r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CacheGet").Str("key", key).Msg("")
		return nil, false, err
	}

	return value, true, nil
}

func (r *RedisRepositoryImpl) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CacheSet").Str("key", key).Msg("")
	}

	return err
}

// SetIfAbsent marks key as taken. It reports false when the key already
// existed.
func (r *RedisRepositoryImpl) SetIfAbsent(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, 1, ttl).Result()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CacheSetIfAbsent").Str("key", key).Msg("")
		return false, err
	}

	return ok, nil
}

func (r *RedisRepositoryImpl) ScanKeys(ctx context.Context, match string, cursor uint64, count int64) (keys []string, next uint64, err error) {
	keys, next, err = r.client.Scan(ctx, cursor, match, count).Result()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CacheScanKeys").Str("match", match).Msg("")
	}

	return
}

func (r *RedisRepositoryImpl) DeleteKeys(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}

	deleted, err := r.client.Del(ctx, keys...).Result()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CacheDeleteKeys").Int("keys", len(keys)).Msg("")
	}

	return deleted, err
}
