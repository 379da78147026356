package repository

import (
	"context"
	"errors"
	"triz_edu_backend/internal/model"
	"triz_edu_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisProgressStorage keeps the collection as one JSON string value.
type RedisProgressStorage struct {
	Redis *redis.Client
	key   string
}

func NewRedisProgressStorage(rdb *redis.Client, key string) *RedisProgressStorage {
	return &RedisProgressStorage{Redis: rdb, key: key}
}

func (r *RedisProgressStorage) Load() []model.ModuleProgress {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	raw, err := r.Redis.Get(ctx, r.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("Failed to load progress from redis", zap.String("key", r.key), zap.Error(err))
		}
		return []model.ModuleProgress{}
	}
	return decodeProgress("redis", raw)
}

func (r *RedisProgressStorage) Save(progress []model.ModuleProgress) error {
	data, err := encodeProgress(progress)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	return r.Redis.Set(ctx, r.key, data, 0).Err()
}

func (r *RedisProgressStorage) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	return r.Redis.Del(ctx, r.key).Err()
}
