package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// redis 快照键的统一前缀，避免和其他业务键冲突
const redisKeyPrefix = "job_search:storage:"

type redisStorageRepository struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisStorageRepository 创建基于 Redis 的快照仓储
func NewRedisStorageRepository(addr, password string, db int) (StorageRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &redisStorageRepository{
		client: client,
		ctx:    context.Background(),
	}, nil
}

func (r *redisStorageRepository) Load(key string) ([]byte, error) {
	val, err := r.client.Get(r.ctx, redisKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (r *redisStorageRepository) Save(key string, value []byte) error {
	return r.client.Set(r.ctx, redisKeyPrefix+key, value, 0).Err()
}

func (r *redisStorageRepository) Delete(key string) error {
	return r.client.Del(r.ctx, redisKeyPrefix+key).Err()
}

func (r *redisStorageRepository) Keys() ([]string, error) {
	fullKeys, err := r.client.Keys(r.ctx, redisKeyPrefix+"*").Result()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(fullKeys))
	for _, k := range fullKeys {
		keys = append(keys, k[len(redisKeyPrefix):])
	}
	return keys, nil
}
