package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"booker-api/core/config"
	"booker-api/core/logger"

	"github.com/redis/go-redis/v9"
)

const maxUpdateAttempts = 5

type redisCache struct {
	client *redis.Client
}

func NewRedisCache(ctx context.Context, cfg config.RedisConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Cache:NewRedisCache:Ping:Error", "addr", cfg.Addr, "error", err)
		return nil, fmt.Errorf("failed to connect to redis %s: %w", cfg.Addr, err)
	}
	logger.Info("Cache:NewRedisCache:Connected", "addr", cfg.Addr, "db", cfg.DB)
	return &redisCache{client: client}, nil
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Update retries under WATCH until no other client touched key between the read and the write.
func (c *redisCache) Update(ctx context.Context, key string, ttl time.Duration, fn UpdateFunc) error {
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		ok := true
		if errors.Is(err, redis.Nil) {
			ok, err = false, nil
		}
		if err != nil {
			return err
		}
		next, err := fn(current, ok)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := c.client.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		logger.Debug("Cache:Update:Conflict", "key", key, "attempt", attempt+1)
	}
	return ErrUpdateConflict
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) AddToIndex(ctx context.Context, index string, key string, ttl time.Duration) error {
	pipe := c.client.TxPipeline()
	pipe.SAdd(ctx, index, key)
	if ttl > 0 {
		// the index outlives its newest member by one ttl
		pipe.Expire(ctx, index, 2*ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (c *redisCache) IndexMembers(ctx context.Context, index string) ([]string, error) {
	return c.client.SMembers(ctx, index).Result()
}

func (c *redisCache) Close() error {
	return c.client.Close()
}
