package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"pricegenie/backend/internal/pricing"
)

const redisKeyPrefix = "pricegenie:genie:"

type RedisGenieCache struct {
	client *redis.Client
}

func NewRedisGenieCache(addr string, password string, db int) *RedisGenieCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisGenieCache{client: client}
}

func (c *RedisGenieCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisGenieCache) Close() error {
	return c.client.Close()
}

func (c *RedisGenieCache) Get(ctx context.Context, key string) (*pricing.GenieSuggestionPayload, bool, error) {
	val, err := c.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var payload pricing.GenieSuggestionPayload
	if err := json.Unmarshal([]byte(val), &payload); err != nil {
		log.Warn().Err(err).Str("component", "cache").Str("key", key).Msg("dropping corrupt genie cache entry")
		_ = c.client.Del(ctx, redisKeyPrefix+key).Err()
		return nil, false, nil
	}
	return &payload, true, nil
}

func (c *RedisGenieCache) Set(ctx context.Context, key string, value *pricing.GenieSuggestionPayload, ttl time.Duration) error {
	if value == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, redisKeyPrefix+key, payload, ttl).Err()
}
