package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const categoriesKey = "inventory:categories"

// CategoryCache holds the distinct category list between writes. Failures
// are never returned: a broken cache degrades to a miss.
type CategoryCache interface {
	Get(ctx context.Context) ([]string, bool)
	Set(ctx context.Context, categories []string)
	Invalidate(ctx context.Context)
}

// NewRedisClient connects and pings Redis.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

type RedisCategoryCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewRedisCategoryCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *RedisCategoryCache {
	return &RedisCategoryCache{rdb: rdb, ttl: ttl, log: log}
}

func (c *RedisCategoryCache) Get(ctx context.Context) ([]string, bool) {
	raw, err := c.rdb.Get(ctx, categoriesKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("category cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var categories []string
	if err := json.Unmarshal(raw, &categories); err != nil {
		c.log.Warn("category cache holds invalid JSON", zap.Error(err))
		return nil, false
	}
	return categories, true
}

func (c *RedisCategoryCache) Set(ctx context.Context, categories []string) {
	raw, err := json.Marshal(categories)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, categoriesKey, raw, c.ttl).Err(); err != nil {
		c.log.Warn("category cache write failed", zap.Error(err))
	}
}

func (c *RedisCategoryCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, categoriesKey).Err(); err != nil {
		c.log.Warn("category cache invalidate failed", zap.Error(err))
	}
}

// NopCategoryCache always misses. Used when REDIS_ADDR is not set.
type NopCategoryCache struct{}

func (NopCategoryCache) Get(context.Context) ([]string, bool) { return nil, false }
func (NopCategoryCache) Set(context.Context, []string)         {}
func (NopCategoryCache) Invalidate(context.Context)            {}
