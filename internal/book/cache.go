package book

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores the top-rated listing between requests
type Cache interface {
	GetTopRated(ctx context.Context, limit int) ([]Book, bool, error)
	SetTopRated(ctx context.Context, limit int, books []Book) error
	Invalidate(ctx context.Context) error
}

const topRatedKeyPrefix = "catalog:top_rated:"

// RedisCache keeps cached listings as JSON strings with a TTL
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func getTopRatedKey(limit int) string {
	return fmt.Sprintf("%s%d", topRatedKeyPrefix, limit)
}

// GetTopRated returns the cached listing; the bool is false on a cache miss
func (c *RedisCache) GetTopRated(ctx context.Context, limit int) ([]Book, bool, error) {
	data, err := c.client.Get(ctx, getTopRatedKey(limit)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read top rated cache: %w", err)
	}

	var books []Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, false, fmt.Errorf("failed to decode top rated cache: %w", err)
	}

	return books, true, nil
}

// SetTopRated stores the listing for limit
func (c *RedisCache) SetTopRated(ctx context.Context, limit int, books []Book) error {
	data, err := json.Marshal(books)
	if err != nil {
		return fmt.Errorf("failed to encode top rated cache: %w", err)
	}

	if err := c.client.Set(ctx, getTopRatedKey(limit), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write top rated cache: %w", err)
	}

	return nil
}

// Invalidate drops every cached top-rated listing
func (c *RedisCache) Invalidate(ctx context.Context) error {
	var keys []string
	iter := c.client.Scan(ctx, 0, topRatedKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan top rated cache keys: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate top rated cache: %w", err)
	}

	return nil
}

// nopCache is used when no cache backend is configured
type nopCache struct{}

func (nopCache) GetTopRated(context.Context, int) ([]Book, bool, error) { return nil, false, nil }
func (nopCache) SetTopRated(context.Context, int, []Book) error { return nil }
func (nopCache) Invalidate(context.Context) error { return nil }
