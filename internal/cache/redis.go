package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/nba-edge-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-edge-service/internal/model"
)

// RedisCache stores prior edges as JSON strings with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache wraps an existing client.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// NewRedisCacheFromURL parses a redis:// URL and builds a client for it.
func NewRedisCacheFromURL(url string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedisCache(redis.NewClient(opts), ttl), nil
}

// Get reads and decodes the edge; a missing key is a miss, not an error.
func (c *RedisCache) Get(ctx context.Context, team teams.Code, seasonEndYear int) (model.PriorEdge, bool, error) {
	data, err := c.client.Get(ctx, Key(team, seasonEndYear)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.PriorEdge{}, false, nil
	}
	if err != nil {
		return model.PriorEdge{}, false, fmt.Errorf("redis get prior: %w", err)
	}

	var edge model.PriorEdge
	if err := json.Unmarshal(data, &edge); err != nil {
		return model.PriorEdge{}, false, fmt.Errorf("decode prior: %w", err)
	}
	return edge, true, nil
}

// Set encodes and stores the edge.
func (c *RedisCache) Set(ctx context.Context, edge model.PriorEdge) error {
	data, err := json.Marshal(edge)
	if err != nil {
		return fmt.Errorf("marshaling prior: %w", err)
	}
	return c.client.Set(ctx, Key(edge.Team, edge.SeasonEndYear), data, c.ttl).Err()
}

// Close releases the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
