package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/domain"
	"github.com/CVHCAdmin/chippewa-home-care-crm-sub001/internal/ports"
)

// RedisDistanceCache caches legs in Redis with a TTL. Entries are stored as
// "meters:seconds" strings under "dist:<originKey>:<destKey>".
type RedisDistanceCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisDistanceCache(client *redis.Client, ttl time.Duration) *RedisDistanceCache {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &RedisDistanceCache{Client: client, TTL: ttl}
}

func cacheKey(origin, dest string) string {
	return "dist:" + origin + ":" + dest
}

func (c *RedisDistanceCache) GetMany(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) (map[string]ports.DistanceResult, error) {
	if c.Client == nil {
		return nil, errors.New("redis distance cache: client is nil")
	}

	if len(destinations) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	keys := make([]string, 0, len(destinations))
	destKeys := make([]string, 0, len(destinations))
	for _, d := range destinations {
		keys = append(keys, cacheKey(origin.Key(), d.Key()))
		destKeys = append(destKeys, d.Key())
	}

	vals, err := c.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis distance cache: mget: %w", err)
	}

	out := make(map[string]ports.DistanceResult, len(destinations))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var meters, seconds int
		if _, err := fmt.Sscanf(s, "%d:%d", &meters, &seconds); err != nil {
			// Unparseable entries are treated as misses and overwritten.
			continue
		}
		out[destKeys[i]] = ports.DistanceResult{DistanceMeters: meters, DurationSeconds: seconds}
	}

	return out, nil
}

func (c *RedisDistanceCache) PutMany(
	ctx context.Context,
	origin domain.Coordinates,
	results map[string]ports.DistanceResult,
) error {
	if c.Client == nil {
		return errors.New("redis distance cache: client is nil")
	}

	if len(results) == 0 {
		return nil
	}

	pipe := c.Client.Pipeline()
	for dest, r := range results {
		val := fmt.Sprintf("%d:%d", r.DistanceMeters, r.DurationSeconds)
		pipe.Set(ctx, cacheKey(origin.Key(), dest), val, c.TTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis distance cache: pipeline exec: %w", err)
	}

	return nil
}
