package storage

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"mfood/pos-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) MenuKey(restaurantID uuid.UUID) string {
	return "menu:" + restaurantID.String()
}

// GetMenu reports a miss as (nil, nil).
func (c *RedisCache) GetMenu(ctx context.Context, restaurantID uuid.UUID) (*domain.MenuCatalog, error) {
	raw, err := c.Client.Get(ctx, c.MenuKey(restaurantID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var catalog domain.MenuCatalog
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

func (c *RedisCache) SetMenu(ctx context.Context, catalog *domain.MenuCatalog) error {
	payload, err := json.Marshal(catalog)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, c.MenuKey(catalog.RestaurantID), payload, c.TTL).Err()
}

func (c *RedisCache) InvalidateMenu(ctx context.Context, restaurantID uuid.UUID) error {
	return c.Client.Del(ctx, c.MenuKey(restaurantID)).Err()
}

// StatsKey is shared with agg-svc, which writes the counters.
func StatsKey(date string, restaurantID uuid.UUID) string {
	return "stats:daily:" + date + ":" + restaurantID.String()
}

func (c *RedisCache) DailyStats(ctx context.Context, restaurantID uuid.UUID, date string) (*domain.DailyStats, error) {
	fields, err := c.Client.HGetAll(ctx, StatsKey(date, restaurantID)).Result()
	if err != nil {
		return nil, err
	}

	stats := &domain.DailyStats{
		RestaurantID: restaurantID,
		Date:         date,
		Counters:     make(map[string]int64, len(fields)),
	}
	for k, v := range fields {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		stats.Counters[k] = n
	}
	return stats, nil
}
