package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const DefaultRetention = 30 * 24 * time.Hour

type Store struct {
	rdb       *redis.Client
	retention time.Duration
}

func NewStore(rdb *redis.Client, retention time.Duration) *Store {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Store{rdb: rdb, retention: retention}
}

// StatsKey matches the key pos-svc reads daily stats from.
func StatsKey(date string, restaurantID uuid.UUID) string {
	return "stats:daily:" + date + ":" + restaurantID.String()
}

// IncrementDaily adds the counters to the restaurant's hash for date and refreshes its expiry.
func (s *Store) IncrementDaily(ctx context.Context, restaurantID uuid.UUID, date string, counters map[string]int64) error {
	key := StatsKey(date, restaurantID)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for field, delta := range counters {
			pipe.HIncrBy(ctx, key, field, delta)
		}
		pipe.Expire(ctx, key, s.retention)
		return nil
	})
	return err
}
