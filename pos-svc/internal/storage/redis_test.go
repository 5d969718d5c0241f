package storage_test

import (
	"context"
	"testing"
	"time"

	"mfood/pos-svc/internal/domain"
	"mfood/pos-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (*storage.RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return storage.NewRedisCache(client, 10*time.Minute), mr
}

func TestMenuCacheRoundTrip(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := context.Background()
	restID := uuid.New()

	got, err := cache.GetMenu(ctx, restID)
	require.NoError(t, err)
	assert.Nil(t, got)

	catalog := &domain.MenuCatalog{
		RestaurantID:   restID,
		RestaurantName: "Seoul Kitchen",
		Items:          []domain.MenuItem{{ID: uuid.New(), Name: "Bibimbap", Price: 9000}},
	}
	require.NoError(t, cache.SetMenu(ctx, catalog))
	assert.Equal(t, 10*time.Minute, mr.TTL(cache.MenuKey(restID)))

	got, err = cache.GetMenu(ctx, restID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Bibimbap", got.Items[0].Name)
	assert.Equal(t, int64(9000), got.Items[0].Price)

	require.NoError(t, cache.InvalidateMenu(ctx, restID))
	assert.False(t, mr.Exists(cache.MenuKey(restID)))
}

func TestMenuCacheCorruptEntry(t *testing.T) {
	cache, mr := setupCache(t)
	restID := uuid.New()
	require.NoError(t, mr.Set(cache.MenuKey(restID), "{not json"))

	_, err := cache.GetMenu(context.Background(), restID)

	assert.Error(t, err)
}

func TestDailyStats(t *testing.T) {
	cache, mr := setupCache(t)
	restID := uuid.New()
	key := storage.StatsKey("2025-03-01", restID)
	mr.HSet(key, "orders_opened", "4", "items_added", "11", "junk", "x")

	stats, err := cache.DailyStats(context.Background(), restID, "2025-03-01")

	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", stats.Date)
	assert.Equal(t, map[string]int64{"orders_opened": 4, "items_added": 11}, stats.Counters)

	empty, err := cache.DailyStats(context.Background(), restID, "2025-03-02")
	require.NoError(t, err)
	assert.Empty(t, empty.Counters)
}
