// internal/catalog/cache_test.go
package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oogway7h/ShopIA-web/internal/common/database"
	"github.com/oogway7h/ShopIA-web/internal/common/logger"
	"github.com/oogway7h/ShopIA-web/internal/models"
)

func newTestCache(t *testing.T) (*CategoryCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cache := NewCategoryCache(&database.RedisClient{Client: client}, 10*time.Minute, logger.NewTestLogger(t))
	return cache, mr
}

func TestCategoryCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	_, ok := cache.Get(ctx)
	assert.False(t, ok, "empty cache must miss")

	categorias := []models.Categoria{
		{ID: 1, Nombre: "Teclados"},
		{ID: 3, Nombre: "Electronica"},
	}
	cache.Set(ctx, categorias)

	got, ok := cache.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, categorias, got)
}

func TestCategoryCacheInvalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, []models.Categoria{{ID: 1, Nombre: "Teclados"}})
	cache.Invalidate(ctx)

	_, ok := cache.Get(ctx)
	assert.False(t, ok)
}

func TestCategoryCacheExpiry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, []models.Categoria{{ID: 1, Nombre: "Teclados"}})
	mr.FastForward(11 * time.Minute)

	_, ok := cache.Get(ctx)
	assert.False(t, ok)
}

func TestCategoryCacheCorruptEntry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(categoryCacheKey, "not json"))
	_, ok := cache.Get(ctx)
	assert.False(t, ok)
	assert.False(t, mr.Exists(categoryCacheKey), "corrupt entry must be dropped")
}
