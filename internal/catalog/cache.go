// internal/catalog/cache.go
package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oogway7h/ShopIA-web/internal/common/database"
	"github.com/oogway7h/ShopIA-web/internal/common/logger"
	"github.com/oogway7h/ShopIA-web/internal/models"
)

const categoryCacheKey = "shopia:categorias"

// CategoryCache keeps the category list in Redis so command interpretation
// does not hit PostgreSQL on every request. Cache failures are logged and
// absorbed; the caller falls back to the repository.
type CategoryCache struct {
	redis *database.RedisClient
	ttl   time.Duration
	log   logger.Logger
}

func NewCategoryCache(redisClient *database.RedisClient, ttl time.Duration, log logger.Logger) *CategoryCache {
	return &CategoryCache{redis: redisClient, ttl: ttl, log: log}
}

// Get returns the cached category list, or ok=false on miss or error.
func (c *CategoryCache) Get(ctx context.Context) ([]models.Categoria, bool) {
	raw, err := c.redis.Get(ctx, categoryCacheKey)
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("category cache read failed", map[string]interface{}{"error": err.Error()})
		return nil, false
	}
	var categorias []models.Categoria
	if err := json.Unmarshal([]byte(raw), &categorias); err != nil {
		c.log.Warn("category cache entry corrupt, dropping", map[string]interface{}{"error": err.Error()})
		_ = c.redis.Del(ctx, categoryCacheKey)
		return nil, false
	}
	return categorias, true
}

// Set stores the category list with the configured TTL.
func (c *CategoryCache) Set(ctx context.Context, categorias []models.Categoria) {
	raw, err := json.Marshal(categorias)
	if err != nil {
		c.log.Warn("category cache encode failed", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := c.redis.Set(ctx, categoryCacheKey, raw, c.ttl); err != nil {
		c.log.Warn("category cache write failed", map[string]interface{}{"error": err.Error()})
	}
}

// Invalidate drops the cached list after a category mutation.
func (c *CategoryCache) Invalidate(ctx context.Context) {
	if err := c.redis.Del(ctx, categoryCacheKey); err != nil {
		c.log.Warn("category cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}
