// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"yfsymbols/internal/domain/entity"
	"yfsymbols/internal/domain/taxonomy"
	"yfsymbols/internal/feature/catalog/usecase"
)

// CachingSymbolRepository decorates a SymbolRepository with Redis caching for
// the list and search queries. It implements the decorator pattern,
// transparently adding caching without modifying the underlying repository.
// Entries expire by TTL; the catalog only changes on reconcile, so short TTLs
// keep staleness bounded without explicit invalidation.
type CachingSymbolRepository struct {
	inner     usecase.SymbolRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingSymbolRepository decorates a SymbolRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses
// "symbols".
func NewCachingSymbolRepository(rdb *redis.Client, ttl time.Duration, inner usecase.SymbolRepository, namespace string) *CachingSymbolRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "symbols"
	}
	return &CachingSymbolRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

var _ usecase.SymbolRepository = (*CachingSymbolRepository)(nil)

// List retrieves symbols for a filter, checking cache first then falling
// back to the database.
func (c *CachingSymbolRepository) List(ctx context.Context, class taxonomy.AssetClass, category taxonomy.Category, exchange taxonomy.Exchange) ([]entity.Symbol, error) {
	key := fmt.Sprintf("%s:list:%s:%s:%s",
		c.namespace, safe(string(class)), safe(string(category)), safe(string(exchange)))
	return c.cached(ctx, key, func() ([]entity.Symbol, error) {
		return c.inner.List(ctx, class, category, exchange)
	})
}

// Search retrieves symbols matching a keyword, checking cache first then
// falling back to the database.
func (c *CachingSymbolRepository) Search(ctx context.Context, keyword string, class taxonomy.AssetClass) ([]entity.Symbol, error) {
	key := fmt.Sprintf("%s:search:%s:%s",
		c.namespace, safe(strings.ToLower(keyword)), safe(string(class)))
	return c.cached(ctx, key, func() ([]entity.Symbol, error) {
		return c.inner.Search(ctx, keyword, class)
	})
}

// Get bypasses the cache; single-row lookups are cheap.
func (c *CachingSymbolRepository) Get(ctx context.Context, ticker string) (entity.Symbol, error) {
	return c.inner.Get(ctx, ticker)
}

// Count bypasses the cache.
func (c *CachingSymbolRepository) Count(ctx context.Context) (int64, error) {
	return c.inner.Count(ctx)
}

// DistinctAssetClasses bypasses the cache.
func (c *CachingSymbolRepository) DistinctAssetClasses(ctx context.Context) ([]string, error) {
	return c.inner.DistinctAssetClasses(ctx)
}

// DistinctCategories bypasses the cache.
func (c *CachingSymbolRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	return c.inner.DistinctCategories(ctx)
}

// DistinctExchanges bypasses the cache.
func (c *CachingSymbolRepository) DistinctExchanges(ctx context.Context) ([]string, error) {
	return c.inner.DistinctExchanges(ctx)
}

// cached runs a query through the read-through cache.
func (c *CachingSymbolRepository) cached(ctx context.Context, key string, load func() ([]entity.Symbol, error)) ([]entity.Symbol, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return load()
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Symbol
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := load()
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
