// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	catalogadapters "yfsymbols/internal/feature/catalog/adapters"
	cataloghandler "yfsymbols/internal/feature/catalog/transport/handler"
	catalogusecase "yfsymbols/internal/feature/catalog/usecase"
	"yfsymbols/internal/platform/cache"
)

// NewCatalogUsecase builds the catalog query stack on top of the given
// database. When rdb is non-nil the list and search queries are served
// through a Redis read-through cache.
func NewCatalogUsecase(gdb *gorm.DB, rdb *redis.Client, cacheTTL time.Duration) *catalogusecase.CatalogUsecase {
	repo := catalogadapters.NewSymbolRepository(gdb)
	cached := cache.NewCachingSymbolRepository(rdb, cacheTTL, repo, "symbols")
	return catalogusecase.NewCatalogUsecase(cached)
}

// NewSymbolHandler builds the HTTP handler for symbol lookup and search.
func NewSymbolHandler(uc *catalogusecase.CatalogUsecase) *cataloghandler.SymbolHandler {
	return cataloghandler.NewSymbolHandler(uc)
}
