package di

import (
	"log/slog"

	"gorm.io/gorm"

	crawleradapters "yfsymbols/internal/feature/crawler/adapters"
	"yfsymbols/internal/feature/crawler/adapters/yahoo"
	crawlerusecase "yfsymbols/internal/feature/crawler/usecase"
	infrahttp "yfsymbols/internal/platform/http"
	"yfsymbols/internal/shared/ratelimiter"
)

// NewUpdateUsecase builds the full crawl-and-reconcile stack: rate-limited
// provider client, bounded-concurrency crawler and the transactional store.
func NewUpdateUsecase(gdb *gorm.DB, logger *slog.Logger) *crawlerusecase.UpdateUsecase {
	cfg := yahoo.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	limiter := ratelimiter.NewMinInterval(cfg.MinInterval)
	source := yahoo.NewClient(cfg, httpClient, limiter, logger)

	crawler := crawlerusecase.NewCrawlUsecase(source, cfg.Concurrency, logger)
	store := crawleradapters.NewSymbolStore(gdb)
	return crawlerusecase.NewUpdateUsecase(crawler, store, logger)
}
