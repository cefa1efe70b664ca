package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"yfsymbols/internal/domain/entity"
	"yfsymbols/internal/domain/taxonomy"
)

// ReconcileStats reports what a reconciliation changed in the store.
type ReconcileStats struct {
	Added   int
	Updated int
	Pruned  int
}

// SymbolStore persists the candidate set in a single atomic transaction.
// With prune=false, keys absent from candidates are retained (the crawl may
// be incomplete, so absence is not proof of delisting); with prune=true they
// are deleted.
type SymbolStore interface {
	Reconcile(ctx context.Context, candidates []entity.Symbol, prune bool) (ReconcileStats, error)
}

// Crawler abstracts the crawl orchestrator for the update path.
type Crawler interface {
	Crawl(ctx context.Context, class taxonomy.AssetClass, category taxonomy.Category, exchange taxonomy.Exchange) (*CrawlResult, error)
}

// UpdateOptions configures one database update run.
type UpdateOptions struct {
	// Prune deletes stored symbols absent from the crawl. Off by default:
	// the crawl is best-effort and may miss symbols the provider still lists.
	Prune bool

	// Filter axes; zero values mean the wildcard (crawl everything).
	AssetClass taxonomy.AssetClass
	Category   taxonomy.Category
	Exchange   taxonomy.Exchange
}

// UpdateReport summarizes a completed update for callers and logs.
type UpdateReport struct {
	StartedAt time.Time
	Duration  time.Duration

	Attempted int
	Failed    []taxonomy.Combination
	Pages     int
	Observed  int
	Skipped   int
	Stats     ReconcileStats
}

// UpdateUsecase crawls the provider and reconciles the result into the
// store.
type UpdateUsecase struct {
	crawler Crawler
	store   SymbolStore
	logger  *slog.Logger
}

// NewUpdateUsecase creates an UpdateUsecase.
func NewUpdateUsecase(crawler Crawler, store SymbolStore, logger *slog.Logger) *UpdateUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &UpdateUsecase{crawler: crawler, store: store, logger: logger}
}

// Run crawls the configured slice of the taxonomy and applies the result to
// the store atomically. It returns a report with the failed-combination set:
// empty on a clean run, non-empty on partial degradation. It fails hard only
// when every combination failed (store untouched) or the store transaction
// itself failed.
func (uu *UpdateUsecase) Run(ctx context.Context, opts UpdateOptions) (*UpdateReport, error) {
	if opts.AssetClass == "" {
		opts.AssetClass = taxonomy.AllAssetClasses
	}
	if opts.Category == "" {
		opts.Category = taxonomy.AllCategories
	}
	if opts.Exchange == "" {
		opts.Exchange = taxonomy.AllExchanges
	}

	report := &UpdateReport{StartedAt: time.Now()}

	crawl, err := uu.crawler.Crawl(ctx, opts.AssetClass, opts.Category, opts.Exchange)
	if crawl != nil {
		report.Attempted = crawl.Attempted
		report.Failed = crawl.Failed
		report.Pages = crawl.Pages
		report.Observed = crawl.Observed
		report.Skipped = crawl.Skipped
	}
	if err != nil {
		report.Duration = time.Since(report.StartedAt)
		return report, fmt.Errorf("crawl symbols: %w", err)
	}

	stats, err := uu.store.Reconcile(ctx, crawl.Symbols, opts.Prune)
	if err != nil {
		report.Duration = time.Since(report.StartedAt)
		return report, fmt.Errorf("reconcile symbols: %w", err)
	}
	report.Stats = stats
	report.Duration = time.Since(report.StartedAt)

	uu.logger.Info("update complete",
		"attempted", report.Attempted,
		"failed", len(report.Failed),
		"pages", report.Pages,
		"observed", report.Observed,
		"skipped", report.Skipped,
		"added", stats.Added,
		"updated", stats.Updated,
		"pruned", stats.Pruned,
		"duration", report.Duration,
	)
	return report, nil
}
