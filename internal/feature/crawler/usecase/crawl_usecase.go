// Package usecase implements the crawl-and-reconcile business logic: it
// expands the taxonomy into concrete combinations, fetches them through the
// provider client, deduplicates the stream, and applies the result to the
// symbol store.
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"yfsymbols/internal/domain/entity"
	"yfsymbols/internal/domain/taxonomy"
	"yfsymbols/internal/feature/crawler/domain"
)

const defaultConcurrency = 4

// FetchResult is the outcome of fetching every page of one combination.
type FetchResult struct {
	Symbols []entity.Symbol
	Pages   int
	Skipped int // malformed entries dropped during parsing
}

// SymbolSource abstracts the provider client. A fresh call re-issues all
// requests for the combination; there is no resumption of a partial fetch.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type SymbolSource interface {
	FetchCombination(ctx context.Context, comb taxonomy.Combination) (FetchResult, error)
}

// CrawlResult aggregates one crawl session: the deduplicated candidate set,
// the combinations that failed, and session counters for diagnostics.
type CrawlResult struct {
	Symbols   []entity.Symbol
	Failed    []taxonomy.Combination
	Attempted int
	Succeeded int
	Pages     int
	Observed  int // symbols seen before deduplication
	Skipped   int
}

// CrawlUsecase runs fetches across taxonomy combinations with bounded
// concurrency and merges the results.
type CrawlUsecase struct {
	source      SymbolSource
	concurrency int
	logger      *slog.Logger
}

// NewCrawlUsecase creates a CrawlUsecase. A non-positive concurrency falls
// back to the default.
func NewCrawlUsecase(source SymbolSource, concurrency int, logger *slog.Logger) *CrawlUsecase {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CrawlUsecase{source: source, concurrency: concurrency, logger: logger}
}

// Crawl expands the filter (wildcards allowed) into concrete combinations
// and fetches them all. Per-combination failures are collected, not fatal;
// the call fails hard only when every attempted combination failed.
// Cancellation stops dispatching new fetches and returns whatever was
// accumulated as a partial result.
func (cu *CrawlUsecase) Crawl(ctx context.Context, class taxonomy.AssetClass, category taxonomy.Category, exchange taxonomy.Exchange) (*CrawlResult, error) {
	combos := taxonomy.Combinations(class, category, exchange)

	result := &CrawlResult{Attempted: len(combos)}
	if len(combos) == 0 {
		return result, nil
	}

	var (
		mu    sync.Mutex
		byKey = make(map[entity.Key]int)
		jobs  = make(chan taxonomy.Combination)
		wg    sync.WaitGroup
	)

	for i := 0; i < cu.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for comb := range jobs {
				fr, err := cu.source.FetchCombination(ctx, comb)

				mu.Lock()
				switch {
				case err == nil:
					result.Succeeded++
					result.Pages += fr.Pages
					result.Skipped += fr.Skipped
					result.Observed += len(fr.Symbols)
					for _, s := range fr.Symbols {
						mergeSymbol(byKey, &result.Symbols, s)
					}
				case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
					// Aborted in flight; not a provider failure.
				default:
					result.Failed = append(result.Failed, comb)
					cu.logger.Error("combination failed", "combination", comb.String(), "error", err)
				}
				mu.Unlock()
			}
		}()
	}

dispatch:
	for _, comb := range combos {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- comb:
		}
	}
	close(jobs)
	wg.Wait()

	if ctx.Err() != nil {
		// Partial-result completion, mirroring the per-combination policy.
		cu.logger.Warn("crawl canceled, returning partial results",
			"symbols", len(result.Symbols), "failed", len(result.Failed))
		return result, nil
	}
	if result.Succeeded == 0 {
		return result, domain.ErrAllCombinationsFailed
	}
	return result, nil
}

// mergeSymbol deduplicates by natural key, first-writer-wins. The only field
// a later record may contribute is a display name the first record lacked.
func mergeSymbol(byKey map[entity.Key]int, symbols *[]entity.Symbol, s entity.Symbol) {
	if i, ok := byKey[s.Key()]; ok {
		if (*symbols)[i].Name == "" && s.Name != "" {
			(*symbols)[i].Name = s.Name
		}
		return
	}
	byKey[s.Key()] = len(*symbols)
	*symbols = append(*symbols, s)
}
