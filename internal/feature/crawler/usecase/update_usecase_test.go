package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yfsymbols/internal/domain/entity"
	"yfsymbols/internal/domain/taxonomy"
	"yfsymbols/internal/feature/crawler/domain"
)

// mockCrawler is a mock implementation of the Crawler interface.
type mockCrawler struct {
	CrawlFunc  func(ctx context.Context, class taxonomy.AssetClass, category taxonomy.Category, exchange taxonomy.Exchange) (*CrawlResult, error)
	CrawlCalls int
}

func (m *mockCrawler) Crawl(ctx context.Context, class taxonomy.AssetClass, category taxonomy.Category, exchange taxonomy.Exchange) (*CrawlResult, error) {
	m.CrawlCalls++
	if m.CrawlFunc != nil {
		return m.CrawlFunc(ctx, class, category, exchange)
	}
	return nil, errors.New("CrawlFunc is not implemented")
}

// mockSymbolStore is a mock implementation of the SymbolStore interface.
type mockSymbolStore struct {
	ReconcileFunc  func(ctx context.Context, candidates []entity.Symbol, prune bool) (ReconcileStats, error)
	ReconcileCalls int
}

func (m *mockSymbolStore) Reconcile(ctx context.Context, candidates []entity.Symbol, prune bool) (ReconcileStats, error) {
	m.ReconcileCalls++
	if m.ReconcileFunc != nil {
		return m.ReconcileFunc(ctx, candidates, prune)
	}
	return ReconcileStats{}, nil
}

func TestUpdateUsecase_Run_CleanRun(t *testing.T) {
	t.Parallel()

	symbols := []entity.Symbol{
		{Ticker: "AAPL", AssetClass: taxonomy.Equity, Category: "Technology", Exchange: taxonomy.NASDAQ},
	}
	crawler := &mockCrawler{
		CrawlFunc: func(ctx context.Context, class taxonomy.AssetClass, category taxonomy.Category, exchange taxonomy.Exchange) (*CrawlResult, error) {
			// Zero-value options default to the wildcards.
			assert.Equal(t, taxonomy.AllAssetClasses, class)
			assert.Equal(t, taxonomy.AllCategories, category)
			assert.Equal(t, taxonomy.AllExchanges, exchange)
			return &CrawlResult{Symbols: symbols, Attempted: 10, Succeeded: 10, Observed: 1}, nil
		},
	}
	var gotPrune bool
	store := &mockSymbolStore{
		ReconcileFunc: func(ctx context.Context, candidates []entity.Symbol, prune bool) (ReconcileStats, error) {
			gotPrune = prune
			assert.Equal(t, symbols, candidates)
			return ReconcileStats{Added: 1}, nil
		},
	}

	uu := NewUpdateUsecase(crawler, store, nil)
	report, err := uu.Run(context.Background(), UpdateOptions{})

	require.NoError(t, err)
	assert.False(t, gotPrune, "default mode is soft-union, not prune")
	assert.Empty(t, report.Failed)
	assert.Equal(t, 1, report.Stats.Added)
	assert.Equal(t, 1, store.ReconcileCalls)
}

func TestUpdateUsecase_Run_PartialDegradation(t *testing.T) {
	t.Parallel()

	failed := taxonomy.Combination{AssetClass: taxonomy.Equity, Category: "Technology", Exchange: taxonomy.NASDAQ}
	crawler := &mockCrawler{
		CrawlFunc: func(ctx context.Context, class taxonomy.AssetClass, category taxonomy.Category, exchange taxonomy.Exchange) (*CrawlResult, error) {
			return &CrawlResult{
				Symbols:   []entity.Symbol{{Ticker: "MSFT", Exchange: taxonomy.NASDAQ}},
				Failed:    []taxonomy.Combination{failed},
				Attempted: 10,
				Succeeded: 9,
			}, nil
		},
	}
	store := &mockSymbolStore{}

	uu := NewUpdateUsecase(crawler, store, nil)
	report, err := uu.Run(context.Background(), UpdateOptions{})

	require.NoError(t, err, "partial degradation is a success with diagnostics")
	require.Len(t, report.Failed, 1)
	assert.Equal(t, failed, report.Failed[0])
	assert.Equal(t, 1, store.ReconcileCalls, "partial results are still persisted")
}

func TestUpdateUsecase_Run_AllCombinationsFailed(t *testing.T) {
	t.Parallel()

	crawler := &mockCrawler{
		CrawlFunc: func(ctx context.Context, class taxonomy.AssetClass, category taxonomy.Category, exchange taxonomy.Exchange) (*CrawlResult, error) {
			res := &CrawlResult{Attempted: 5, Failed: taxonomy.Combinations(taxonomy.Currency, "Major", taxonomy.AllExchanges)}
			return res, domain.ErrAllCombinationsFailed
		},
	}
	store := &mockSymbolStore{}

	uu := NewUpdateUsecase(crawler, store, nil)
	report, err := uu.Run(context.Background(), UpdateOptions{})

	assert.ErrorIs(t, err, domain.ErrAllCombinationsFailed)
	assert.NotEmpty(t, report.Failed, "failed set is surfaced for diagnostics")
	assert.Equal(t, 0, store.ReconcileCalls, "store must be left unmodified")
}

func TestUpdateUsecase_Run_StoreFailureAborts(t *testing.T) {
	t.Parallel()

	crawler := &mockCrawler{
		CrawlFunc: func(ctx context.Context, class taxonomy.AssetClass, category taxonomy.Category, exchange taxonomy.Exchange) (*CrawlResult, error) {
			return &CrawlResult{Symbols: []entity.Symbol{{Ticker: "AAPL"}}, Succeeded: 1}, nil
		},
	}
	store := &mockSymbolStore{
		ReconcileFunc: func(ctx context.Context, candidates []entity.Symbol, prune bool) (ReconcileStats, error) {
			return ReconcileStats{}, domain.ErrStoreUnavailable
		},
	}

	uu := NewUpdateUsecase(crawler, store, nil)
	_, err := uu.Run(context.Background(), UpdateOptions{})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestUpdateUsecase_Run_PruneOptionForwarded(t *testing.T) {
	t.Parallel()

	crawler := &mockCrawler{
		CrawlFunc: func(ctx context.Context, class taxonomy.AssetClass, category taxonomy.Category, exchange taxonomy.Exchange) (*CrawlResult, error) {
			return &CrawlResult{Succeeded: 1}, nil
		},
	}
	var gotPrune bool
	store := &mockSymbolStore{
		ReconcileFunc: func(ctx context.Context, candidates []entity.Symbol, prune bool) (ReconcileStats, error) {
			gotPrune = prune
			return ReconcileStats{}, nil
		},
	}

	uu := NewUpdateUsecase(crawler, store, nil)
	_, err := uu.Run(context.Background(), UpdateOptions{Prune: true})
	require.NoError(t, err)
	assert.True(t, gotPrune)
}
