package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"yfsymbols/internal/domain/entity"
	"yfsymbols/internal/domain/taxonomy"
)

// mockSymbolRepository is a mock implementation of the SymbolRepository
// interface.
type mockSymbolRepository struct {
	listFn   func(ctx context.Context, class taxonomy.AssetClass, category taxonomy.Category, exchange taxonomy.Exchange) ([]entity.Symbol, error)
	searchFn func(ctx context.Context, keyword string, class taxonomy.AssetClass) ([]entity.Symbol, error)
	getFn    func(ctx context.Context, ticker string) (entity.Symbol, error)
}

func (m *mockSymbolRepository) List(ctx context.Context, class taxonomy.AssetClass, category taxonomy.Category, exchange taxonomy.Exchange) ([]entity.Symbol, error) {
	if m.listFn != nil {
		return m.listFn(ctx, class, category, exchange)
	}
	return nil, nil
}

func (m *mockSymbolRepository) Search(ctx context.Context, keyword string, class taxonomy.AssetClass) ([]entity.Symbol, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, keyword, class)
	}
	return nil, nil
}

func (m *mockSymbolRepository) Get(ctx context.Context, ticker string) (entity.Symbol, error) {
	if m.getFn != nil {
		return m.getFn(ctx, ticker)
	}
	return entity.Symbol{}, nil
}

func (m *mockSymbolRepository) Count(ctx context.Context) (int64, error) { return 0, nil }

func (m *mockSymbolRepository) DistinctAssetClasses(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (m *mockSymbolRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (m *mockSymbolRepository) DistinctExchanges(ctx context.Context) ([]string, error) {
	return nil, nil
}

func TestNewCachingSymbolRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{
			name:              "default values when zero/empty",
			ttl:               0,
			namespace:         "",
			expectedTTL:       5 * time.Minute,
			expectedNamespace: "symbols",
		},
		{
			name:              "custom values preserved",
			ttl:               10 * time.Minute,
			namespace:         "custom",
			expectedTTL:       10 * time.Minute,
			expectedNamespace: "custom",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingSymbolRepository(nil, tt.ttl, &mockSymbolRepository{}, tt.namespace)

			if repo.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, repo.ttl)
			}
			if repo.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, repo.namespace)
			}
		})
	}
}

func TestCachingSymbolRepository_List_NilRedis(t *testing.T) {
	t.Parallel()

	expected := []entity.Symbol{
		{Ticker: "AGG", Name: "iShares Core U.S. Aggregate Bond ETF", AssetClass: taxonomy.ETF, Category: "Bond", Exchange: taxonomy.NYSE},
	}

	inner := &mockSymbolRepository{
		listFn: func(ctx context.Context, class taxonomy.AssetClass, category taxonomy.Category, exchange taxonomy.Exchange) ([]entity.Symbol, error) {
			return expected, nil
		},
	}

	// Redis is nil - should bypass cache and call inner directly
	repo := NewCachingSymbolRepository(nil, 5*time.Minute, inner, "symbols")

	symbols, err := repo.List(context.Background(), taxonomy.ETF, "Bond", taxonomy.NYSE)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(symbols) != len(expected) {
		t.Errorf("expected %d symbols, got %d", len(expected), len(symbols))
	}
}

func TestCachingSymbolRepository_List_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cached := []entity.Symbol{
		{Ticker: "AGG", AssetClass: taxonomy.ETF, Category: "Bond", Exchange: taxonomy.NYSE},
	}
	cachedJSON, _ := json.Marshal(cached)

	mock.ExpectGet("symbols:list:ETF:Bond:NYSE").SetVal(string(cachedJSON))

	innerCalled := false
	inner := &mockSymbolRepository{
		listFn: func(ctx context.Context, class taxonomy.AssetClass, category taxonomy.Category, exchange taxonomy.Exchange) ([]entity.Symbol, error) {
			innerCalled = true
			return nil, nil
		},
	}

	repo := NewCachingSymbolRepository(rdb, 5*time.Minute, inner, "symbols")
	symbols, err := repo.List(context.Background(), taxonomy.ETF, "Bond", taxonomy.NYSE)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalled {
		t.Error("inner repository should not be called on cache hit")
	}
	if len(symbols) != 1 {
		t.Errorf("expected 1 symbol, got %d", len(symbols))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingSymbolRepository_List_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := []entity.Symbol{
		{Ticker: "AGG", AssetClass: taxonomy.ETF, Category: "Bond", Exchange: taxonomy.NYSE},
	}
	expectedJSON, _ := json.Marshal(expected)

	// Cache miss
	mock.ExpectGet("symbols:list:ETF:Bond:NYSE").RedisNil()
	// Set cache after fetching from inner
	mock.ExpectSet("symbols:list:ETF:Bond:NYSE", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockSymbolRepository{
		listFn: func(ctx context.Context, class taxonomy.AssetClass, category taxonomy.Category, exchange taxonomy.Exchange) ([]entity.Symbol, error) {
			return expected, nil
		},
	}

	repo := NewCachingSymbolRepository(rdb, 5*time.Minute, inner, "symbols")
	symbols, err := repo.List(context.Background(), taxonomy.ETF, "Bond", taxonomy.NYSE)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(symbols) != 1 {
		t.Errorf("expected 1 symbol, got %d", len(symbols))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingSymbolRepository_List_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("database error")

	mock.ExpectGet("symbols:list:ETF:Bond:NYSE").RedisNil()

	inner := &mockSymbolRepository{
		listFn: func(ctx context.Context, class taxonomy.AssetClass, category taxonomy.Category, exchange taxonomy.Exchange) ([]entity.Symbol, error) {
			return nil, expectedErr
		},
	}

	repo := NewCachingSymbolRepository(rdb, 5*time.Minute, inner, "symbols")
	_, err := repo.List(context.Background(), taxonomy.ETF, "Bond", taxonomy.NYSE)

	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
}

func TestCachingSymbolRepository_List_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := []entity.Symbol{
		{Ticker: "AGG", AssetClass: taxonomy.ETF, Category: "Bond", Exchange: taxonomy.NYSE},
	}
	expectedJSON, _ := json.Marshal(expected)

	// Return invalid JSON from cache
	mock.ExpectGet("symbols:list:ETF:Bond:NYSE").SetVal("invalid json")
	// Delete corrupted cache
	mock.ExpectDel("symbols:list:ETF:Bond:NYSE").SetVal(1)
	// Set new cache after fetching from inner
	mock.ExpectSet("symbols:list:ETF:Bond:NYSE", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockSymbolRepository{
		listFn: func(ctx context.Context, class taxonomy.AssetClass, category taxonomy.Category, exchange taxonomy.Exchange) ([]entity.Symbol, error) {
			return expected, nil
		},
	}

	repo := NewCachingSymbolRepository(rdb, 5*time.Minute, inner, "symbols")
	symbols, err := repo.List(context.Background(), taxonomy.ETF, "Bond", taxonomy.NYSE)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(symbols) != 1 {
		t.Errorf("expected 1 symbol, got %d", len(symbols))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingSymbolRepository_Search_KeyNormalization(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expected := []entity.Symbol{
		{Ticker: "VETF", AssetClass: taxonomy.ETF, Category: "Mixed", Exchange: taxonomy.XETRA},
	}
	expectedJSON, _ := json.Marshal(expected)

	// Keyword is lowercased and spaces escaped in the cache key
	mock.ExpectGet("symbols:search:core_etf:ETF").RedisNil()
	mock.ExpectSet("symbols:search:core_etf:ETF", expectedJSON, 5*time.Minute).SetVal("OK")

	inner := &mockSymbolRepository{
		searchFn: func(ctx context.Context, keyword string, class taxonomy.AssetClass) ([]entity.Symbol, error) {
			if keyword != "Core ETF" {
				t.Errorf("expected inner keyword %q, got %q", "Core ETF", keyword)
			}
			return expected, nil
		},
	}

	repo := NewCachingSymbolRepository(rdb, 5*time.Minute, inner, "symbols")
	symbols, err := repo.Search(context.Background(), "Core ETF", taxonomy.ETF)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(symbols) != 1 {
		t.Errorf("expected 1 symbol, got %d", len(symbols))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingSymbolRepository_Get_BypassesCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	innerCalled := false
	inner := &mockSymbolRepository{
		getFn: func(ctx context.Context, ticker string) (entity.Symbol, error) {
			innerCalled = true
			return entity.Symbol{Ticker: ticker}, nil
		},
	}

	repo := NewCachingSymbolRepository(rdb, 5*time.Minute, inner, "symbols")
	sym, err := repo.Get(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !innerCalled {
		t.Error("expected inner repository to be called")
	}
	if sym.Ticker != "AAPL" {
		t.Errorf("expected ticker AAPL, got %q", sym.Ticker)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestSafe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"ETF", "ETF"},
		{"Mutual Fund", "Mutual_Fund"},
		{"key:value", "key_value"},
		{"", ""},
		{"*", "*"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			result := safe(tt.input)
			if result != tt.expected {
				t.Errorf("safe(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}
