// Package usecase implements the read-only query logic over the persisted
// symbol catalog. It never blocks on crawl activity beyond the atomicity of
// a single store transaction.
package usecase

import (
	"context"
	"strings"

	"yfsymbols/internal/domain/entity"
	"yfsymbols/internal/domain/taxonomy"
)

// SymbolRepository abstracts the persistence layer for catalog reads.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type SymbolRepository interface {
	List(ctx context.Context, class taxonomy.AssetClass, category taxonomy.Category, exchange taxonomy.Exchange) ([]entity.Symbol, error)
	Search(ctx context.Context, keyword string, class taxonomy.AssetClass) ([]entity.Symbol, error)
	Get(ctx context.Context, ticker string) (entity.Symbol, error)
	Count(ctx context.Context) (int64, error)
	DistinctAssetClasses(ctx context.Context) ([]string, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	DistinctExchanges(ctx context.Context) ([]string, error)
}

// CatalogUsecase provides the lookup and search operations.
type CatalogUsecase struct {
	repo SymbolRepository
}

// NewCatalogUsecase creates a CatalogUsecase with the given repository.
func NewCatalogUsecase(r SymbolRepository) *CatalogUsecase {
	return &CatalogUsecase{repo: r}
}

// ListSymbols returns the stored symbols matching the filter exactly on
// every non-wildcard axis. An empty result is an empty slice, not an error.
func (u *CatalogUsecase) ListSymbols(ctx context.Context, class taxonomy.AssetClass, category taxonomy.Category, exchange taxonomy.Exchange) ([]entity.Symbol, error) {
	return u.repo.List(ctx, class, category, exchange)
}

// SearchSymbols returns symbols whose ticker or display name contains the
// keyword case-insensitively, restricted to the given asset class
// (wildcard = all classes).
func (u *CatalogUsecase) SearchSymbols(ctx context.Context, keyword string, class taxonomy.AssetClass) ([]entity.Symbol, error) {
	return u.repo.Search(ctx, strings.TrimSpace(keyword), class)
}

// GetSymbol returns the stored record for one ticker.
func (u *CatalogUsecase) GetSymbol(ctx context.Context, ticker string) (entity.Symbol, error) {
	return u.repo.Get(ctx, strings.TrimSpace(ticker))
}

// CountSymbols returns the number of stored symbols.
func (u *CatalogUsecase) CountSymbols(ctx context.Context) (int64, error) {
	return u.repo.Count(ctx)
}

// DistinctAssetClasses returns the asset class values present in the store.
func (u *CatalogUsecase) DistinctAssetClasses(ctx context.Context) ([]string, error) {
	return u.repo.DistinctAssetClasses(ctx)
}

// DistinctCategories returns the category values present in the store.
func (u *CatalogUsecase) DistinctCategories(ctx context.Context) ([]string, error) {
	return u.repo.DistinctCategories(ctx)
}

// DistinctExchanges returns the exchange values present in the store.
func (u *CatalogUsecase) DistinctExchanges(ctx context.Context) ([]string, error) {
	return u.repo.DistinctExchanges(ctx)
}
