// Package adapters provides the repository implementations for the catalog
// feature.
package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"yfsymbols/internal/domain/entity"
	"yfsymbols/internal/domain/taxonomy"
	"yfsymbols/internal/feature/catalog/domain"
	"yfsymbols/internal/feature/catalog/usecase"
)

// symbolGorm is the gorm implementation of the SymbolRepository interface.
// It works unchanged against the embedded SQLite file and the optional
// Postgres backend.
type symbolGorm struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*symbolGorm)(nil)

// NewSymbolRepository creates a read-only symbol repository on the given DB
// connection.
func NewSymbolRepository(db *gorm.DB) *symbolGorm {
	return &symbolGorm{db: db}
}

// List returns symbols matching every non-wildcard axis exactly, ordered by
// ticker for stable output.
func (r *symbolGorm) List(ctx context.Context, class taxonomy.AssetClass, category taxonomy.Category, exchange taxonomy.Exchange) ([]entity.Symbol, error) {
	q := r.db.WithContext(ctx).Model(&entity.Symbol{})
	if !class.IsAll() {
		q = q.Where("asset_class = ?", string(class))
	}
	if !category.IsAll() {
		q = q.Where("category = ?", string(category))
	}
	if !exchange.IsAll() {
		q = q.Where("exchange = ?", string(exchange))
	}

	symbols := []entity.Symbol{}
	if err := q.Order("ticker ASC, exchange ASC").Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// Search matches the keyword as a case-insensitive substring of ticker or
// display name, optionally restricted to one asset class.
func (r *symbolGorm) Search(ctx context.Context, keyword string, class taxonomy.AssetClass) ([]entity.Symbol, error) {
	pattern := "%" + strings.ToLower(keyword) + "%"

	q := r.db.WithContext(ctx).Model(&entity.Symbol{}).
		Where("LOWER(ticker) LIKE ? OR LOWER(name) LIKE ?", pattern, pattern)
	if !class.IsAll() {
		q = q.Where("asset_class = ?", string(class))
	}

	symbols := []entity.Symbol{}
	if err := q.Order("ticker ASC, exchange ASC").Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// Get returns the first stored record for the ticker, across exchanges.
func (r *symbolGorm) Get(ctx context.Context, ticker string) (entity.Symbol, error) {
	var s entity.Symbol
	err := r.db.WithContext(ctx).
		Where("ticker = ?", ticker).
		Order("exchange ASC").
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.Symbol{}, domain.ErrSymbolNotFound
	}
	if err != nil {
		return entity.Symbol{}, err
	}
	return s, nil
}

// Count returns the number of stored symbols.
func (r *symbolGorm) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&entity.Symbol{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// DistinctAssetClasses returns the asset class values present in the store.
func (r *symbolGorm) DistinctAssetClasses(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "asset_class")
}

// DistinctCategories returns the category values present in the store.
func (r *symbolGorm) DistinctCategories(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "category")
}

// DistinctExchanges returns the exchange values present in the store.
func (r *symbolGorm) DistinctExchanges(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "exchange")
}

func (r *symbolGorm) distinct(ctx context.Context, column string) ([]string, error) {
	values := []string{}
	if err := r.db.WithContext(ctx).Model(&entity.Symbol{}).
		Distinct(column).
		Order(column + " ASC").
		Pluck(column, &values).Error; err != nil {
		return nil, err
	}
	return values, nil
}
