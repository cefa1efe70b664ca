// Package yfsymbols maintains a local catalog of Yahoo Finance symbols. It
// crawls the provider's lookup endpoint across every asset class, category
// and exchange combination, reconciles the result into an embedded SQLite
// store and serves lookup, search and listing queries from it.
//
// The zero-setup path is the package-level functions, which lazily open the
// store at SYMBOLS_DB_PATH (default "symbols.db"), optionally seeding it from
// a prebuilt database at SYMBOLS_DB_URL:
//
//	symbols, err := yfsymbols.GetSymbols(ctx, "ETF", "Bond", "NYSE")
//
// Pass "All" (or "") on any axis to match everything. A fresh store is
// empty until UpdateDatabase has run.
package yfsymbols

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"gorm.io/gorm"

	"yfsymbols/internal/app/di"
	"yfsymbols/internal/domain/entity"
	"yfsymbols/internal/domain/taxonomy"
	catalogdomain "yfsymbols/internal/feature/catalog/domain"
	catalogusecase "yfsymbols/internal/feature/catalog/usecase"
	crawlerusecase "yfsymbols/internal/feature/crawler/usecase"
	"yfsymbols/internal/platform/db"
	infrahttp "yfsymbols/internal/platform/http"
)

// ErrSymbolNotFound is returned by GetSymbol for tickers not in the store.
var ErrSymbolNotFound = catalogdomain.ErrSymbolNotFound

// Symbol is one catalog entry.
type Symbol struct {
	Ticker     string
	Name       string
	AssetClass string
	Category   string
	Exchange   string
	TypeCode   string
	UpdatedAt  time.Time
}

// UpdateOptions configures an UpdateDatabase run. Zero values crawl the full
// taxonomy without pruning.
type UpdateOptions struct {
	// Prune deletes stored symbols the crawl did not observe. Off by
	// default: a partially failed crawl must not shrink the catalog.
	Prune bool

	// Filter axes; "" or "All" means everything.
	AssetClass string
	Category   string
	Exchange   string
}

// UpdateReport summarizes a completed UpdateDatabase run.
type UpdateReport struct {
	Duration time.Duration

	// Attempted and FailedCombinations describe crawl coverage; a non-empty
	// FailedCombinations means the run degraded to partial results.
	Attempted          int
	FailedCombinations []string

	Observed int
	Added    int
	Updated  int
	Pruned   int
}

// Catalog is an opened symbol store. All methods are safe for concurrent
// use.
type Catalog struct {
	gdb     *gorm.DB
	queries *catalogusecase.CatalogUsecase
	updater *crawlerusecase.UpdateUsecase
}

// Open opens (creating and migrating if needed) the symbol store at path.
// When bootstrapURL is non-empty and no store exists yet, a prebuilt
// database is downloaded first; a failed download is logged and the store
// starts empty.
func Open(ctx context.Context, path, bootstrapURL string) (*Catalog, error) {
	if bootstrapURL != "" {
		client := infrahttp.NewHTTPClient(5 * time.Minute)
		if _, err := db.Bootstrap(ctx, client, bootstrapURL, path); err != nil {
			slog.Warn("database bootstrap failed, starting empty", "url", bootstrapURL, "error", err)
		}
	}

	gdb, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	return &Catalog{
		gdb:     gdb,
		queries: di.NewCatalogUsecase(gdb, nil, 0),
		updater: di.NewUpdateUsecase(gdb, slog.Default()),
	}, nil
}

// GetSymbols returns the stored symbols matching the filter exactly on every
// non-wildcard axis, ordered by ticker then exchange.
func (c *Catalog) GetSymbols(ctx context.Context, assetClass, category, exchange string) ([]Symbol, error) {
	symbols, err := c.queries.ListSymbols(ctx, toClass(assetClass), toCategory(category), toExchange(exchange))
	if err != nil {
		return nil, err
	}
	return toPublic(symbols), nil
}

// GetSymbol returns the stored record for one ticker. When the same ticker
// is listed on several exchanges the lexicographically first exchange wins.
// Returns an error wrapping a not-found condition for unknown tickers.
func (c *Catalog) GetSymbol(ctx context.Context, ticker string) (Symbol, error) {
	s, err := c.queries.GetSymbol(ctx, ticker)
	if err != nil {
		return Symbol{}, err
	}
	return publicSymbol(s), nil
}

// SearchSymbols returns symbols whose ticker or name contains the keyword,
// case-insensitively, optionally restricted to one asset class ("" or "All"
// for all).
func (c *Catalog) SearchSymbols(ctx context.Context, keyword, assetClass string) ([]Symbol, error) {
	symbols, err := c.queries.SearchSymbols(ctx, keyword, toClass(assetClass))
	if err != nil {
		return nil, err
	}
	return toPublic(symbols), nil
}

// SymbolCount returns the number of stored symbols.
func (c *Catalog) SymbolCount(ctx context.Context) (int64, error) {
	return c.queries.CountSymbols(ctx)
}

// DistinctAssetClasses returns the asset class values present in the store.
func (c *Catalog) DistinctAssetClasses(ctx context.Context) ([]string, error) {
	return c.queries.DistinctAssetClasses(ctx)
}

// DistinctCategories returns the category values present in the store.
func (c *Catalog) DistinctCategories(ctx context.Context) ([]string, error) {
	return c.queries.DistinctCategories(ctx)
}

// DistinctExchanges returns the exchange values present in the store.
func (c *Catalog) DistinctExchanges(ctx context.Context) ([]string, error) {
	return c.queries.DistinctExchanges(ctx)
}

// UpdateDatabase crawls the provider and reconciles the result into the
// store in one atomic transaction. It succeeds with a partial catalog when
// some combinations fail (reported in FailedCombinations) and returns an
// error only when the whole crawl or the store transaction failed, in which
// case the store is left untouched by the crawl.
func (c *Catalog) UpdateDatabase(ctx context.Context, opts UpdateOptions) (*UpdateReport, error) {
	report, err := c.updater.Run(ctx, crawlerusecase.UpdateOptions{
		Prune:      opts.Prune,
		AssetClass: toClass(opts.AssetClass),
		Category:   toCategory(opts.Category),
		Exchange:   toExchange(opts.Exchange),
	})
	if report == nil {
		return nil, err
	}

	out := &UpdateReport{
		Duration:  report.Duration,
		Attempted: report.Attempted,
		Observed:  report.Observed,
		Added:     report.Stats.Added,
		Updated:   report.Stats.Updated,
		Pruned:    report.Stats.Pruned,
	}
	for _, comb := range report.Failed {
		out.FailedCombinations = append(out.FailedCombinations, comb.String())
	}
	return out, err
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// defaultInstance lazily opens the catalog configured by SYMBOLS_DB_PATH and
// SYMBOLS_DB_URL. The open error is sticky across calls.
func defaultInstance(ctx context.Context) (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Open(ctx, db.Path(), os.Getenv("SYMBOLS_DB_URL"))
	})
	return defaultCatalog, defaultErr
}

// GetSymbols calls Catalog.GetSymbols on the default store.
func GetSymbols(ctx context.Context, assetClass, category, exchange string) ([]Symbol, error) {
	c, err := defaultInstance(ctx)
	if err != nil {
		return nil, err
	}
	return c.GetSymbols(ctx, assetClass, category, exchange)
}

// GetSymbol calls Catalog.GetSymbol on the default store.
func GetSymbol(ctx context.Context, ticker string) (Symbol, error) {
	c, err := defaultInstance(ctx)
	if err != nil {
		return Symbol{}, err
	}
	return c.GetSymbol(ctx, ticker)
}

// SearchSymbols calls Catalog.SearchSymbols on the default store.
func SearchSymbols(ctx context.Context, keyword, assetClass string) ([]Symbol, error) {
	c, err := defaultInstance(ctx)
	if err != nil {
		return nil, err
	}
	return c.SearchSymbols(ctx, keyword, assetClass)
}

// SymbolCount calls Catalog.SymbolCount on the default store.
func SymbolCount(ctx context.Context) (int64, error) {
	c, err := defaultInstance(ctx)
	if err != nil {
		return 0, err
	}
	return c.SymbolCount(ctx)
}

// UpdateDatabase calls Catalog.UpdateDatabase on the default store.
func UpdateDatabase(ctx context.Context, opts UpdateOptions) (*UpdateReport, error) {
	c, err := defaultInstance(ctx)
	if err != nil {
		return nil, err
	}
	return c.UpdateDatabase(ctx, opts)
}

func toClass(s string) taxonomy.AssetClass {
	if s == "" {
		return taxonomy.AllAssetClasses
	}
	return taxonomy.AssetClass(s)
}

func toCategory(s string) taxonomy.Category {
	if s == "" {
		return taxonomy.AllCategories
	}
	return taxonomy.Category(s)
}

func toExchange(s string) taxonomy.Exchange {
	if s == "" {
		return taxonomy.AllExchanges
	}
	return taxonomy.Exchange(s)
}

func toPublic(symbols []entity.Symbol) []Symbol {
	out := make([]Symbol, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, publicSymbol(s))
	}
	return out
}

func publicSymbol(s entity.Symbol) Symbol {
	return Symbol{
		Ticker:     s.Ticker,
		Name:       s.Name,
		AssetClass: string(s.AssetClass),
		Category:   string(s.Category),
		Exchange:   string(s.Exchange),
		TypeCode:   s.TypeCode,
		UpdatedAt:  s.UpdatedAt,
	}
}
