// Package handler provides the HTTP handlers for the catalog feature.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"yfsymbols/internal/domain/entity"
	"yfsymbols/internal/domain/taxonomy"
	"yfsymbols/internal/feature/catalog/transport/http/dto"
)

// CatalogUsecase is the slice of the catalog logic the handlers need.
// Following Go convention: interfaces are defined by the consumer (handler),
// not the provider (usecase).
type CatalogUsecase interface {
	ListSymbols(ctx context.Context, class taxonomy.AssetClass, category taxonomy.Category, exchange taxonomy.Exchange) ([]entity.Symbol, error)
	SearchSymbols(ctx context.Context, keyword string, class taxonomy.AssetClass) ([]entity.Symbol, error)
}

// SymbolHandler handles HTTP requests for symbol lookup and search.
type SymbolHandler struct {
	uc CatalogUsecase
}

// NewSymbolHandler creates a new SymbolHandler.
func NewSymbolHandler(uc CatalogUsecase) *SymbolHandler {
	return &SymbolHandler{uc: uc}
}

// List returns the stored symbols filtered by the asset_class, category and
// exchange query parameters. Missing parameters default to the wildcard.
func (h *SymbolHandler) List(c *gin.Context) {
	class := taxonomy.AssetClass(c.DefaultQuery("asset_class", string(taxonomy.AllAssetClasses)))
	category := taxonomy.Category(c.DefaultQuery("category", string(taxonomy.AllCategories)))
	exchange := taxonomy.Exchange(c.DefaultQuery("exchange", string(taxonomy.AllExchanges)))

	symbols, err := h.uc.ListSymbols(c.Request.Context(), class, category, exchange)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toItems(symbols))
}

// Search returns symbols whose ticker or name contains the q parameter,
// optionally restricted to one asset class.
func (h *SymbolHandler) Search(c *gin.Context) {
	keyword := c.Query("q")
	if keyword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}
	class := taxonomy.AssetClass(c.DefaultQuery("asset_class", string(taxonomy.AllAssetClasses)))

	symbols, err := h.uc.SearchSymbols(c.Request.Context(), keyword, class)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toItems(symbols))
}

func toItems(symbols []entity.Symbol) []dto.SymbolItem {
	out := make([]dto.SymbolItem, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, dto.SymbolItem{
			Ticker:     s.Ticker,
			Name:       s.Name,
			AssetClass: string(s.AssetClass),
			Category:   string(s.Category),
			Exchange:   string(s.Exchange),
		})
	}
	return out
}
