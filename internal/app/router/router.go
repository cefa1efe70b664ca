package router

import (
	"github.com/gin-gonic/gin"

	cataloghandler "yfsymbols/internal/feature/catalog/transport/handler"
	platformhandler "yfsymbols/internal/platform/http/handler"
)

// NewRouter wires the read API routes. The catalog is public data, so no
// routes require authentication.
func NewRouter(symbols *cataloghandler.SymbolHandler) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", platformhandler.Health)
	r.HEAD("/healthz", platformhandler.Health)
	r.GET("/symbols", symbols.List)
	r.GET("/symbols/search", symbols.Search)

	return r
}
