// Package dto defines data transfer objects for the catalog HTTP API.
package dto

// SymbolItem represents a symbol in the API response.
type SymbolItem struct {
	Ticker     string `json:"ticker"`
	Name       string `json:"name"`
	AssetClass string `json:"asset_class"`
	Category   string `json:"category"`
	Exchange   string `json:"exchange"`
}
