// Package entity defines the canonical domain models shared across features.
package entity

import (
	"time"

	"yfsymbols/internal/domain/taxonomy"
)

// Symbol is the canonical record for one financial instrument exposed by the
// provider. (Ticker, Exchange) is the natural key: two records sharing it are
// the same instrument and must merge rather than duplicate.
type Symbol struct {
	ID         uint                `gorm:"primaryKey"`
	Ticker     string              `gorm:"size:32;not null;uniqueIndex:idx_symbols_ticker_exchange;index"`
	Name       string              `gorm:"size:255;index"`
	AssetClass taxonomy.AssetClass `gorm:"size:32;not null;index"`
	Category   taxonomy.Category   `gorm:"size:64;not null;index"`
	Exchange   taxonomy.Exchange   `gorm:"size:32;not null;uniqueIndex:idx_symbols_ticker_exchange"`
	// TypeCode is the provider-internal type string, kept opaque for forward
	// compatibility with provider quirks.
	TypeCode  string    `gorm:"size:32"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Key is the natural key of a Symbol.
type Key struct {
	Ticker   string
	Exchange taxonomy.Exchange
}

// Key returns the symbol's natural key.
func (s Symbol) Key() Key {
	return Key{Ticker: s.Ticker, Exchange: s.Exchange}
}
