// Package domain defines domain-level errors for the catalog feature.
package domain

import "errors"

var (
	// ErrSymbolNotFound indicates that no symbol matched the given ticker.
	ErrSymbolNotFound = errors.New("symbol not found")
)
