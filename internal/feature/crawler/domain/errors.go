// Package domain defines domain-level errors for the crawler feature.
package domain

import "errors"

// Crawl and reconcile errors. Retryability is decided where the error is
// produced; these sentinels let upper layers classify what happened.
var (
	// ErrMalformedResponse indicates a page payload that could not be decoded
	// as the expected shape at all. Individual bad entries within a valid
	// page are skipped and counted instead.
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrInvalidCombination indicates the provider explicitly rejected the
	// queried taxonomy combination. Not retryable.
	ErrInvalidCombination = errors.New("provider rejected taxonomy combination")

	// ErrAllCombinationsFailed indicates that no taxonomy combination
	// completed successfully, so the crawl produced no usable data.
	ErrAllCombinationsFailed = errors.New("all taxonomy combinations failed")

	// ErrStoreUnavailable indicates the symbol store could not be read or
	// written (file missing, locked, or corrupt).
	ErrStoreUnavailable = errors.New("symbol store unavailable")
)
