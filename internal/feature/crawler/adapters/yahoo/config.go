// Package yahoo provides the provider client for the Yahoo Finance symbol
// lookup API. Endpoint path and query parameter names are known to drift, so
// they live here as configuration, behind the parsing boundary.
package yahoo

import (
	"os"
	"strconv"
	"time"
)

// Config holds configuration for the lookup client.
type Config struct {
	BaseURL      string        // lookup endpoint, e.g. "https://query1.finance.yahoo.com/v1/finance/lookup"
	PageSize     int           // entries requested per page
	MaxPages     int           // safety cap against pathological pagination
	MaxRetries   int           // retry attempts for transient failures
	RetryBackoff time.Duration // initial backoff, doubled per attempt
	MinInterval  time.Duration // provider-wide spacing between requests
	Concurrency  int           // concurrent combination fetches
	Timeout      time.Duration // whole-request HTTP timeout
}

// LoadConfig loads the client configuration from environment variables,
// falling back to defaults safe for anonymous public access.
func LoadConfig() Config {
	cfg := Config{
		BaseURL:      "https://query1.finance.yahoo.com/v1/finance/lookup",
		PageSize:     250,
		MaxPages:     400,
		MaxRetries:   3,
		RetryBackoff: time.Second,
		MinInterval:  300 * time.Millisecond,
		Concurrency:  4,
		Timeout:      15 * time.Second,
	}
	if v := os.Getenv("YAHOO_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := envInt("YAHOO_PAGE_SIZE"); v > 0 {
		cfg.PageSize = v
	}
	if v := envInt("YAHOO_MAX_PAGES"); v > 0 {
		cfg.MaxPages = v
	}
	if v := envInt("YAHOO_MAX_RETRIES"); v >= 0 {
		cfg.MaxRetries = v
	}
	if v := envInt("YAHOO_MIN_INTERVAL_MS"); v >= 0 {
		cfg.MinInterval = time.Duration(v) * time.Millisecond
	}
	if v := envInt("YAHOO_CONCURRENCY"); v > 0 {
		cfg.Concurrency = v
	}
	return cfg
}

// envInt parses an integer environment variable, returning -1 when unset or
// invalid.
func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return -1
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	return n
}
