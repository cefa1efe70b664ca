package db

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
)

// Bootstrap downloads a prebuilt database file to path when no store exists
// there yet. It is a shortcut that spares a fresh installation the initial
// full crawl; a failed download is not fatal, the caller falls back to
// crawling. Returns true when a file was installed.
func Bootstrap(ctx context.Context, client *http.Client, url, path string) (bool, error) {
	if url == "" {
		return false, nil
	}
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	res, err := client.Do(req)
	if err != nil {
		return false, fmt.Errorf("download database: %w", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()
	if res.StatusCode != http.StatusOK {
		return false, fmt.Errorf("download database: http %d", res.StatusCode)
	}

	// Write to a temp file first so a partial download never looks like a
	// valid store.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".symbols-*.db")
	if err != nil {
		return false, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, res.Body); err != nil {
		tmp.Close()
		return false, fmt.Errorf("write database file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("close database file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return false, fmt.Errorf("install database file: %w", err)
	}
	return true, nil
}
