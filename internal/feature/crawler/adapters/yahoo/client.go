package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"yfsymbols/internal/domain/entity"
	"yfsymbols/internal/domain/taxonomy"
	"yfsymbols/internal/feature/crawler/adapters/yahoo/dto"
	"yfsymbols/internal/feature/crawler/domain"
	"yfsymbols/internal/feature/crawler/usecase"
	"yfsymbols/internal/shared/ratelimiter"
)

// Client fetches instrument entries from the Yahoo Finance lookup API, one
// taxonomy combination at a time, paging until exhaustion.
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiter
	logger  *slog.Logger
}

// Client implements the crawler's SymbolSource.
var _ usecase.SymbolSource = (*Client)(nil)

// NewClient creates a lookup client. The limiter is shared process-wide by
// every crawl worker so request pacing applies across combinations.
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.RateLimiter, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{cfg: cfg, client: client, limiter: limiter, logger: logger}
}

// assetClassCodes maps taxonomy asset classes to the provider's type codes.
var assetClassCodes = map[taxonomy.AssetClass]string{
	taxonomy.Equity:         "equity",
	taxonomy.ETF:            "etf",
	taxonomy.Index:          "index",
	taxonomy.Currency:       "currency",
	taxonomy.Future:         "future",
	taxonomy.MutualFund:     "mutualfund",
	taxonomy.Cryptocurrency: "cryptocurrency",
}

// statusError is a non-2xx HTTP response from the provider.
type statusError struct {
	StatusCode int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("yahoo lookup http %d", e.StatusCode)
}

// Retryable reports whether the status indicates a transient condition.
func (e *statusError) Retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// page is one decoded lookup page.
type page struct {
	symbols []entity.Symbol
	entries int // raw entries the provider sent, including skipped ones
	skipped int
	hasNext bool
}

// FetchCombination retrieves every page for one combination. Transient
// failures are retried with bounded exponential backoff; an explicit
// provider rejection stops the combination immediately without retry.
func (c *Client) FetchCombination(ctx context.Context, comb taxonomy.Combination) (usecase.FetchResult, error) {
	var out usecase.FetchResult

	start := 0
	for n := 0; n < c.cfg.MaxPages; n++ {
		pg, err := c.fetchPage(ctx, comb, start)
		if err != nil {
			return usecase.FetchResult{}, err
		}

		out.Pages++
		out.Skipped += pg.skipped
		out.Symbols = append(out.Symbols, pg.symbols...)

		// A page with zero entries terminates pagination even if the
		// provider claims more results; this guards against API bugs that
		// would otherwise loop forever.
		if pg.entries == 0 || !pg.hasNext {
			return out, nil
		}
		start += pg.entries
	}

	c.logger.Warn("page cap reached, stopping pagination",
		"combination", comb.String(), "pages", out.Pages)
	return out, nil
}

// fetchPage requests and parses one page, retrying transient failures.
func (c *Client) fetchPage(ctx context.Context, comb taxonomy.Combination, start int) (page, error) {
	var lastErr error
	backoff := c.cfg.RetryBackoff

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Debug("retrying page",
				"combination", comb.String(), "start", start,
				"attempt", attempt, "backoff", backoff)
			t := time.NewTimer(backoff)
			select {
			case <-ctx.Done():
				t.Stop()
				return page{}, ctx.Err()
			case <-t.C:
			}
			backoff *= 2
		}

		pg, err := c.doPage(ctx, comb, start)
		if err == nil {
			return pg, nil
		}
		lastErr = err
		if !retryable(err) {
			return page{}, err
		}
	}
	return page{}, fmt.Errorf("retries exhausted: %w", lastErr)
}

// doPage performs a single paced request and decodes the response.
func (c *Client) doPage(ctx context.Context, comb taxonomy.Combination, start int) (page, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return page{}, err
		}
	}

	q := url.Values{}
	q.Set("type", assetClassCodes[comb.AssetClass])
	q.Set("category", string(comb.Category))
	q.Set("exchange", string(comb.Exchange))
	q.Set("start", strconv.Itoa(start))
	q.Set("count", strconv.Itoa(c.cfg.PageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return page{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; yfsymbols/1.0)")

	res, err := c.client.Do(req)
	if err != nil {
		return page{}, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			c.logger.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode == http.StatusBadRequest || res.StatusCode == http.StatusNotFound {
		return page{}, fmt.Errorf("%w: http %d", domain.ErrInvalidCombination, res.StatusCode)
	}
	if res.StatusCode >= 400 {
		return page{}, &statusError{StatusCode: res.StatusCode}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return page{}, fmt.Errorf("read response: %w", err)
	}
	return c.parsePage(body, comb)
}

// parsePage decodes one page into canonical symbols. The whole page fails
// only when the payload is not the expected shape at all; individual
// malformed entries are skipped and counted.
func (c *Client) parsePage(body []byte, comb taxonomy.Combination) (page, error) {
	var resp dto.LookupResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return page{}, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	if resp.Finance.Error != nil {
		return page{}, fmt.Errorf("%w: %s: %s", domain.ErrInvalidCombination,
			resp.Finance.Error.Code, resp.Finance.Error.Description)
	}
	if len(resp.Finance.Result) == 0 {
		return page{}, nil
	}

	res := resp.Finance.Result[0]
	pg := page{entries: len(res.Documents)}

	for _, d := range res.Documents {
		if d.Symbol == "" {
			pg.skipped++
			continue
		}
		category := comb.Category
		if d.Category != "" {
			category = taxonomy.Category(d.Category)
		}
		if !taxonomy.PairValid(comb.AssetClass, category) {
			pg.skipped++
			continue
		}
		pg.symbols = append(pg.symbols, entity.Symbol{
			Ticker:     d.Symbol,
			Name:       html.UnescapeString(strings.TrimSpace(d.ShortName)),
			AssetClass: comb.AssetClass,
			Category:   category,
			Exchange:   comb.Exchange,
			TypeCode:   d.QuoteType,
		})
	}

	pg.hasNext = res.Start+res.Count < res.Total
	if pg.skipped > 0 {
		c.logger.Debug("skipped malformed entries",
			"combination", comb.String(), "count", pg.skipped)
	}
	return pg, nil
}

// retryable classifies an error for the backoff loop. Transient network
// failures, 5xx/429 statuses, and undecodable payloads are retried; explicit
// provider rejections and cancellations are not.
func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.Retryable()
	}
	if errors.Is(err, domain.ErrInvalidCombination) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}
