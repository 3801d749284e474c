// Package quote provides the production adapter for the external
// market price feed.
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// FeedClient fetches current prices from an HTTP quote feed. It
// implements usecase.QuoteSource: an unknown symbol, an unreachable
// feed or a malformed payload all surface as found=false so the
// caller rejects the trade instead of pricing it off a default.
type FeedClient struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewFeedClient creates a new FeedClient.
func NewFeedClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *FeedClient {
	return &FeedClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type quotePayload struct {
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
}

// GetQuote fetches the current price for a symbol. The returned error
// is reserved for transport failures (timeouts in particular); every
// other failure mode is a found=false.
func (c *FeedClient) GetQuote(ctx context.Context, symbol string) (decimal.Decimal, bool, error) {
	endpoint := fmt.Sprintf("%s/quotes/%s", c.baseURL, url.PathEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return decimal.Zero, false, nil
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().
			Str("symbol", symbol).
			Int("status", resp.StatusCode).
			Msg("quote feed returned unexpected status")

		return decimal.Zero, false, nil
	}

	var payload quotePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Warn().
			Str("symbol", symbol).
			Err(err).
			Msg("quote feed returned malformed payload")

		return decimal.Zero, false, nil
	}

	if payload.Price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, false, nil
	}

	return payload.Price, true, nil
}
