package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/osei/papertrade/internal/usecase"
)

// CachedQuoteSource decorates a QuoteSource with a short-TTL Redis
// cache. Used for portfolio valuation only; trade execution always
// goes straight to the feed so an order is never priced off a cached
// quote.
type CachedQuoteSource struct {
	upstream usecase.QuoteSource
	client   *redis.Client
	ttl      time.Duration
	prefix   string
}

// NewCachedQuoteSource creates a new CachedQuoteSource.
func NewCachedQuoteSource(upstream usecase.QuoteSource, client *redis.Client, ttl time.Duration) *CachedQuoteSource {
	return &CachedQuoteSource{
		upstream: upstream,
		client:   client,
		ttl:      ttl,
		prefix:   "quote:",
	}
}

// GetQuote returns the cached price for symbol, falling back to the
// upstream feed on a miss. Cache failures degrade to the upstream
// call; a broken cache never fails a valuation.
func (s *CachedQuoteSource) GetQuote(ctx context.Context, symbol string) (decimal.Decimal, bool, error) {
	key := s.prefix + symbol

	cached, err := s.client.Get(ctx, key).Result()
	if err == nil {
		price, perr := decimal.NewFromString(cached)
		if perr == nil {
			return price, true, nil
		}
	} else if !errors.Is(err, redis.Nil) && ctx.Err() != nil {
		return decimal.Zero, false, ctx.Err()
	}

	price, found, err := s.upstream.GetQuote(ctx, symbol)
	if err != nil || !found {
		return decimal.Zero, false, err
	}

	// Best effort; a failed write is invisible to the caller.
	_ = s.client.Set(ctx, key, price.String(), s.ttl).Err()

	return price, true, nil
}
