package redis

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

type countingQuoteSource struct {
	calls  atomic.Int64
	prices map[string]decimal.Decimal
}

func (s *countingQuoteSource) GetQuote(ctx context.Context, symbol string) (decimal.Decimal, bool, error) {
	s.calls.Add(1)

	price, ok := s.prices[symbol]

	return price, ok, nil
}

func TestCachedQuoteSource_CachesUpstreamPrice(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	upstream := &countingQuoteSource{
		prices: map[string]decimal.Decimal{"GCB": decimal.RequireFromString("5.40")},
	}

	source := NewCachedQuoteSource(upstream, client, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		price, found, err := source.GetQuote(ctx, "GCB")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !found {
			t.Fatal("expected quote to be found")
		}
		if !price.Equal(decimal.RequireFromString("5.40")) {
			t.Fatalf("expected 5.40, got %s", price)
		}
	}

	if got := upstream.calls.Load(); got != 1 {
		t.Fatalf("expected 1 upstream call, got %d", got)
	}
}

func TestCachedQuoteSource_ExpiredEntryRefetches(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	upstream := &countingQuoteSource{
		prices: map[string]decimal.Decimal{"MTNGH": decimal.RequireFromString("1.82")},
	}

	source := NewCachedQuoteSource(upstream, client, 10*time.Second)
	ctx := context.Background()

	if _, _, err := source.GetQuote(ctx, "MTNGH"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(11 * time.Second)

	if _, _, err := source.GetQuote(ctx, "MTNGH"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := upstream.calls.Load(); got != 2 {
		t.Fatalf("expected 2 upstream calls after expiry, got %d", got)
	}
}

func TestCachedQuoteSource_UnknownSymbolNotCached(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	upstream := &countingQuoteSource{prices: map[string]decimal.Decimal{}}

	source := NewCachedQuoteSource(upstream, client, time.Minute)

	_, found, err := source.GetQuote(context.Background(), "NOPE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected quote not to be found")
	}

	if mr.Exists("quote:NOPE") {
		t.Fatal("missing quote must not be cached")
	}
}
