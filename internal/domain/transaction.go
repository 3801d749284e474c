package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Side is the direction of a trade.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// ParseSide parses a side string, case-insensitively.
func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(SideBuy):
		return SideBuy, nil
	case string(SideSell):
		return SideSell, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSide, s)
	}
}

// Transaction is an immutable record of an executed trade. Once
// appended to the ledger it is never mutated or deleted; the ordered
// transaction log per user is the sole source of truth for holdings.
type Transaction struct {
	ID           string
	UserID       string
	Symbol       string
	Side         Side
	Quantity     int64
	PricePerUnit decimal.Decimal
	TotalAmount  decimal.Decimal
	Fees         decimal.Decimal
	CreatedAt    time.Time
}

// Validate validates the transaction record before it is appended.
func (t *Transaction) Validate() error {
	if t.UserID == "" {
		return ErrUnauthenticated
	}

	if strings.TrimSpace(t.Symbol) == "" {
		return ErrInvalidSymbol
	}

	if t.Side != SideBuy && t.Side != SideSell {
		return fmt.Errorf("%w: %q", ErrInvalidSide, t.Side)
	}

	if t.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	if t.PricePerUnit.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("invalid price per unit: %s", t.PricePerUnit)
	}

	if t.Fees.IsNegative() {
		return fmt.Errorf("invalid fees: %s", t.Fees)
	}

	return nil
}

// NormalizeSymbol canonicalizes a ticker symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
