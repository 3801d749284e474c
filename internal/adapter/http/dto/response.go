package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/osei/papertrade/internal/domain"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	UserID      string          `json:"user_id"`
	CashBalance decimal.Decimal `json:"cash_balance"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		UserID:      a.UserID,
		CashBalance: a.CashBalance,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// TransactionResponse represents an executed trade in API responses.
type TransactionResponse struct {
	ID           string          `json:"id"`
	Symbol       string          `json:"symbol"`
	Side         string          `json:"side"`
	Quantity     int64           `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Fees         decimal.Decimal `json:"fees"`
	CreatedAt    time.Time       `json:"created_at"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:           t.ID,
		Symbol:       t.Symbol,
		Side:         string(t.Side),
		Quantity:     t.Quantity,
		PricePerUnit: t.PricePerUnit,
		TotalAmount:  t.TotalAmount,
		Fees:         t.Fees,
		CreatedAt:    t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txs []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txs))
	for i, t := range txs {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// HoldingResponse represents a priced position in API responses.
type HoldingResponse struct {
	Symbol       string          `json:"symbol"`
	Quantity     int64           `json:"quantity"`
	AverageCost  decimal.Decimal `json:"average_cost"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	MarketValue  decimal.Decimal `json:"market_value"`
	Gain         decimal.Decimal `json:"gain"`
	GainPercent  decimal.Decimal `json:"gain_percent"`
}

// HoldingFromDomain converts domain holding to response.
func HoldingFromDomain(h *domain.Holding) *HoldingResponse {
	return &HoldingResponse{
		Symbol:       h.Symbol,
		Quantity:     h.Quantity,
		AverageCost:  h.AverageCost,
		CurrentPrice: h.CurrentPrice,
		MarketValue:  h.MarketValue,
		Gain:         h.Gain,
		GainPercent:  h.GainPercent,
	}
}

// PortfolioResponse represents the full portfolio view.
type PortfolioResponse struct {
	Holdings   []*HoldingResponse `json:"holdings"`
	TotalValue decimal.Decimal    `json:"total_value"`
}

// PortfolioFromDomain converts priced holdings to a portfolio response.
func PortfolioFromDomain(holdings []*domain.Holding) *PortfolioResponse {
	resp := &PortfolioResponse{
		Holdings:   make([]*HoldingResponse, len(holdings)),
		TotalValue: decimal.Zero,
	}
	for i, h := range holdings {
		resp.Holdings[i] = HoldingFromDomain(h)
		resp.TotalValue = resp.TotalValue.Add(h.MarketValue)
	}
	return resp
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
