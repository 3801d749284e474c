package dto

import (
	"github.com/osei/papertrade/internal/domain"
	"github.com/osei/papertrade/internal/usecase"
)

// ExecuteTradeRequest represents a request to execute a market order.
// Price and fees are never accepted from the caller.
type ExecuteTradeRequest struct {
	Symbol   string `json:"symbol"`
	Side     string `json:"side"`
	Quantity int64  `json:"quantity"`
}

// ToUseCaseInput converts to use case input for the given user.
func (r *ExecuteTradeRequest) ToUseCaseInput(userID string) (usecase.ExecuteTradeInput, error) {
	side, err := domain.ParseSide(r.Side)
	if err != nil {
		return usecase.ExecuteTradeInput{}, err
	}

	return usecase.ExecuteTradeInput{
		UserID:   userID,
		Symbol:   r.Symbol,
		Side:     side,
		Quantity: r.Quantity,
	}, nil
}
