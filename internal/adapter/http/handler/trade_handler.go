package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/osei/papertrade/internal/adapter/http/dto"
	"github.com/osei/papertrade/internal/adapter/http/middleware"
	"github.com/osei/papertrade/internal/domain"
	"github.com/osei/papertrade/internal/usecase"
)

// TradeService executes market orders.
type TradeService interface {
	ExecuteTrade(ctx context.Context, input usecase.ExecuteTradeInput) (*domain.Transaction, error)
}

// TradeHandler handles trade execution HTTP requests.
type TradeHandler struct {
	tradeUC TradeService
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(tradeUC TradeService) *TradeHandler {
	return &TradeHandler{tradeUC: tradeUC}
}

// Execute executes a market order for the authenticated user.
func (h *TradeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "")
		return
	}

	var req dto.ExecuteTradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(userID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid side", err.Error())
		return
	}

	txn, err := h.tradeUC.ExecuteTrade(r.Context(), input)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to execute trade", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}
