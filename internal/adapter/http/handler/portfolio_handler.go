package handler

import (
	"context"
	"net/http"

	"github.com/osei/papertrade/internal/adapter/http/dto"
	"github.com/osei/papertrade/internal/adapter/http/middleware"
	"github.com/osei/papertrade/internal/domain"
)

// PortfolioService reconstructs and prices holdings.
type PortfolioService interface {
	ComputeHoldings(ctx context.Context, userID string) ([]*domain.Holding, error)
	ListTransactions(ctx context.Context, userID string) ([]*domain.Transaction, error)
}

// PortfolioHandler handles portfolio valuation HTTP requests.
type PortfolioHandler struct {
	portfolioUC PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioUC PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioUC: portfolioUC}
}

// Get returns the authenticated user's current holdings, priced.
func (h *PortfolioHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "")
		return
	}

	holdings, err := h.portfolioUC.ComputeHoldings(r.Context(), userID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to compute holdings", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.PortfolioFromDomain(holdings))
}

// ListTransactions returns the user's transaction log, oldest first.
func (h *PortfolioHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "")
		return
	}

	txs, err := h.portfolioUC.ListTransactions(r.Context(), userID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list transactions", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(txs))
}
