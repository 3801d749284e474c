package handler

import (
	"context"
	"net/http"

	"github.com/osei/papertrade/internal/adapter/http/dto"
	"github.com/osei/papertrade/internal/adapter/http/middleware"
	"github.com/osei/papertrade/internal/domain"
)

// AccountService provides account access with implicit creation.
type AccountService interface {
	GetOrCreate(ctx context.Context, userID string) (*domain.Account, error)
}

// AccountHandler handles account HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Get returns the authenticated user's account, creating it with the
// starting balance on first access.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "")
		return
	}

	account, err := h.accountUC.GetOrCreate(r.Context(), userID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get account", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}
