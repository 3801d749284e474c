package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/osei/papertrade/internal/adapter/http/dto"
	"github.com/osei/papertrade/internal/domain"
)

type accountServiceStub struct {
	getOrCreateFn func(ctx context.Context, userID string) (*domain.Account, error)
}

func (s *accountServiceStub) GetOrCreate(ctx context.Context, userID string) (*domain.Account, error) {
	return s.getOrCreateFn(ctx, userID)
}

func TestAccountHandler_Get_Success(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		getOrCreateFn: func(ctx context.Context, userID string) (*domain.Account, error) {
			return &domain.Account{UserID: userID, CashBalance: domain.StartingBalance}, nil
		},
	})

	req := authedRequest(http.MethodGet, "/api/v1/account", nil, "user-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.UserID != "user-1" || !resp.CashBalance.Equal(domain.StartingBalance) {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAccountHandler_Get_Unauthenticated(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		getOrCreateFn: func(ctx context.Context, userID string) (*domain.Account, error) {
			t.Fatal("GetOrCreate should not be called")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/account", nil)
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
