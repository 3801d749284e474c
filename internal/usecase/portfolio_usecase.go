package usecase

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/osei/papertrade/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// PortfolioUseCase reconstructs holdings by replaying the transaction
// log and values them against current quotes. It only reads, so it
// needs no locking and may run concurrently with trade execution.
type PortfolioUseCase struct {
	transactionRepo TransactionRepository
	quotes          QuoteSource
	logger          zerolog.Logger
}

// NewPortfolioUseCase creates a new PortfolioUseCase.
func NewPortfolioUseCase(transactionRepo TransactionRepository, quotes QuoteSource, logger zerolog.Logger) *PortfolioUseCase {
	return &PortfolioUseCase{
		transactionRepo: transactionRepo,
		quotes:          quotes,
		logger:          logger,
	}
}

// ComputeHoldings folds the user's transaction log into current
// positions and prices each one. The fold is pure: the same log
// always yields the same positions; only the price lookup varies
// between runs.
func (uc *PortfolioUseCase) ComputeHoldings(ctx context.Context, userID string) ([]*domain.Holding, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	txs, err := uc.transactionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	positions := domain.BuildPositions(txs)

	holdings := make([]*domain.Holding, 0, len(positions))
	for _, pos := range positions {
		holdings = append(holdings, uc.priceDetail(ctx, pos))
	}

	return holdings, nil
}

func (uc *PortfolioUseCase) priceDetail(ctx context.Context, pos domain.Position) *domain.Holding {
	h := &domain.Holding{
		Symbol:      pos.Symbol,
		Quantity:    pos.Quantity,
		AverageCost: pos.AverageCost(),
	}

	qctx, cancel := context.WithTimeout(ctx, QuoteTimeout)
	defer cancel()

	price, found, err := uc.quotes.GetQuote(qctx, pos.Symbol)
	if err != nil || !found {
		// Without a price the holding is still reported, unvalued.
		uc.logger.Warn().
			Str("symbol", pos.Symbol).
			Err(err).
			Msg("no quote for held symbol, skipping valuation")

		return h
	}

	h.CurrentPrice = price
	h.MarketValue = price.Mul(decimal.NewFromInt(pos.Quantity))
	h.Gain = h.MarketValue.Sub(pos.CostBasis)

	if pos.CostBasis.IsPositive() {
		h.GainPercent = h.Gain.Div(pos.CostBasis).Mul(hundred)
	}

	return h
}

// ListTransactions returns the user's transaction log, oldest first.
func (uc *PortfolioUseCase) ListTransactions(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	return uc.transactionRepo.ListByUser(ctx, userID)
}
