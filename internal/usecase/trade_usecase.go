package usecase

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/osei/papertrade/internal/domain"
)

// TradeUseCase executes market trades: it prices the order against
// the quote gateway, computes fees server-side, and commits the
// transaction append and balance update as one atomic unit scoped to
// the account.
type TradeUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	quotes          QuoteSource
	idGen           IDGenerator
	retrier         Retrier
	logger          zerolog.Logger
}

// NewTradeUseCase creates a new TradeUseCase. retrier may be nil to
// disable retries on transient store failures.
func NewTradeUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	quotes QuoteSource,
	idGen IDGenerator,
	retrier Retrier,
	logger zerolog.Logger,
) *TradeUseCase {
	return &TradeUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		quotes:          quotes,
		idGen:           idGen,
		retrier:         retrier,
		logger:          logger,
	}
}

// ExecuteTradeInput represents a trade order. UserID must come from a
// verified session; price and fees are never caller-supplied.
type ExecuteTradeInput struct {
	UserID   string
	Symbol   string
	Side     domain.Side
	Quantity int64
}

// ExecuteTrade executes a market order. On success exactly one
// transaction is appended and exactly one balance write happens; on
// any failure neither does.
func (uc *TradeUseCase) ExecuteTrade(ctx context.Context, input ExecuteTradeInput) (*domain.Transaction, error) {
	if input.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}

	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	symbol := domain.NormalizeSymbol(input.Symbol)
	if symbol == "" {
		return nil, domain.ErrInvalidSymbol
	}

	if input.Side != domain.SideBuy && input.Side != domain.SideSell {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidSide, input.Side)
	}

	// Always price against a fresh quote; never trade on a stale or
	// default price.
	price, err := uc.fetchQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	subtotal := price.Mul(decimal.NewFromInt(input.Quantity))
	fees := domain.ComputeFees(subtotal)

	var total decimal.Decimal
	if input.Side == domain.SideBuy {
		total = subtotal.Add(fees.Total)
	} else {
		total = subtotal.Sub(fees.Total)
	}

	var txn *domain.Transaction

	commit := func() error {
		t, err := uc.commitTrade(ctx, input.UserID, symbol, input.Side, input.Quantity, price, fees.Total, total)
		if err != nil {
			return err
		}

		txn = t

		return nil
	}

	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, commit)
	} else {
		err = commit()
	}

	if err != nil {
		return nil, err
	}

	uc.logger.Info().
		Str("user_id", txn.UserID).
		Str("symbol", txn.Symbol).
		Str("side", string(txn.Side)).
		Int64("quantity", txn.Quantity).
		Str("price", txn.PricePerUnit.String()).
		Str("total", txn.TotalAmount.String()).
		Msg("trade settled")

	return txn, nil
}

func (uc *TradeUseCase) fetchQuote(ctx context.Context, symbol string) (decimal.Decimal, error) {
	qctx, cancel := context.WithTimeout(ctx, QuoteTimeout)
	defer cancel()

	price, found, err := uc.quotes.GetQuote(qctx, symbol)
	if err != nil {
		if isTimeout(err) {
			return decimal.Zero, fmt.Errorf("%w: %v", domain.ErrGatewayTimeout, err)
		}

		// Unreachable or malformed feed is a non-retryable rejection.
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrSymbolNotFound, symbol)
	}

	if !found || price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrSymbolNotFound, symbol)
	}

	return price, nil
}

// commitTrade runs the balance-check-then-write sequence inside a
// single store transaction. The account row lock taken by
// GetByUserIDForUpdate serializes concurrent trades on the same
// account; trades on different accounts proceed independently.
func (uc *TradeUseCase) commitTrade(
	ctx context.Context,
	userID, symbol string,
	side domain.Side,
	quantity int64,
	price, totalFees, totalAmount decimal.Decimal,
) (*domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreWriteFailed, err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()

	account, err := uc.accountRepo.GetByUserIDForUpdate(ctx, tx, userID)
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		// First access creates the account with the starting balance.
		account = domain.NewAccount(userID, now)
		if err := uc.accountRepo.CreateTx(ctx, tx, account); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreWriteFailed, err)
		}
	case err != nil:
		return nil, err
	}

	var newBalance decimal.Decimal

	switch side {
	case domain.SideBuy:
		if err := account.ValidateDebit(totalAmount); err != nil {
			return nil, err
		}

		newBalance = account.ApplyDebit(totalAmount)

	case domain.SideSell:
		history, err := uc.transactionRepo.ListByUserTx(ctx, tx, userID)
		if err != nil {
			return nil, err
		}

		held := domain.HeldQuantity(history, symbol)
		if held < quantity {
			return nil, fmt.Errorf("%w: holding %d of %s, tried to sell %d",
				domain.ErrInconsistentLedger, held, symbol, quantity)
		}

		newBalance = account.ApplyCredit(totalAmount)
	}

	txn := &domain.Transaction{
		ID:           uc.idGen.Generate(),
		UserID:       userID,
		Symbol:       symbol,
		Side:         side,
		Quantity:     quantity,
		PricePerUnit: price,
		TotalAmount:  totalAmount,
		Fees:         totalFees,
		CreatedAt:    now,
	}

	if err := txn.Validate(); err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.Append(ctx, tx, txn); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreWriteFailed, err)
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, userID, newBalance, now); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreWriteFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreWriteFailed, err)
	}

	return txn, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr) && netErr.Timeout()
}
