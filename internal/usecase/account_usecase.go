package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/osei/papertrade/internal/domain"
)

// AccountUseCase handles account access. Accounts are created
// implicitly on first access with the default starting balance and
// never deleted.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	logger      zerolog.Logger
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(txManager TransactionManager, accountRepo AccountRepository, logger zerolog.Logger) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// GetOrCreate returns the user's account, creating it with the
// starting balance on first access.
func (uc *AccountUseCase) GetOrCreate(ctx context.Context, userID string) (*domain.Account, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	account, err := uc.accountRepo.GetByUserID(ctx, userID)
	if err == nil {
		return account, nil
	}

	if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	return uc.create(ctx, userID)
}

func (uc *AccountUseCase) create(ctx context.Context, userID string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Re-check under the transaction: a concurrent first access may
	// have created the account already.
	account, err := uc.accountRepo.GetByUserIDForUpdate(ctx, tx, userID)
	switch {
	case err == nil:
		return account, tx.Commit(ctx)
	case !errors.Is(err, domain.ErrAccountNotFound):
		return nil, err
	}

	account = domain.NewAccount(userID, time.Now().UTC())
	if err := uc.accountRepo.CreateTx(ctx, tx, account); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.logger.Info().
		Str("user_id", userID).
		Str("balance", account.CashBalance.String()).
		Msg("account created with starting balance")

	return account, nil
}
