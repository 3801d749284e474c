package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osei/papertrade/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Account, error)
	// GetByUserIDForUpdate locks the account row for the duration of
	// tx, serializing the balance-check-then-write sequence per
	// account.
	GetByUserIDForUpdate(ctx context.Context, tx Transaction, userID string) (*domain.Account, error)
	CreateTx(ctx context.Context, tx Transaction, account *domain.Account) error
	UpdateBalance(ctx context.Context, tx Transaction, userID string, balance decimal.Decimal, updatedAt time.Time) error
}

// TransactionRepository defines data access for the append-only
// transaction log.
type TransactionRepository interface {
	Append(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	// ListByUser returns all transactions for a user ordered by
	// creation time ascending.
	ListByUser(ctx context.Context, userID string) ([]*domain.Transaction, error)
	ListByUserTx(ctx context.Context, tx Transaction, userID string) ([]*domain.Transaction, error)
}

// QuoteSource returns the current tradable price for a symbol.
// found=false means the symbol is unknown or the feed returned
// unusable data; err is reserved for transport failures.
type QuoteSource interface {
	GetQuote(ctx context.Context, symbol string) (price decimal.Decimal, found bool, err error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient store failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
