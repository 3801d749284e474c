package mocks

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osei/papertrade/internal/domain"
	"github.com/osei/papertrade/internal/usecase"
)

// MockTx is an in-memory store transaction. Writes are staged and
// applied only on Commit, so failure paths leave no partial state,
// matching the atomicity guarantee of the real store.
type MockTx struct {
	mu      sync.Mutex
	staged  []func()
	release []func()
	done    bool
}

// Stage registers a write to apply on Commit.
func (t *MockTx) Stage(op func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.staged = append(t.staged, op)
}

// OnRelease registers a hook to run when the transaction ends,
// commit or rollback. Used to release account locks.
func (t *MockTx) OnRelease(f func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.release = append(t.release, f)
}

// Commit applies staged writes and releases locks.
func (t *MockTx) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		return nil
	}
	t.done = true

	for _, op := range t.staged {
		op()
	}

	for _, f := range t.release {
		f()
	}

	return nil
}

// Rollback discards staged writes and releases locks.
func (t *MockTx) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		return nil
	}
	t.done = true

	for _, f := range t.release {
		f()
	}

	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}

	return &MockTx{}, nil
}

// MockAccountRepository is an in-memory mock of AccountRepository
// with real per-account locking: GetByUserIDForUpdate blocks until a
// concurrent holder commits or rolls back, mirroring a row lock.
type MockAccountRepository struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	locks    map[string]*sync.Mutex

	GetByUserIDFunc          func(ctx context.Context, userID string) (*domain.Account, error)
	GetByUserIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, userID string) (*domain.Account, error)
	CreateTxFunc             func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	UpdateBalanceFunc        func(ctx context.Context, tx usecase.Transaction, userID string, balance decimal.Decimal, updatedAt time.Time) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
		locks:    make(map[string]*sync.Mutex),
	}
}

// Seed stores an account directly, outside any transaction.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *account
	m.accounts[account.UserID] = &copied
}

// Balance returns the committed balance, or zero if absent.
func (m *MockAccountRepository) Balance(userID string) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()

	if acc, ok := m.accounts[userID]; ok {
		return acc.CashBalance
	}

	return decimal.Zero
}

func (m *MockAccountRepository) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	acc, ok := m.accounts[userID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	copied := *acc

	return &copied, nil
}

func (m *MockAccountRepository) GetByUserIDForUpdate(ctx context.Context, tx usecase.Transaction, userID string) (*domain.Account, error) {
	if m.GetByUserIDForUpdateFunc != nil {
		return m.GetByUserIDForUpdateFunc(ctx, tx, userID)
	}

	m.mu.Lock()
	lock, ok := m.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[userID] = lock
	}
	m.mu.Unlock()

	lock.Lock()
	if mtx, ok := tx.(*MockTx); ok {
		mtx.OnRelease(lock.Unlock)
	} else {
		lock.Unlock()
	}

	return m.GetByUserID(ctx, userID)
}

func (m *MockAccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, account)
	}

	copied := *account
	tx.(*MockTx).Stage(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.accounts[copied.UserID] = &copied
	})

	return nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, userID string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, userID, balance, updatedAt)
	}

	tx.(*MockTx).Stage(func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		if acc, ok := m.accounts[userID]; ok {
			acc.CashBalance = balance
			acc.UpdatedAt = updatedAt
		}
	})

	return nil
}

// MockTransactionRepository is an in-memory mock of TransactionRepository.
type MockTransactionRepository struct {
	mu     sync.Mutex
	byUser map[string][]*domain.Transaction

	AppendFunc       func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	ListByUserFunc   func(ctx context.Context, userID string) ([]*domain.Transaction, error)
	ListByUserTxFunc func(ctx context.Context, tx usecase.Transaction, userID string) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		byUser: make(map[string][]*domain.Transaction),
	}
}

// Seed appends a transaction directly, outside any transaction.
func (m *MockTransactionRepository) Seed(txn *domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *txn
	m.byUser[txn.UserID] = append(m.byUser[txn.UserID], &copied)
}

// Count returns the number of committed transactions for a user.
func (m *MockTransactionRepository) Count(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.byUser[userID])
}

func (m *MockTransactionRepository) Append(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, tx, txn)
	}

	copied := *txn
	tx.(*MockTx).Stage(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.byUser[copied.UserID] = append(m.byUser[copied.UserID], &copied)
	})

	return nil
}

func (m *MockTransactionRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	txs := make([]*domain.Transaction, len(m.byUser[userID]))
	copy(txs, m.byUser[userID])

	return txs, nil
}

func (m *MockTransactionRepository) ListByUserTx(ctx context.Context, tx usecase.Transaction, userID string) ([]*domain.Transaction, error) {
	if m.ListByUserTxFunc != nil {
		return m.ListByUserTxFunc(ctx, tx, userID)
	}

	return m.ListByUser(ctx, userID)
}

// MockQuoteSource is a mock implementation of QuoteSource.
type MockQuoteSource struct {
	mu     sync.Mutex
	prices map[string]decimal.Decimal

	GetQuoteFunc func(ctx context.Context, symbol string) (decimal.Decimal, bool, error)
}

func NewMockQuoteSource() *MockQuoteSource {
	return &MockQuoteSource{
		prices: make(map[string]decimal.Decimal),
	}
}

// SetPrice sets the quoted price for a symbol.
func (m *MockQuoteSource) SetPrice(symbol string, price decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prices[symbol] = price
}

func (m *MockQuoteSource) GetQuote(ctx context.Context, symbol string) (decimal.Decimal, bool, error) {
	if m.GetQuoteFunc != nil {
		return m.GetQuoteFunc(ctx, symbol)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	price, ok := m.prices[symbol]
	if !ok {
		return decimal.Zero, false, nil
	}

	return price, true, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	counter atomic.Int64

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}

	return "txn-" + time.Now().UTC().Format("150405.000") + "-" +
		decimal.NewFromInt(m.counter.Add(1)).String()
}

// MockRetrier runs the operation once, without retries.
type MockRetrier struct{}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}
