package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osei/papertrade/internal/domain"
	"github.com/osei/papertrade/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository over
// the append-only transactions table. Rows are only ever inserted.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const listTransactionsQuery = `
SELECT id, user_id, symbol, side, quantity, price_per_unit, total_amount, fees, created_at
FROM transactions
WHERE user_id = $1
ORDER BY created_at ASC, id ASC`

// Append inserts a transaction record within a store transaction.
func (r *TransactionRepository) Append(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx,
		`INSERT INTO transactions (id, user_id, symbol, side, quantity, price_per_unit, total_amount, fees, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		txn.ID,
		txn.UserID,
		txn.Symbol,
		string(txn.Side),
		txn.Quantity,
		decimalToNumeric(txn.PricePerUnit),
		decimalToNumeric(txn.TotalAmount),
		decimalToNumeric(txn.Fees),
		timeToPgTimestamptz(txn.CreatedAt),
	)

	return err
}

// ListByUser returns all transactions for a user, oldest first.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, listTransactionsQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListByUserTx returns all transactions for a user within a store
// transaction, so a sell's holdings check observes the same snapshot
// the balance write commits against.
func (r *TransactionRepository) ListByUserTx(ctx context.Context, tx usecase.Transaction, userID string) ([]*domain.Transaction, error) {
	pgxTx := tx.(*Tx).PgxTx()

	rows, err := pgxTx.Query(ctx, listTransactionsQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func scanTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var txns []*domain.Transaction

	for rows.Next() {
		var (
			txn       domain.Transaction
			side      string
			price     pgtype.Numeric
			total     pgtype.Numeric
			fees      pgtype.Numeric
			createdAt pgtype.Timestamptz
		)

		err := rows.Scan(&txn.ID, &txn.UserID, &txn.Symbol, &side, &txn.Quantity,
			&price, &total, &fees, &createdAt)
		if err != nil {
			return nil, err
		}

		txn.Side = domain.Side(side)
		txn.PricePerUnit = numericToDecimal(price)
		txn.TotalAmount = numericToDecimal(total)
		txn.Fees = numericToDecimal(fees)
		txn.CreatedAt = createdAt.Time

		txns = append(txns, &txn)
	}

	return txns, rows.Err()
}
