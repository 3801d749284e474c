package usecase

import "time"

const (
	// QuoteTimeout bounds the call to the quote gateway. A timeout is
	// surfaced as a gateway failure, not a business rejection.
	QuoteTimeout = 5 * time.Second

	// DefaultTransactionTimeout is the maximum duration for a database
	// transaction. This prevents long-running transactions from
	// holding account row locks.
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
