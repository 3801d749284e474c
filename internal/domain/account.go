package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StartingBalance is the cash balance every account is seeded with on
// first access. It is a fixed policy, not configuration.
var StartingBalance = decimal.NewFromInt(10000)

// Account holds the virtual cash balance for a user. The balance is
// mutated only by trade execution and must never go negative.
type Account struct {
	UserID      string
	CashBalance decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewAccount creates an account with the default starting balance.
func NewAccount(userID string, now time.Time) *Account {
	return &Account{
		UserID:      userID,
		CashBalance: StartingBalance,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ValidateDebit checks if the account can be debited by amount.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.CashBalance.Sub(amount).IsNegative() {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDebit returns the new balance after a debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.CashBalance.Sub(amount)
}

// ApplyCredit returns the new balance after a credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.CashBalance.Add(amount)
}
