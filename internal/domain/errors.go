package domain

import "errors"

var (
	// Trade rejections
	ErrUnauthenticated    = errors.New("caller identity not established")
	ErrInvalidQuantity    = errors.New("quantity must be a positive integer")
	ErrInvalidSide        = errors.New("side must be BUY or SELL")
	ErrInvalidSymbol      = errors.New("symbol must not be empty")
	ErrSymbolNotFound     = errors.New("no quote available for symbol")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInconsistentLedger = errors.New("sell quantity exceeds held quantity")

	// Infrastructure failures
	ErrGatewayTimeout   = errors.New("quote gateway timed out")
	ErrStoreWriteFailed = errors.New("ledger store write failed")

	// Account errors
	ErrAccountNotFound = errors.New("account not found")

	// Auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)
