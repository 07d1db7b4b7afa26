package ledger

import "errors"

// Sentinel errors for ledger operations. Every failed validation aborts the
// whole operation with no state change; ErrPersistence is the one exception
// callers must treat differently, because it means the durable copy may have
// fallen behind the attempted mutation.
var (
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrAuthenticationFailed = errors.New("invalid account number or password")
	ErrNotFound             = errors.New("account not found")
	ErrAccountClosed        = errors.New("account is closed")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInvalidTransfer      = errors.New("cannot transfer to the same account")
	ErrPersistence          = errors.New("persistence failure")
)
