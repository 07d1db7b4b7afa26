package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus is the lifecycle state of an account. Accounts are never
// deleted, only marked closed.
type AccountStatus string

const (
	AccountActive AccountStatus = "active"
	AccountClosed AccountStatus = "closed"
)

// TransactionType tags a ledger record. The amount field is always unsigned;
// the direction of the money movement is implied by the type.
type TransactionType string

const (
	TypeDeposit     TransactionType = "deposit"
	TypeWithdrawal  TransactionType = "withdrawal"
	TypeTransferOut TransactionType = "transfer_out"
	TypeTransferIn  TransactionType = "transfer_in"
)

// Account represents a bank account record
type Account struct {
	AccountNumber string          `json:"account_number" db:"account_number"`
	Name          string          `json:"name" db:"name"`
	Balance       decimal.Decimal `json:"balance" db:"balance"`
	PasswordHash  string          `json:"password_hash" db:"password_hash"`
	CreatedDate   time.Time       `json:"created_date" db:"created_date"`
	Status        AccountStatus   `json:"status" db:"status"`
}

// Transaction represents one immutable entry of the append-only ledger log.
// ResultingBalance snapshots the account balance immediately after the entry
// was applied, so statements never need a replay.
type Transaction struct {
	ID               int64           `json:"id" db:"id"`
	AccountNumber    string          `json:"account_number" db:"account_number"`
	TransactionType  TransactionType `json:"transaction_type" db:"transaction_type"`
	Amount           decimal.Decimal `json:"amount" db:"amount"`
	Description      string          `json:"description" db:"description"`
	RelatedAccount   string          `json:"related_account" db:"related_account"`
	ResultingBalance decimal.Decimal `json:"resulting_balance" db:"resulting_balance"`
	Timestamp        time.Time       `json:"timestamp" db:"timestamp"`
	Date             string          `json:"date" db:"date"`
}
