/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package ledger

import (
	"context"
	"fmt"
	"sync"

	"dummy-bank-go/internal/credential"
	"dummy-bank-go/internal/models"
	"dummy-bank-go/internal/storage"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Engine orchestrates every ledger operation. A single mutex serializes the
// whole validate-apply-persist sequence, which is what makes each operation
// atomic from a caller's point of view: either the balance change, the log
// entry and the flush all happen, or none of them do. The mutex is held
// across the flush on purpose, so no reader can observe a state that has not
// reached the adapter yet.
type Engine struct {
	mu       sync.Mutex
	accounts *AccountStore
	log      *TransactionLog
	store    storage.Adapter
}

// NewEngine loads persisted state through the adapter and builds a ready
// engine on top of it.
func NewEngine(ctx context.Context, adapter storage.Adapter, hasher credential.Hasher) (*Engine, error) {
	state, err := adapter.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	accounts := NewAccountStore(hasher)
	accounts.Restore(state.Accounts)

	log := NewTransactionLog()
	log.Restore(state.Transactions)

	return &Engine{accounts: accounts, log: log, store: adapter}, nil
}

// OperationResult is returned by single-account mutations.
type OperationResult struct {
	Account     models.Account
	Transaction models.Transaction
}

// TransferResult carries both sides of a completed transfer.
type TransferResult struct {
	FromAccount    models.Account
	ToAccount      models.Account
	OutTransaction models.Transaction
	InTransaction  models.Transaction
}

// CreateAccount opens a new account. A positive initial deposit is recorded
// as the account's first transaction, exactly like a regular deposit.
func (e *Engine) CreateAccount(ctx context.Context, name string, initialDeposit decimal.Decimal, password string) (*OperationResult, error) {
	if initialDeposit.IsNegative() {
		return nil, fmt.Errorf("%w: initial deposit cannot be negative", ErrInvalidAmount)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	acct, err := e.accounts.Create(name, initialDeposit, password)
	if err != nil {
		return nil, err
	}

	result := &OperationResult{Account: *acct}
	appended := 0
	if initialDeposit.IsPositive() {
		result.Transaction = e.log.Append(acct.AccountNumber, models.TypeDeposit,
			initialDeposit, "Initial deposit", acct.AccountNumber, initialDeposit)
		appended = 1
	}

	if err := e.flush(ctx); err != nil {
		e.log.rollback(appended)
		e.accounts.remove(acct.AccountNumber)
		return nil, err
	}

	zap.L().Info("Account created",
		zap.String("account_number", acct.AccountNumber),
		zap.String("name", name),
		zap.String("initial_deposit", initialDeposit.String()))
	return result, nil
}

// Deposit credits amount to the account.
func (e *Engine) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal, password, description string) (*OperationResult, error) {
	if description == "" {
		description = "Deposit"
	}
	return e.apply(ctx, accountNumber, amount, password, description, models.TypeDeposit)
}

// Withdraw debits amount from the account, failing rather than letting the
// balance go negative.
func (e *Engine) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal, password, description string) (*OperationResult, error) {
	if description == "" {
		description = "Withdrawal"
	}
	return e.apply(ctx, accountNumber, amount, password, description, models.TypeWithdrawal)
}

// apply is the shared deposit/withdrawal path: validate, authenticate, load,
// mutate, append, flush. Any failure before the flush leaves no trace; a
// failed flush is rolled back.
func (e *Engine) apply(ctx context.Context, accountNumber string, amount decimal.Decimal, password, description string, txType models.TransactionType) (*OperationResult, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.accounts.Authenticate(accountNumber, password) {
		return nil, ErrAuthenticationFailed
	}

	acct, err := e.accounts.Get(accountNumber)
	if err != nil {
		return nil, err
	}
	if acct.Status == models.AccountClosed {
		return nil, ErrAccountClosed
	}

	var newBalance decimal.Decimal
	switch txType {
	case models.TypeDeposit:
		newBalance = acct.Balance.Add(amount)
	case models.TypeWithdrawal:
		if amount.GreaterThan(acct.Balance) {
			return nil, ErrInsufficientFunds
		}
		newBalance = acct.Balance.Sub(amount)
	default:
		return nil, fmt.Errorf("unsupported transaction type %q", txType)
	}

	record := e.log.Append(accountNumber, txType, amount, description, accountNumber, newBalance)
	if err := e.accounts.SetBalance(accountNumber, newBalance); err != nil {
		e.log.rollback(1)
		return nil, err
	}

	if err := e.flush(ctx); err != nil {
		e.log.rollback(1)
		e.accounts.restore(*acct)
		return nil, err
	}

	zap.L().Info("Transaction processed",
		zap.Int64("transaction_id", record.ID),
		zap.String("account_number", accountNumber),
		zap.String("type", string(txType)),
		zap.String("amount", amount.String()),
		zap.String("old_balance", acct.Balance.String()),
		zap.String("new_balance", newBalance.String()))

	updated, err := e.accounts.Get(accountNumber)
	if err != nil {
		return nil, err
	}
	return &OperationResult{Account: *updated, Transaction: record}, nil
}

// Transfer moves amount between two accounts inside one critical section.
// The debit and the credit land together with one flush covering both, so no
// observer ever sees the source debited without the destination credited.
func (e *Engine) Transfer(ctx context.Context, fromAccount, toAccount string, amount decimal.Decimal, password, description string) (*TransferResult, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if fromAccount == toAccount {
		return nil, ErrInvalidTransfer
	}
	if description == "" {
		description = "Transfer"
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.accounts.Authenticate(fromAccount, password) {
		return nil, ErrAuthenticationFailed
	}

	from, err := e.accounts.Get(fromAccount)
	if err != nil {
		return nil, err
	}
	to, err := e.accounts.Get(toAccount)
	if err != nil {
		return nil, err
	}
	if from.Status == models.AccountClosed || to.Status == models.AccountClosed {
		return nil, ErrAccountClosed
	}
	if amount.GreaterThan(from.Balance) {
		return nil, ErrInsufficientFunds
	}

	fromBalance := from.Balance.Sub(amount)
	toBalance := to.Balance.Add(amount)

	outRecord := e.log.Append(fromAccount, models.TypeTransferOut, amount,
		fmt.Sprintf("%s to %s", description, toAccount), toAccount, fromBalance)
	inRecord := e.log.Append(toAccount, models.TypeTransferIn, amount,
		fmt.Sprintf("%s from %s", description, fromAccount), fromAccount, toBalance)

	if err := e.accounts.SetBalance(fromAccount, fromBalance); err != nil {
		e.log.rollback(2)
		return nil, err
	}
	if err := e.accounts.SetBalance(toAccount, toBalance); err != nil {
		e.log.rollback(2)
		e.accounts.restore(*from)
		return nil, err
	}

	if err := e.flush(ctx); err != nil {
		e.log.rollback(2)
		e.accounts.restore(*from)
		e.accounts.restore(*to)
		return nil, err
	}

	zap.L().Info("Transfer processed",
		zap.Int64("out_transaction_id", outRecord.ID),
		zap.Int64("in_transaction_id", inRecord.ID),
		zap.String("from_account", fromAccount),
		zap.String("to_account", toAccount),
		zap.String("amount", amount.String()))

	updatedFrom, err := e.accounts.Get(fromAccount)
	if err != nil {
		return nil, err
	}
	updatedTo, err := e.accounts.Get(toAccount)
	if err != nil {
		return nil, err
	}
	return &TransferResult{
		FromAccount:    *updatedFrom,
		ToAccount:      *updatedTo,
		OutTransaction: outRecord,
		InTransaction:  inRecord,
	}, nil
}

// Balance returns the current balance. Read-only: no log entry, no flush.
func (e *Engine) Balance(accountNumber, password string) (decimal.Decimal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.accounts.Authenticate(accountNumber, password) {
		return decimal.Zero, ErrAuthenticationFailed
	}
	acct, err := e.accounts.Get(accountNumber)
	if err != nil {
		return decimal.Zero, err
	}
	return acct.Balance, nil
}

// History returns the account's transactions most-recent-first; limit <= 0
// returns all of them.
func (e *Engine) History(accountNumber, password string, limit int) ([]models.Transaction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.accounts.Authenticate(accountNumber, password) {
		return nil, ErrAuthenticationFailed
	}
	return e.log.History(accountNumber, limit), nil
}

// AccountInfo returns the full account record for its owner.
func (e *Engine) AccountInfo(accountNumber, password string) (*models.Account, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.accounts.Authenticate(accountNumber, password) {
		return nil, ErrAuthenticationFailed
	}
	return e.accounts.Get(accountNumber)
}

// CloseAccount marks the account closed. The record and its history remain.
func (e *Engine) CloseAccount(ctx context.Context, accountNumber, password string) (*models.Account, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.accounts.Authenticate(accountNumber, password) {
		return nil, ErrAuthenticationFailed
	}

	before, err := e.accounts.Get(accountNumber)
	if err != nil {
		return nil, err
	}
	if err := e.accounts.Close(accountNumber); err != nil {
		return nil, err
	}

	if err := e.flush(ctx); err != nil {
		e.accounts.restore(*before)
		return nil, err
	}

	zap.L().Info("Account closed", zap.String("account_number", accountNumber))
	return e.accounts.Get(accountNumber)
}

// ListAccounts returns every account. Administrative: no authentication.
func (e *Engine) ListAccounts() []models.Account {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.accounts.List()
}

// TotalBalance sums every account balance. Successful transfers must leave
// this unchanged.
func (e *Engine) TotalBalance() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := decimal.Zero
	for _, acct := range e.accounts.List() {
		total = total.Add(acct.Balance)
	}
	return total
}

// flush writes the complete current state through the adapter. Callers roll
// back their in-memory mutation when this fails.
func (e *Engine) flush(ctx context.Context) error {
	state := storage.State{
		Accounts:     e.accounts.Snapshot(),
		Transactions: e.log.Snapshot(),
	}
	if err := e.store.Flush(ctx, state); err != nil {
		zap.L().Error("Flush failed, rolling back in-memory state", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
