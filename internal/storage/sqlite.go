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

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dummy-bank-go/internal/models"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Compile-time check: *SQLiteAdapter must satisfy Adapter.
var _ Adapter = (*SQLiteAdapter)(nil)

// SQLiteAdapter keeps the ledger in a single SQLite file. Monetary amounts
// are stored as decimal strings, never as REAL, so values survive the round
// trip exactly.
type SQLiteAdapter struct {
	db *sql.DB
}

func NewSQLiteAdapter(ctx context.Context, path string) (*SQLiteAdapter, error) {
	if path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}

	zap.L().Info("Opening SQLite database", zap.String("file", path))
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	a := &SQLiteAdapter{db: db}
	if err := a.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to initialize schema: %w", err)
	}
	return a, nil
}

func (a *SQLiteAdapter) initSchema() error {
	schema := `
	-- Accounts Table (Current State - Hot Data)
	CREATE TABLE IF NOT EXISTS accounts (
		account_number TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		balance TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_date TIMESTAMP NOT NULL,
		status TEXT NOT NULL DEFAULT 'active'
	);

	CREATE INDEX IF NOT EXISTS idx_accounts_status ON accounts(status);

	-- Transactions Table (Audit Trail - Cold Data, append-only)
	CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY,
		account_number TEXT NOT NULL,
		transaction_type TEXT NOT NULL,
		amount TEXT NOT NULL,
		description TEXT,
		related_account TEXT,
		resulting_balance TEXT NOT NULL,
		timestamp TIMESTAMP NOT NULL,
		date TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions(account_number);
	CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
	`

	_, err := a.db.Exec(schema)
	return err
}

func (a *SQLiteAdapter) Load(ctx context.Context) (State, error) {
	state := EmptyState()

	rows, err := a.db.QueryContext(ctx, queryGetAllAccounts)
	if err != nil {
		return State{}, fmt.Errorf("unable to query accounts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var acct models.Account
		var balance string
		if err := rows.Scan(&acct.AccountNumber, &acct.Name, &balance,
			&acct.PasswordHash, &acct.CreatedDate, &acct.Status); err != nil {
			return State{}, fmt.Errorf("unable to scan account row: %w", err)
		}
		acct.Balance, err = decimal.NewFromString(balance)
		if err != nil {
			return State{}, fmt.Errorf("unable to parse balance %q: %w", balance, err)
		}
		state.Accounts[acct.AccountNumber] = acct
	}
	if err := rows.Err(); err != nil {
		return State{}, fmt.Errorf("error iterating account rows: %w", err)
	}

	txRows, err := a.db.QueryContext(ctx, queryGetAllTransactions)
	if err != nil {
		return State{}, fmt.Errorf("unable to query transactions: %w", err)
	}
	defer txRows.Close()

	for txRows.Next() {
		var tx models.Transaction
		var amount, resulting string
		if err := txRows.Scan(&tx.ID, &tx.AccountNumber, &tx.TransactionType, &amount,
			&tx.Description, &tx.RelatedAccount, &resulting, &tx.Timestamp, &tx.Date); err != nil {
			return State{}, fmt.Errorf("unable to scan transaction row: %w", err)
		}
		tx.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return State{}, fmt.Errorf("unable to parse amount %q: %w", amount, err)
		}
		tx.ResultingBalance, err = decimal.NewFromString(resulting)
		if err != nil {
			return State{}, fmt.Errorf("unable to parse resulting balance %q: %w", resulting, err)
		}
		state.Transactions = append(state.Transactions, tx)
	}
	if err := txRows.Err(); err != nil {
		return State{}, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	zap.L().Info("Loaded ledger state from SQLite",
		zap.Int("accounts", len(state.Accounts)),
		zap.Int("transactions", len(state.Transactions)))
	return state, nil
}

// Flush upserts every account and appends the log records the database has
// not seen yet, all inside one database transaction. Log rows already
// persisted are never touched again.
func (a *SQLiteAdapter) Flush(ctx context.Context, state State) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, acct := range state.Accounts {
		if _, err := tx.ExecContext(ctx, queryUpsertAccount,
			acct.AccountNumber, acct.Name, acct.Balance.String(),
			acct.PasswordHash, acct.CreatedDate, string(acct.Status)); err != nil {
			return fmt.Errorf("failed to upsert account %s: %w", acct.AccountNumber, err)
		}
	}

	var maxID int64
	if err := tx.QueryRowContext(ctx, queryGetMaxTransactionID).Scan(&maxID); err != nil {
		return fmt.Errorf("failed to read max transaction id: %w", err)
	}

	for _, record := range state.Transactions {
		if record.ID <= maxID {
			continue
		}
		if _, err := tx.ExecContext(ctx, queryInsertTransaction,
			record.ID, record.AccountNumber, string(record.TransactionType),
			record.Amount.String(), record.Description, record.RelatedAccount,
			record.ResultingBalance.String(), record.Timestamp, record.Date); err != nil {
			return fmt.Errorf("failed to insert transaction %d: %w", record.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit flush: %w", err)
	}
	return nil
}

func (a *SQLiteAdapter) Close() error {
	if err := a.db.Close(); err != nil {
		zap.L().Warn("Failed to close database connection", zap.Error(err))
		return err
	}
	return nil
}
