package storage

import (
	"context"
	"testing"

	"dummy-bank-go/internal/models"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

func setupSQLiteAdapter(t *testing.T) *SQLiteAdapter {
	t.Helper()
	adapter, err := NewSQLiteAdapter(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteAdapter failed: %v", err)
	}
	t.Cleanup(func() { adapter.Close() })
	return adapter
}

func TestSQLiteAdapterRoundTrip(t *testing.T) {
	adapter := setupSQLiteAdapter(t)
	ctx := context.Background()

	state := testState(t)
	if err := adapter.Flush(ctx, state); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	loaded, err := adapter.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertStateEqual(t, state, loaded)
}

func TestSQLiteAdapterFlushIsIdempotentForLog(t *testing.T) {
	adapter := setupSQLiteAdapter(t)
	ctx := context.Background()

	state := testState(t)
	if err := adapter.Flush(ctx, state); err != nil {
		t.Fatalf("First flush failed: %v", err)
	}

	// Flushing the same state again must not duplicate log rows
	if err := adapter.Flush(ctx, state); err != nil {
		t.Fatalf("Second flush failed: %v", err)
	}
	loaded, err := adapter.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Transactions) != len(state.Transactions) {
		t.Errorf("Expected %d transactions, got %d", len(state.Transactions), len(loaded.Transactions))
	}
}

func TestSQLiteAdapterAppendsOnlyNewRecords(t *testing.T) {
	adapter := setupSQLiteAdapter(t)
	ctx := context.Background()

	state := testState(t)
	if err := adapter.Flush(ctx, state); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	// Balance changes and one new log record
	acct := state.Accounts["1000000001"]
	acct.Balance = decimal.RequireFromString("960.50")
	state.Accounts["1000000001"] = acct
	state.Transactions = append(state.Transactions, models.Transaction{
		ID:               3,
		AccountNumber:    "1000000001",
		TransactionType:  models.TypeDeposit,
		Amount:           decimal.RequireFromString("10"),
		Description:      "Deposit",
		RelatedAccount:   "1000000001",
		ResultingBalance: decimal.RequireFromString("960.50"),
		Timestamp:        state.Transactions[0].Timestamp,
		Date:             "2024-03-01",
	})

	if err := adapter.Flush(ctx, state); err != nil {
		t.Fatalf("Second flush failed: %v", err)
	}

	loaded, err := adapter.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Transactions) != 3 {
		t.Fatalf("Expected 3 transactions, got %d", len(loaded.Transactions))
	}
	if !loaded.Accounts["1000000001"].Balance.Equal(decimal.RequireFromString("960.50")) {
		t.Errorf("Updated balance not persisted: %s", loaded.Accounts["1000000001"].Balance.String())
	}
}
