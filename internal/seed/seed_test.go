package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"dummy-bank-go/internal/credential"
	"dummy-bank-go/internal/ledger"
	"dummy-bank-go/internal/storage"

	"github.com/shopspring/decimal"
)

const testSeed = `accounts:
  - name: Test User 1
    balance: "1000.00"
    password: password123
  - name: Test User 2
    balance: "500.00"
    password: password123
`

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestRunCreatesAccounts(t *testing.T) {
	ctx := context.Background()
	engine, err := ledger.NewEngine(ctx, storage.NewMemoryAdapter(), credential.SHA256Hasher{})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	if err := Run(ctx, engine, writeSeedFile(t, testSeed)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	accounts := engine.ListAccounts()
	if len(accounts) != 2 {
		t.Fatalf("Expected 2 accounts, got %d", len(accounts))
	}
	if !accounts[0].Balance.Equal(decimal.RequireFromString("1000.00")) {
		t.Errorf("Expected balance 1000.00, got %s", accounts[0].Balance.String())
	}

	// Seeded accounts authenticate with the seed password
	if _, err := engine.Balance(accounts[0].AccountNumber, "password123"); err != nil {
		t.Errorf("Seeded credential rejected: %v", err)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	engine, err := ledger.NewEngine(ctx, storage.NewMemoryAdapter(), credential.SHA256Hasher{})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	path := writeSeedFile(t, testSeed)
	if err := Run(ctx, engine, path); err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	if err := Run(ctx, engine, path); err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if got := len(engine.ListAccounts()); got != 2 {
		t.Errorf("Expected 2 accounts after reseeding, got %d", got)
	}
}

func TestRunRejectsBadBalance(t *testing.T) {
	ctx := context.Background()
	engine, err := ledger.NewEngine(ctx, storage.NewMemoryAdapter(), credential.SHA256Hasher{})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	bad := "accounts:\n  - name: Broken\n    balance: \"lots\"\n    password: pw\n"
	if err := Run(ctx, engine, writeSeedFile(t, bad)); err == nil {
		t.Error("Expected error for unparseable balance, got nil")
	}
}
