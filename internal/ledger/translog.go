package ledger

import (
	"time"

	"dummy-bank-go/internal/models"

	"github.com/shopspring/decimal"
)

// TransactionLog is the append-only record of every balance-affecting event.
// Entries are never updated or deleted, and id order equals chronological
// order. Like AccountStore, it relies on the Engine for serialization.
type TransactionLog struct {
	entries []models.Transaction
	nextID  int64
}

func NewTransactionLog() *TransactionLog {
	return &TransactionLog{nextID: 1}
}

// Append assigns the next id and records the entry. The resulting balance is
// the account's balance immediately after the event, snapshotted so history
// queries never replay the log.
func (l *TransactionLog) Append(accountNumber string, txType models.TransactionType,
	amount decimal.Decimal, description, relatedAccount string,
	resultingBalance decimal.Decimal) models.Transaction {

	now := time.Now()
	entry := models.Transaction{
		ID:               l.nextID,
		AccountNumber:    accountNumber,
		TransactionType:  txType,
		Amount:           amount,
		Description:      description,
		RelatedAccount:   relatedAccount,
		ResultingBalance: resultingBalance,
		Timestamp:        now,
		Date:             now.Format("2006-01-02"),
	}
	l.nextID++
	l.entries = append(l.entries, entry)
	return entry
}

// History returns the account's entries most-recent-first. A limit <= 0
// returns everything.
func (l *TransactionLog) History(accountNumber string, limit int) []models.Transaction {
	var out []models.Transaction
	// entries are in ascending id order; walk backwards for recency
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].AccountNumber != accountNumber {
			continue
		}
		out = append(out, l.entries[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Len reports the total number of entries across all accounts.
func (l *TransactionLog) Len() int {
	return len(l.entries)
}

// Snapshot exports the full log in id order for persistence.
func (l *TransactionLog) Snapshot() []models.Transaction {
	out := make([]models.Transaction, len(l.entries))
	copy(out, l.entries)
	return out
}

// Restore replaces the log from persisted state. The id counter continues
// from the highest persisted id, so ids are never reused after a restart.
func (l *TransactionLog) Restore(entries []models.Transaction) {
	l.entries = make([]models.Transaction, len(entries))
	copy(l.entries, entries)
	l.nextID = 1
	for _, e := range entries {
		if e.ID >= l.nextID {
			l.nextID = e.ID + 1
		}
	}
}

// rollback drops the n most recently appended entries and rewinds the id
// counter. Only the Engine calls this, and only when a flush failed after an
// append; the log stays append-only from every caller's perspective.
func (l *TransactionLog) rollback(n int) {
	if n <= 0 || n > len(l.entries) {
		return
	}
	l.entries = l.entries[:len(l.entries)-n]
	l.nextID -= int64(n)
}
