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

	"dummy-bank-go/internal/models"
)

// State is the full persisted picture of the ledger: every account keyed by
// account number plus the append-only transaction log in id order.
type State struct {
	Accounts     map[string]models.Account
	Transactions []models.Transaction
}

// Clone returns a copy that shares nothing with the receiver, so callers can
// hold on to loaded state without aliasing adapter internals.
func (s State) Clone() State {
	out := State{
		Accounts:     make(map[string]models.Account, len(s.Accounts)),
		Transactions: make([]models.Transaction, len(s.Transactions)),
	}
	for num, acct := range s.Accounts {
		out.Accounts[num] = acct
	}
	copy(out.Transactions, s.Transactions)
	return out
}

// EmptyState returns a ready-to-use zero state.
func EmptyState() State {
	return State{Accounts: make(map[string]models.Account)}
}

// Adapter loads ledger state at startup and flushes the complete state after
// every mutating operation (write-through). A Flush either fully replaces the
// durable copy or fails without corrupting it.
type Adapter interface {
	Load(ctx context.Context) (State, error)
	Flush(ctx context.Context, state State) error
	Close() error
}
