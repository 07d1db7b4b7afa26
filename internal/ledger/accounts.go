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
	"fmt"
	"sort"
	"strconv"
	"time"

	"dummy-bank-go/internal/credential"
	"dummy-bank-go/internal/models"

	"github.com/shopspring/decimal"
)

// Account numbers are sequential starting here, like real-looking ten-digit
// numbers. The counter is rebuilt from the highest persisted number on load,
// so numbers are never reused across restarts.
const firstAccountNumber int64 = 1000000001

// AccountStore owns every account record. It is not safe for concurrent use
// on its own; the Engine serializes all access under its mutex.
type AccountStore struct {
	hasher     credential.Hasher
	accounts   map[string]*models.Account
	nextNumber int64
}

func NewAccountStore(hasher credential.Hasher) *AccountStore {
	return &AccountStore{
		hasher:     hasher,
		accounts:   make(map[string]*models.Account),
		nextNumber: firstAccountNumber,
	}
}

// Create registers a new account with a hashed credential. The initial
// balance may be zero but never negative.
func (s *AccountStore) Create(name string, initialBalance decimal.Decimal, password string) (*models.Account, error) {
	if initialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance cannot be negative", ErrInvalidAmount)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	number := strconv.FormatInt(s.nextNumber, 10)
	s.nextNumber++

	acct := &models.Account{
		AccountNumber: number,
		Name:          name,
		Balance:       initialBalance,
		PasswordHash:  hash,
		CreatedDate:   time.Now(),
		Status:        models.AccountActive,
	}
	s.accounts[number] = acct

	cp := *acct
	return &cp, nil
}

// Get returns a copy of the account, never an internal pointer.
func (s *AccountStore) Get(number string) (*models.Account, error) {
	acct, ok := s.accounts[number]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *acct
	return &cp, nil
}

// Authenticate reports whether the password matches the stored hash. An
// unknown account number fails the same way a wrong password does, so the
// caller cannot probe for existing accounts.
func (s *AccountStore) Authenticate(number, password string) bool {
	acct, ok := s.accounts[number]
	if !ok {
		return false
	}
	return s.hasher.Compare(acct.PasswordHash, password)
}

// SetBalance writes a new balance. The non-negative invariant is enforced
// here as the last line of defense even though the engine validates first.
func (s *AccountStore) SetBalance(number string, balance decimal.Decimal) error {
	acct, ok := s.accounts[number]
	if !ok {
		return ErrNotFound
	}
	if balance.IsNegative() {
		return fmt.Errorf("%w: balance cannot go negative", ErrInvalidAmount)
	}
	acct.Balance = balance
	return nil
}

// Close marks the account closed. Closed accounts reject every further
// mutating operation but remain readable.
func (s *AccountStore) Close(number string) error {
	acct, ok := s.accounts[number]
	if !ok {
		return ErrNotFound
	}
	if acct.Status == models.AccountClosed {
		return ErrAccountClosed
	}
	acct.Status = models.AccountClosed
	return nil
}

// List returns copies of all accounts ordered by account number.
func (s *AccountStore) List() []models.Account {
	out := make([]models.Account, 0, len(s.accounts))
	for _, acct := range s.accounts {
		out = append(out, *acct)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AccountNumber < out[j].AccountNumber
	})
	return out
}

// Snapshot exports the store for persistence.
func (s *AccountStore) Snapshot() map[string]models.Account {
	out := make(map[string]models.Account, len(s.accounts))
	for number, acct := range s.accounts {
		out[number] = *acct
	}
	return out
}

// Restore replaces the store contents from persisted state and rebuilds the
// account number counter from the highest number seen.
func (s *AccountStore) Restore(accounts map[string]models.Account) {
	s.accounts = make(map[string]*models.Account, len(accounts))
	s.nextNumber = firstAccountNumber
	for number, acct := range accounts {
		cp := acct
		s.accounts[number] = &cp
		if n, err := strconv.ParseInt(number, 10, 64); err == nil && n >= s.nextNumber {
			s.nextNumber = n + 1
		}
	}
}

// remove deletes a just-created account during rollback of a failed flush.
// It is not part of the store contract; accounts are otherwise never deleted.
func (s *AccountStore) remove(number string) {
	delete(s.accounts, number)
	if n, err := strconv.ParseInt(number, 10, 64); err == nil && n == s.nextNumber-1 {
		s.nextNumber = n
	}
}

// restore puts back a previous account value during rollback.
func (s *AccountStore) restore(acct models.Account) {
	cp := acct
	s.accounts[acct.AccountNumber] = &cp
}
