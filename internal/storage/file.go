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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"dummy-bank-go/internal/models"

	"go.uber.org/zap"
)

// Compile-time check: *FileAdapter must satisfy Adapter.
var _ Adapter = (*FileAdapter)(nil)

const (
	accountsFileName     = "accounts.json"
	transactionsFileName = "transactions.json"
)

// FileAdapter persists the ledger as two JSON files inside a data directory:
// accounts.json (object keyed by account number) and transactions.json
// (array in id order). Writes go to a temp file first and are renamed into
// place, so a crash mid-write never leaves a truncated file behind.
type FileAdapter struct {
	accountsPath     string
	transactionsPath string
}

func NewFileAdapter(dataDir string) (*FileAdapter, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("data directory cannot be empty")
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create data directory: %w", err)
	}

	zap.L().Info("Using JSON file storage", zap.String("dir", dataDir))
	return &FileAdapter{
		accountsPath:     filepath.Join(dataDir, accountsFileName),
		transactionsPath: filepath.Join(dataDir, transactionsFileName),
	}, nil
}

func (a *FileAdapter) Load(_ context.Context) (State, error) {
	state := EmptyState()

	if err := readJSONFile(a.accountsPath, &state.Accounts); err != nil {
		return State{}, fmt.Errorf("unable to load accounts: %w", err)
	}
	if state.Accounts == nil {
		state.Accounts = make(map[string]models.Account)
	}

	if err := readJSONFile(a.transactionsPath, &state.Transactions); err != nil {
		return State{}, fmt.Errorf("unable to load transactions: %w", err)
	}

	// The log is kept in id order; files edited by hand may not be.
	sort.Slice(state.Transactions, func(i, j int) bool {
		return state.Transactions[i].ID < state.Transactions[j].ID
	})

	zap.L().Info("Loaded ledger state from files",
		zap.Int("accounts", len(state.Accounts)),
		zap.Int("transactions", len(state.Transactions)))
	return state, nil
}

func (a *FileAdapter) Flush(_ context.Context, state State) error {
	if err := writeJSONAtomic(a.accountsPath, state.Accounts); err != nil {
		return fmt.Errorf("unable to write accounts: %w", err)
	}
	if err := writeJSONAtomic(a.transactionsPath, state.Transactions); err != nil {
		return fmt.Errorf("unable to write transactions: %w", err)
	}
	return nil
}

func (a *FileAdapter) Close() error {
	return nil
}

// readJSONFile decodes path into out. A missing file is not an error: the
// ledger simply starts empty on first run.
func readJSONFile(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer func() {
		if err := f.Close(); err != nil {
			zap.L().Warn("Failed to close data file", zap.String("path", path), zap.Error(err))
		}
	}()
	return json.NewDecoder(f).Decode(out)
}

// writeJSONAtomic writes v to path via a temp file + rename.
func writeJSONAtomic(path string, v any) error {
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}
