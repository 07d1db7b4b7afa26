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

// Package seed creates demo accounts from a YAML file so a fresh instance
// has something to play with. Seeding is idempotent: an owner name that
// already has an account is skipped.
package seed

import (
	"context"
	"fmt"
	"os"

	"dummy-bank-go/internal/ledger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

type seedAccount struct {
	Name     string `yaml:"name"`
	Balance  string `yaml:"balance"`
	Password string `yaml:"password"`
}

type seedFile struct {
	Accounts []seedAccount `yaml:"accounts"`
}

// Run loads the seed file and creates any missing demo accounts.
func Run(ctx context.Context, engine *ledger.Engine, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read seed file: %w", err)
	}

	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("unable to parse seed file: %w", err)
	}

	existing := make(map[string]bool)
	for _, acct := range engine.ListAccounts() {
		existing[acct.Name] = true
	}

	created := 0
	for _, entry := range file.Accounts {
		if entry.Name == "" {
			return fmt.Errorf("seed account with empty name")
		}
		if existing[entry.Name] {
			continue
		}

		balance, err := decimal.NewFromString(entry.Balance)
		if err != nil {
			return fmt.Errorf("invalid seed balance %q for %s: %w", entry.Balance, entry.Name, err)
		}

		result, err := engine.CreateAccount(ctx, entry.Name, balance, entry.Password)
		if err != nil {
			return fmt.Errorf("unable to seed account %s: %w", entry.Name, err)
		}
		created++
		zap.L().Info("Seeded demo account",
			zap.String("name", entry.Name),
			zap.String("account_number", result.Account.AccountNumber))
	}

	if created == 0 {
		zap.L().Info("Seed already applied, skipping")
	} else {
		zap.L().Info("Seeding complete", zap.Int("created", created))
	}
	return nil
}
