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

package main

import (
	"context"
	"flag"
	"fmt"

	"dummy-bank-go/internal/common"
	"dummy-bank-go/internal/models"

	"go.uber.org/zap"
)

func formatDescription(desc string) string {
	if desc == "" {
		return "-"
	}
	if len(desc) > 30 {
		return desc[:27] + "..."
	}
	return desc
}

func printTransaction(tx models.Transaction, isLast bool) {
	symbol := common.BoxPrefix(isLast)
	fmt.Printf("%s #%-6d %-12s %15s  balance: %15s  %s  %s\n",
		symbol,
		tx.ID,
		tx.TransactionType,
		tx.Amount.String(),
		tx.ResultingBalance.String(),
		tx.Timestamp.Format("2006-01-02 15:04:05"),
		formatDescription(tx.Description))
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	accountFlag := flag.String("account", "", "Account number (required)")
	passwordFlag := flag.String("password", "", "Account password (required)")
	limitFlag := flag.Int("limit", 0, "Maximum number of transactions to show (0 = all)")
	flag.Parse()

	if *accountFlag == "" || *passwordFlag == "" {
		zap.L().Fatal("Required flags: --account and --password")
	}

	services, err := common.InitializeServices(ctx)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	acct, err := services.Engine.AccountInfo(*accountFlag, *passwordFlag)
	if err != nil {
		zap.L().Fatal("Failed to load account", zap.Error(err))
	}

	entries, err := services.Engine.History(*accountFlag, *passwordFlag, *limitFlag)
	if err != nil {
		zap.L().Fatal("Failed to load transaction history", zap.Error(err))
	}

	fmt.Printf("\n┌─ Account: %s (%s)\n", acct.AccountNumber, acct.Name)
	fmt.Printf("│  Balance: %s\n", acct.Balance.String())
	fmt.Printf("│  Status:  %s\n", acct.Status)
	fmt.Printf("│  Transactions: %d\n", len(entries))
	common.PrintBoxSeparator(78)

	if len(entries) == 0 {
		fmt.Println("└─ No transactions recorded")
	} else {
		for i, tx := range entries {
			printTransaction(tx, i == len(entries)-1)
		}
	}
	fmt.Println()
}
