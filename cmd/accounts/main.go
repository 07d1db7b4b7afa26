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
	"fmt"

	"dummy-bank-go/internal/common"
	"dummy-bank-go/internal/models"

	"go.uber.org/zap"
)

type accountStats struct {
	total  int
	active int
	closed int
}

func printAccount(acct models.Account, isLast bool) {
	symbol := common.BoxPrefix(isLast)
	fmt.Printf("%s %s  %-20s %15s  %-7s created: %s\n",
		symbol,
		acct.AccountNumber,
		acct.Name,
		acct.Balance.String(),
		acct.Status,
		acct.CreatedDate.Format("2006-01-02"))
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	services, err := common.InitializeServices(ctx)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	accounts := services.Engine.ListAccounts()

	stats := accountStats{total: len(accounts)}
	for _, acct := range accounts {
		if acct.Status == models.AccountActive {
			stats.active++
		} else {
			stats.closed++
		}
	}

	fmt.Println()
	common.PrintHeader("ALL ACCOUNTS", common.DefaultWidth)

	if len(accounts) == 0 {
		fmt.Println("No accounts found")
	} else {
		for i, acct := range accounts {
			printAccount(acct, i == len(accounts)-1)
		}
	}

	fmt.Println()
	common.PrintHeader("SUMMARY", common.DefaultWidth)
	fmt.Printf("Total Accounts:  %d\n", stats.total)
	fmt.Printf("Active:          %d\n", stats.active)
	fmt.Printf("Closed:          %d\n", stats.closed)
	fmt.Printf("Total Balance:   %s\n", services.Engine.TotalBalance().String())
	common.PrintSeparator("=", common.DefaultWidth)
	fmt.Println()
}
