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

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	accountFlag := flag.String("account", "", "Account number (required)")
	amountFlag := flag.String("amount", "", "Deposit amount (required)")
	passwordFlag := flag.String("password", "", "Account password (required)")
	descriptionFlag := flag.String("description", "", "Optional transaction description")
	flag.Parse()

	if *accountFlag == "" || *amountFlag == "" || *passwordFlag == "" {
		zap.L().Fatal("Required flags: --account, --amount and --password")
	}

	amount, err := decimal.NewFromString(*amountFlag)
	if err != nil {
		zap.L().Fatal("Invalid amount", zap.String("amount", *amountFlag), zap.Error(err))
	}

	services, err := common.InitializeServices(ctx)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	result, err := services.Engine.Deposit(ctx, *accountFlag, amount, *passwordFlag, *descriptionFlag)
	if err != nil {
		zap.L().Fatal("Deposit failed", zap.Error(err))
	}

	fmt.Println()
	common.PrintHeader("DEPOSIT COMPLETE", common.DefaultWidth)
	fmt.Printf("Account:        %s\n", result.Account.AccountNumber)
	fmt.Printf("Amount:         %s\n", result.Transaction.Amount.String())
	fmt.Printf("New Balance:    %s\n", result.Account.Balance.String())
	fmt.Printf("Transaction ID: %d\n", result.Transaction.ID)
	common.PrintSeparator("=", common.DefaultWidth)
	fmt.Println()

	zap.L().Info("Deposit recorded",
		zap.String("account_number", result.Account.AccountNumber),
		zap.Int64("transaction_id", result.Transaction.ID),
		zap.String("new_balance", result.Account.Balance.String()))
}
