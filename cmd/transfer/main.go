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

	fromFlag := flag.String("from", "", "Source account number (required)")
	toFlag := flag.String("to", "", "Destination account number (required)")
	amountFlag := flag.String("amount", "", "Transfer amount (required)")
	passwordFlag := flag.String("password", "", "Source account password (required)")
	descriptionFlag := flag.String("description", "", "Optional transaction description")
	flag.Parse()

	if *fromFlag == "" || *toFlag == "" || *amountFlag == "" || *passwordFlag == "" {
		zap.L().Fatal("Required flags: --from, --to, --amount and --password")
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

	result, err := services.Engine.Transfer(ctx, *fromFlag, *toFlag, amount, *passwordFlag, *descriptionFlag)
	if err != nil {
		zap.L().Fatal("Transfer failed", zap.Error(err))
	}

	fmt.Println()
	common.PrintHeader("TRANSFER COMPLETE", common.DefaultWidth)
	fmt.Printf("From:           %s (%s)\n", result.FromAccount.AccountNumber, result.FromAccount.Name)
	fmt.Printf("To:             %s (%s)\n", result.ToAccount.AccountNumber, result.ToAccount.Name)
	fmt.Printf("Amount:         %s\n", result.OutTransaction.Amount.String())
	fmt.Printf("From Balance:   %s\n", result.FromAccount.Balance.String())
	fmt.Printf("To Balance:     %s\n", result.ToAccount.Balance.String())
	common.PrintSeparator("=", common.DefaultWidth)
	fmt.Println()

	zap.L().Info("Transfer recorded",
		zap.String("from_account", result.FromAccount.AccountNumber),
		zap.String("to_account", result.ToAccount.AccountNumber),
		zap.Int64("transaction_id_out", result.OutTransaction.ID),
		zap.Int64("transaction_id_in", result.InTransaction.ID))
}
