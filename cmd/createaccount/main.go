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

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if len(name) < 2 {
		return fmt.Errorf("name must be at least 2 characters")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 4 {
		return fmt.Errorf("password must be at least 4 characters")
	}
	return nil
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	nameFlag := flag.String("name", "", "Account holder's full name (required)")
	depositFlag := flag.String("deposit", "0", "Initial deposit amount")
	passwordFlag := flag.String("password", "", "Account password (required)")
	flag.Parse()

	if *nameFlag == "" || *passwordFlag == "" {
		zap.L().Fatal("Both flags are required: --name and --password")
	}

	if err := validateName(*nameFlag); err != nil {
		zap.L().Fatal("Invalid name", zap.Error(err))
	}
	if err := validatePassword(*passwordFlag); err != nil {
		zap.L().Fatal("Invalid password", zap.Error(err))
	}

	deposit, err := decimal.NewFromString(*depositFlag)
	if err != nil {
		zap.L().Fatal("Invalid deposit amount", zap.String("deposit", *depositFlag), zap.Error(err))
	}

	services, err := common.InitializeServices(ctx)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	result, err := services.Engine.CreateAccount(ctx, *nameFlag, deposit, *passwordFlag)
	if err != nil {
		zap.L().Fatal("Failed to create account", zap.Error(err))
	}

	acct := result.Account

	fmt.Println()
	common.PrintHeader("ACCOUNT CREATED", common.DefaultWidth)
	fmt.Printf("Account Number: %s\n", acct.AccountNumber)
	fmt.Printf("Name:           %s\n", acct.Name)
	fmt.Printf("Balance:        %s\n", acct.Balance.String())
	fmt.Printf("Created:        %s\n", acct.CreatedDate.Format("2006-01-02 15:04:05"))
	common.PrintSeparator("=", common.DefaultWidth)
	fmt.Println()

	zap.L().Info("Account created",
		zap.String("account_number", acct.AccountNumber),
		zap.String("name", acct.Name),
		zap.String("balance", acct.Balance.String()))
}
