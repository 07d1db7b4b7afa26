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

const (
	// Account queries
	queryGetAllAccounts = `
		SELECT account_number, name, balance, password_hash, created_date, status
		FROM accounts
		ORDER BY account_number`

	queryUpsertAccount = `
		INSERT INTO accounts (account_number, name, balance, password_hash, created_date, status)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(account_number) DO UPDATE SET
			name = excluded.name,
			balance = excluded.balance,
			password_hash = excluded.password_hash,
			status = excluded.status`

	// Transaction queries
	queryGetAllTransactions = `
		SELECT id, account_number, transaction_type, amount, description,
		       related_account, resulting_balance, timestamp, date
		FROM transactions
		ORDER BY id`

	queryGetMaxTransactionID = `
		SELECT COALESCE(MAX(id), 0) FROM transactions`

	queryInsertTransaction = `
		INSERT INTO transactions (id, account_number, transaction_type, amount, description,
		                          related_account, resulting_balance, timestamp, date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
)
