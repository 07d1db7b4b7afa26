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

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"dummy-bank-go/internal/ledger"
	"dummy-bank-go/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// Handler exposes the ledger engine over HTTP. It owns no state of its own:
// every request authenticates and executes through the engine.
type Handler struct {
	engine *ledger.Engine
	auth   models.AuthConfig
}

func NewHandler(engine *ledger.Engine, auth models.AuthConfig) *Handler {
	return &Handler{engine: engine, auth: auth}
}

type createAccountRequest struct {
	Name           string          `json:"name"`
	InitialDeposit decimal.Decimal `json:"initial_deposit"`
	Password       string          `json:"password"`
}

type accountResponse struct {
	AccountNumber string          `json:"account_number"`
	Name          string          `json:"name"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedDate   string          `json:"created_date"`
	Status        string          `json:"status"`
}

func toAccountResponse(acct models.Account) accountResponse {
	return accountResponse{
		AccountNumber: acct.AccountNumber,
		Name:          acct.Name,
		Balance:       acct.Balance,
		CreatedDate:   acct.CreatedDate.Format("2006-01-02T15:04:05Z07:00"),
		Status:        string(acct.Status),
	}
}

func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Password == "" {
		writeError(w, r, http.StatusBadRequest, "name and password are required")
		return
	}

	result, err := h.engine.CreateAccount(r.Context(), req.Name, req.InitialDeposit, req.Password)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toAccountResponse(result.Account))
}

type loginRequest struct {
	AccountNumber string `json:"account_number"`
	Password      string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	// Verify the credential through the engine before issuing anything
	if _, err := h.engine.Balance(req.AccountNumber, req.Password); err != nil {
		writeLedgerError(w, r, err)
		return
	}

	token, err := IssueToken(h.auth, req.AccountNumber, req.Password)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to create token")
		return
	}
	writeJSON(w, r, http.StatusOK, loginResponse{Token: token})
}

// session returns the verified session, additionally checking that the token
// belongs to the account in the URL. A valid token for one account must not
// operate on another.
func (h *Handler) session(w http.ResponseWriter, r *http.Request, accountNumber string) (Session, bool) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "missing session")
		return Session{}, false
	}
	if accountNumber != "" && sess.AccountNumber != accountNumber {
		writeError(w, r, http.StatusForbidden, "token does not match account")
		return Session{}, false
	}
	return sess, true
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	sess, ok := h.session(w, r, number)
	if !ok {
		return
	}

	acct, err := h.engine.AccountInfo(number, sess.Password)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toAccountResponse(*acct))
}

type balanceResponse struct {
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
}

func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	sess, ok := h.session(w, r, number)
	if !ok {
		return
	}

	balance, err := h.engine.Balance(number, sess.Password)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, balanceResponse{AccountNumber: number, Balance: balance})
}

type amountRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type mutationResponse struct {
	AccountNumber   string          `json:"account_number"`
	TransactionType string          `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount"`
	NewBalance      decimal.Decimal `json:"new_balance"`
	TransactionID   int64           `json:"transaction_id"`
}

type mutationFunc func(ctx context.Context, accountNumber string, amount decimal.Decimal, password, description string) (*ledger.OperationResult, error)

func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.engine.Deposit)
}

func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.engine.Withdraw)
}

func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, op mutationFunc) {
	number := chi.URLParam(r, "number")
	sess, ok := h.session(w, r, number)
	if !ok {
		return
	}

	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := op(r.Context(), number, req.Amount, sess.Password, req.Description)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, mutationResponse{
		AccountNumber:   result.Account.AccountNumber,
		TransactionType: string(result.Transaction.TransactionType),
		Amount:          result.Transaction.Amount,
		NewBalance:      result.Account.Balance,
		TransactionID:   result.Transaction.ID,
	})
}

type transferRequest struct {
	FromAccount string          `json:"from_account"`
	ToAccount   string          `json:"to_account"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type transferResponse struct {
	FromAccount      string          `json:"from_account"`
	ToAccount        string          `json:"to_account"`
	Amount           decimal.Decimal `json:"amount"`
	FromBalance      decimal.Decimal `json:"from_balance"`
	ToBalance        decimal.Decimal `json:"to_balance"`
	TransactionIDOut int64           `json:"transaction_id_out"`
	TransactionIDIn  int64           `json:"transaction_id_in"`
}

func (h *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, ok := h.session(w, r, req.FromAccount)
	if !ok {
		return
	}

	result, err := h.engine.Transfer(r.Context(), req.FromAccount, req.ToAccount, req.Amount, sess.Password, req.Description)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, transferResponse{
		FromAccount:      result.FromAccount.AccountNumber,
		ToAccount:        result.ToAccount.AccountNumber,
		Amount:           result.OutTransaction.Amount,
		FromBalance:      result.FromAccount.Balance,
		ToBalance:        result.ToAccount.Balance,
		TransactionIDOut: result.OutTransaction.ID,
		TransactionIDIn:  result.InTransaction.ID,
	})
}

type historyResponse struct {
	AccountNumber     string               `json:"account_number"`
	Transactions      []models.Transaction `json:"transactions"`
	TotalTransactions int                  `json:"total_transactions"`
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	sess, ok := h.session(w, r, number)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, r, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	entries, err := h.engine.History(number, sess.Password, limit)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	if entries == nil {
		entries = []models.Transaction{}
	}
	writeJSON(w, r, http.StatusOK, historyResponse{
		AccountNumber:     number,
		Transactions:      entries,
		TotalTransactions: len(entries),
	})
}

func (h *Handler) CloseAccount(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	sess, ok := h.session(w, r, number)
	if !ok {
		return
	}

	acct, err := h.engine.CloseAccount(r.Context(), number, sess.Password)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toAccountResponse(*acct))
}

type listAccountsResponse struct {
	Accounts      []accountResponse `json:"accounts"`
	TotalAccounts int               `json:"total_accounts"`
	TotalBalance  decimal.Decimal   `json:"total_balance"`
}

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts := h.engine.ListAccounts()
	out := make([]accountResponse, 0, len(accounts))
	for _, acct := range accounts {
		out = append(out, toAccountResponse(acct))
	}
	writeJSON(w, r, http.StatusOK, listAccountsResponse{
		Accounts:      out,
		TotalAccounts: len(out),
		TotalBalance:  h.engine.TotalBalance(),
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
