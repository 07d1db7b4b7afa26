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
	"net/http"

	"dummy-bank-go/internal/ledger"
	"dummy-bank-go/internal/models"

	"github.com/go-chi/chi/v5"
)

// NewRouter assembles the HTTP surface. Account creation, login and health
// are open; everything touching an existing account requires a bearer token.
func NewRouter(engine *ledger.Engine, auth models.AuthConfig) http.Handler {
	h := NewHandler(engine, auth)

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(RequestLogger)

	r.Get("/health", h.Health)
	r.Post("/accounts", h.CreateAccount)
	r.Post("/auth/login", h.Login)
	r.Get("/accounts", h.ListAccounts)

	r.Group(func(r chi.Router) {
		r.Use(Authenticated(auth))

		r.Get("/accounts/{number}", h.GetAccount)
		r.Get("/accounts/{number}/balance", h.GetBalance)
		r.Get("/accounts/{number}/transactions", h.GetHistory)
		r.Post("/accounts/{number}/deposit", h.Deposit)
		r.Post("/accounts/{number}/withdraw", h.Withdraw)
		r.Post("/accounts/{number}/close", h.CloseAccount)
		r.Post("/transfers", h.Transfer)
	})

	return r
}
