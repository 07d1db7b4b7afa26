package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"dummy-bank-go/internal/ledger"

	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	if rid := RequestIDFromContext(r.Context()); rid != "" {
		w.Header().Set(requestIDHeader, rid)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("Failed to encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorResponse{Error: msg})
}

// writeLedgerError maps ledger errors onto HTTP status codes. The error text
// shown to the client is the sentinel's own message; internal detail stays in
// the logs.
func writeLedgerError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount), errors.Is(err, ledger.ErrInvalidTransfer):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, ledger.ErrAuthenticationFailed):
		writeError(w, r, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ledger.ErrNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrInsufficientFunds), errors.Is(err, ledger.ErrAccountClosed):
		writeError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, ledger.ErrPersistence):
		zap.L().Error("Persistence failure surfaced to API", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "persistence failure")
	default:
		zap.L().Error("Unexpected ledger error", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
