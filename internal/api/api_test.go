package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dummy-bank-go/internal/credential"
	"dummy-bank-go/internal/ledger"
	"dummy-bank-go/internal/models"
	"dummy-bank-go/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func testAuthConfig() models.AuthConfig {
	return models.AuthConfig{
		HashScheme: "sha256",
		JWTSecret:  "test-secret",
		TokenTTL:   time.Hour,
	}
}

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	hasher, err := credential.NewHasher("sha256")
	require.NoError(t, err)

	engine, err := ledger.NewEngine(context.Background(), storage.NewMemoryAdapter(), hasher)
	require.NoError(t, err)

	server := httptest.NewServer(NewRouter(engine, testAuthConfig()))
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url, token string, body any) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, url, token string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func createTestAccount(t *testing.T, server *httptest.Server, name, deposit, password string) string {
	t.Helper()

	resp := postJSON(t, server.URL+"/accounts", "", map[string]any{
		"name":            name,
		"initial_deposit": deposit,
		"password":        password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created accountResponse
	decodeBody(t, resp, &created)
	return created.AccountNumber
}

func loginTestAccount(t *testing.T, server *httptest.Server, accountNumber, password string) string {
	t.Helper()

	resp := postJSON(t, server.URL+"/auth/login", "", map[string]string{
		"account_number": accountNumber,
		"password":       password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login loginResponse
	decodeBody(t, resp, &login)
	require.NotEmpty(t, login.Token)
	return login.Token
}

func TestHealth(t *testing.T) {
	server := setupTestServer(t)

	resp := getJSON(t, server.URL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestCreateAccount(t *testing.T) {
	server := setupTestServer(t)

	resp := postJSON(t, server.URL+"/accounts", "", map[string]any{
		"name":            "Alice",
		"initial_deposit": "1000",
		"password":        "alicepw",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created accountResponse
	decodeBody(t, resp, &created)
	assert.Equal(t, "1000000001", created.AccountNumber)
	assert.Equal(t, "Alice", created.Name)
	assert.Equal(t, "active", created.Status)
	assert.True(t, created.Balance.Equal(mustDecimal(t, "1000")))
}

func TestCreateAccountRejectsMissingFields(t *testing.T) {
	server := setupTestServer(t)

	resp := postJSON(t, server.URL+"/accounts", "", map[string]any{
		"name": "NoPassword",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateAccountRejectsNegativeDeposit(t *testing.T) {
	server := setupTestServer(t)

	resp := postJSON(t, server.URL+"/accounts", "", map[string]any{
		"name":            "Negative",
		"initial_deposit": "-5",
		"password":        "pw",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginWithWrongPassword(t *testing.T) {
	server := setupTestServer(t)
	number := createTestAccount(t, server, "Alice", "100", "alicepw")

	resp := postJSON(t, server.URL+"/auth/login", "", map[string]string{
		"account_number": number,
		"password":       "wrong",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	server := setupTestServer(t)
	number := createTestAccount(t, server, "Alice", "100", "alicepw")

	resp := getJSON(t, server.URL+"/accounts/"+number+"/balance", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = getJSON(t, server.URL+"/accounts/"+number+"/balance", "not-a-token")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTokenScopedToOwnAccount(t *testing.T) {
	server := setupTestServer(t)
	alice := createTestAccount(t, server, "Alice", "100", "alicepw")
	bob := createTestAccount(t, server, "Bob", "100", "bobpw")
	aliceToken := loginTestAccount(t, server, alice, "alicepw")

	resp := getJSON(t, server.URL+"/accounts/"+bob+"/balance", aliceToken)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = postJSON(t, server.URL+"/transfers", aliceToken, map[string]any{
		"from_account": bob,
		"to_account":   alice,
		"amount":       "10",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDepositAndWithdraw(t *testing.T) {
	server := setupTestServer(t)
	number := createTestAccount(t, server, "Alice", "1000", "alicepw")
	token := loginTestAccount(t, server, number, "alicepw")

	resp := postJSON(t, server.URL+"/accounts/"+number+"/deposit", token, map[string]any{
		"amount":      "250",
		"description": "Paycheck",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var deposit mutationResponse
	decodeBody(t, resp, &deposit)
	assert.Equal(t, "deposit", deposit.TransactionType)
	assert.True(t, deposit.NewBalance.Equal(mustDecimal(t, "1250")))

	resp = postJSON(t, server.URL+"/accounts/"+number+"/withdraw", token, map[string]any{
		"amount": "100",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var withdraw mutationResponse
	decodeBody(t, resp, &withdraw)
	assert.Equal(t, "withdrawal", withdraw.TransactionType)
	assert.True(t, withdraw.NewBalance.Equal(mustDecimal(t, "1150")))
	assert.Greater(t, withdraw.TransactionID, deposit.TransactionID)
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	server := setupTestServer(t)
	number := createTestAccount(t, server, "Alice", "50", "alicepw")
	token := loginTestAccount(t, server, number, "alicepw")

	resp := postJSON(t, server.URL+"/accounts/"+number+"/withdraw", token, map[string]any{
		"amount": "100",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestDepositRejectsZeroAmount(t *testing.T) {
	server := setupTestServer(t)
	number := createTestAccount(t, server, "Alice", "50", "alicepw")
	token := loginTestAccount(t, server, number, "alicepw")

	resp := postJSON(t, server.URL+"/accounts/"+number+"/deposit", token, map[string]any{
		"amount": "0",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTransfer(t *testing.T) {
	server := setupTestServer(t)
	alice := createTestAccount(t, server, "Alice", "1000", "alicepw")
	bob := createTestAccount(t, server, "Bob", "500", "bobpw")
	token := loginTestAccount(t, server, alice, "alicepw")

	resp := postJSON(t, server.URL+"/transfers", token, map[string]any{
		"from_account": alice,
		"to_account":   bob,
		"amount":       "200",
		"description":  "Rent",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var transfer transferResponse
	decodeBody(t, resp, &transfer)
	assert.True(t, transfer.FromBalance.Equal(mustDecimal(t, "800")))
	assert.True(t, transfer.ToBalance.Equal(mustDecimal(t, "700")))
	assert.Equal(t, transfer.TransactionIDOut+1, transfer.TransactionIDIn)
}

func TestTransferToUnknownAccount(t *testing.T) {
	server := setupTestServer(t)
	alice := createTestAccount(t, server, "Alice", "1000", "alicepw")
	token := loginTestAccount(t, server, alice, "alicepw")

	resp := postJSON(t, server.URL+"/transfers", token, map[string]any{
		"from_account": alice,
		"to_account":   "9999999999",
		"amount":       "10",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTransferToSelfRejected(t *testing.T) {
	server := setupTestServer(t)
	alice := createTestAccount(t, server, "Alice", "1000", "alicepw")
	token := loginTestAccount(t, server, alice, "alicepw")

	resp := postJSON(t, server.URL+"/transfers", token, map[string]any{
		"from_account": alice,
		"to_account":   alice,
		"amount":       "10",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHistory(t *testing.T) {
	server := setupTestServer(t)
	number := createTestAccount(t, server, "Alice", "1000", "alicepw")
	token := loginTestAccount(t, server, number, "alicepw")

	for i := 0; i < 3; i++ {
		resp := postJSON(t, server.URL+"/accounts/"+number+"/deposit", token, map[string]any{
			"amount": fmt.Sprintf("%d", (i+1)*10),
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp := getJSON(t, server.URL+"/accounts/"+number+"/transactions", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var history historyResponse
	decodeBody(t, resp, &history)
	// initial deposit plus three deposits, newest first
	require.Equal(t, 4, history.TotalTransactions)
	assert.True(t, history.Transactions[0].Amount.Equal(mustDecimal(t, "30")))

	resp = getJSON(t, server.URL+"/accounts/"+number+"/transactions?limit=2", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &history)
	assert.Equal(t, 2, history.TotalTransactions)

	resp = getJSON(t, server.URL+"/accounts/"+number+"/transactions?limit=abc", token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCloseAccount(t *testing.T) {
	server := setupTestServer(t)
	number := createTestAccount(t, server, "Alice", "0", "alicepw")
	token := loginTestAccount(t, server, number, "alicepw")

	resp := postJSON(t, server.URL+"/accounts/"+number+"/close", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var closed accountResponse
	decodeBody(t, resp, &closed)
	assert.Equal(t, "closed", closed.Status)

	resp = postJSON(t, server.URL+"/accounts/"+number+"/deposit", token, map[string]any{
		"amount": "10",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestListAccounts(t *testing.T) {
	server := setupTestServer(t)
	createTestAccount(t, server, "Alice", "1000", "alicepw")
	createTestAccount(t, server, "Bob", "500", "bobpw")

	resp := getJSON(t, server.URL+"/accounts", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list listAccountsResponse
	decodeBody(t, resp, &list)
	assert.Equal(t, 2, list.TotalAccounts)
	assert.Len(t, list.Accounts, 2)
	assert.True(t, list.TotalBalance.Equal(mustDecimal(t, "1500")))
}

func TestGetAccountInfo(t *testing.T) {
	server := setupTestServer(t)
	number := createTestAccount(t, server, "Alice", "1000", "alicepw")
	token := loginTestAccount(t, server, number, "alicepw")

	resp := getJSON(t, server.URL+"/accounts/"+number, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var info accountResponse
	decodeBody(t, resp, &info)
	assert.Equal(t, "Alice", info.Name)
	assert.NotEmpty(t, info.CreatedDate)
}
