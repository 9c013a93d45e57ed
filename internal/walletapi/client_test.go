package walletapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apptypes "gitlab.com/mcosta87/cripto_bot/pkg/types"
)

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/users/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@example.com", body["email"])
		assert.Equal(t, "secret", body["password"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"walletId": "w1",
			"name":     "Ana",
			"message":  "Login efetuado com sucesso",
		})
	}))
	defer srv.Close()

	client := New(srv.URL)
	resp, err := client.Login(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, "w1", resp.WalletID)
	assert.Equal(t, "Ana", resp.DisplayName())
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Credenciais inválidas."})
	}))
	defer srv.Close()

	client := New(srv.URL)
	resp, err := client.Login(context.Background(), "ana@example.com", "wrong")
	require.Error(t, err)
	assert.Nil(t, resp)

	apiErr, ok := err.(*APIError)
	require.True(t, ok, "expected *APIError, got %T", err)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Credenciais inválidas.", apiErr.Message)
}

func TestRegister_SendsPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/users", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Ana", body["name"])
		assert.Equal(t, "ana@example.com", body["email"])
		assert.Equal(t, "secret", body["password"])

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(srv.URL)
	require.NoError(t, client.Register(context.Background(), "Ana", "ana@example.com", "secret"))
}

func TestWalletBalance_DecodesSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/wallet/balance/w1", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"keyId": "w1",
			"usdBalance": 120.5,
			"bitcoinBalance": 0.5,
			"dogecoinBalance": 0,
			"xrpBalance": 2,
			"criptosCompradas": [{"nome": "Bitcoin", "precoAtual": 97000}]
		}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	wallet, err := client.WalletBalance(context.Background(), "w1")
	require.NoError(t, err)

	assert.Equal(t, "w1", wallet.KeyID)
	assert.Equal(t, 120.5, wallet.UsdBalance)
	assert.Equal(t, 0.5, wallet.BitcoinBalance)
	assert.Equal(t, 2.0, wallet.XrpBalance)
	require.Len(t, wallet.CriptosCompradas, 1)
	assert.Equal(t, "Bitcoin", wallet.CriptosCompradas[0].Nome)
}

func TestLivePrices_NormalizesAndSorts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/criptos/live-prices", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"nome": "Dogecoin", "precoAtual": 0.1},
			{"nome": "Bitcoin", "precoAtual": 97000},
			{"nome": "Solana", "precoAtual": 150}
		]`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	coins, err := client.LivePrices(context.Background())
	require.NoError(t, err)
	require.Len(t, coins, 3)

	// ordered by price descending
	assert.Equal(t, "Bitcoin", coins[0].Nome)
	assert.Equal(t, "Solana", coins[1].Nome)
	assert.Equal(t, "Dogecoin", coins[2].Nome)

	// known coins get table metadata
	assert.Equal(t, "BTC", coins[0].Sigla)
	assert.Equal(t, "https://cryptologos.cc/logos/bitcoin-btc-logo.png", coins[0].ImageURL)

	// unknown coins fall back to upper-cased name and placeholder image
	assert.Equal(t, "SOLANA", coins[1].Sigla)
	assert.Equal(t, apptypes.PlaceholderImageURL, coins[1].ImageURL)
}

func TestAddFunds_QueryParamsAndBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/wallet/add-funds/w1", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("amount"))
		assert.Equal(t, "USD", r.URL.Query().Get("currency"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]float64{"usdBalance": 170.5})
	}))
	defer srv.Close()

	client := New(srv.URL)
	balance, err := client.AddFunds(context.Background(), "w1", 50)
	require.NoError(t, err)
	assert.Equal(t, 170.5, balance)
}

func TestBuyCrypto_QueryParams(t *testing.T) {
	var gotPath, gotNome, gotQty string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotNome = r.URL.Query().Get("criptoNome")
		gotQty = r.URL.Query().Get("quantidade")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(srv.URL)
	require.NoError(t, client.BuyCrypto(context.Background(), "w1", "Bitcoin", 0.25))

	assert.Equal(t, "/api/wallet/w1/buy-crypto", gotPath)
	assert.Equal(t, "Bitcoin", gotNome)
	assert.Equal(t, "0.25", gotQty)
}

func TestSellCrypto_QueryParams(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(srv.URL)
	require.NoError(t, client.SellCrypto(context.Background(), "w1", "XRP", 2))
	assert.Equal(t, "/api/wallet/w1/sell-crypto", gotPath)
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(srv.URL, WithTimeout(20*time.Millisecond))
	_, err := client.LivePrices(context.Background())
	require.Error(t, err, "an unresponsive backend must fail, not hang")
}

func TestServerMessage_FallsBackToRawBody(t *testing.T) {
	assert.Equal(t, "upstream exploded", serverMessage([]byte("upstream exploded")))
	assert.Equal(t, "boom", serverMessage([]byte(`{"message": "boom"}`)))
}
