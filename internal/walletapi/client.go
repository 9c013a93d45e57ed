// Package walletapi is the HTTP client for the trading demo backend. Every
// network call the bot makes goes through here.
package walletapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"gitlab.com/mcosta87/cripto_bot/pkg/log"
	t "gitlab.com/mcosta87/cripto_bot/pkg/types"
)

const DefaultTimeout = 15 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithTimeout sets the HTTP timeout. A request that exceeds it fails like any
// other transport error; nothing is retried.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError is a non-2xx backend response. Message carries the server's
// "message" field when the body had one, else the raw body.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// serverMessage pulls the "message" field out of an error body, if present.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return string(body)
}

func (c *Client) do(ctx context.Context, method, path string, reqBody, result any) error {
	var body io.Reader
	if reqBody != nil {
		encoded, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    serverMessage(raw),
			Endpoint:   path,
		}
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Register creates a new user.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	payload := t.RegisterRequest{Name: name, Email: email, Password: password}
	return c.do(ctx, http.MethodPost, "/api/users", payload, nil)
}

// Login authenticates a user and returns the wallet id plus display name.
func (c *Client) Login(ctx context.Context, email, password string) (*t.LoginResponse, error) {
	payload := t.LoginRequest{Email: email, Password: password}
	var resp t.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/login", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// WalletBalance fetches the wallet snapshot for a wallet id.
func (c *Client) WalletBalance(ctx context.Context, walletID string) (*t.Wallet, error) {
	var wallet t.Wallet
	path := "/api/wallet/balance/" + url.PathEscape(walletID)
	if err := c.do(ctx, http.MethodGet, path, nil, &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

// LivePrices fetches the live coin list, fills in symbol/image metadata and
// sorts it by current price descending, which is the order every view shows.
func (c *Client) LivePrices(ctx context.Context) ([]t.Coin, error) {
	var coins []t.Coin
	if err := c.do(ctx, http.MethodGet, "/api/criptos/live-prices", nil, &coins); err != nil {
		return nil, err
	}

	for i := range coins {
		coins[i].Normalize()
	}
	sort.SliceStable(coins, func(i, j int) bool {
		return coins[i].PrecoAtual > coins[j].PrecoAtual
	})

	log.Infof("live prices fetched: %d coins", len(coins))
	return coins, nil
}

// AddFunds deposits USD into a wallet and returns the new balance exactly as
// the backend reports it.
func (c *Client) AddFunds(ctx context.Context, walletID string, amount float64) (float64, error) {
	params := url.Values{}
	params.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))
	params.Set("currency", "USD")

	var resp t.DepositResponse
	path := "/api/wallet/add-funds/" + url.PathEscape(walletID) + "?" + params.Encode()
	if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return 0, err
	}
	return resp.UsdBalance, nil
}

// BuyCrypto submits a buy order for a coin by name.
func (c *Client) BuyCrypto(ctx context.Context, walletID, coinName string, quantity float64) error {
	return c.trade(ctx, walletID, "buy-crypto", coinName, quantity)
}

// SellCrypto submits a sell order for a coin by name.
func (c *Client) SellCrypto(ctx context.Context, walletID, coinName string, quantity float64) error {
	return c.trade(ctx, walletID, "sell-crypto", coinName, quantity)
}

func (c *Client) trade(ctx context.Context, walletID, op, coinName string, quantity float64) error {
	params := url.Values{}
	params.Set("criptoNome", coinName)
	params.Set("quantidade", strconv.FormatFloat(quantity, 'f', -1, 64))

	path := "/api/wallet/" + url.PathEscape(walletID) + "/" + op + "?" + params.Encode()
	return c.do(ctx, http.MethodPost, path, nil, nil)
}
