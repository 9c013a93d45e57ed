package types

import "strings"

// Wallet is the server-held snapshot of a user's cash and coin balances. The
// client only displays it and requests changes; all arithmetic happens on the
// backend, so a snapshot may be stale until explicitly re-fetched.
type Wallet struct {
	KeyID            string  `json:"keyId"`
	UsdBalance       float64 `json:"usdBalance"`
	BitcoinBalance   float64 `json:"bitcoinBalance"`
	DogecoinBalance  float64 `json:"dogecoinBalance"`
	XrpBalance       float64 `json:"xrpBalance"`
	CriptosCompradas []Coin  `json:"criptosCompradas"`
}

// Holding is one per-coin balance entry of a wallet.
type Holding struct {
	Nome    string
	Sigla   string
	Balance float64
}

// Holdings lists the per-coin balances the wallet exposes as explicit fields.
// Ethereum is deliberately absent: the backend has no ethBalance field yet.
func (w *Wallet) Holdings() []Holding {
	return []Holding{
		{Nome: "Bitcoin", Sigla: "BTC", Balance: w.BitcoinBalance},
		{Nome: "Dogecoin", Sigla: "DOGE", Balance: w.DogecoinBalance},
		{Nome: "XRP", Sigla: "XRP", Balance: w.XrpBalance},
	}
}

// HeldBalance returns the quantity of a coin the wallet holds, matched by
// name case-insensitively. Coins without an explicit balance field report 0.
func (w *Wallet) HeldBalance(coinName string) float64 {
	for _, h := range w.Holdings() {
		if strings.EqualFold(h.Nome, coinName) {
			return h.Balance
		}
	}
	return 0
}

type LoginResponse struct {
	WalletID string `json:"walletId"`
	Name     string `json:"name"`
	Message  string `json:"message"`
}

// DisplayName prefers the returned name; some backend responses carry the
// greeting in the message field instead.
func (r *LoginResponse) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Message
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type DepositResponse struct {
	UsdBalance float64 `json:"usdBalance"`
}
