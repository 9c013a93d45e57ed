package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupCoinMeta(t *testing.T) {
	tests := []struct {
		name      string
		wantSigla string
		wantImage string
	}{
		{"bitcoin", "BTC", "https://cryptologos.cc/logos/bitcoin-btc-logo.png"},
		{"Bitcoin", "BTC", "https://cryptologos.cc/logos/bitcoin-btc-logo.png"},
		{"BITCOIN CASH", "BCH", "https://cryptologos.cc/logos/bitcoin-cash-bch-logo.png"},
		{"xrp", "XRP", "https://cryptologos.cc/logos/xrp-xrp-logo.png"},
		{"solana", "SOLANA", PlaceholderImageURL},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			meta := LookupCoinMeta(tc.name)
			assert.Equal(t, tc.wantSigla, meta.Sigla)
			assert.Equal(t, tc.wantImage, meta.ImageURL)
		})
	}
}

func TestCoinNormalize(t *testing.T) {
	c := Coin{Nome: "Ethereum", PrecoAtual: 3200}
	c.Normalize()
	assert.Equal(t, "ETH", c.Sigla)
	assert.Equal(t, "https://cryptologos.cc/logos/ethereum-eth-logo.png", c.ImageURL)
}

func TestCoinNormalize_KeepsServerSiglaForUnknownCoin(t *testing.T) {
	c := Coin{Nome: "Solana", Sigla: "SOL"}
	c.Normalize()
	assert.Equal(t, "SOL", c.Sigla)
	assert.Equal(t, PlaceholderImageURL, c.ImageURL)
}

func TestWalletHeldBalance(t *testing.T) {
	w := Wallet{BitcoinBalance: 0.5, XrpBalance: 2}

	assert.Equal(t, 0.5, w.HeldBalance("Bitcoin"))
	assert.Equal(t, 0.5, w.HeldBalance("bitcoin"))
	assert.Equal(t, 2.0, w.HeldBalance("XRP"))
	assert.Zero(t, w.HeldBalance("Dogecoin"))
	assert.Zero(t, w.HeldBalance("Ethereum"))
}

func TestLoginResponseDisplayName(t *testing.T) {
	withName := LoginResponse{Name: "Alice", Message: "welcome"}
	assert.Equal(t, "Alice", withName.DisplayName())

	messageOnly := LoginResponse{Message: "Welcome back"}
	assert.Equal(t, "Welcome back", messageOnly.DisplayName())
}
