package telegram_bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	t2 "gitlab.com/mcosta87/cripto_bot/pkg/types"
)

func TestValidateTrade(t *testing.T) {
	tests := []struct {
		name    string
		action  string
		qty     float64
		price   float64
		usd     float64
		held    float64
		wantErr bool
	}{
		{"buy within balance", "buy", 1, 100, 150, 0, false},
		{"buy exactly the balance", "buy", 1.5, 100, 150, 0, false},
		{"buy over the balance", "buy", 2, 100, 150, 0, true},
		{"sell within holdings", "sell", 1, 100, 0, 2, false},
		{"sell everything", "sell", 2, 100, 0, 2, false},
		{"sell within the float tolerance", "sell", 0.30000000000000004, 100, 0, 0.3, false},
		{"sell more than held", "sell", 2.1, 100, 0, 2, true},
		{"zero quantity", "buy", 0, 100, 1000, 0, true},
		{"negative quantity", "sell", -1, 100, 0, 2, true},
		{"unknown action", "short", 1, 100, 1000, 2, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateTrade(tc.action, tc.qty, tc.price, tc.usd, tc.held)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{"50", 50, false},
		{"12.34", 12.34, false},
		{" 0.5 ", 0.5, false},
		{"0", 0, true},
		{"-5", 0, true},
		{"abc", 0, true},
		{"1,5", 0, true},
		{"", 0, true},
		{"1e3", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := parseAmount(tc.raw)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWalletFavorites_KeepsOnlyPositiveBalances(t *testing.T) {
	wallet := &t2.Wallet{
		BitcoinBalance:  0.5,
		DogecoinBalance: 0,
		XrpBalance:      2,
	}

	favorites := walletFavorites(wallet, coinsFixture())
	require.Len(t, favorites, 2)

	assert.Equal(t, "Bitcoin", favorites[0].Nome)
	assert.Equal(t, 0.5, favorites[0].Quantidade)
	assert.Equal(t, 97000.0, favorites[0].PrecoAtual)

	assert.Equal(t, "XRP", favorites[1].Nome)
	assert.Equal(t, 2.0, favorites[1].Quantidade)
}

func TestWalletFavorites_HoldingMissingFromPriceList(t *testing.T) {
	wallet := &t2.Wallet{XrpBalance: 3}

	// price list without XRP
	coins := []t2.Coin{{Nome: "Bitcoin", Sigla: "BTC", PrecoAtual: 97000}}

	favorites := walletFavorites(wallet, coins)
	require.Len(t, favorites, 1)
	assert.Equal(t, "XRP", favorites[0].Nome)
	assert.Equal(t, "XRP", favorites[0].Sigla)
	assert.Zero(t, favorites[0].PrecoAtual)
	assert.Equal(t, t2.PlaceholderImageURL, favorites[0].ImageURL)
	assert.Equal(t, 3.0, favorites[0].Quantidade)
}

func TestWalletFavorites_NilWallet(t *testing.T) {
	assert.Nil(t, walletFavorites(nil, coinsFixture()))
}
