package types

import "strings"

// Coin is a tradable asset as served by the backend. The JSON field names are
// the backend's wire contract (Portuguese names included); sigla and imageUrl
// are filled client-side and are purely cosmetic.
type Coin struct {
	Nome       string  `json:"nome"`
	Sigla      string  `json:"sigla,omitempty"`
	PrecoAtual float64 `json:"precoAtual"`
	ImageURL   string  `json:"imageUrl,omitempty"`
}

// FavoriteCoin is a coin annotated with the quantity held in the wallet.
type FavoriteCoin struct {
	Coin
	Quantidade float64
}

type CoinMeta struct {
	Sigla    string
	ImageURL string
}

const PlaceholderImageURL = "https://via.placeholder.com/25"

// coinMetaByName is the single symbol/image lookup table every view uses.
// Keys are lowercase coin names. Symbols never affect transaction correctness.
var coinMetaByName = map[string]CoinMeta{
	"bitcoin":      {Sigla: "BTC", ImageURL: "https://cryptologos.cc/logos/bitcoin-btc-logo.png"},
	"dogecoin":     {Sigla: "DOGE", ImageURL: "https://cryptologos.cc/logos/dogecoin-doge-logo.png"},
	"xrp":          {Sigla: "XRP", ImageURL: "https://cryptologos.cc/logos/xrp-xrp-logo.png"},
	"ethereum":     {Sigla: "ETH", ImageURL: "https://cryptologos.cc/logos/ethereum-eth-logo.png"},
	"litecoin":     {Sigla: "LTC", ImageURL: "https://cryptologos.cc/logos/litecoin-ltc-logo.png"},
	"bitcoin cash": {Sigla: "BCH", ImageURL: "https://cryptologos.cc/logos/bitcoin-cash-bch-logo.png"},
	"eos":          {Sigla: "EOS", ImageURL: "https://cryptologos.cc/logos/eos-eos-logo.png"},
	"binance coin": {Sigla: "BNB", ImageURL: "https://cryptologos.cc/logos/binance-coin-bnb-logo.png"},
	"cardano":      {Sigla: "ADA", ImageURL: "https://cryptologos.cc/logos/cardano-ada-logo.png"},
	"polkadot":     {Sigla: "DOT", ImageURL: "https://cryptologos.cc/logos/polkadot-new-dot-logo.png"},
	"chainlink":    {Sigla: "LINK", ImageURL: "https://cryptologos.cc/logos/chainlink-link-logo.png"},
	"stellar":      {Sigla: "XLM", ImageURL: "https://cryptologos.cc/logos/stellar-xlm-logo.png"},
	"tron":         {Sigla: "TRX", ImageURL: "https://cryptologos.cc/logos/tron-trx-logo.png"},
}

// LookupCoinMeta resolves display metadata for a coin name. Unknown names get
// a placeholder image and the upper-cased name as symbol.
func LookupCoinMeta(name string) CoinMeta {
	if meta, ok := coinMetaByName[strings.ToLower(name)]; ok {
		return meta
	}
	return CoinMeta{
		Sigla:    strings.ToUpper(name),
		ImageURL: PlaceholderImageURL,
	}
}

// Normalize fills a coin's symbol and image from the lookup table. A symbol
// already provided by the backend wins over the fallback for unknown names.
func (c *Coin) Normalize() {
	meta := LookupCoinMeta(c.Nome)
	if _, known := coinMetaByName[strings.ToLower(c.Nome)]; !known && c.Sigla != "" {
		meta.Sigla = c.Sigla
	}
	c.Sigla = meta.Sigla
	c.ImageURL = meta.ImageURL
}
