package telegram_bot

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gitlab.com/mcosta87/cripto_bot/pkg/log"
	t "gitlab.com/mcosta87/cripto_bot/pkg/types"
)

type coinTab string

const (
	tabAll       coinTab = "all"
	tabFavorites coinTab = "favorites"
)

// sellEpsilon tolerates float drift when comparing a sell quantity against
// the held balance.
const sellEpsilon = 1e-8

func (s *Service) showCoinList(ctx context.Context, chatID, tgUserID int64, tab coinTab) error {
	sess, ok := s.sessions.getSessionVars(tgUserID)
	if !ok || sess.WalletID == "" {
		return s.navigate(ctx, chatID, tgUserID, ScreenHome)
	}

	// both datasets load on dashboard entry; a missed fetch is retried here
	if !sess.CoinsLoaded {
		s.loadCoins(ctx, tgUserID)
	}
	if sess.Wallet == nil {
		s.loadBalance(ctx, tgUserID, sess.WalletID)
	}
	sess, _ = s.sessions.getSessionVars(tgUserID)

	s.deleteBotMessage(chatID, tgUserID)

	if tab == tabFavorites {
		favorites := walletFavorites(sess.Wallet, sess.Coins)
		if len(favorites) == 0 {
			msg := tgbotapi.NewMessage(chatID, "You do not hold any crypto yet.")
			msg.ReplyMarkup = backKeyboard("go_dashboard")
			return s.sendTemporaryMessage(msg, tgUserID, 30*time.Second)
		}

		var text strings.Builder
		text.WriteString("Your favorites:\n\n")
		for _, f := range favorites {
			text.WriteString(fmt.Sprintf("%s (%s): %g held, $%s\n",
				f.Sigla, f.Nome, f.Quantidade, formatUSD(f.PrecoAtual)))
		}

		msg := tgbotapi.NewMessage(chatID, text.String())
		msg.ReplyMarkup = backKeyboard("go_dashboard")
		return s.sendTemporaryMessage(msg, tgUserID, 60*time.Second)
	}

	if len(sess.Coins) == 0 {
		msg := tgbotapi.NewMessage(chatID, "No coins available right now.")
		msg.ReplyMarkup = backKeyboard("go_dashboard")
		return s.sendTemporaryMessage(msg, tgUserID, 30*time.Second)
	}

	return s.renderCoinList(chatID, tgUserID, "All crypto, tap a coin to trade:", sess.Coins)
}

// renderCoinList shows a priced coin list with one trade button per coin.
func (s *Service) renderCoinList(chatID, tgUserID int64, title string, coins []t.Coin) error {
	var text strings.Builder
	text.WriteString(title + "\n\n")
	for _, c := range coins {
		text.WriteString(fmt.Sprintf("%s (%s): $%s\n", c.Sigla, c.Nome, formatUSD(c.PrecoAtual)))
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(coins); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(coins[i].Sigla, "coin::"+coins[i].Nome),
		}
		if i+1 < len(coins) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(coins[i+1].Sigla, "coin::"+coins[i+1].Nome))
		}
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Back", "go_dashboard"),
	))

	msg := tgbotapi.NewMessage(chatID, text.String())
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	return s.sendTemporaryMessage(msg, tgUserID, 120*time.Second)
}

// walletFavorites joins the wallet's per-coin balances with the price list by
// name, keeping only strictly positive balances annotated with the held
// quantity. Holdings missing from the price list render with price 0 and
// placeholder metadata.
func walletFavorites(wallet *t.Wallet, coins []t.Coin) []t.FavoriteCoin {
	if wallet == nil {
		return nil
	}

	var favorites []t.FavoriteCoin
	for _, holding := range wallet.Holdings() {
		if holding.Balance <= 0 {
			continue
		}

		entry := t.FavoriteCoin{Quantidade: holding.Balance}
		found := false
		for _, c := range coins {
			if strings.EqualFold(c.Nome, holding.Nome) {
				entry.Coin = c
				found = true
				break
			}
		}
		if !found {
			entry.Coin = t.Coin{
				Nome:     holding.Nome,
				Sigla:    holding.Sigla,
				ImageURL: t.PlaceholderImageURL,
			}
		}
		favorites = append(favorites, entry)
	}
	return favorites
}

func (s *Service) askTradeAction(chatID, tgUserID int64, coinName string) error {
	sess, _ := s.sessions.getSessionVars(tgUserID)

	var selected *t.Coin
	for _, c := range sess.Coins {
		if strings.EqualFold(c.Nome, coinName) {
			coin := c
			selected = &coin
			break
		}
	}
	if selected == nil {
		log.Warnf("trade requested for unknown coin %q by user %d", coinName, tgUserID)
		return s.sendTemporaryMessage(
			tgbotapi.NewMessage(chatID, "That coin is not available anymore, refresh and try again."),
			tgUserID, 20*time.Second)
	}

	s.deleteBotMessage(chatID, tgUserID)
	s.sessions.setTrade(tgUserID, selected, "")

	msg := tgbotapi.NewMessage(chatID,
		fmt.Sprintf("%s is at $%s. What would you like to do?", selected.Nome, formatUSD(selected.PrecoAtual)))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Buy", "trade_buy"),
			tgbotapi.NewInlineKeyboardButtonData("Sell", "trade_sell"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Cancel", "go_dashboard"),
		),
	)
	return s.sendTemporaryMessage(msg, tgUserID, 60*time.Second)
}

func (s *Service) askTradeQuantity(chatID, tgUserID int64, action string) error {
	sess, _ := s.sessions.getSessionVars(tgUserID)
	if sess.TradeCoin == nil {
		return s.sendTemporaryMessage(
			tgbotapi.NewMessage(chatID, "No coin selected. Open the coin list first."),
			tgUserID, 20*time.Second)
	}

	s.deleteBotMessage(chatID, tgUserID)
	s.sessions.setTrade(tgUserID, sess.TradeCoin, action)
	s.sessions.setState(tgUserID, "waiting_trade_quantity")

	msg := tgbotapi.NewMessage(chatID,
		fmt.Sprintf("How many %s would you like to %s? Enter a quantity (e.g. 0.5):",
			sess.TradeCoin.Nome, action))
	msg.ReplyMarkup = backKeyboard("go_dashboard")
	return s.sendTemporaryMessage(msg, tgUserID, 60*time.Second)
}

// submitTrade validates the quantity client-side and only then talks to the
// backend. A rejected trade never produces a network call; a backend error
// keeps the quantity prompt open.
func (s *Service) submitTrade(ctx context.Context, chatID, tgUserID int64, msgText string) error {
	s.deleteBotMessage(chatID, tgUserID)

	sess, _ := s.sessions.getSessionVars(tgUserID)
	if sess.TradeCoin == nil || sess.WalletID == "" {
		s.sessions.setState(tgUserID, "")
		return s.navigate(ctx, chatID, tgUserID, ScreenDashboard)
	}

	qty, err := parseAmount(msgText)
	if err != nil {
		return s.promptTradeAgain(chatID, tgUserID, "Please enter a valid positive quantity (e.g. 0.5):")
	}

	var held float64
	if sess.Wallet != nil {
		held = sess.Wallet.HeldBalance(sess.TradeCoin.Nome)
	}

	if err := validateTrade(sess.TradeAction, qty, sess.TradeCoin.PrecoAtual, sess.UsdBalance, held); err != nil {
		return s.promptTradeAgain(chatID, tgUserID, err.Error()+" Enter another quantity or go back:")
	}

	switch sess.TradeAction {
	case "buy":
		err = s.api.BuyCrypto(ctx, sess.WalletID, sess.TradeCoin.Nome, qty)
	case "sell":
		err = s.api.SellCrypto(ctx, sess.WalletID, sess.TradeCoin.Nome, qty)
	default:
		log.Errorf("invalid trade action %q for user %d", sess.TradeAction, tgUserID)
		s.sessions.clearTrade(tgUserID)
		s.sessions.setState(tgUserID, "")
		return s.navigate(ctx, chatID, tgUserID, ScreenDashboard)
	}

	if err != nil {
		log.Errorf("trade failed: wallet_id=%s, coin=%s, action=%s, err=%s",
			sess.WalletID, sess.TradeCoin.Nome, sess.TradeAction, err)
		return s.promptTradeAgain(chatID, tgUserID,
			apiErrorText(err, fmt.Sprintf("Could not %s %s, please try again.", sess.TradeAction, sess.TradeCoin.Nome)))
	}

	log.Infof("trade done: wallet_id=%s, coin=%s, action=%s, qty=%g",
		sess.WalletID, sess.TradeCoin.Nome, sess.TradeAction, qty)

	doneText := fmt.Sprintf("%s %s successful!", sess.TradeCoin.Nome, sess.TradeAction)
	s.sessions.clearTrade(tgUserID)
	s.sessions.setState(tgUserID, "")

	// balance changed server-side, re-fetch before showing the dashboard
	s.loadBalance(ctx, tgUserID, sess.WalletID)

	err = s.sendTemporaryMessage(tgbotapi.NewMessage(chatID, doneText), tgUserID, 10*time.Second)
	if err != nil {
		return err
	}
	return s.navigate(ctx, chatID, tgUserID, ScreenDashboard)
}

func (s *Service) promptTradeAgain(chatID, tgUserID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = backKeyboard("go_dashboard")
	return s.sendTemporaryMessage(msg, tgUserID, 60*time.Second)
}

// validateTrade runs the client-side checks that must reject a trade before
// any network call: buys are capped by the USD balance, sells by the held
// quantity.
func validateTrade(action string, qty, price, usdBalance, heldBalance float64) error {
	if qty <= 0 {
		return fmt.Errorf("quantity must be a positive number.")
	}

	switch action {
	case "buy":
		if qty*price > usdBalance {
			return fmt.Errorf("insufficient USD balance for this purchase.")
		}
	case "sell":
		if qty > heldBalance+sellEpsilon {
			return fmt.Errorf("you do not hold enough of this coin to sell.")
		}
	default:
		return fmt.Errorf("unknown trade action %q.", action)
	}
	return nil
}

var amountRe = regexp.MustCompile(`^\d+(\.\d+)?$`)

// parseAmount accepts a plain positive decimal number; everything else is
// rejected before any request is made.
func parseAmount(raw string) (float64, error) {
	text := strings.TrimSpace(raw)
	if !amountRe.MatchString(text) {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}

	val, err := strconv.ParseFloat(text, 64)
	if err != nil || val <= 0 {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}
	return val, nil
}
