package telegram_bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gitlab.com/mcosta87/cripto_bot/pkg/log"
	t "gitlab.com/mcosta87/cripto_bot/pkg/types"
)

// showDashboard is the post-login home. On first entry (and after the wallet
// id changes) it fetches the balance and the live coin list as two
// independent operations; either failure is logged and shown as an explicit
// empty state, never raised to the router.
func (s *Service) showDashboard(ctx context.Context, chatID, tgUserID int64) error {
	sess, ok := s.sessions.getSessionVars(tgUserID)
	if !ok || sess.WalletID == "" {
		err := s.sendTemporaryMessage(
			tgbotapi.NewMessage(chatID, "You are not logged in."),
			tgUserID, 10*time.Second)
		if err != nil {
			return err
		}
		return s.navigate(ctx, chatID, tgUserID, ScreenHome)
	}

	if !sess.BalanceLoaded {
		s.loadBalance(ctx, tgUserID, sess.WalletID)
	}
	if !sess.CoinsLoaded {
		s.loadCoins(ctx, tgUserID)
	}

	s.deleteBotMessage(chatID, tgUserID)

	// re-read, the fetches above may have filled data in
	sess, _ = s.sessions.getSessionVars(tgUserID)

	var text strings.Builder
	text.WriteString(fmt.Sprintf("Hello, %s!\n", sess.UserName))
	text.WriteString(fmt.Sprintf("Wallet ID: %s\n\n", sess.WalletID))
	if sess.BalanceLoaded {
		text.WriteString(fmt.Sprintf("USD balance: $%s", formatUSD(sess.UsdBalance)))
	} else {
		text.WriteString("USD balance unavailable, try Refresh.")
	}

	msg := tgbotapi.NewMessage(chatID, text.String())
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("All crypto", "show_all_coins"),
			tgbotapi.NewInlineKeyboardButtonData("Favorites", "show_favorites"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Search", "search_coins"),
			tgbotapi.NewInlineKeyboardButtonData("Refresh", "refresh_balance"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Deposit", "go_deposit"),
			tgbotapi.NewInlineKeyboardButtonData("Portfolio", "go_portfolio"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Logout", "logout"),
		),
	)

	// the dashboard stays until the next navigation replaces it
	return s.sendTgMessage(msg, tgUserID)
}

// loadBalance fetches the wallet snapshot for walletID and applies it through
// the staleness guard: if the session moved to another wallet while the
// request was in flight, the response is dropped.
func (s *Service) loadBalance(ctx context.Context, tgUserID int64, walletID string) {
	wallet, err := s.api.WalletBalance(ctx, walletID)
	if err != nil {
		log.Errorf("balance fetch failed: wallet_id=%s, err=%s", walletID, err)
		return
	}

	if !s.sessions.storeWalletFor(tgUserID, walletID, wallet) {
		log.Warnf("discarded stale balance response for wallet %s", walletID)
	}
}

// loadCoins fetches the normalized live price list into the session.
func (s *Service) loadCoins(ctx context.Context, tgUserID int64) {
	coins, err := s.api.LivePrices(ctx)
	if err != nil {
		log.Errorf("live prices fetch failed for user %d: %s", tgUserID, err)
		s.sessions.storeCoins(tgUserID, nil)
		return
	}
	s.sessions.storeCoins(tgUserID, coins)
}

// refreshDashboard is the explicit refresh trigger: it re-fetches both
// datasets no matter what is cached.
func (s *Service) refreshDashboard(ctx context.Context, chatID, tgUserID int64) error {
	sess, ok := s.sessions.getSessionVars(tgUserID)
	if !ok || sess.WalletID == "" {
		return s.navigate(ctx, chatID, tgUserID, ScreenHome)
	}

	s.loadBalance(ctx, tgUserID, sess.WalletID)
	s.loadCoins(ctx, tgUserID)
	return s.navigate(ctx, chatID, tgUserID, ScreenDashboard)
}

func (s *Service) startSearch(chatID, tgUserID int64) error {
	s.deleteBotMessage(chatID, tgUserID)
	s.sessions.setState(tgUserID, "waiting_search_query")

	msg := tgbotapi.NewMessage(chatID, "Type part of a coin name (e.g. bit):")
	msg.ReplyMarkup = backKeyboard("go_dashboard")
	return s.sendTemporaryMessage(msg, tgUserID, 60*time.Second)
}

func (s *Service) showSearchResults(chatID, tgUserID int64, query string) error {
	s.deleteBotMessage(chatID, tgUserID)
	s.sessions.setState(tgUserID, "")

	sess, _ := s.sessions.getSessionVars(tgUserID)
	matches := filterCoins(sess.Coins, strings.TrimSpace(query))

	if len(matches) == 0 {
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("No coin matches %q.", query))
		msg.ReplyMarkup = backKeyboard("go_dashboard")
		return s.sendTemporaryMessage(msg, tgUserID, 30*time.Second)
	}

	return s.renderCoinList(chatID, tgUserID, fmt.Sprintf("Coins matching %q:", query), matches)
}

// filterCoins returns the coins whose name contains the query, compared
// case-insensitively, preserving list order. An empty query returns the full
// list unchanged.
func filterCoins(coins []t.Coin, query string) []t.Coin {
	if query == "" {
		return coins
	}

	q := strings.ToLower(query)
	var filtered []t.Coin
	for _, c := range coins {
		if strings.Contains(strings.ToLower(c.Nome), q) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
