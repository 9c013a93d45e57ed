package telegram_bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// showPortfolio renders the wallet snapshot read-only. The snapshot is
// re-fetched on every entry; a missing wallet id or a failed fetch shows an
// explicit error state instead of stale data.
func (s *Service) showPortfolio(ctx context.Context, chatID, tgUserID int64) error {
	sess, ok := s.sessions.getSessionVars(tgUserID)

	s.deleteBotMessage(chatID, tgUserID)

	if !ok || sess.WalletID == "" {
		msg := tgbotapi.NewMessage(chatID, "No wallet ID available.")
		msg.ReplyMarkup = backKeyboard("go_dashboard")
		return s.sendTemporaryMessage(msg, tgUserID, 30*time.Second)
	}

	s.loadBalance(ctx, tgUserID, sess.WalletID)
	sess, _ = s.sessions.getSessionVars(tgUserID)

	if sess.Wallet == nil {
		msg := tgbotapi.NewMessage(chatID, "Could not load the wallet data.")
		msg.ReplyMarkup = backKeyboard("go_dashboard")
		return s.sendTemporaryMessage(msg, tgUserID, 30*time.Second)
	}

	var text strings.Builder
	text.WriteString("Portfolio\n")
	text.WriteString(fmt.Sprintf("Wallet ID: %s\n\n", sess.WalletID))
	text.WriteString(fmt.Sprintf("USD balance: $%s\n", formatUSD(sess.Wallet.UsdBalance)))
	for _, holding := range sess.Wallet.Holdings() {
		text.WriteString(fmt.Sprintf("%s: %g\n", holding.Nome, holding.Balance))
	}

	text.WriteString("\nPurchased coins:\n")
	if len(sess.Wallet.CriptosCompradas) == 0 {
		text.WriteString("No purchased coins yet.")
	} else {
		for _, c := range sess.Wallet.CriptosCompradas {
			text.WriteString(fmt.Sprintf("%s: $%s\n", c.Nome, formatUSD(c.PrecoAtual)))
		}
	}

	msg := tgbotapi.NewMessage(chatID, text.String())
	msg.ReplyMarkup = backKeyboard("go_dashboard")
	return s.sendTemporaryMessage(msg, tgUserID, 120*time.Second)
}
