package telegram_bot

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gitlab.com/mcosta87/cripto_bot/pkg/log"
)

func (s *Service) startDeposit(chatID, tgUserID int64) error {
	sess, ok := s.sessions.getSessionVars(tgUserID)
	if !ok || sess.WalletID == "" {
		return s.sendTemporaryMessage(
			tgbotapi.NewMessage(chatID, "No wallet available. Log in first."),
			tgUserID, 20*time.Second)
	}

	s.deleteBotMessage(chatID, tgUserID)
	s.sessions.setState(tgUserID, "waiting_deposit_amount")

	msg := tgbotapi.NewMessage(chatID,
		fmt.Sprintf("Deposit USD to wallet %s. Enter the amount (e.g. 50, 12.34):", sess.WalletID))
	msg.ReplyMarkup = backKeyboard("go_dashboard")
	return s.sendTemporaryMessage(msg, tgUserID, 60*time.Second)
}

// submitDeposit guards the amount client-side, posts the deposit and applies
// the balance the backend returns. No second balance fetch happens: the
// response value is the new truth until the next explicit refresh.
func (s *Service) submitDeposit(ctx context.Context, chatID, tgUserID int64, msgText string) error {
	s.deleteBotMessage(chatID, tgUserID)

	sess, _ := s.sessions.getSessionVars(tgUserID)
	if sess.WalletID == "" {
		s.sessions.setState(tgUserID, "")
		return s.navigate(ctx, chatID, tgUserID, ScreenHome)
	}

	amount, err := parseAmount(msgText)
	if err != nil {
		msg := tgbotapi.NewMessage(chatID, "Please enter a valid positive amount (e.g. 50, 12.34):")
		msg.ReplyMarkup = backKeyboard("go_dashboard")
		return s.sendTemporaryMessage(msg, tgUserID, 60*time.Second)
	}

	newBalance, err := s.api.AddFunds(ctx, sess.WalletID, amount)
	if err != nil {
		log.Errorf("deposit failed: wallet_id=%s, amount=%g, err=%s", sess.WalletID, amount, err)
		msg := tgbotapi.NewMessage(chatID,
			apiErrorText(err, "Could not process the deposit, please try again."))
		msg.ReplyMarkup = backKeyboard("go_dashboard")
		return s.sendTemporaryMessage(msg, tgUserID, 60*time.Second)
	}

	s.sessions.setState(tgUserID, "")
	if !s.sessions.storeBalanceFor(tgUserID, sess.WalletID, newBalance) {
		log.Warnf("discarded deposit result for wallet %s, session moved on", sess.WalletID)
	}

	log.Infof("deposit done: wallet_id=%s, amount=%g, new_balance=%.2f", sess.WalletID, amount, newBalance)

	err = s.sendTemporaryMessage(
		tgbotapi.NewMessage(chatID,
			fmt.Sprintf("Deposit successful! New balance: $%s", formatUSD(newBalance))),
		tgUserID, 10*time.Second)
	if err != nil {
		return err
	}
	return s.navigate(ctx, chatID, tgUserID, ScreenDashboard)
}
