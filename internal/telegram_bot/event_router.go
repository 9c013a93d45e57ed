package telegram_bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"gitlab.com/mcosta87/cripto_bot/pkg/log"
)

func (s *Service) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	switch {
	case update.CallbackQuery != nil:
		return s.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		return s.handleCommand(ctx, update.Message)
	case update.Message != nil:
		return s.handleMessage(ctx, update.Message)
	}
	return nil
}

func (s *Service) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	tgUserID := msg.From.ID

	switch msg.Command() {
	case "start":
		sess, _ := s.sessions.getSessionVars(tgUserID)
		if sess.WalletID != "" {
			return s.navigate(ctx, msg.Chat.ID, tgUserID, ScreenDashboard)
		}
		return s.navigate(ctx, msg.Chat.ID, tgUserID, ScreenHome)
	case "logout":
		s.sessions.clearSession(tgUserID)
		return s.navigate(ctx, msg.Chat.ID, tgUserID, ScreenHome)
	}
	return nil
}

func (s *Service) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	tgUserID := cb.From.ID
	chatID := cb.Message.Chat.ID

	log.Infof("user_id: %d, selected callback: %s", tgUserID, cb.Data)

	switch {
	case cb.Data == "go_register":
		return s.navigate(ctx, chatID, tgUserID, ScreenRegister)

	case cb.Data == "go_login":
		return s.navigate(ctx, chatID, tgUserID, ScreenLogin)

	case cb.Data == "go_home":
		return s.navigate(ctx, chatID, tgUserID, ScreenHome)

	case cb.Data == "go_dashboard":
		s.sessions.clearTrade(tgUserID)
		s.sessions.setState(tgUserID, "")
		return s.navigate(ctx, chatID, tgUserID, ScreenDashboard)

	case cb.Data == "go_deposit":
		return s.navigate(ctx, chatID, tgUserID, ScreenDeposit)

	case cb.Data == "go_portfolio":
		return s.navigate(ctx, chatID, tgUserID, ScreenPortfolio)

	case cb.Data == "show_all_coins":
		return s.showCoinList(ctx, chatID, tgUserID, tabAll)

	case cb.Data == "show_favorites":
		return s.showCoinList(ctx, chatID, tgUserID, tabFavorites)

	case cb.Data == "search_coins":
		return s.startSearch(chatID, tgUserID)

	case cb.Data == "refresh_balance":
		return s.refreshDashboard(ctx, chatID, tgUserID)

	case cb.Data == "logout":
		s.sessions.clearSession(tgUserID)
		return s.navigate(ctx, chatID, tgUserID, ScreenHome)

	case strings.HasPrefix(cb.Data, "coin::"):
		return s.askTradeAction(chatID, tgUserID, strings.TrimPrefix(cb.Data, "coin::"))

	case cb.Data == "trade_buy" || cb.Data == "trade_sell":
		return s.askTradeQuantity(chatID, tgUserID, strings.TrimPrefix(cb.Data, "trade_"))
	}

	log.Warnf("unhandled callback %q from user %d", cb.Data, tgUserID)
	return nil
}

func (s *Service) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	tgUserID := msg.From.ID
	_, _ = s.bot.Request(tgbotapi.NewDeleteMessage(msg.Chat.ID, msg.MessageID))

	state, ok := s.sessions.getState(tgUserID)
	if !ok || state == "" {
		return nil
	}

	switch state {
	case "waiting_register_name":
		return s.waitRegisterName(msg.Chat.ID, tgUserID, msg.Text)

	case "waiting_register_email":
		return s.waitRegisterEmail(msg.Chat.ID, tgUserID, msg.Text)

	case "waiting_register_password":
		return s.waitRegisterPassword(ctx, msg.Chat.ID, tgUserID, msg.Text)

	case "waiting_login_email":
		return s.waitLoginEmail(msg.Chat.ID, tgUserID, msg.Text)

	case "waiting_login_password":
		return s.waitLoginPassword(ctx, msg.Chat.ID, tgUserID, msg.Text)

	case "waiting_search_query":
		return s.showSearchResults(msg.Chat.ID, tgUserID, msg.Text)

	case "waiting_trade_quantity":
		return s.submitTrade(ctx, msg.Chat.ID, tgUserID, msg.Text)

	case "waiting_deposit_amount":
		return s.submitDeposit(ctx, msg.Chat.ID, tgUserID, msg.Text)
	}

	return errors.Errorf("unknown session state %q for user %d", state, tgUserID)
}
