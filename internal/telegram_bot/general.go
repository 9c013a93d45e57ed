package telegram_bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gitlab.com/mcosta87/cripto_bot/internal/walletapi"
	"gitlab.com/mcosta87/cripto_bot/pkg/log"
)

// navigate is the single screen switch: record the target and render it.
func (s *Service) navigate(ctx context.Context, chatID, tgUserID int64, screen Screen) error {
	s.sessions.setScreen(tgUserID, screen)
	return s.renderScreen(ctx, chatID, tgUserID)
}

// renderScreen draws whatever screen the session records. The switch is total
// over the Screen set; an unknown value is reported to the user instead of
// silently rendering nothing.
func (s *Service) renderScreen(ctx context.Context, chatID, tgUserID int64) error {
	sess, _ := s.sessions.getSessionVars(tgUserID)

	switch sess.Screen {
	case ScreenHome:
		return s.showHome(chatID, tgUserID)
	case ScreenRegister:
		return s.startRegister(chatID, tgUserID)
	case ScreenLogin:
		return s.startLogin(chatID, tgUserID)
	case ScreenDashboard:
		return s.showDashboard(ctx, chatID, tgUserID)
	case ScreenDeposit:
		return s.startDeposit(chatID, tgUserID)
	case ScreenPortfolio:
		return s.showPortfolio(ctx, chatID, tgUserID)
	default:
		log.Errorf("unknown screen %q for user %d", sess.Screen, tgUserID)
		s.sessions.setScreen(tgUserID, ScreenHome)
		return s.sendTemporaryMessage(
			tgbotapi.NewMessage(chatID, "Something went wrong. Use /start to begin again."),
			tgUserID, 20*time.Second)
	}
}

func (s *Service) showHome(chatID, tgUserID int64) error {
	s.deleteBotMessage(chatID, tgUserID)
	s.sessions.setState(tgUserID, "")

	msg := tgbotapi.NewMessage(chatID, "Welcome to the crypto trading demo! Register an account or log in to continue.")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Register", "go_register"),
			tgbotapi.NewInlineKeyboardButtonData("Login", "go_login"),
		),
	)

	return s.sendTemporaryMessage(msg, tgUserID, 60*time.Second)
}

func (s *Service) sendTgMessage(msg tgbotapi.Chattable, tgUserID int64) error {
	sentMsg, err := s.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	s.sessions.setBotMessageID(tgUserID, sentMsg.MessageID)
	return nil
}

func (s *Service) sendTemporaryMessage(msg tgbotapi.Chattable, tgUserID int64, delay time.Duration) error {
	sentMsg, err := s.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("failed to send temporary message: %w", err)
	}

	s.sessions.setBotMessageID(tgUserID, sentMsg.MessageID)

	go func() {
		time.Sleep(delay)
		deleteMsg := tgbotapi.NewDeleteMessage(sentMsg.Chat.ID, sentMsg.MessageID)
		_, _ = s.bot.Request(deleteMsg)
	}()

	return nil
}

// deleteBotMessage removes the last message the bot sent in this chat, so a
// screen change replaces the previous view instead of stacking under it.
func (s *Service) deleteBotMessage(chatID, tgUserID int64) {
	sess, ok := s.sessions.getSessionVars(tgUserID)
	if !ok || sess.BotMessageID == 0 {
		return
	}
	_, _ = s.bot.Request(tgbotapi.NewDeleteMessage(chatID, sess.BotMessageID))
}

// apiErrorText picks the user-facing text for a failed request: the server's
// message when it sent one, else the given fallback.
func apiErrorText(err error, fallback string) string {
	var apiErr *walletapi.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// formatUSD renders a dollar value with two decimals, e.g. 120.5 -> "120.50".
func formatUSD(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
