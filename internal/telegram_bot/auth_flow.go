package telegram_bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gitlab.com/mcosta87/cripto_bot/pkg/log"
)

// The auth screens are sequential forms: one prompt per field, empty input
// re-prompts, and the network call happens only once every field is filled.

func (s *Service) startRegister(chatID, tgUserID int64) error {
	s.deleteBotMessage(chatID, tgUserID)
	s.sessions.setState(tgUserID, "waiting_register_name")

	msg := tgbotapi.NewMessage(chatID, "Registration. Please enter your name:")
	msg.ReplyMarkup = backKeyboard("go_home")
	return s.sendTemporaryMessage(msg, tgUserID, 60*time.Second)
}

func (s *Service) waitRegisterName(chatID, tgUserID int64, msgText string) error {
	s.deleteBotMessage(chatID, tgUserID)

	name := strings.TrimSpace(msgText)
	if name == "" {
		return s.promptAgain(chatID, tgUserID, "Name cannot be empty. Please enter your name:")
	}

	s.sessions.setFormName(tgUserID, name)
	s.sessions.setState(tgUserID, "waiting_register_email")

	msg := tgbotapi.NewMessage(chatID, "Now enter your e-mail:")
	msg.ReplyMarkup = backKeyboard("go_home")
	return s.sendTemporaryMessage(msg, tgUserID, 60*time.Second)
}

func (s *Service) waitRegisterEmail(chatID, tgUserID int64, msgText string) error {
	s.deleteBotMessage(chatID, tgUserID)

	email := strings.TrimSpace(msgText)
	if email == "" {
		return s.promptAgain(chatID, tgUserID, "E-mail cannot be empty. Please enter your e-mail:")
	}

	s.sessions.setFormEmail(tgUserID, email)
	s.sessions.setState(tgUserID, "waiting_register_password")

	msg := tgbotapi.NewMessage(chatID, "And a password:")
	msg.ReplyMarkup = backKeyboard("go_home")
	return s.sendTemporaryMessage(msg, tgUserID, 60*time.Second)
}

func (s *Service) waitRegisterPassword(ctx context.Context, chatID, tgUserID int64, msgText string) error {
	s.deleteBotMessage(chatID, tgUserID)

	password := msgText
	if strings.TrimSpace(password) == "" {
		return s.promptAgain(chatID, tgUserID, "Password cannot be empty. Please enter a password:")
	}

	sess, _ := s.sessions.getSessionVars(tgUserID)

	if err := s.api.Register(ctx, sess.FormName, sess.FormEmail, password); err != nil {
		log.Errorf("register failed for user %d: %s", tgUserID, err)
		// form stays filled, the user just retries the password step
		return s.promptAgain(chatID, tgUserID,
			apiErrorText(err, "Could not register the user. Check the backend connection and try again."))
	}

	log.Infof("user registered: tg_user_id=%d, email=%s", tgUserID, sess.FormEmail)

	err := s.sendTemporaryMessage(
		tgbotapi.NewMessage(chatID, "User registered successfully!"),
		tgUserID, 20*time.Second)
	if err != nil {
		return err
	}
	return s.navigate(ctx, chatID, tgUserID, ScreenHome)
}

func (s *Service) startLogin(chatID, tgUserID int64) error {
	s.deleteBotMessage(chatID, tgUserID)
	s.sessions.setState(tgUserID, "waiting_login_email")

	msg := tgbotapi.NewMessage(chatID, "Login. Please enter your e-mail:")
	msg.ReplyMarkup = backKeyboard("go_home")
	return s.sendTemporaryMessage(msg, tgUserID, 60*time.Second)
}

func (s *Service) waitLoginEmail(chatID, tgUserID int64, msgText string) error {
	s.deleteBotMessage(chatID, tgUserID)

	email := strings.TrimSpace(msgText)
	if email == "" {
		return s.promptAgain(chatID, tgUserID, "E-mail cannot be empty. Please enter your e-mail:")
	}

	s.sessions.setFormEmail(tgUserID, email)
	s.sessions.setState(tgUserID, "waiting_login_password")

	msg := tgbotapi.NewMessage(chatID, "Now enter your password:")
	msg.ReplyMarkup = backKeyboard("go_home")
	return s.sendTemporaryMessage(msg, tgUserID, 60*time.Second)
}

func (s *Service) waitLoginPassword(ctx context.Context, chatID, tgUserID int64, msgText string) error {
	s.deleteBotMessage(chatID, tgUserID)

	password := msgText
	if strings.TrimSpace(password) == "" {
		return s.promptAgain(chatID, tgUserID, "Password cannot be empty. Please enter your password:")
	}

	sess, _ := s.sessions.getSessionVars(tgUserID)

	resp, err := s.api.Login(ctx, sess.FormEmail, password)
	if err != nil {
		log.Errorf("login failed for user %d: %s", tgUserID, err)
		// stay on the login screen, no wallet id is recorded
		s.sessions.setState(tgUserID, "waiting_login_email")
		return s.promptAgain(chatID, tgUserID,
			apiErrorText(err, "Could not log in. Check your credentials and try again.")+
				"\n\nPlease enter your e-mail:")
	}

	s.sessions.setLogin(tgUserID, resp.WalletID, resp.DisplayName())
	s.sessions.setState(tgUserID, "")

	log.Infof("user logged in: tg_user_id=%d, wallet_id=%s", tgUserID, resp.WalletID)

	err = s.sendTemporaryMessage(
		tgbotapi.NewMessage(chatID, fmt.Sprintf("Welcome, %s!", resp.DisplayName())),
		tgUserID, 10*time.Second)
	if err != nil {
		return err
	}
	return s.navigate(ctx, chatID, tgUserID, ScreenDashboard)
}

// promptAgain re-shows a form prompt without changing the session state.
func (s *Service) promptAgain(chatID, tgUserID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = backKeyboard("go_home")
	return s.sendTemporaryMessage(msg, tgUserID, 60*time.Second)
}

func backKeyboard(callback string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Back", callback),
		),
	)
}
