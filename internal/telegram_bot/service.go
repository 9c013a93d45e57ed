package telegram_bot

import (
	"context"
	"fmt"
	"time"

	"gitlab.com/mcosta87/cripto_bot/internal/walletapi"
	"gitlab.com/mcosta87/cripto_bot/pkg/log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Service struct {
	bot      *tgbotapi.BotAPI
	api      *walletapi.Client
	sessions *SessionManager
}

func New(token string, api *walletapi.Client) (*Service, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	return &Service{
		bot:      bot,
		api:      api,
		sessions: NewSessionManager(),
	}, nil
}

func (s *Service) Run() error {
	log.Infof("authorized on account %s", s.bot.Self.UserName)

	ctx := context.Background()

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			s.sessions.cleanOldSessions(30 * time.Minute)
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := s.bot.GetUpdatesChan(u)

	// listening = long polling
	for update := range updates {
		if err := s.handleUpdate(ctx, update); err != nil {
			log.Error("update handling error:", err)
		}
	}

	return nil
}
