package internal

import (
	"gitlab.com/mcosta87/cripto_bot/config"
	"gitlab.com/mcosta87/cripto_bot/internal/telegram_bot"
	"gitlab.com/mcosta87/cripto_bot/internal/walletapi"
	"gitlab.com/mcosta87/cripto_bot/pkg/log"
)

type Services struct {
	TelegramBot *telegram_bot.Service
}

func New(cfg *config.Config) (*Services, error) {
	api := walletapi.New(cfg.BackendBaseURL, walletapi.WithTimeout(cfg.HTTPTimeout))
	log.Infof("internal: backend client ready, base_url=%s", cfg.BackendBaseURL)

	tg, err := telegram_bot.New(cfg.TelegramBotToken, api)
	if err != nil {
		return nil, err
	}
	log.Info("internal: telegram bot created")

	return &Services{
		TelegramBot: tg,
	}, nil
}
