package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultHTTPTimeout = 15 * time.Second

type Config struct {
	TelegramBotToken string
	BackendBaseURL   string
	HTTPTimeout      time.Duration
}

func Load() *Config {
	_ = godotenv.Load(".env") // load .env, if exists

	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		BackendBaseURL:   os.Getenv("BACKEND_BASE_URL"),
		HTTPTimeout:      defaultHTTPTimeout,
	}

	if raw := os.Getenv("HTTP_TIMEOUT_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			log.Fatalf("HTTP_TIMEOUT_SECONDS must be a positive integer, got %q", raw)
		}
		cfg.HTTPTimeout = time.Duration(seconds) * time.Second
	}

	if cfg.TelegramBotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is required")
	}
	if cfg.BackendBaseURL == "" {
		log.Fatal("BACKEND_BASE_URL is required")
	}
	return cfg
}
