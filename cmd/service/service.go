package main

import (
	"os"
	"os/signal"
	"syscall"

	"gitlab.com/mcosta87/cripto_bot/pkg/log"

	"gitlab.com/mcosta87/cripto_bot/config"
	"gitlab.com/mcosta87/cripto_bot/internal"
)

func main() {
	log.Info("main: starting service")

	cfg := config.Load()

	services, err := internal.New(cfg)
	if err != nil {
		log.Error("init error:", err)
		return
	}

	go func() {
		if err := services.TelegramBot.Run(); err != nil {
			log.Error("bot error:", err)
		}
	}()

	log.Info("main: bot started polling")

	// Graceful shutdown
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Shutting down...")
}
