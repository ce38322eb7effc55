package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/notify"
)

func main() {
	log := logger.NewLogger("note-keeper-relay")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	sender := notify.NewTelegramSender(cfg.Notifier)
	relay := notify.NewRelay(cfg.Notifier, sender, log)
	defer func() {
		if err := relay.Close(); err != nil {
			log.Err(err).Msg("error closing relay")
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer cancel()

	if err := relay.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("relay stopped with error")
	}

	log.Info().Msg("relay stopped")
}
