package main

import (
	"os"
	"time"

	"github.com/ieee-uottawa/ieee-office-discord-bot/internal/bot"
	"github.com/ieee-uottawa/ieee-office-discord-bot/internal/common"
	"github.com/ieee-uottawa/ieee-office-discord-bot/internal/config"
	"github.com/ieee-uottawa/ieee-office-discord-bot/internal/officeapi"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load from .env (if present) and then from the environment
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env not found or failed to load")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		log.Warn().Msg("LOG_LEVEL not understood, staying on info")
	} else {
		zerolog.SetGlobalLevel(level)
	}

	// Create the office backend API.
	// Keep the backend comfortable even when buttons get mashed
	restrictions := []common.Restriction{{Requests: 20, Duration: 10 * time.Second}}
	api := officeapi.NewOfficeApi(cfg.ServerUrl, cfg.ApiKey, restrictions)

	// Create and run the bot
	officeBot := bot.NewBot(cfg, &api)
	if err := officeBot.Run(); err != nil {
		log.Fatal().Err(err).Msg("Bot error")
	}
}
