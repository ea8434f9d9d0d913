package main

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mkaen/kindstack/internal/play"
	"github.com/mkaen/kindstack/internal/stages"
	"github.com/mkaen/kindstack/internal/tui"
)

func main() {
	_ = godotenv.Load()
	// The terminal is owned by the TUI, so logs go to a file when
	// KINDSTACK_LOG is set and are discarded otherwise.
	setupLogging()

	if err := stages.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load stage catalog")
	}
	log.Info().Int("stages", stages.Count()).Msg("starting kindstack")

	ui, err := tui.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize terminal")
	}
	defer ui.Close()

	switch err := play.Run(stages.All(), ui); {
	case err == nil:
		log.Info().Msg("all stages complete")
	case errors.Is(err, play.ErrQuit):
		log.Info().Msg("session ended by player")
	default:
		ui.Close()
		log.Fatal().Err(err).Msg("session failed")
	}
}

func setupLogging() {
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	path := os.Getenv("KINDSTACK_LOG")
	if path == "" {
		log.Logger = zerolog.Nop()
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Logger = zerolog.Nop()
		return
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
