package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/scrabblesolver/solver/bot"
	"github.com/scrabblesolver/solver/config"
	"github.com/scrabblesolver/solver/lexicon"
)

func main() {
	// Determine the directory of the executable. We will use this
	// directory to find the data files if an absolute path is not
	// provided for these!
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	cfg := config.DefaultConfig()
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("could-not-load-config")
	}
	cfg.AdjustRelativePaths(exPath)
	log.Info().Interface("config", cfg.SanitizedSettings()).Str("exPath", exPath).
		Msg("loaded-config")

	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Load the default lexicon up front so the first request doesn't wait.
	name := cfg.GetString(config.ConfigDefaultLexicon)
	if _, err := lexicon.Get(cfg, name); err != nil {
		log.Warn().Err(err).Str("lexicon", name).Msg("could-not-preload-lexicon")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b := bot.NewBot(cfg)
	if err := bot.Main(ctx, cfg.GetString(config.ConfigNatsSubject), b); err != nil {
		log.Fatal().Err(err).Msg("bot-exited")
	}
	log.Info().Msg("server gracefully shutting down")
}
