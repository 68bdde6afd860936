package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vaadly/vaadly/internal/auth"
	"github.com/vaadly/vaadly/internal/catalog"
	"github.com/vaadly/vaadly/internal/config"
	"github.com/vaadly/vaadly/internal/notify"
	"github.com/vaadly/vaadly/internal/report"
	"github.com/vaadly/vaadly/internal/server"
	"github.com/vaadly/vaadly/internal/store/workbook"
	"github.com/vaadly/vaadly/internal/validate"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run() error {
	// Initialize structured logging from environment.
	logLevel := os.Getenv("VAADLY_LOG_LEVEL")
	level, parseErr := zerolog.ParseLevel(logLevel)
	if parseErr != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logFormat := os.Getenv("VAADLY_LOG_FORMAT")
	if logFormat == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	configPath := os.Getenv("VAADLY_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	validator := validate.New(cfg)

	store, err := workbook.Open(cfg, validator)
	if err != nil {
		return err
	}

	catalogue := catalog.New(store, validator)
	authSvc := auth.NewService(cfg.Auth)

	var provider report.Provider
	if cfg.AI.APIKey != "" {
		provider = report.NewAnthropicProvider(cfg.AI)
		log.Info().Str("model", cfg.AI.Model).Msg("report generation via Anthropic API")
	} else {
		provider = report.NewMockProvider()
		log.Info().Msg("no AI API key configured, using mock report provider")
	}
	reporter := report.NewAgent(catalogue, provider, cfg.AI.DefaultFormat)

	notifier := notify.FromConfig(cfg.Slack)

	// Graceful shutdown on SIGINT / SIGTERM.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := server.New(cfg, catalogue, authSvc, authSvc, reporter, notifier)

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if startErr := srv.Start(ctx); startErr != nil {
			log.Error().Err(startErr).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		return shutdownErr
	}

	log.Info().Msg("stopped")
	return nil
}
