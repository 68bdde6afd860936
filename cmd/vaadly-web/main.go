package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vaadly/vaadly/internal/webui"
	"github.com/vaadly/vaadly/pkg/sdk"
)

// The web tier is a separate process that fronts the catalogue service for
// the browser frontend. It authenticates to the catalogue once at startup
// and exposes the unauthenticated /api surface the frontend consumes.
func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run() error {
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

	apiURL := os.Getenv("VAADLY_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}
	addr := os.Getenv("VAADLY_WEB_ADDR")
	if addr == "" {
		addr = ":8081"
	}

	client := sdk.New(apiURL)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch {
	case os.Getenv("VAADLY_API_TOKEN") != "":
		client.SetToken(os.Getenv("VAADLY_API_TOKEN"))
	case os.Getenv("VAADLY_ADMIN_PASSWORD") != "":
		if _, err := client.Login(ctx, os.Getenv("VAADLY_ADMIN_PASSWORD")); err != nil {
			return err
		}
		log.Info().Str("api_url", apiURL).Msg("logged in to catalogue service")
	default:
		return errors.New("VAADLY_API_TOKEN or VAADLY_ADMIN_PASSWORD is required")
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Logger)
	router.Use(chimw.Recoverer)
	router.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}).Handler)

	router.Route("/api", func(r chi.Router) {
		webConfig := huma.DefaultConfig("Vaadly Web API", "1.0.0")
		webConfig.Servers = []*huma.Server{
			{URL: "/api"},
		}
		api := humachi.New(r, webConfig)
		webui.Register(api, client)
	})

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("starting web server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("stopped")
	return nil
}
