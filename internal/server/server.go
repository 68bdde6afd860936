package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	v1 "github.com/vaadly/vaadly/internal/api/v1"
	"github.com/vaadly/vaadly/internal/config"
	"github.com/vaadly/vaadly/internal/notify"
	"github.com/vaadly/vaadly/internal/server/middleware"
)

// Server is the HTTP server that wires all application routes and middleware.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	cfg        *config.Config
}

// New creates a Server with all routes wired.
func New(cfg *config.Config, catalogue v1.Catalogue, authSvc v1.AuthService, verifier middleware.TokenVerifier, reporter v1.Reporter, notifier notify.Notifier) *Server {
	router := chi.NewRouter()

	// Global middleware stack.
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Logger)
	router.Use(chimw.Recoverer)
	router.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	s := &Server{
		router: router,
		cfg:    cfg,
		httpServer: &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}

	// Mount API routes on /api/v1 with two sub-groups:
	// 1. Unauthenticated, rate-limited group for login.
	// 2. Authenticated group for everything else.
	router.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitByIP(context.Background(), 1, 5))

			authConfig := huma.DefaultConfig("Vaadly Auth API", "1.0.0")
			authConfig.Servers = []*huma.Server{
				{URL: "/api/v1"},
			}
			authAPI := humachi.New(r, authConfig)
			registerAuthRoutes(authAPI, authSvc)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(verifier))

			apiConfig := huma.DefaultConfig("Vaadly API", "1.0.0")
			apiConfig.Servers = []*huma.Server{
				{URL: "/api/v1"},
			}
			api := humachi.New(r, apiConfig)
			registerCatalogRoutes(api, catalogue, notifier)
			registerReportRoutes(api, reporter, notifier)
		})
	})

	// Health check (unauthenticated).
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	return s
}

// Start begins listening for HTTP requests.
func (s *Server) Start(_ context.Context) error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.Start: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}
