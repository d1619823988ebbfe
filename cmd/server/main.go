package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dennisdiepolder/monti/dashboard/internal/alerts"
	"github.com/dennisdiepolder/monti/dashboard/internal/api"
	"github.com/dennisdiepolder/monti/dashboard/internal/auth"
	"github.com/dennisdiepolder/monti/dashboard/internal/config"
	"github.com/dennisdiepolder/monti/dashboard/internal/dashboard"
	"github.com/dennisdiepolder/monti/dashboard/internal/loader"
	"github.com/dennisdiepolder/monti/dashboard/internal/metrics"
	"github.com/dennisdiepolder/monti/dashboard/pkg/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Configure logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("port", cfg.Port).
		Str("source", cfg.SourcePath).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("log_level", cfg.LogLevel).
		Bool("skip_auth", cfg.SkipAuth).
		Msg("starting agent productivity dashboard")

	m := metrics.Get()

	service := dashboard.NewService(
		loader.Options{SourcePath: cfg.SourcePath},
		alerts.Rules{LowProductivityPct: cfg.LowProductivityPct, HighBreakPct: cfg.HighBreakPct},
		m,
		log.Logger,
	)
	dashboardHandler := api.NewDashboardHandler(service, log.Logger)

	authenticator := auth.New(auth.Options{
		SkipAuth:        cfg.SkipAuth,
		OIDCIssuer:      cfg.OIDCIssuer,
		VerifySignature: cfg.VerifyJWTSignature,
	}, log.Logger)

	r := newRouter(cfg, m, dashboardHandler, authenticator, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Msgf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// newRouter mounts /health and /metrics publicly and every dashboard route
// behind the authenticator
func newRouter(cfg *config.Config, m *metrics.Metrics, dashboardHandler *api.DashboardHandler, authenticator *auth.Authenticator, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics(m))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins, logger))

	// Public routes
	r.Get("/health", healthHandler)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.Group(func(r chi.Router) {
		r.Use(authenticator.Middleware)
		dashboardHandler.Register(r)
	})

	return r
}

// healthHandler handles health check requests
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","service":"monti-dashboard"}`)
}
