package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lagiland/scoreboard/internal/adapters/feedback"
	"github.com/lagiland/scoreboard/internal/adapters/http/api"
	"github.com/lagiland/scoreboard/internal/adapters/repository"
	service "github.com/lagiland/scoreboard/internal/app"
	"github.com/lagiland/scoreboard/internal/config"
	"github.com/lagiland/scoreboard/internal/domain/scoring"
	"github.com/lagiland/scoreboard/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	opts := []service.Option{
		service.WithLogger(log),
		service.WithCalculator(scoring.NewCalculator(scoring.WithRubric(cfg.Rubric))),
		service.WithExportFilename(cfg.ExportFilename),
	}

	// Persistent store when a database is configured; in-memory otherwise.
	if cfg.DatabaseURL != "" {
		db, err := repository.Open(cfg.DatabaseURL)
		if err != nil {
			log.Error(ctx, "failed to connect to database", logger.Error(err))
			return
		}
		store, err := repository.NewGormStore(db, repository.WithLogger(log.Named("store")))
		if err != nil {
			log.Error(ctx, "failed to prepare contestant store", logger.Error(err))
			return
		}
		opts = append(opts, service.WithStore(store))
		log.Info(ctx, "using database store")
	} else {
		log.Warn(ctx, "no database_url configured; contestants are kept in memory only")
	}

	// Feedback generation is optional; without an API key every submission
	// gets the fallback text.
	var gen feedback.Generator
	if cfg.GeminiAPIKey != "" {
		g, err := feedback.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, feedback.WithModel(cfg.GeminiModel))
		if err != nil {
			log.Error(ctx, "failed to create feedback generator", logger.Error(err))
			return
		}
		gen = g
		log.Info(ctx, "feedback generation enabled", logger.String("model", cfg.GeminiModel))
	} else {
		log.Warn(ctx, "no gemini_api_key configured; feedback generation disabled")
	}
	requester := feedback.NewRequester(gen,
		feedback.WithFallback(cfg.FeedbackFallback),
		feedback.WithLogger(log.Named("feedback")),
	)
	opts = append(opts, service.WithFeedback(requester))

	svc := service.New(opts...)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}

	// HTTP mux and routes.
	mux := http.NewServeMux()
	api.NewServer(svc).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}
