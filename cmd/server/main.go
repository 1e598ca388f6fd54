package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/techpolicywire/content-api/internal/api"
	"github.com/techpolicywire/content-api/internal/config"
	"github.com/techpolicywire/content-api/internal/metadata"
	"github.com/techpolicywire/content-api/internal/ratelimit"
	"github.com/techpolicywire/content-api/internal/repository"
	"github.com/techpolicywire/content-api/internal/service"
	"github.com/techpolicywire/content-api/internal/sheets"
	"github.com/techpolicywire/content-api/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting content API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize the sheets store. Without credentials the server still
	// starts: read endpoints serve empty results and writes fail loudly.
	store, err := sheets.NewClient(&cfg.Sheets, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize sheets client")
	}
	if !cfg.StoreConfigured() {
		log.Warn().Msg("Sheets store not fully configured; serving degraded responses")
	}

	// Initialize repositories
	repos := repository.New(store, &cfg.Sheets, log)

	// The submission rate limiter is constructed once and injected
	limiter := ratelimit.New(cfg.RateLimit.Window, cfg.RateLimit.Max)

	// Initialize services
	fetcher := metadata.New(log)
	services := service.NewServices(repos, fetcher, limiter, cfg, log)

	// Initialize router
	router := api.NewRouter(services, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
