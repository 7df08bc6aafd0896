// Command server is the entry point for the marketplace API.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace/internal/bootstrap"
	"marketplace/internal/config"
	"marketplace/internal/middleware"
	"marketplace/internal/observability"
	"marketplace/internal/server"
)

// @title Marketplace API
// @version 1.0
// @description Listings, follows, paginated feeds and full-text search for a social marketplace.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@marketplace.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8375
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

const serviceVersion = "1.0.0"

func main() {
	seedPreset := flag.String("seed", "", "apply a built-in seed preset on startup (development only)")
	flag.Parse()

	log := middleware.Logger

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "marketplace-api",
		ServiceVersion: serviceVersion,
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSampleRatio,
	})
	if err != nil {
		log.Error("failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	opts := bootstrap.Options{}
	if *seedPreset != "" {
		if cfg.IsProduction() {
			log.Error("refusing to seed in production")
			os.Exit(1)
		}
		opts.SeedPreset = *seedPreset
	}

	srv, err := server.NewServer(context.Background(), cfg, opts)
	if err != nil {
		log.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("server shutdown error", slog.String("error", err.Error()))
		}
		if err := shutdownTracing(ctx); err != nil {
			log.Error("tracing shutdown error", slog.String("error", err.Error()))
		}
	}()

	if err := srv.Start(); err != nil {
		log.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
