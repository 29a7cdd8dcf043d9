package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalogo-tienda/app"
	"catalogo-tienda/config"
	"catalogo-tienda/logx"
)

func main() {
	// In production, variables should be set directly
	if err := config.LoadEnvFile(".env"); err != nil {
		logx.Warn().Err(err).Msg("Could not load .env, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logx.Fatal().Err(err).Msg("Invalid configuration")
	}
	logx.Init(logx.Options{Production: cfg.IsProduction()})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize application
	application, err := app.Initialize(ctx, cfg)
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Close()

	// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker/Render)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           application.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logx.Error().Err(err).Msg("Server shutdown failed")
		}
	}()

	logx.Info().Str("addr", srv.Addr).Msg("Server starting")
	logx.Info().Msgf("Catalog endpoint: POST http://localhost:%s/admin/catalog", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logx.Fatal().Err(err).Msg("Server failed to start")
	}
	logx.Info().Msg("Server stopped")
}
