package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ceordev/pos-ventas/internal/config"
	"github.com/ceordev/pos-ventas/internal/router"
	"github.com/ceordev/pos-ventas/internal/supabase"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Env == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	db := supabase.New(cfg.SupabaseURL, cfg.SupabaseAnonKey)

	r, svcs := router.New(cfg, db)

	// Startup sequence: resolve any persisted session, then warm the catalog
	// and cash-session state. Failures here are not fatal — the terminal
	// starts signed out with an empty catalog.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), cfg.AuthTimeout())
	svcs.Auth.Iniciar(startupCtx)
	svcs.Catalogo.Refrescar(startupCtx)
	svcs.Catalogo.CargarCategorias(startupCtx)
	svcs.Caja.VerificarCajaAbierta(startupCtx)
	startupCancel()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("pos-ventas listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
