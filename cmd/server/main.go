package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sectorgen/internal/app"
	"sectorgen/internal/middleware"
	"sectorgen/internal/server"
	"sectorgen/internal/shared/config"
	"sectorgen/internal/shared/logger"
)

func main() {
	if err := config.Init(); err != nil {
		slog.Error("Failed to initialize configuration", "error", err)
		os.Exit(1)
	}
	logger.Init()

	cfg := config.GlobalConfig
	log := slog.With("component", "main")
	log.Info("Starting sector server",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Open(ctx)
	if err != nil {
		log.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	if cfg.Universe.BootstrapOnStart {
		go func() {
			u, err := a.UniverseService.EnsureSharedUniverse(ctx)
			if err != nil {
				log.Error("Failed to bootstrap shared universe", "error", err)
				return
			}
			log.Info("Shared universe ready", "universe_id", u.ID, "sectors", u.SectorCount)
		}()
	}

	routes := server.NewRoutes(a.DB, a.UniverseService, cfg.Metrics, slog.Default())
	mux := routes.Setup()

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit)
	defer rateLimiter.Stop()
	corsMiddleware := middleware.NewCORS(cfg.Frontend)

	handler := corsMiddleware.Middleware(rateLimiter.Middleware(mux))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Server listening", "url", cfg.Server.URL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
	}
}
