// Command forcingd serves the forcing engine over HTTP.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/flood-forcing/internal/adapter/httpadapter"
	"github.com/couchcryptid/flood-forcing/internal/config"
	"github.com/couchcryptid/flood-forcing/internal/forcing"
	"github.com/couchcryptid/flood-forcing/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	site, err := config.LoadSite(cfg.SiteConfig)
	if err != nil {
		logger.Error("failed to load site config", "error", err, "path", cfg.SiteConfig)
		os.Exit(1)
	}
	if site != nil {
		logger.Info("site defaults loaded", "site", site.Name, "scs_type", site.SCS.StormType)
	}

	engine := forcing.NewEngine(logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, engine, site.SCSDefaults(), logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
