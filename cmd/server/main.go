package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"jobgate/internal/identity"
	"jobgate/internal/platform/config"
	"jobgate/internal/platform/httpserver"
	"jobgate/internal/platform/logger"
	"jobgate/internal/platform/metrics"
	httptransport "jobgate/internal/transport/http"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Gate and session logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing jobgate",
		"addr", cfg.Addr,
		"identity_url", cfg.IdentityBaseURL,
		"production", cfg.Production,
	)

	m := metrics.New()
	client := identity.NewHTTPClient(cfg.IdentityBaseURL,
		identity.WithLogger(log),
		identity.WithMetrics(m),
	)

	handler := httptransport.NewHandler(cfg, client, log, m)
	router, err := httptransport.NewRouter(handler, log)
	if err != nil {
		log.Error("router construction failed", "error", err)
		os.Exit(1)
	}

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
