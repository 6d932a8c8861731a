package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devhire/talenthub/internal/config"
	"github.com/devhire/talenthub/internal/db"
	httpx "github.com/devhire/talenthub/internal/http"
	"github.com/devhire/talenthub/internal/http/middlewares"
	"github.com/devhire/talenthub/internal/observability"
	"github.com/devhire/talenthub/internal/redisclient"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Load the config set up
	cfg := config.Load()

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// tracing is opt-in via OTEL_EXPORTER_OTLP_ENDPOINT
	if cfg.OTLPEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(rootCtx, "talenthub", cfg.OTLPEndpoint)

		if err != nil {
			log.Error("tracer init failed", "err", err)
			os.Exit(1)
		}

		defer func() {
			ctx, cancel := config.WithTimeout(3 * time.Second)
			defer cancel()
			_ = shutdownTracer(ctx)
		}()
	}

	registry := prometheus.NewRegistry()
	prom := observability.NewProm(registry)

	deps := httpx.Deps{
		Config:   cfg,
		Registry: registry,
		Prom:     prom,
	}

	// optional postgres; default stays in memory
	if cfg.DBURL != "" {
		pool, err := db.NewPool(cfg.DBURL)

		if err != nil {
			log.Error("postgres connect failed", "err", err)
			os.Exit(1)
		}

		defer pool.Close()
		deps.Pool = pool
	}

	// optional redis-backed rate limit windows
	if cfg.RedisAddr != "" {
		rdb := redisclient.New(redisclient.Config{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})

		defer rdb.Close()

		deps.Redis = rdb
		deps.RateLimitStore = middlewares.NewRedisStore(rdb.Raw(), cfg.RateWindow)
	} else {
		store := middlewares.NewMemoryStore(cfg.RateWindow)
		go store.Prune(rootCtx, cfg.RateWindow)

		deps.RateLimitStore = store
	}

	router := httpx.NewRouter(deps)

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")
	rootCancel()

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)

		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)

			return
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
