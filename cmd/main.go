package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cwrk-planet/logger/pkg/logger"

	"github.com/cwrk-planet/presence-service/config"
	"github.com/cwrk-planet/presence-service/internal/events"
	"github.com/cwrk-planet/presence-service/internal/registry"
	"github.com/cwrk-planet/presence-service/internal/service"
	httpx "github.com/cwrk-planet/presence-service/internal/transport/http"
	"github.com/cwrk-planet/presence-service/internal/transport/ws"
)

func main() {
	// --- config ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(logger.Config{
		Env:       logger.Env(cfg.Logging.Env),
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Backend:   logger.Backend(cfg.Logging.Backend),
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
	})
	slog.Info("starting presence-service",
		"env", cfg.Logging.Env, "version", cfg.Logging.Version)

	// --- registries ---
	participants := registry.NewParticipantRegistry()
	markers := registry.NewMarkerRegistry()

	// --- event sinks ---
	hub := ws.NewHub()
	sink := events.Multi{events.LogSink{}, hub}

	// --- services ---
	presenceSvc := service.NewPresenceService(participants, sink)
	markerSvc := service.NewMarkerService(markers, sink, cfg.Registry.DefaultMarkerTTL)
	sweeper := service.NewSweeper(participants, markers, sink,
		cfg.Registry.SweepInterval, cfg.Registry.ParticipantTimeout)

	// --- WS event feed ---
	wsServer := ws.NewServer(hub, presenceSvc, markerSvc)

	// --- HTTP ---
	handler := httpx.NewHandler(presenceSvc, markerSvc)
	router := httpx.NewRouter(handler, presenceSvc, wsServer)
	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- background sweep ---
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go func() {
		_ = sweeper.Run(sweepCtx)
	}()

	// --- run server ---
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listen", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal", "sig", sig)
	case err := <-errCh:
		slog.Error("server error", "err", err)
	}

	// eviction is idempotent; no drain needed
	stopSweep()

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(ctxShutdown)
	slog.Info("stopped")
}
