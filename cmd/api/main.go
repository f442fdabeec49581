package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"judgment-server/internal/config"
	"judgment-server/internal/logging"
	"judgment-server/internal/scoreboard"
	"judgment-server/internal/server"
)

func gracefulShutdown(customServer *server.Server, httpServer *http.Server, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	logging.Info("Shutdown signal received, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop accepting requests before closing the scoreboard they write to.
	if err := httpServer.Shutdown(ctx); err != nil {
		logging.Error("HTTP server forced to shutdown with error: %v", err)
	}

	if err := customServer.Shutdown(ctx); err != nil {
		logging.Error("Error during custom shutdown: %v", err)
	}

	done <- true
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Invalid configuration: %v", err)
	}
	logging.Init(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := scoreboard.Open(ctx, cfg)
	cancel()
	if err != nil {
		logging.Fatal("Failed to open %s scoreboard: %v", cfg.ScoreboardBackend, err)
	}

	customServer, httpServer := server.NewServer(cfg, store)

	done := make(chan bool, 1)
	go gracefulShutdown(customServer, httpServer, done)

	logging.Info("Listening on %s (scoreboard: %s)", httpServer.Addr, cfg.ScoreboardBackend)
	err = httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Fatal("http server error: %v", err)
	}

	// Wait for the graceful shutdown to complete
	<-done
	logging.Info("Graceful shutdown complete.")
}
