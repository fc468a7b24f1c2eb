/*
Package main is the entry point for the chat relay.

It loads configuration, initializes the global logger, starts the broadcast
coordinator and the HTTP server, and shuts both down gracefully on SIGINT/SIGTERM.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"relaychat/internal/app/chat"
	"relaychat/internal/configs"
	"relaychat/internal/handler"
	"relaychat/internal/pkg/logx"
)

func main() {
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logx.InitGlobalLogger(cfg.IsDevelopment(), cfg.LogLevel)
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("static_dir", cfg.StaticDir).
		Int("history_capacity", cfg.HistoryCapacity).
		Msg("Configuration loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	coordinator := chat.NewCoordinator(cfg.HistoryCapacity)
	go coordinator.Run()

	router := handler.Router(&handler.AppDeps{
		Coordinator: coordinator,
		Config:      cfg,
	})

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logx.Info("listening on port", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error(err, "Server forced to shutdown")
	}

	coordinator.Stop()
	select {
	case <-coordinator.Done():
	case <-shutdownCtx.Done():
		logx.Warn("Coordinator did not stop before the shutdown deadline.")
	}

	logx.Info("Server gracefully stopped.")
}
