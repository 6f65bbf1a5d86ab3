package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/novara/internal/database"
	"github.com/dukerupert/novara/internal/logging"
	"github.com/dukerupert/novara/internal/server"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	port := envOr("NOVARA_PORT", "8080")
	dbPath := envOr("NOVARA_DB_PATH", "novara.db")

	logger := logging.Setup(os.Getenv("NOVARA_LOG_LEVEL"))

	db, err := database.Open(dbPath)
	if err != nil {
		logger.Error("open database", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	srv := server.New(db, logger)

	// Compute the initial plan set before accepting traffic so the first
	// GET /api/plans is never empty for the wrong reason.
	if err := srv.Planner().RunOnce(); err != nil {
		logger.Warn("initial planning pass", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.RateLimiter().StartCleanup(ctx, 10*time.Minute)

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("novara running", "addr", "http://localhost:"+port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
