// Command extractd serves the extraction pipeline over HTTP.
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

	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/receipt-extractor/internal/common"
	"github.com/joseph-ayodele/receipt-extractor/internal/pipeline"
	"github.com/joseph-ayodele/receipt-extractor/internal/server"
	"github.com/joseph-ayodele/receipt-extractor/internal/stats"
)

func main() {
	_ = godotenv.Load()
	cfg := common.LoadConfig()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	var statsStore *stats.Store
	if cfg.Stats.Path != "" {
		var err error
		statsStore, err = stats.Open(cfg.Stats.Path, logger)
		if err != nil {
			logger.Error("stats store unavailable", "path", cfg.Stats.Path, "error", err)
			os.Exit(1)
		}
		defer statsStore.Close()
	}

	pipe := pipeline.FromAppConfig(cfg, logger)
	srv := server.New(pipe, statsStore, cfg.Server, logger)

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("http server listening", "addr", cfg.Server.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
