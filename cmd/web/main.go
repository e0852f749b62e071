package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AdamBeresnev/tba-match-widget/internal/config"
	"github.com/AdamBeresnev/tba-match-widget/internal/logging"
	"github.com/AdamBeresnev/tba-match-widget/internal/metrics"
	"github.com/AdamBeresnev/tba-match-widget/internal/service"
	"github.com/AdamBeresnev/tba-match-widget/internal/tba"
	"github.com/joho/godotenv"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	logger, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	if err != nil {
		slog.Warn("invalid log_level; falling back to info", "log_level", cfg.LogLevel, "error", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal(err)
	}

	recorder := metrics.New()
	client := tba.NewClient(tba.ClientConfig{
		BaseURL:  cfg.BaseURL,
		APIKey:   cfg.APIKey,
		Logger:   logger,
		Observer: recorder,
	})
	matchService := service.NewMatchService(client,
		service.WithLocation(loc),
		service.WithEventTimezone(cfg.UseEventTimezone()),
	)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newRouter(cfg, matchService, recorder),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	slog.Info("Server running", "port", cfg.Port, "prefix", cfg.PathPrefix)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
