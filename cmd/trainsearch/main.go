package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"trainsearch.org/internal/app"
	"trainsearch.org/internal/config"
	"trainsearch.org/internal/report"
	"trainsearch.org/internal/utils"
)

const version = "1.0.0"

func main() {
	var (
		port            = flag.Int("port", 4000, "API server port")
		env             = flag.String("env", "development", "Environment (development|staging|production)")
		configFile      = flag.String("config-file", "", "Path to a local JSON configuration file")
		configURL       = flag.String("config-url", "", "URL to a remote JSON configuration file")
		cacheDir        = flag.String("cache-dir", "cache", "Directory for downloaded GTFS bundles")
		refreshInterval = flag.Duration("refresh-interval", 6*time.Hour, "How often station sources are reloaded")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// A missing .env is fine; the environment may already be set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("Failed to load .env file", "error", err)
	}

	if err := config.ValidateConfigFlags(configFile, configURL); err != nil {
		fmt.Println("Error:", err)
		flag.Usage()
		os.Exit(1)
	}
	if *refreshInterval <= 0 {
		fmt.Println("Error: -refresh-interval must be positive")
		flag.Usage()
		os.Exit(1)
	}

	configAuthUser := os.Getenv("CONFIG_AUTH_USER")
	configAuthPass := os.Getenv("CONFIG_AUTH_PASS")

	if err := report.SetupSentry(*env, version); err != nil {
		logger.Warn("Sentry is disabled", "error", err)
	}
	defer report.FlushSentry()
	report.ConfigureScope(*env, version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := app.NewPooledClient()

	var (
		doc config.Document
		err error
	)
	if *configFile != "" {
		doc, err = config.LoadConfigFromFile(*configFile)
	} else {
		doc, err = config.LoadConfigFromURL(ctx, client, *configURL, configAuthUser, configAuthPass, 3)
	}
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		report.FlushSentry()
		os.Exit(1)
	}

	cfg := config.NewConfig(*port, *env, doc)
	cfg.CacheDir = *cacheDir
	cfg.RefreshInterval = *refreshInterval

	if err := utils.CreateCacheDirectory(cfg.CacheDir, logger); err != nil {
		logger.Error("Failed to create cache directory", "error", err)
		report.FlushSentry()
		os.Exit(1)
	}

	application := app.New(cfg, logger, client, version)

	application.StationService.LoadSources(ctx, cfg.GetSources())
	go application.StationService.RefreshSources(ctx, cfg, cfg.RefreshInterval)

	if *configURL != "" {
		go application.ConfigService.RefreshConfig(ctx, *configURL, configAuthUser, configAuthPass, time.Minute)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      application.Routes(ctx),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env, "version", version)
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{Level: sentry.LevelFatal})
			report.FlushSentry()
			logger.Error("Server stopped", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown failed", "error", err)
		}
	}
}
