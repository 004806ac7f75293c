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

	"github.com/castlemilk/pfinance-forecast/internal/calendar"
	"github.com/castlemilk/pfinance-forecast/internal/config"
	"github.com/castlemilk/pfinance-forecast/internal/forecast"
	"github.com/castlemilk/pfinance-forecast/internal/logging"
	"github.com/castlemilk/pfinance-forecast/internal/oracle"
	"github.com/castlemilk/pfinance-forecast/internal/service"
	"github.com/castlemilk/pfinance-forecast/internal/store"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, logger)
	stop()
	if err != nil {
		logger.WithError(err).Error("server exited")
		os.Exit(1)
	}
}

// run serves until ctx is cancelled. Resources opened here are released
// before it returns.
func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	storeImpl, err := store.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.StoreBackend, err)
	}
	defer func() {
		if err := storeImpl.Close(); err != nil {
			logger.WithError(err).Warn("closing store")
		}
	}()
	logger.WithField("backend", cfg.StoreBackend).Info("store ready")

	cal, err := calendar.FromSource(ctx, cfg.CalendarFile)
	if err != nil {
		return fmt.Errorf("load calendar: %w", err)
	}
	logger.WithField("events", cal.Len()).Info("calendar loaded")

	forecaster := forecast.NewForecaster(oracle.NewRegression(), cal, logger, forecast.Options{
		Currency:        cfg.Currency,
		Concurrency:     cfg.Concurrency,
		CategoryTimeout: cfg.CategoryTimeout,
	})
	predictionService := service.NewPredictionService(storeImpl, forecaster, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           service.NewHTTPHandler(predictionService, logger, cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("shutdown failed")
		}
	}()

	logger.Infof("Starting server on port %s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	<-shutdownDone
	return nil
}
