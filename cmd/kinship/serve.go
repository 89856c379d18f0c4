package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Kinship/internal/api"
	"github.com/MikeSquared-Agency/Kinship/internal/hermes"
	"github.com/MikeSquared-Agency/Kinship/internal/intake"
	"github.com/MikeSquared-Agency/Kinship/internal/metrics"
	"github.com/MikeSquared-Agency/Kinship/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the assessment API and metrics servers",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Logging, os.Stdout)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cat, err := loadCatalogue(cfg)
	if err != nil {
		return err
	}
	logger.Info("question bank loaded", "questions", cat.Len())

	// Database (optional)
	var reports store.Store
	if cfg.Database.URL != "" {
		db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		reports = db
		logger.Info("connected to database")
	} else {
		logger.Info("no database configured, results will not be archived")
	}

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	svc := intake.New(cat, reports, hermesClient, m, intake.Options{
		MinAnswers:       cfg.Assessment.MinAnswers,
		StrictValidation: cfg.Assessment.StrictValidation,
	}, logger)
	if err := svc.SetupSubscriptions(); err != nil {
		logger.Warn("failed to subscribe to assessment requests", "error", err)
	}

	router, err := api.NewRouter(svc, cfg.Server, logger)
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: api.NewMetricsRouter(prometheus.DefaultGatherer),
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("api server: %w", err)
		}
	}()
	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("metrics server: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
		logger.Error("server failed", "error", serveErr)
	}

	logger.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
	return serveErr
}
