// Command server runs the EV accident casualty prediction service.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/evcrashlab/ev-accident-predictor/internal/adapter/httpapi"
	kafkaadapter "github.com/evcrashlab/ev-accident-predictor/internal/adapter/kafka"
	"github.com/evcrashlab/ev-accident-predictor/internal/adapter/model"
	"github.com/evcrashlab/ev-accident-predictor/internal/config"
	"github.com/evcrashlab/ev-accident-predictor/internal/observability"
	"github.com/evcrashlab/ev-accident-predictor/internal/prediction"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Model load failure is fatal: the service cannot serve predictions
	// without it and there is nothing to degrade to.
	predictor, err := model.LoadDefault(cfg.ModelPath)
	if err != nil {
		logger.Error("failed to load model artifact", "path", cfg.ModelPath, "error", err)
		os.Exit(1)
	}
	metrics.ModelLoaded.Set(1)
	logger.Info("model loaded",
		"path", predictor.Path(),
		"trained_at", predictor.TrainedAt(),
		"f1_score", predictor.F1Score(),
	)

	// Audit sink is feature-flagged via KAFKA_AUDIT_ENABLED.
	var audit prediction.AuditSink
	var auditWriter *kafkaadapter.AuditWriter
	if cfg.AuditEnabled {
		auditWriter = kafkaadapter.NewAuditWriter(cfg, logger)
		audit = auditWriter
		logger.Info("prediction audit enabled", "topic", cfg.AuditTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("prediction audit disabled")
	}

	svc := prediction.New(predictor, audit, logger, metrics)

	srv := httpapi.NewServer(httpapi.Options{
		Addr:           cfg.HTTPAddr,
		Service:        svc,
		Ready:          svc,
		HeatmapPath:    cfg.HeatmapPath,
		PredictTimeout: cfg.PredictTimeout,
		Logger:         logger,
		Metrics:        metrics,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if auditWriter != nil {
		if err := auditWriter.Close(); err != nil {
			logger.Error("audit writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
