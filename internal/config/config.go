// Package config reads service settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	ModelPath       string
	HeatmapPath     string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	PredictTimeout  time.Duration

	// Prediction audit sink configuration.
	AuditEnabled bool
	KafkaBrokers []string
	AuditTopic   string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	predictTimeout, err := parsePositiveDuration("PREDICT_TIMEOUT", "2s")
	if err != nil {
		return nil, err
	}

	auditEnabled := false
	if v := os.Getenv("KAFKA_AUDIT_ENABLED"); v != "" {
		auditEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		ModelPath:       envOrDefault("MODEL_PATH", "data/model/lr_casualty.json"),
		HeatmapPath:     envOrDefault("HEATMAP_PATH", "data/heatmap/ev_heatmap.html"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		PredictTimeout:  predictTimeout,

		AuditEnabled: auditEnabled,
		KafkaBrokers: parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		AuditTopic:   envOrDefault("KAFKA_AUDIT_TOPIC", "prediction-audit"),
	}

	if cfg.ModelPath == "" {
		return nil, errors.New("MODEL_PATH is required")
	}
	if cfg.AuditEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_AUDIT_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.AuditEnabled && cfg.AuditTopic == "" {
		return nil, errors.New("KAFKA_AUDIT_ENABLED is true but KAFKA_AUDIT_TOPIC is empty")
	}

	return cfg, nil
}

// envOrDefault returns the environment variable's value, or def when unset.
func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parseBrokers splits a comma-separated broker list, trimming blanks.
func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// parsePositiveDuration reads a duration variable, rejecting unparseable or
// non-positive values with the variable name in the error.
func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}
