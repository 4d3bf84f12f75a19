package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// prediction service.
type Metrics struct {
	PredictionsTotal   *prometheus.CounterVec // labels: outcome={casualty,no_casualty,error}
	PredictionDuration prometheus.Histogram
	ValidationErrors   *prometheus.CounterVec // labels: kind (domain.ErrorKind)
	ModelLoaded        prometheus.Gauge

	// Audit sink metrics.
	AuditEventsPublished prometheus.Counter
	AuditPublishFailures prometheus.Counter

	// Presentation metrics.
	HeatmapServes *prometheus.CounterVec // labels: result={ok,error}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.PredictionsTotal,
		m.PredictionDuration,
		m.ValidationErrors,
		m.ModelLoaded,
		m.AuditEventsPublished,
		m.AuditPublishFailures,
		m.HeatmapServes,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		PredictionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ev_predictor",
			Name:      "predictions_total",
			Help:      "Completed prediction attempts by outcome.",
		}, []string{"outcome"}),
		PredictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ev_predictor",
			Name:      "prediction_duration_seconds",
			Help:      "Duration of a full validate-derive-predict cycle.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		ValidationErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ev_predictor",
			Name:      "validation_errors_total",
			Help:      "Inputs rejected before predictor invocation, by error kind.",
		}, []string{"kind"}),
		ModelLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ev_predictor",
			Name:      "model_loaded",
			Help:      "1 when the model artifact is loaded and serving.",
		}),
		AuditEventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ev_predictor",
			Name:      "audit_events_published_total",
			Help:      "Prediction audit events written to the audit topic.",
		}),
		AuditPublishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ev_predictor",
			Name:      "audit_publish_failures_total",
			Help:      "Audit events that failed to publish.",
		}),
		HeatmapServes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ev_predictor",
			Name:      "heatmap_serves_total",
			Help:      "Heatmap page loads by result.",
		}, []string{"result"}),
	}
}
