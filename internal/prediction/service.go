// Package prediction orchestrates a single prediction interaction:
// validate inputs, derive temporal features, build the feature record,
// invoke the model, annotate risk factors, and publish an audit event.
package prediction

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/evcrashlab/ev-accident-predictor/internal/domain"
	"github.com/evcrashlab/ev-accident-predictor/internal/observability"
)

// AuditSink publishes prediction audit events. Implementations must not
// block longer than the request context allows.
type AuditSink interface {
	Publish(ctx context.Context, event domain.AuditEvent) error
}

// Input is one user interaction as it arrives from the presentation layer.
type Input struct {
	Date               time.Time
	Hour               int
	VehicleType        string
	ContributingFactor string
	ZipCode            string
}

// Result is the outcome of a successful prediction, shaped for rendering.
type Result struct {
	Request        domain.PredictionRequest `json:"request"`
	Region         domain.Region            `json:"region"`
	Label          int                      `json:"label"`
	CasualtyLikely bool                     `json:"casualty_likely"`
	Probability    float64                  `json:"probability"` // P(casualty)
	RiskFactors    []string                 `json:"risk_factors"`
}

// Service runs predictions against a loaded model. Each call is synchronous
// and stateless; the only shared state is the read-only model handle.
type Service struct {
	predictor domain.Predictor
	audit     AuditSink // nil when auditing is disabled
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Service. Pass a nil audit sink to disable audit publishing.
func New(predictor domain.Predictor, audit AuditSink, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		predictor: predictor,
		audit:     audit,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness reports whether the service can take prediction traffic.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.predictor == nil {
		return errors.New("model not loaded")
	}
	return nil
}

// Predict executes one full prediction cycle. Validation failures return a
// *domain.ValidationError before the predictor is touched; predictor faults
// are logged and collapsed into domain.ErrPredictionFailed with no retry.
func (s *Service) Predict(ctx context.Context, in Input) (Result, error) {
	start := time.Now()

	tc := domain.DeriveTemporal(in.Date, in.Hour)

	req, err := domain.BuildRequest(tc, in.VehicleType, in.ContributingFactor, in.ZipCode)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			s.metrics.ValidationErrors.WithLabelValues(string(ve.Kind)).Inc()
		}
		return Result{}, err
	}

	label, err := s.predictor.Predict(ctx, req)
	if err != nil {
		return Result{}, s.predictionFailure(err)
	}
	proba, err := s.predictor.PredictProba(ctx, req)
	if err != nil {
		return Result{}, s.predictionFailure(err)
	}

	result := Result{
		Request:        req,
		Region:         domain.ClassifyZip(in.ZipCode),
		Label:          label,
		CasualtyLikely: label == 1,
		Probability:    proba[1],
		RiskFactors:    domain.RiskFactors(tc, in.ContributingFactor),
	}

	outcome := "no_casualty"
	if result.CasualtyLikely {
		outcome = "casualty"
	}
	s.metrics.PredictionsTotal.WithLabelValues(outcome).Inc()
	s.metrics.PredictionDuration.Observe(time.Since(start).Seconds())

	s.publishAudit(ctx, result)

	return result, nil
}

// predictionFailure records a predictor fault and returns the generic error
// shown to the user. The cause stays in the logs.
func (s *Service) predictionFailure(err error) error {
	s.logger.Error("predictor call failed", "error", err)
	s.metrics.PredictionsTotal.WithLabelValues("error").Inc()
	return domain.ErrPredictionFailed
}

// publishAudit sends the audit event when a sink is configured. Publish
// failures never affect the user-facing result.
func (s *Service) publishAudit(ctx context.Context, result Result) {
	if s.audit == nil {
		return
	}

	event := domain.AuditEvent{
		ID:          uuid.NewString(),
		Request:     result.Request,
		Region:      result.Region,
		Label:       result.Label,
		Probability: result.Probability,
		RiskFactors: result.RiskFactors,
		ProcessedAt: domain.Now(),
	}

	if err := s.audit.Publish(ctx, event); err != nil {
		s.logger.Warn("audit publish failed", "event_id", event.ID, "error", err)
		s.metrics.AuditPublishFailures.Inc()
		return
	}
	s.metrics.AuditEventsPublished.Inc()
}
