package domain

import "time"

// AuditEvent is the record published to the audit topic after a successful
// prediction. It captures the exact feature record the model scored so
// predictions can be replayed against future model versions.
type AuditEvent struct {
	ID          string            `json:"id"`
	Request     PredictionRequest `json:"request"`
	Region      Region            `json:"region"`
	Label       int               `json:"label"`
	Probability float64           `json:"probability"` // P(casualty)
	RiskFactors []string          `json:"risk_factors,omitempty"`
	ProcessedAt time.Time         `json:"processed_at"`
}
