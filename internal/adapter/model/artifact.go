// Package model loads the serialized casualty classifier and implements
// domain.Predictor on top of it.
//
// The artifact is the JSON export of the offline training pipeline's
// logistic regression: an intercept, per-column numeric coefficients with
// optional standardization parameters, and per-level coefficient tables for
// the two categorical columns. Scoring is a dot product followed by the
// logistic function, so the loaded model is immutable and safe to share
// across concurrent requests.
package model

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/evcrashlab/ev-accident-predictor/internal/domain"
)

// Categorical column names as they appear in the artifact.
const (
	ColVehicleType        = "VEHICLE TYPE CODE 2"
	ColContributingFactor = "CONTRIBUTING FACTOR VEHICLE 1"
)

// NumericFeature holds the coefficient and standardization parameters for
// one numeric column. Mean defaults to 0 and Scale to 1 when the training
// pipeline did not standardize the column.
type NumericFeature struct {
	Coef  float64  `json:"coef"`
	Mean  float64  `json:"mean,omitempty"`
	Scale *float64 `json:"scale,omitempty"`
}

// Artifact is the on-disk JSON layout of a trained model.
type Artifact struct {
	SchemaVersion int       `json:"schema_version"`
	ModelType     string    `json:"model_type"`
	TrainedAt     time.Time `json:"trained_at"`
	F1Score       float64   `json:"f1_score"`
	Threshold     float64   `json:"threshold"`
	Intercept     float64   `json:"intercept"`

	Numeric     map[string]NumericFeature     `json:"numeric_coefficients"`
	Categorical map[string]map[string]float64 `json:"categorical_coefficients"`
}

// LogisticModel is a loaded, validated artifact. It implements
// domain.Predictor.
type LogisticModel struct {
	artifact Artifact
	path     string
}

// LoadArtifact reads and validates a model artifact. Callers treat any
// failure here as fatal for the process.
func LoadArtifact(path string) (*LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse model artifact %s: %w", path, err)
	}
	if err := validateArtifact(a); err != nil {
		return nil, fmt.Errorf("invalid model artifact %s: %w", path, err)
	}

	return &LogisticModel{artifact: a, path: path}, nil
}

func validateArtifact(a Artifact) error {
	if a.ModelType != "logistic_regression" {
		return fmt.Errorf("unsupported model_type %q", a.ModelType)
	}
	if a.Threshold <= 0 || a.Threshold >= 1 {
		return fmt.Errorf("threshold %v outside (0,1)", a.Threshold)
	}
	if len(a.Numeric) == 0 {
		return fmt.Errorf("no numeric coefficients")
	}
	for _, col := range []string{ColVehicleType, ColContributingFactor} {
		levels, ok := a.Categorical[col]
		if !ok || len(levels) == 0 {
			return fmt.Errorf("missing categorical coefficients for %q", col)
		}
	}
	for name, f := range a.Numeric {
		if f.Scale != nil && *f.Scale == 0 {
			return fmt.Errorf("zero scale for numeric feature %q", name)
		}
	}
	return nil
}

// Path returns the file the model was loaded from.
func (m *LogisticModel) Path() string { return m.path }

// F1Score returns the offline evaluation score recorded in the artifact.
func (m *LogisticModel) F1Score() float64 { return m.artifact.F1Score }

// TrainedAt returns the training timestamp recorded in the artifact.
func (m *LogisticModel) TrainedAt() time.Time { return m.artifact.TrainedAt }

// Predict returns 1 when the casualty probability reaches the artifact's
// decision threshold, 0 otherwise.
func (m *LogisticModel) Predict(ctx context.Context, req domain.PredictionRequest) (int, error) {
	proba, err := m.PredictProba(ctx, req)
	if err != nil {
		return 0, err
	}
	if proba[1] >= m.artifact.Threshold {
		return 1, nil
	}
	return 0, nil
}

// PredictProba computes [P(no casualty), P(casualty)] for the request.
// An unknown categorical level is a prediction failure, mirroring the
// "missing feature" fault mode of the trained pipeline.
func (m *LogisticModel) PredictProba(ctx context.Context, req domain.PredictionRequest) ([2]float64, error) {
	if err := ctx.Err(); err != nil {
		return [2]float64{}, err
	}

	score := m.artifact.Intercept

	for name, value := range numericValues(req) {
		f, ok := m.artifact.Numeric[name]
		if !ok {
			continue // column not used by this model
		}
		scale := 1.0
		if f.Scale != nil {
			scale = *f.Scale
		}
		score += f.Coef * ((value - f.Mean) / scale)
	}

	vehicleCoef, ok := m.artifact.Categorical[ColVehicleType][req.VehicleType]
	if !ok {
		return [2]float64{}, fmt.Errorf("vehicle type %q not in model vocabulary", req.VehicleType)
	}
	factorCoef, ok := m.artifact.Categorical[ColContributingFactor][req.ContributingFactor]
	if !ok {
		return [2]float64{}, fmt.Errorf("contributing factor %q not in model vocabulary", req.ContributingFactor)
	}
	score += vehicleCoef + factorCoef

	p := sigmoid(score)
	return [2]float64{1 - p, p}, nil
}

// numericValues maps the request's numeric fields to their artifact column names.
func numericValues(req domain.PredictionRequest) map[string]float64 {
	return map[string]float64{
		"Month":       float64(req.Month),
		"Day":         float64(req.Day),
		"Hour":        float64(req.Hour),
		"DayOfWeek":   float64(req.DayOfWeek),
		"ZIP CODE":    float64(req.ZipCode),
		"IsRushHour":  float64(req.IsRushHour),
		"IsWeekend":   float64(req.IsWeekend),
		"IsNightTime": float64(req.IsNightTime),
	}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
