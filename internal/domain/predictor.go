package domain

import "context"

// Predictor is the trained casualty classifier. Implementations load a
// serialized model artifact at startup and must be safe for concurrent use;
// the service never mutates the model after initialization.
type Predictor interface {
	// Predict returns the binary casualty label: 1 when a casualty is
	// likely, 0 otherwise.
	Predict(ctx context.Context, req PredictionRequest) (int, error)

	// PredictProba returns the class probability distribution as
	// [P(no casualty), P(casualty)].
	PredictProba(ctx context.Context, req PredictionRequest) ([2]float64, error)
}
