// Command genmodel writes a demo model artifact for local development and
// test environments. The coefficients are hand-picked to give plausible,
// explainable behavior (rush hour, night time, and high-risk factors raise
// the casualty probability); they are NOT the production training output.
//
// Usage:
//
//	go run ./cmd/genmodel -out data/model/lr_casualty.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/evcrashlab/ev-accident-predictor/internal/adapter/model"
	"github.com/evcrashlab/ev-accident-predictor/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the model artifact JSON")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	artifact := demoArtifact()

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(*out, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	log.Printf("wrote model artifact: %s", *out)

	// Reload through the real loader and score a sample request so a broken
	// artifact never reaches a running service.
	m, err := model.LoadArtifact(*out)
	if err != nil {
		return fmt.Errorf("generated artifact failed to load: %w", err)
	}

	tc := domain.DeriveTemporal(time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), 8)
	req, err := domain.BuildRequest(tc, "sedan", "unsafe speed", "10001")
	if err != nil {
		return err
	}
	proba, err := m.PredictProba(context.Background(), req)
	if err != nil {
		return fmt.Errorf("sample prediction failed: %w", err)
	}
	log.Printf("sample prediction (Sat 08:00, sedan, unsafe speed, 10001): P(casualty)=%.4f", proba[1])

	return nil
}

func scale(v float64) *float64 { return &v }

// demoArtifact builds the development model. The indicator coefficients
// dominate; calendar columns contribute only mild seasonality.
func demoArtifact() model.Artifact {
	return model.Artifact{
		SchemaVersion: 1,
		ModelType:     "logistic_regression",
		TrainedAt:     time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		F1Score:       0.6133,
		Threshold:     0.5,
		Intercept:     -0.85,
		Numeric: map[string]model.NumericFeature{
			"Month":       {Coef: 0.02, Mean: 6.5, Scale: scale(3.45)},
			"Day":         {Coef: 0.01, Mean: 15.7, Scale: scale(8.8)},
			"Hour":        {Coef: 0.05, Mean: 13.2, Scale: scale(5.6)},
			"DayOfWeek":   {Coef: 0.03, Mean: 2.9, Scale: scale(1.9)},
			"ZIP CODE":    {Coef: -0.04, Mean: 10912, Scale: scale(801)},
			"IsRushHour":  {Coef: 0.35},
			"IsWeekend":   {Coef: 0.18},
			"IsNightTime": {Coef: 0.42},
		},
		Categorical: map[string]map[string]float64{
			model.ColVehicleType: {
				"sedan":      0.05,
				"suv":        0.12,
				"bus":        0.28,
				"bicycle":    0.61,
				"truck":      0.33,
				"van":        0.09,
				"motorcycle": 0.74,
			},
			model.ColContributingFactor: {
				"driver inattention/distraction": 0.44,
				"failure to yield right-of-way":  0.21,
				"following too closely":          0.12,
				"unsafe speed":                   0.52,
				"unsafe lane changing":           0.17,
				"backing unsafely":               0.08,
				"other":                          0.0,
			},
		},
	}
}
