// Command modelcheck validates a model artifact the way the running service
// will, then scores a matrix of representative inputs so an operator can
// sanity-check a new artifact before deploying it.
//
// Usage:
//
//	go run ./cmd/modelcheck -model data/model/lr_casualty.json
//
// Exits non-zero when the artifact fails to load or any probe prediction
// fails or produces an out-of-range probability.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/evcrashlab/ev-accident-predictor/internal/adapter/model"
	"github.com/evcrashlab/ev-accident-predictor/internal/domain"
)

// probe is one representative input scored against the artifact.
type probe struct {
	name    string
	date    time.Time
	hour    int
	vehicle string
	factor  string
	zip     string
}

func probes() []probe {
	saturday := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2024, time.June, 17, 0, 0, 0, 0, time.UTC)
	return []probe{
		{"weekend rush hour, Manhattan", saturday, 8, "sedan", "unsafe speed", "10001"},
		{"weekday off-peak, Queens", monday, 11, "suv", "other", "11375"},
		{"weekday night, Brooklyn overlap", monday, 23, "motorcycle", "driver inattention/distraction", "11201"},
		{"upstate evening rush", monday, 17, "truck", "following too closely", "14850"},
		{"outer-range boundary", saturday, 12, "van", "backing unsafely", "14925"},
	}
}

func main() {
	os.Exit(run())
}

func run() int {
	modelPath := flag.String("model", "", "path to the model artifact JSON")
	flag.Parse()

	if *modelPath == "" {
		flag.Usage()
		fmt.Fprintln(os.Stderr, "missing required flag: -model")
		return 2
	}

	m, err := model.LoadArtifact(*modelPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		return 1
	}

	fmt.Printf("artifact:   %s\n", m.Path())
	fmt.Printf("trained at: %s\n", m.TrainedAt().Format(time.RFC3339))
	fmt.Printf("f1 score:   %.4f\n\n", m.F1Score())

	ctx := context.Background()
	failures := 0

	for _, p := range probes() {
		tc := domain.DeriveTemporal(p.date, p.hour)
		req, err := domain.BuildRequest(tc, p.vehicle, p.factor, p.zip)
		if err != nil {
			fmt.Printf("  %-36s FAIL: %v\n", p.name, err)
			failures++
			continue
		}

		label, err := m.Predict(ctx, req)
		if err != nil {
			fmt.Printf("  %-36s FAIL: %v\n", p.name, err)
			failures++
			continue
		}
		proba, err := m.PredictProba(ctx, req)
		if err != nil {
			fmt.Printf("  %-36s FAIL: %v\n", p.name, err)
			failures++
			continue
		}
		if proba[1] < 0 || proba[1] > 1 {
			fmt.Printf("  %-36s FAIL: probability %v out of range\n", p.name, proba[1])
			failures++
			continue
		}

		outcome := "no casualty"
		if label == 1 {
			outcome = "casualty"
		}
		fmt.Printf("  %-36s %-12s P(casualty)=%.4f  region=%s\n",
			p.name, outcome, proba[1], domain.ClassifyZip(p.zip))
	}

	if failures > 0 {
		fmt.Printf("\n%d probe(s) FAILED.\n", failures)
		return 1
	}
	fmt.Println("\nAll probes passed.")
	return 0
}
