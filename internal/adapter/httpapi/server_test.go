package httpapi_test

import (
	"context"
	"io"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcrashlab/ev-accident-predictor/internal/adapter/httpapi"
	"github.com/evcrashlab/ev-accident-predictor/internal/domain"
	"github.com/evcrashlab/ev-accident-predictor/internal/observability"
	"github.com/evcrashlab/ev-accident-predictor/internal/prediction"
)

type stubPredictor struct {
	label int
	proba [2]float64
	err   error
}

func (p *stubPredictor) Predict(_ context.Context, _ domain.PredictionRequest) (int, error) {
	return p.label, p.err
}

func (p *stubPredictor) PredictProba(_ context.Context, _ domain.PredictionRequest) ([2]float64, error) {
	return p.proba, p.err
}

type stubReadiness struct {
	err error
}

func (s *stubReadiness) CheckReadiness(_ context.Context) error { return s.err }

func newTestServer(t *testing.T, predictor domain.Predictor, readyErr error) *httpapi.Server {
	t.Helper()

	heatmapPath := filepath.Join(t.TempDir(), "heatmap.html")
	require.NoError(t, os.WriteFile(heatmapPath, []byte("<div id=\"ev-heatmap\"></div>"), 0o600))

	svc := prediction.New(predictor, nil, slog.New(slog.NewTextHandler(io.Discard, nil)), observability.NewMetricsForTesting())
	return httpapi.NewServer(httpapi.Options{
		Addr:           ":0",
		Service:        svc,
		Ready:          &stubReadiness{err: readyErr},
		HeatmapPath:    heatmapPath,
		PredictTimeout: time.Second,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics:        observability.NewMetricsForTesting(),
	})
}

func casualtyPredictor() *stubPredictor {
	return &stubPredictor{label: 1, proba: [2]float64{0.35, 0.65}}
}

func predictForm() url.Values {
	return url.Values{
		"date":                {"2024-06-15"},
		"hour":                {"8"},
		"vehicle_type":        {"sedan"},
		"contributing_factor": {"unsafe speed"},
		"zip":                 {"10001"},
	}
}

func postForm(srv *httpapi.Server, form url.Values) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, casualtyPredictor(), nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyz(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		srv := newTestServer(t, casualtyPredictor(), nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not ready", func(t *testing.T) {
		srv := newTestServer(t, casualtyPredictor(), errors.New("model not loaded"))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "model not loaded", body["error"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, casualtyPredictor(), nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestIndexPage(t *testing.T) {
	srv := newTestServer(t, casualtyPredictor(), nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Electric Vehicle Accident Predictor")
	assert.Contains(t, body, `value="10001"`)
	assert.Contains(t, body, "driver inattention/distraction")
	assert.Contains(t, body, "motorcycle")
}

func TestPredictForm(t *testing.T) {
	t.Run("casualty likely", func(t *testing.T) {
		srv := newTestServer(t, casualtyPredictor(), nil)
		rec := postForm(srv, predictForm())

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Casualty Likely")
		assert.Contains(t, body, "65.00%")
		assert.Contains(t, body, "Manhattan, NYC")
		assert.Contains(t, body, "rush hour")
		assert.Contains(t, body, "unsafe speed")
	})

	t.Run("no casualty, no risk factors", func(t *testing.T) {
		srv := newTestServer(t, &stubPredictor{label: 0, proba: [2]float64{0.9, 0.1}}, nil)
		form := predictForm()
		form.Set("hour", "12")
		form.Set("contributing_factor", "other")
		form.Set("date", "2024-06-17") // Monday
		rec := postForm(srv, form)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "No Casualty Likely")
		assert.Contains(t, body, "No significant risk factors identified.")
	})

	t.Run("out-of-state zip rejected before prediction", func(t *testing.T) {
		srv := newTestServer(t, casualtyPredictor(), nil)
		form := predictForm()
		form.Set("zip", "90210")
		rec := postForm(srv, form)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "not in New York State")
		// The form stays reusable with the rejected value in place.
		assert.Contains(t, body, `value="90210"`)
	})

	t.Run("malformed date", func(t *testing.T) {
		srv := newTestServer(t, casualtyPredictor(), nil)
		form := predictForm()
		form.Set("date", "June 15th")
		rec := postForm(srv, form)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "expected YYYY-MM-DD")
	})

	t.Run("predictor fault shows generic message", func(t *testing.T) {
		srv := newTestServer(t, &stubPredictor{err: errors.New("matrix dimension mismatch")}, nil)
		rec := postForm(srv, predictForm())

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "error making prediction")
		assert.NotContains(t, body, "matrix")
	})
}

func TestPredictAPI(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := newTestServer(t, casualtyPredictor(), nil)
		payload := `{"date":"2024-06-15","hour":8,"vehicle_type":"sedan","contributing_factor":"unsafe speed","zip":"10001"}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/predictions", strings.NewReader(payload))
		srv.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var result prediction.Result
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.True(t, result.CasualtyLikely)
		assert.InDelta(t, 0.65, result.Probability, 1e-12)
		assert.Equal(t, domain.RegionManhattan, result.Region)
		assert.Len(t, result.RiskFactors, 2)
	})

	t.Run("validation error carries the kind", func(t *testing.T) {
		srv := newTestServer(t, casualtyPredictor(), nil)
		payload := `{"date":"2024-06-15","hour":8,"vehicle_type":"sedan","contributing_factor":"unsafe speed","zip":"99999"}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/predictions", strings.NewReader(payload))
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "out_of_state_zip", body["error"])
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		srv := newTestServer(t, casualtyPredictor(), nil)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/predictions", strings.NewReader(`{"bogus":true}`))
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRegionEndpoint(t *testing.T) {
	srv := newTestServer(t, casualtyPredictor(), nil)

	cases := []struct {
		zip        string
		wantValid  bool
		wantRegion domain.Region
	}{
		{"10001", true, domain.RegionManhattan},
		{"11201", true, domain.RegionQueens},
		{"14925", true, domain.RegionNYCArea},
		{"99999", false, domain.RegionUnknown},
		{"abcde", false, domain.RegionInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.zip, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/regions/"+tc.zip, nil))

			require.Equal(t, http.StatusOK, rec.Code)

			var body struct {
				Zip    string        `json:"zip"`
				Valid  bool          `json:"valid"`
				Region domain.Region `json:"region"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.zip, body.Zip)
			assert.Equal(t, tc.wantValid, body.Valid)
			assert.Equal(t, tc.wantRegion, body.Region)
		})
	}
}

func TestHeatmap(t *testing.T) {
	t.Run("serves the artifact verbatim", func(t *testing.T) {
		srv := newTestServer(t, casualtyPredictor(), nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/heatmap", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "<div id=\"ev-heatmap\"></div>", rec.Body.String())
	})

	t.Run("missing artifact reports an error", func(t *testing.T) {
		svc := prediction.New(casualtyPredictor(), nil, slog.New(slog.NewTextHandler(io.Discard, nil)), observability.NewMetricsForTesting())
		srv := httpapi.NewServer(httpapi.Options{
			Addr:           ":0",
			Service:        svc,
			Ready:          &stubReadiness{},
			HeatmapPath:    filepath.Join(t.TempDir(), "missing.html"),
			PredictTimeout: time.Second,
			Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
			Metrics:        observability.NewMetricsForTesting(),
		})

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/heatmap", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Error loading heatmap")
	})
}
