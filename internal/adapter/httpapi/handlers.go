package httpapi

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/evcrashlab/ev-accident-predictor/internal/domain"
	"github.com/evcrashlab/ev-accident-predictor/internal/prediction"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("").Funcs(template.FuncMap{
	"percent": func(p float64) float64 { return p * 100 },
}).ParseFS(templateFS, "templates/*.html"))

// pageData feeds the predictor page template for both the initial form and
// the post-submission render.
type pageData struct {
	Date           string
	Hour           int
	Hours          []int
	VehicleTypes   []string
	Factors        []string
	Zip            string
	SelectedType   string
	SelectedFactor string

	Result       *prediction.Result
	ErrorMessage string
}

func defaultPageData() pageData {
	hours := make([]int, 24)
	for i := range hours {
		hours[i] = i
	}
	return pageData{
		Date:           domain.Now().Format("2006-01-02"),
		Hour:           12,
		Hours:          hours,
		VehicleTypes:   domain.VehicleTypes,
		Factors:        domain.ContributingFactors,
		Zip:            "10001",
		SelectedType:   domain.VehicleTypes[0],
		SelectedFactor: domain.ContributingFactors[0],
	}
}

// handleIndex renders the prediction form with the current date pre-filled.
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.renderPage(w, http.StatusOK, defaultPageData())
}

// handlePredictForm processes a form submission and re-renders the page with
// either the prediction result or a human-readable error, leaving the form
// populated and reusable.
func (s *Server) handlePredictForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, defaultPageData(), "could not read form submission")
		return
	}

	data := defaultPageData()
	data.Date = r.PostFormValue("date")
	data.Zip = r.PostFormValue("zip")
	data.SelectedType = r.PostFormValue("vehicle_type")
	data.SelectedFactor = r.PostFormValue("contributing_factor")

	in, err := parseInput(data.Date, r.PostFormValue("hour"), data.SelectedType, data.SelectedFactor, data.Zip)
	if err != nil {
		s.renderError(w, http.StatusBadRequest, data, err.Error())
		return
	}
	data.Hour = in.Hour

	ctx, cancel := context.WithTimeout(r.Context(), s.predictTimeout)
	defer cancel()

	result, err := s.svc.Predict(ctx, in)
	if err != nil {
		status, message := userFacingError(err)
		s.renderError(w, status, data, message)
		return
	}

	data.Result = &result
	s.renderPage(w, http.StatusOK, data)
}

// predictAPIRequest is the JSON API request body.
type predictAPIRequest struct {
	Date               string `json:"date"` // YYYY-MM-DD
	Hour               int    `json:"hour"`
	VehicleType        string `json:"vehicle_type"`
	ContributingFactor string `json:"contributing_factor"`
	Zip                string `json:"zip"`
}

// errorResponse is the JSON API error body.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// handlePredictAPI is the JSON twin of the form flow.
func (s *Server) handlePredictAPI(w http.ResponseWriter, r *http.Request) {
	var body predictAPIRequest
	if err := decodeJSONBody(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}

	in, err := parseInput(body.Date, strconv.Itoa(body.Hour), body.VehicleType, body.ContributingFactor, body.Zip)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.predictTimeout)
	defer cancel()

	result, err := s.svc.Predict(ctx, in)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: string(ve.Kind), Message: ve.Message})
			return
		}
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Error:   "prediction_failed",
			Message: "error making prediction, please try again",
		})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// regionResponse is the body of the ZIP validation endpoint.
type regionResponse struct {
	Zip    string        `json:"zip"`
	Valid  bool          `json:"valid"`
	Region domain.Region `json:"region"`
}

// handleRegion gives the inline ZIP feedback the form shows while typing.
func (s *Server) handleRegion(w http.ResponseWriter, r *http.Request) {
	zip := mux.Vars(r)["zip"]
	writeJSON(w, http.StatusOK, regionResponse{
		Zip:    zip,
		Valid:  domain.IsValidNYZip(zip),
		Region: domain.ClassifyZip(zip),
	})
}

// parseInput converts raw string inputs into a prediction.Input. Date and
// hour format problems are reported here; domain validation happens inside
// the service.
func parseInput(date, hour, vehicleType, factor, zip string) (prediction.Input, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return prediction.Input{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	h, err := strconv.Atoi(hour)
	if err != nil {
		return prediction.Input{}, fmt.Errorf("invalid hour %q, expected 0-23", hour)
	}
	return prediction.Input{
		Date:               d,
		Hour:               h,
		VehicleType:        vehicleType,
		ContributingFactor: factor,
		ZipCode:            zip,
	}, nil
}

// userFacingError maps a service error to an HTTP status and display message.
func userFacingError(err error) (int, string) {
	if ve, ok := domain.AsValidationError(err); ok {
		return http.StatusBadRequest, ve.Message
	}
	if errors.Is(err, domain.ErrPredictionFailed) {
		return http.StatusBadGateway, "error making prediction, please try again"
	}
	return http.StatusInternalServerError, "internal error"
}

func decodeJSONBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func (s *Server) renderPage(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.Error("render page failed", "error", err)
	}
}

func (s *Server) renderError(w http.ResponseWriter, status int, data pageData, message string) {
	data.ErrorMessage = message
	s.renderPage(w, status, data)
}
