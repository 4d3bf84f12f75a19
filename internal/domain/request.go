package domain

import "fmt"

// VehicleTypes are the vehicle categories the model was trained on
// (NYC collision dataset "VEHICLE TYPE CODE 2" values, lowercased).
var VehicleTypes = []string{
	"sedan",
	"suv",
	"bus",
	"bicycle",
	"truck",
	"van",
	"motorcycle",
}

// ContributingFactors are the primary-cause labels the model was trained on
// ("CONTRIBUTING FACTOR VEHICLE 1" values, lowercased).
var ContributingFactors = []string{
	"driver inattention/distraction",
	"failure to yield right-of-way",
	"following too closely",
	"unsafe speed",
	"unsafe lane changing",
	"backing unsafely",
	"other",
}

// PredictionRequest is the flat feature record handed to the predictor.
// Field names mirror the training columns; constructed fresh per prediction
// attempt via BuildRequest and never mutated.
type PredictionRequest struct {
	Month              int    `json:"Month"`
	Day                int    `json:"Day"`
	Hour               int    `json:"Hour"`
	DayOfWeek          int    `json:"DayOfWeek"`
	VehicleType        string `json:"VEHICLE TYPE CODE 2"`
	ZipCode            int    `json:"ZIP CODE"`
	ContributingFactor string `json:"CONTRIBUTING FACTOR VEHICLE 1"`
	IsRushHour         int    `json:"IsRushHour"`
	IsWeekend          int    `json:"IsWeekend"`
	IsNightTime        int    `json:"IsNightTime"`
}

// BuildRequest validates the inputs and assembles the feature record.
// The ZIP code is re-validated here even when the caller checked it earlier:
// the two checks are decoupled in time and the input may have changed between
// them, so the builder is the gate the predictor relies on.
func BuildRequest(tc TemporalContext, vehicleType, factor, zip string) (PredictionRequest, error) {
	zipInt, ok := parseZip(zip)
	if !ok {
		return PredictionRequest{}, &ValidationError{
			Kind:    ErrInvalidZip,
			Field:   "zip",
			Message: "please enter a valid 5-digit ZIP code",
		}
	}
	if !IsValidNYZip(zip) {
		return PredictionRequest{}, &ValidationError{
			Kind:    ErrOutOfStateZip,
			Field:   "zip",
			Message: "this ZIP code is not in New York State; please enter a valid NY ZIP code",
		}
	}
	if tc.Hour < 0 || tc.Hour > 23 {
		return PredictionRequest{}, &ValidationError{
			Kind:    ErrInvalidHour,
			Field:   "hour",
			Message: fmt.Sprintf("hour must be between 0 and 23, got %d", tc.Hour),
		}
	}
	if !contains(VehicleTypes, vehicleType) {
		return PredictionRequest{}, &ValidationError{
			Kind:    ErrInvalidVehicleType,
			Field:   "vehicle_type",
			Message: fmt.Sprintf("unknown vehicle type %q", vehicleType),
		}
	}
	if !contains(ContributingFactors, factor) {
		return PredictionRequest{}, &ValidationError{
			Kind:    ErrInvalidContributingFactor,
			Field:   "contributing_factor",
			Message: fmt.Sprintf("unknown contributing factor %q", factor),
		}
	}

	return PredictionRequest{
		Month:              tc.Month,
		Day:                tc.Day,
		Hour:               tc.Hour,
		DayOfWeek:          tc.DayOfWeek,
		VehicleType:        vehicleType,
		ZipCode:            zipInt,
		ContributingFactor: factor,
		IsRushHour:         boolToInt(tc.RushHour),
		IsWeekend:          boolToInt(tc.Weekend),
		IsNightTime:        boolToInt(tc.NightTime),
	}, nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
