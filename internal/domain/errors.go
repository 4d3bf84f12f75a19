package domain

import "errors"

// ErrorKind classifies a validation failure.
type ErrorKind string

const (
	ErrInvalidZip                ErrorKind = "invalid_zip"       // not 5 digits / not numeric
	ErrOutOfStateZip             ErrorKind = "out_of_state_zip"  // numeric but outside NY ranges
	ErrInvalidHour               ErrorKind = "invalid_hour"      // outside 0–23
	ErrInvalidVehicleType        ErrorKind = "invalid_vehicle_type"
	ErrInvalidContributingFactor ErrorKind = "invalid_contributing_factor"
)

// ValidationError describes an input rejected before the predictor is
// invoked. Validation failures are permanent for the given input; the form
// stays usable and the user corrects the value.
type ValidationError struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// ErrPredictionFailed is the generic per-attempt failure reported when the
// predictor call fails for any reason. Failed attempts are not retried; the
// underlying cause is logged, not shown to the user.
var ErrPredictionFailed = errors.New("prediction failed")
