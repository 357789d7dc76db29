package apperr

import (
	"errors"
	"net/http"
)

const unexpectedMessage = "Unexpected server error"

type Body struct {
	Error       string      `json:"error"`
	FieldErrors FieldErrors `json:"fieldErrors,omitempty"`
	Details     *Details    `json:"details,omitempty"`
}

type Details struct {
	FieldErrors FieldErrors `json:"fieldErrors,omitempty"`
	Reason      string      `json:"reason,omitempty"`
}

// Serialize maps err to a status and response body. Errors outside the
// taxonomy become a generic 500 and never leak their text.
func Serialize(err error) (int, Body) {
	var e *Error
	if !errors.As(err, &e) || e.Kind == KindUnknown {
		return http.StatusInternalServerError, Body{Error: unexpectedMessage}
	}

	status := e.Kind.Status()

	if e.Kind == KindValidation {
		fe := e.FieldErrors
		if fe == nil {
			fe = FieldErrors{}
		}
		return status, Body{Error: "Validation failed", FieldErrors: fe}
	}

	body := Body{Error: e.Message}
	if body.Error == "" {
		body.Error = http.StatusText(status)
	}
	if len(e.FieldErrors) > 0 || e.Reason != "" {
		body.Details = &Details{FieldErrors: e.FieldErrors, Reason: e.Reason}
	}
	return status, body
}
