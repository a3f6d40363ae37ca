package handler

// RESPONSE HELPERS:
// These functions standardise how handlers send JSON and errors.
//
// Two error shapes exist on purpose:
//
//	generic failures:    {"error": "not_found", "message": "..."}
//	validation failures: {"error": "validation_failed", "errors": {"email": "...", ...}}
//
// Validation failures carry the whole field-path → message map so the
// frontend can place every message inline next to its input in a single
// round trip.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/signup-form/internal/apperror"
	"github.com/sakif/signup-form/internal/form"
)

// ErrorResponse is the generic error shape.
type ErrorResponse struct {
	Error   string `json:"error"`   // Machine-readable error type (e.g. "not_found")
	Message string `json:"message"` // Human-readable description
}

// FieldErrorResponse is the validation failure shape: one message per
// failing field, keyed by field path.
type FieldErrorResponse struct {
	Error  string            `json:"error"` // always "validation_failed"
	Errors map[string]string `json:"errors"`
}

// writeJSON sends a JSON response with the given status code.
// Headers must be set before WriteHeader, and WriteHeader before the
// body — once the body starts, both are locked in.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeIndentedJSON is writeJSON with pretty-printing. The submit
// endpoint uses it so the normalized record renders readably when the
// page displays the raw response body.
func writeIndentedJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeFieldErrors sends the per-field validation failure payload.
// 422 Unprocessable Entity: the request parsed fine, the content didn't.
func writeFieldErrors(w http.ResponseWriter, ferrs form.FieldErrors) {
	writeJSON(w, http.StatusUnprocessableEntity, FieldErrorResponse{
		Error:  "validation_failed",
		Errors: ferrs.Messages(),
	})
}

// writeError maps a domain error to an HTTP status code and sends it.
// The service layer returns apperror kinds; only this function knows
// which status each kind deserves.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		case errors.Is(err, apperror.ErrEmptyField),
			errors.Is(err, apperror.ErrInvalidFormat),
			errors.Is(err, apperror.ErrTooShort),
			errors.Is(err, apperror.ErrEmptyList):
			// A lone validation kind outside a submission (shouldn't
			// normally reach here — Submit returns FieldErrors instead).
			status = http.StatusUnprocessableEntity
			errorType = "validation_failed"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
		})
		return
	}

	// Unknown error — generic 500, never leak internals to the client.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
