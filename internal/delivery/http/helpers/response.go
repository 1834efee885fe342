package helpers

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"

	"eventbooking/internal/domain"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest          = "bad_request"
	ErrCodeValidationFailed    = "validation_failed"
	ErrCodeDuplicateSubmission = "duplicate_submission"
	ErrCodeNotEligible         = "not_eligible"
	ErrCodeUnauthorized        = "unauthorized"
	ErrCodeForbidden           = "forbidden"
	ErrCodeNotFound            = "not_found"
	ErrCodeConflict            = "conflict"
	ErrCodeTooManyRequests     = "too_many_requests"
	ErrCodeInternalError       = "internal_error"
)

const internalErrorMessage = "Something went wrong. Please try again later."

// APIError is the error object in the standardized API response envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the standardized envelope for all API responses.
// On success: Data is set, Error is nil. On error: Data is nil, Error is set, and
// Errors lists the offending fields when the input failed validation.
// swagger:model APIResponse
type APIResponse struct {
	Data   any                 `json:"data"`
	Error  *APIError           `json:"error"`
	Errors []domain.FieldError `json:"errors,omitempty"`
}

// WriteJSONSuccess sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with the given data and error set to nil.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, APIResponse{Data: data})
}

// WriteJSONError sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with data nil and the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	writeJSON(w, statusCode, APIResponse{Error: &APIError{Code: code, Message: message}})
}

// WriteValidationError writes a 400 carrying every field error.
func WriteValidationError(w http.ResponseWriter, fields []domain.FieldError) {
	writeJSON(w, http.StatusBadRequest, APIResponse{
		Error:  &APIError{Code: ErrCodeValidationFailed, Message: "Validation failed"},
		Errors: fields,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteServiceError maps a service error onto the envelope. Known sentinels get
// their status and public hint; anything else is logged and answered with a
// generic 500 so internal detail never reaches the caller.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		WriteValidationError(w, domain.FieldErrors(err))
	case errors.Is(err, domain.ErrRateLimited):
		w.Header().Set("Retry-After", RetryAfterSeconds(domain.RetryAfter(err)))
		WriteJSONError(w, http.StatusTooManyRequests, ErrCodeTooManyRequests, publicMessage(err, "Too many requests"))
	case errors.Is(err, domain.ErrDuplicateSubmission):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeDuplicateSubmission, publicMessage(err, "Duplicate submission"))
	case errors.Is(err, domain.ErrNotEligible):
		WriteJSONError(w, http.StatusForbidden, ErrCodeNotEligible, publicMessage(err, "Not eligible"))
	case errors.Is(err, domain.ErrInvalidStatus):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, publicMessage(err, "Invalid status value"))
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "Not found")
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteJSONError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Invalid email or password")
	case errors.Is(err, domain.ErrUnauthorized):
		WriteJSONError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, ErrCodeForbidden, "Forbidden")
	case errors.Is(err, domain.ErrDuplicateEmail):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, "Email already in use")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, internalErrorMessage)
	}
}

func publicMessage(err error, fallback string) string {
	if hint := errors.FlattenHints(err); hint != "" {
		return hint
	}
	return fallback
}

// RetryAfterSeconds formats d as a whole number of seconds, rounded up, minimum 1.
func RetryAfterSeconds(d time.Duration) string {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
