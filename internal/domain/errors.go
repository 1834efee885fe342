package domain

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Sentinel errors. Services mark their errors with one of these so the delivery
// layer can map them to status codes with errors.Is.
var (
	ErrValidation          = errors.New("validation failed")
	ErrRateLimited         = errors.New("too many requests")
	ErrDuplicateSubmission = errors.New("duplicate submission")
	ErrNotEligible         = errors.New("not eligible")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrNotFound            = errors.New("not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrDuplicateEmail      = errors.New("email already in use")
)

// FieldError describes a single invalid input field.
// swagger:model FieldError
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field violation found for one submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError returns a ValidationError marked with ErrValidation.
func NewValidationError(fields []FieldError) error {
	return errors.Mark(&ValidationError{Fields: fields}, ErrValidation)
}

// FieldErrors extracts the field list from err, if it carries one.
func FieldErrors(err error) []FieldError {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}

// RateLimitedError is returned when a client exceeded its submission quota.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return "too many requests, retry after " + e.RetryAfter.String()
}

// NewRateLimitedError returns a RateLimitedError marked with ErrRateLimited.
func NewRateLimitedError(retryAfter time.Duration) error {
	return errors.Mark(&RateLimitedError{RetryAfter: retryAfter}, ErrRateLimited)
}

// RetryAfter returns the wait hint carried by err, or 0.
func RetryAfter(err error) time.Duration {
	var rerr *RateLimitedError
	if errors.As(err, &rerr) {
		return rerr.RetryAfter
	}
	return 0
}
