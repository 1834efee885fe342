// Package validation holds the input rules for public submissions: field
// validation with human-readable messages and free-text sanitizing.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"eventbooking/internal/domain"
)

// emailRegexp matches local@domain.tld with no whitespace and a single @.
var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// fieldLabels are the display names used in error messages, keyed by JSON field name.
var fieldLabels = map[string]string{
	"firstName": "First name",
	"lastName":  "Last name",
	"email":     "Email",
	"eventType": "Event type",
	"details":   "Details",
	"name":      "Name",
	"comment":   "Comment",
	"rating":    "Rating",
}

// Result is the outcome of validating one submission. Errors is empty iff IsValid.
type Result struct {
	IsValid bool                `json:"is_valid"`
	Errors  []domain.FieldError `json:"errors"`
}

// Err returns nil for a valid result, or a domain validation error carrying the field list.
func (r Result) Err() error {
	if r.IsValid {
		return nil
	}
	return domain.NewValidationError(r.Errors)
}

// Validator checks public submissions against the fixed field rules.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator with the custom notblank and simple_email rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
		return emailRegexp.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// ValidEmail reports whether s looks like local@domain.tld and fits the email column.
func ValidEmail(s string) bool {
	return utf8.RuneCountInString(s) <= domain.MaxEmailLength && emailRegexp.MatchString(s)
}

// ValidateEventRequest checks firstName, lastName, email, eventType and details.
func (v *Validator) ValidateEventRequest(in domain.EventRequestInput) Result {
	return v.check(in)
}

// ValidateTestimonial checks name, email, comment and rating.
func (v *Validator) ValidateTestimonial(in domain.TestimonialInput) Result {
	return v.check(in)
}

func (v *Validator) check(in any) Result {
	err := v.validate.Struct(in)
	if err == nil {
		return Result{IsValid: true, Errors: []domain.FieldError{}}
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Result{Errors: []domain.FieldError{{Field: "body", Message: "Invalid input"}}}
	}
	out := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, domain.FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return Result{IsValid: false, Errors: out}
}

func message(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "notblank", "required":
		return label + " is required"
	case "simple_email":
		return "Please enter a valid email address"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be between %d and %d", label, domain.MinRating, domain.MaxRating)
	case "min":
		return fmt.Sprintf("%s must be between %d and %d", label, domain.MinRating, domain.MaxRating)
	}
	return label + " is invalid"
}
