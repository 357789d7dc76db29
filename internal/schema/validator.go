// Package schema declares request inputs and validates them.
//
// Inputs carry go-playground/validator rules in `validate` tags and optional
// human messages in `msg` tags ("rule=message;rule=message"). Validate runs
// Normalize, then the field rules, then Refine for cross-field rules.
package schema

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"basegraph.app/backoffice/internal/apperr"
)

var (
	slugPattern     = regexp.MustCompile(`^[a-z0-9-]+$`)
	domainPattern   = regexp.MustCompile(`(?i)^([a-z0-9]+(-[a-z0-9]+)*\.)+[a-z]{2,}$`)
	datePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	passwordLower   = regexp.MustCompile(`[a-z]`)
	passwordUpper   = regexp.MustCompile(`[A-Z]`)
	passwordDigit   = regexp.MustCompile(`\d`)
	defaultValidate = newValidator()
)

// normalizer trims strings and applies defaults before rules run.
type normalizer interface {
	Normalize()
}

// refiner adds cross-field errors once every field rule has passed.
type refiner interface {
	Refine(fe apperr.FieldErrors)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" {
			name, _, _ = strings.Cut(f.Tag.Get("form"), ",")
		}
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	must(v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("domain", func(fl validator.FieldLevel) bool {
		return domainPattern.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return passwordLower.MatchString(s) && passwordUpper.MatchString(s) && passwordDigit.MatchString(s)
	}))
	must(v.RegisterValidation("timestamp", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(time.RFC3339, fl.Field().String())
		return err == nil
	}))
	must(v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	}))

	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Validate normalizes and checks in, which must be a pointer to a struct.
// Rule failures are returned as an *apperr.Error of KindValidation.
func Validate(in any) error {
	if n, ok := in.(normalizer); ok {
		n.Normalize()
	}

	if err := defaultValidate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return apperr.Validation(fieldErrors(in, verrs))
		}
		return fmt.Errorf("validating %T: %w", in, err)
	}

	if r, ok := in.(refiner); ok {
		fe := apperr.FieldErrors{}
		r.Refine(fe)
		if len(fe) > 0 {
			return apperr.Validation(fe)
		}
	}

	return nil
}

func fieldErrors(in any, verrs validator.ValidationErrors) apperr.FieldErrors {
	t := reflect.TypeOf(in)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	fe := apperr.FieldErrors{}
	for _, e := range verrs {
		var custom string
		if sf, ok := t.FieldByName(e.StructField()); ok {
			custom = lookupMessage(sf.Tag.Get("msg"), e.Tag())
		}
		if custom == "" {
			custom = defaultMessage(e)
		}
		fe.Add(e.Field(), custom)
	}
	return fe
}

func lookupMessage(tag, rule string) string {
	if tag == "" {
		return ""
	}
	for _, part := range strings.Split(tag, ";") {
		k, v, ok := strings.Cut(part, "=")
		if ok && strings.TrimSpace(k) == rule {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func defaultMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "Required"
	case "email":
		return "Enter a valid email address"
	case "uuid", "uuid4":
		return "Invalid uuid"
	case "url", "http_url":
		return "Enter a valid URL"
	case "oneof":
		return "Must be one of: " + strings.Join(strings.Fields(e.Param()), ", ")
	case "min", "gte":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters", e.Param())
		}
		return "Must be greater than or equal to " + e.Param()
	case "max", "lte":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters", e.Param())
		}
		return "Must be less than or equal to " + e.Param()
	case "slug":
		return "Can only contain lowercase letters, numbers, and hyphens"
	case "domain":
		return "Enter a valid domain name"
	case "timestamp":
		return "Invalid datetime"
	case "date":
		return "Invalid date"
	default:
		return "Invalid value"
	}
}

// ParseTimestamp parses an already validated RFC 3339 value. nil stays nil.
func ParseTimestamp(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

// ParseDate accepts RFC 3339 or a bare YYYY-MM-DD, interpreted as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	if datePattern.MatchString(s) {
		return time.Parse(time.DateOnly, s)
	}
	return time.Parse(time.RFC3339, s)
}

func trimPtr(p **string) {
	if *p == nil {
		return
	}
	v := strings.TrimSpace(**p)
	if v == "" {
		*p = nil
		return
	}
	*p = &v
}

func trim(s *string) {
	*s = strings.TrimSpace(*s)
}
