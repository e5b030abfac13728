// Package inputval holds request validation helpers shared by the stores
// and handlers. Validation failures are reported as *ValidationError so the
// HTTP layer can answer 400 and name the offending field.
package inputval

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dalemusser/waffle/pantry/validate"
)

// ValidationError names the field that failed and why.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// HTTPStatus lets the JSON error writer map validation failures to 400.
func (e *ValidationError) HTTPStatus() int { return 400 }

// New returns a ValidationError for field.
func New(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Required fails when value is blank after trimming.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return New(field, "is required")
	}
	return nil
}

// IsValidEmail reports whether s looks like a deliverable address.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 || strings.Count(s, "@") != 1 {
		return false
	}
	return validate.SimpleEmailValid(s)
}

// Email fails when value is blank or not an email address.
func Email(field, value string) error {
	if err := Required(field, value); err != nil {
		return err
	}
	if !IsValidEmail(value) {
		return New(field, "must be a valid email address")
	}
	return nil
}

// MaxLen fails when value is longer than n runes.
func MaxLen(field, value string, n int) error {
	if len([]rune(value)) > n {
		return New(field, "must be at most %d characters", n)
	}
	return nil
}

// URL fails when value is set and is not an absolute http(s) URL. Blank
// values pass; pair with Required when the field is mandatory.
func URL(field, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return New(field, "must be an http or https URL")
	}
	return nil
}

// First returns the first non-nil error.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
