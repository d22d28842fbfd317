package core

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

// NewFieldValidationError converts validator errors into a *ValidationError
// carrying translated, display-ready messages. Other errors are returned as is.
func NewFieldValidationError(err error) error {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}
	flds := make([]FieldError, 0, len(vErrs))
	for _, vErr := range vErrs {
		flds = append(flds, FieldError{Field: vErr.Field(), Error: vErr.Translate(Translator)})
	}
	return NewValidationError(err, flds...)
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

func (err ValidationError) Unwrap() error { return err.Err }

// Map returns the field messages keyed by JSON field name.
func (err ValidationError) Map() map[string]string {
	m := make(map[string]string, len(err.Fields))
	for _, fErr := range err.Fields {
		if _, ok := m[fErr.Field]; !ok {
			m[fErr.Field] = fErr.Error
		}
	}
	return m
}

// BackendError is any failure of a backend call: transport errors (Status 0),
// non-2xx responses or malformed bodies.
type BackendError struct {
	Status  int
	Message string
	Err     error
}

func (err *BackendError) Error() string {
	msg := err.Message
	if msg == "" && err.Err != nil {
		msg = err.Err.Error()
	}
	if err.Status == 0 {
		return "backend unreachable: " + msg
	}
	if msg == "" {
		msg = http.StatusText(err.Status)
	}
	return fmt.Sprintf("backend error (%d): %s", err.Status, msg)
}

func (err *BackendError) Unwrap() error { return err.Err }

// IsUnauthorized reports whether the backend rejected the session.
func (err *BackendError) IsUnauthorized() bool { return err.Status == http.StatusUnauthorized }

// AuthError is a normalized login or signup failure with a display-ready message.
type AuthError struct {
	Message string
	Err     error
}

func (err *AuthError) Error() string { return err.Message }

func (err *AuthError) Unwrap() error { return err.Err }

// MessageOf extracts the human-readable backend message from err, or returns fallback.
func MessageOf(err error, fallback string) string {
	var bErr *BackendError
	if errors.As(err, &bErr) && bErr.Message != "" {
		return bErr.Message
	}
	var aErr *AuthError
	if errors.As(err, &aErr) && aErr.Message != "" {
		return aErr.Message
	}
	return fallback
}
