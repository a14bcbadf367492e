package common

import (
	"errors"
	"fmt"
)

// Common error types
var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput indicates invalid input parameters
	ErrInvalidInput = errors.New("invalid input parameter")
)

// IsNotFound checks if err is or wraps ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidInput checks if err is or wraps ErrInvalidInput
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// NotFoundError returns a wrapped not found error with context
func NotFoundError(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// InvalidInputError returns a wrapped invalid input error with context
func InvalidInputError(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidInput)
}

// ValidationRule names the field rule a record violated
type ValidationRule string

// Validation rules
const (
	RuleMissingID        ValidationRule = "missing-id"
	RuleUnexpectedID     ValidationRule = "unexpected-id"
	RuleRequired         ValidationRule = "required"
	RuleNotAllowed       ValidationRule = "not-allowed"
	RuleNotPositive      ValidationRule = "not-positive"
	RuleRange            ValidationRule = "range"
	RuleOrder            ValidationRule = "order"
	RuleUnknownReference ValidationRule = "unknown-reference"
)

// ValidationError is a local field-rule violation detected before any network call
type ValidationError struct {
	Resource string
	Field    string
	Rule     ValidationRule
	Value    string
	Message  string
}

func (e ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s %s", e.Resource, e.Field, e.Rule)
	if e.Value != "" {
		msg += fmt.Sprintf(" (%q)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// NewValidationError creates a new validation error
func NewValidationError(resource, field string, rule ValidationRule, value, message string) error {
	return ValidationError{
		Resource: resource,
		Field:    field,
		Rule:     rule,
		Value:    value,
		Message:  message,
	}
}

// NewMissingIDError creates the error returned when an update carries no identifier
func NewMissingIDError(resource string) error {
	return ValidationError{
		Resource: resource,
		Field:    "id",
		Rule:     RuleMissingID,
		Message:  "an update requires the record identifier",
	}
}

// APIErrorKind classifies a failed backend call
type APIErrorKind string

// API error kinds
const (
	APIErrorHTTP      APIErrorKind = "http"
	APIErrorDecode    APIErrorKind = "decode"
	APIErrorTransport APIErrorKind = "transport"
)

// APIError represents a backend call that did not produce the expected result
type APIError struct {
	Kind       APIErrorKind
	Operation  string
	StatusCode int
	Body       string
	Message    string
	Err        error
}

func (e APIError) Error() string {
	switch e.Kind {
	case APIErrorHTTP:
		return fmt.Sprintf("%s: backend returned status %d, body: %s", e.Operation, e.StatusCode, e.Body)
	case APIErrorDecode:
		return fmt.Sprintf("%s: failed to decode response: %s", e.Operation, e.Message)
	default:
		return fmt.Sprintf("%s: request failed: %s", e.Operation, e.Message)
	}
}

func (e APIError) Unwrap() error {
	return e.Err
}

// NewHTTPError creates an API error for a non-success status
func NewHTTPError(operation string, statusCode int, body []byte) error {
	return APIError{
		Kind:       APIErrorHTTP,
		Operation:  operation,
		StatusCode: statusCode,
		Body:       string(body),
	}
}

// NewDecodeError creates an API error for a response body of the wrong shape
func NewDecodeError(operation string, err error) error {
	return APIError{
		Kind:      APIErrorDecode,
		Operation: operation,
		Message:   err.Error(),
		Err:       err,
	}
}

// NewTransportError creates an API error for a connection or timeout failure
func NewTransportError(operation string, err error) error {
	return APIError{
		Kind:      APIErrorTransport,
		Operation: operation,
		Message:   err.Error(),
		Err:       err,
	}
}

// AuthErrorKind classifies a failed login
type AuthErrorKind string

// Auth error kinds
const (
	AuthBackendRejected   AuthErrorKind = "backend-rejected"
	AuthMalformedResponse AuthErrorKind = "malformed-response"
	AuthTransport         AuthErrorKind = "transport"
)

// AuthError represents a failed credential exchange
type AuthError struct {
	Kind       AuthErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e AuthError) Error() string {
	switch e.Kind {
	case AuthBackendRejected:
		return fmt.Sprintf("authentication rejected by backend with status %d", e.StatusCode)
	case AuthMalformedResponse:
		return fmt.Sprintf("malformed authentication response: %s", e.Message)
	default:
		return fmt.Sprintf("authentication request failed: %s", e.Message)
	}
}

func (e AuthError) Unwrap() error {
	return e.Err
}

// IsValidationError Error type checking helpers
func IsValidationError(err error) bool {
	var validationErr ValidationError
	return errors.As(err, &validationErr)
}

// AsValidationError extracts a ValidationError from err
func AsValidationError(err error) (ValidationError, bool) {
	var validationErr ValidationError
	ok := errors.As(err, &validationErr)
	return validationErr, ok
}

// AsAPIError extracts an APIError from err
func AsAPIError(err error) (APIError, bool) {
	var apiErr APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// AsAuthError extracts an AuthError from err
func AsAuthError(err error) (AuthError, bool) {
	var authErr AuthError
	ok := errors.As(err, &authErr)
	return authErr, ok
}
