package infra

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"
)

// Static errors for err113 compliance.
var (
	ErrAuthenticationConfig = errors.New("no credential configured: pass one explicitly or call infra.SetDefaultCredential")
	ErrNoMoreItems          = errors.New("no more items")
	ErrConfigRequired       = errors.New("config is required")
	ErrEmptyPrivateKey      = errors.New("private key is required")
	ErrEmptyID              = errors.New("id is required")
	ErrInvalidEnvironment   = errors.New("environment must be sandbox or production")
	ErrUnsupportedQuery     = errors.New("unsupported query value type")
	ErrTrailingData         = errors.New("unexpected data after top-level value")
)

// ErrorDetail is a single element of an API error list.
type ErrorDetail struct {
	Code    string `json:"code"    yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// Error implements the error interface.
func (e ErrorDetail) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// APIError is returned when the server answers with a structured error list.
// Every entry of the list is kept.
type APIError struct {
	StatusCode int           `json:"status_code" yaml:"status_code"`
	Errors     []ErrorDetail `json:"errors"      yaml:"errors"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("api error (status %d)", e.StatusCode)
	}

	if len(e.Errors) == 1 {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Errors[0].Error())
	}

	parts := make([]string, 0, len(e.Errors))
	for _, detail := range e.Errors {
		parts = append(parts, detail.Error())
	}

	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, strings.Join(parts, "; "))
}

// FirstError returns the first error or nil.
func (e *APIError) FirstError() *ErrorDetail {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}

	return nil
}

// HasCode reports whether any entry carries the given code.
func (e *APIError) HasCode(code string) bool {
	for _, detail := range e.Errors {
		if detail.Code == code {
			return true
		}
	}

	return false
}

// NotFoundError is returned by GetByID style lookups when the server answers 404.
type NotFoundError struct {
	Resource string
	ID       string
	Cause    error
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Resource + " not found"
	}

	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return e.Cause
}

// InternalServerError is returned for HTTP 500 responses.
type InternalServerError struct {
	Body string
}

func (e *InternalServerError) Error() string {
	return "internal server error: the API is experiencing problems, no changes were applied"
}

// UnknownError is returned for non-success responses whose body is not a
// structured error list.
type UnknownError struct {
	StatusCode int
	Body       string
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("unknown error (status %d): %s", e.StatusCode, e.Body)
}

// TransportError wraps failures below the HTTP layer (dial, TLS, timeouts).
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// FormatError is returned when a timestamp or date cannot be parsed.
type FormatError struct {
	Value  string
	Layout string
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s value %q: %v", e.Layout, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when a JSON node does not have the expected shape.
type DecodeError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *DecodeError) Error() string {
	if e.Actual == "" {
		return fmt.Sprintf("%s: missing required %s", e.Path, e.Expected)
	}

	return fmt.Sprintf("%s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// UnknownResourceError is returned when a resource name has no registered descriptor.
type UnknownResourceError struct {
	Name string
}

func (e *UnknownResourceError) Error() string {
	return fmt.Sprintf("unknown resource %q", e.Name)
}

// ProtocolError is returned when the server answer contradicts the request,
// for example a bulk create returning fewer entities than were sent.
type ProtocolError struct {
	Resource string
	Expected int
	Actual   int
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: expected %d entities in response, got %d", e.Resource, e.Expected, e.Actual)
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	notFound := &NotFoundError{}
	if errors.As(err, &notFound) {
		return true
	}

	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}

	return false
}

// IsAPIError checks if the error carries a structured API error list.
func IsAPIError(err error) bool {
	apiErr := &APIError{}

	return errors.As(err, &apiErr)
}

// IsTransport checks if the error happened below the HTTP layer.
func IsTransport(err error) bool {
	transportErr := &TransportError{}

	return errors.As(err, &transportErr)
}

// ParseErrorResponse maps a non-success HTTP answer onto the error taxonomy.
func ParseErrorResponse(statusCode int, contentType string, body []byte) error {
	if statusCode == http.StatusInternalServerError {
		return &InternalServerError{Body: string(body)}
	}

	if isJSON(contentType, body) {
		var payload struct {
			Errors []ErrorDetail `json:"errors"`
		}

		err := json.Unmarshal(body, &payload)
		if err == nil && payload.Errors != nil {
			return &APIError{StatusCode: statusCode, Errors: payload.Errors}
		}
	}

	return &UnknownError{StatusCode: statusCode, Body: string(body)}
}

func isJSON(contentType string, body []byte) bool {
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err == nil && (mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")) {
			return true
		}
	}

	trimmed := strings.TrimSpace(string(body))

	return strings.HasPrefix(trimmed, "{")
}
