// Package errors provides the storefront error taxonomy shared by the API
// client, the service facade and the view layer.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Error Codes
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeNetwork         ErrorCode = "NETWORK_ERROR"
	ErrCodeAPI             ErrorCode = "API_ERROR"
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden       ErrorCode = "FORBIDDEN"
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeInvalidResponse ErrorCode = "INVALID_RESPONSE"
	ErrCodeInvalidRequest  ErrorCode = "INVALID_REQUEST"

	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeCheckoutBlocked  ErrorCode = "CHECKOUT_VALIDATION_FAILED"

	ErrCodeSessionStoreFailed ErrorCode = "SESSION_STORE_FAILED"
)

// NetworkErrorMessage is the message carried by every transport failure.
const NetworkErrorMessage = "network error"

// ==========================
// 2. ApiError
// ==========================

// ApiError is a normalized failure of a remote call. Status 0 means the
// request never produced an HTTP response.
type ApiError struct {
	Code      ErrorCode `json:"code"`
	Status    int       `json:"status"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`

	cause error
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("ApiError[%d]: %s", e.Status, e.Message)
}

func (e *ApiError) Unwrap() error {
	return e.cause
}

// IsNetwork reports a transport failure (no HTTP status).
func (e *ApiError) IsNetwork() bool {
	return e.Code == ErrCodeNetwork
}

// IsUnauthorized reports a rejected or missing credential.
func (e *ApiError) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// NewNetworkError wraps a transport failure.
func NewNetworkError(err error) *ApiError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &ApiError{
		Code:      ErrCodeNetwork,
		Status:    0,
		Message:   NetworkErrorMessage,
		Details:   details,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewAPIError builds the error for a non-2xx response. An empty message is
// replaced with a generic description of the status.
func NewAPIError(status int, message string) *ApiError {
	if strings.TrimSpace(message) == "" {
		message = GenericStatusMessage(status)
	}
	return &ApiError{
		Code:      codeForStatus(status),
		Status:    status,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidResponseError is returned when a successful response body is not JSON.
func NewInvalidResponseError(status int, err error) *ApiError {
	return &ApiError{
		Code:      ErrCodeInvalidResponse,
		Status:    status,
		Message:   "invalid response body",
		Details:   errDetails(err),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewInvalidRequestError is returned when the request body cannot be encoded.
func NewInvalidRequestError(err error) *ApiError {
	return &ApiError{
		Code:      ErrCodeInvalidRequest,
		Status:    0,
		Message:   "invalid request",
		Details:   errDetails(err),
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// GenericStatusMessage describes a status when the server sent no message.
func GenericStatusMessage(status int) string {
	if text := http.StatusText(status); text != "" {
		return fmt.Sprintf("request failed with status %d (%s)", status, text)
	}
	return fmt.Sprintf("request failed with status %d", status)
}

func codeForStatus(status int) ErrorCode {
	switch status {
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	default:
		return ErrCodeAPI
	}
}

func errDetails(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// ==========================
// 3. ValidationError
// ==========================

// FieldError names a single failed form constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is raised before any network call when form input is rejected.
type ValidationError struct {
	Code      ErrorCode    `json:"code"`
	Message   string       `json:"message"`
	Fields    []FieldError `json:"fields,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("ValidationError[%s]: %s", e.Code, e.Message)
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("ValidationError[%s]: %s (%s)", e.Code, e.Message, strings.Join(parts, "; "))
}

// NewValidationError creates a form validation error.
func NewValidationError(message string, fields ...FieldError) *ValidationError {
	return &ValidationError{
		Code:      ErrCodeValidationFailed,
		Message:   message,
		Fields:    fields,
		Timestamp: time.Now().UTC(),
	}
}

// NewCheckoutError is raised when an order is not ready to be placed.
func NewCheckoutError(fields ...FieldError) *ValidationError {
	return &ValidationError{
		Code:      ErrCodeCheckoutBlocked,
		Message:   "order cannot be checked out",
		Fields:    fields,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Utility Functions
// ==========================

// AsAPIError unwraps err to an *ApiError.
func AsAPIError(err error) (*ApiError, bool) {
	var apiErr *ApiError
	if stderrors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// AsValidationError unwraps err to a *ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if stderrors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

func IsNetworkError(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.IsNetwork()
}

func IsUnauthorized(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.IsUnauthorized()
}

func IsValidationError(err error) bool {
	_, ok := AsValidationError(err)
	return ok
}

// CodeOf returns the ErrorCode carried by err, or "" for foreign errors.
func CodeOf(err error) ErrorCode {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Code
	}
	if vErr, ok := AsValidationError(err); ok {
		return vErr.Code
	}
	return ""
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "NETWORK"):
		return "NETWORK"
	case code == ErrCodeUnauthorized || code == ErrCodeForbidden:
		return "AUTH"
	case strings.Contains(codeStr, "SESSION"):
		return "SESSION"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "API") || code == ErrCodeNotFound:
		return "API"
	default:
		return "OTHER"
	}
}
