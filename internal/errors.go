package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
	ErrorTypeExternal     ErrorType = "EXTERNAL_ERROR"
	ErrorTypeNetwork      ErrorType = "NETWORK_ERROR"
)

type ErrorCode string

const (
	ErrCodeNetwork          ErrorCode = "NETWORK_ERROR"
	ErrCodeBadRequest       ErrorCode = "BAD_REQUEST"
	ErrCodeSessionExpired   ErrorCode = "SESSION_EXPIRED"
	ErrCodeForbidden        ErrorCode = "FORBIDDEN"
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrCodeConflict         ErrorCode = "CONFLICT"
	ErrCodeUnprocessable    ErrorCode = "UNPROCESSABLE"
	ErrCodeServerError      ErrorCode = "SERVER_ERROR"
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeUnknown          ErrorCode = "UNKNOWN_ERROR"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeNotAuthenticated   ErrorCode = "NOT_AUTHENTICATED"
	ErrCodeDuplicateSerial    ErrorCode = "DUPLICATE_SERIAL"
	ErrCodeEmptyCount         ErrorCode = "EMPTY_COUNT"
	ErrCodeBulkPartial        ErrorCode = "BULK_PARTIAL_FAILURE"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
	// Upstream is the message the backend returned, if any.
	Upstream string `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldErrors(errs []ValidationError) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details:    ValidationErrors{Errors: errs},
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return NewValidationFieldErrors([]ValidationError{{Field: field, Message: message, Code: string(code)}})
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       ErrCodeServerError,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewNetworkError(cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeNetwork,
		Code:       ErrCodeNetwork,
		Message:    "backend unreachable",
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// FromStatus maps a backend HTTP status to an AppError. Only the status
// decides the code; upstream is kept so 400/409/422 can show it verbatim.
func FromStatus(status int, upstream string) *AppError {
	e := &AppError{StatusCode: status, Upstream: upstream, Message: upstream}
	switch {
	case status == http.StatusBadRequest:
		e.Type, e.Code = ErrorTypeValidation, ErrCodeBadRequest
	case status == http.StatusUnauthorized:
		e.Type, e.Code = ErrorTypeUnauthorized, ErrCodeSessionExpired
	case status == http.StatusForbidden:
		e.Type, e.Code = ErrorTypeForbidden, ErrCodeForbidden
	case status == http.StatusNotFound:
		e.Type, e.Code = ErrorTypeNotFound, ErrCodeNotFound
	case status == http.StatusConflict:
		e.Type, e.Code = ErrorTypeConflict, ErrCodeConflict
	case status == http.StatusUnprocessableEntity:
		e.Type, e.Code = ErrorTypeValidation, ErrCodeUnprocessable
	case status >= 500:
		e.Type, e.Code = ErrorTypeExternal, ErrCodeServerError
		e.StatusCode = http.StatusBadGateway
	default:
		e.Type, e.Code = ErrorTypeExternal, ErrCodeUnknown
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

var (
	ErrInvalidCredentials = NewUnauthorizedError("Invalid username or password", ErrCodeInvalidCredentials)
	ErrNotAuthenticated   = NewUnauthorizedError("Not authenticated", ErrCodeNotAuthenticated)
	ErrSessionExpired     = NewUnauthorizedError("Session expired", ErrCodeSessionExpired)
	ErrAdminRequired      = NewForbiddenError("Administrator role required", ErrCodeForbidden)
)

// NewDuplicateSerialError lists the form rows repeating an earlier serial.
func NewDuplicateSerialError(fields []ValidationError) *AppError {
	return NewValidationError("Duplicate serial number in form", ErrCodeDuplicateSerial).
		WithDetails(ValidationErrors{Errors: fields})
}

func NewEmptyCountError() *AppError {
	return NewValidationError("No equipment counted", ErrCodeEmptyCount)
}

// NewBulkPartialError summarizes the rows of a bulk add the backend refused.
func NewBulkPartialError(failed, total int, serials []string) *AppError {
	return &AppError{
		Type:       ErrorTypeExternal,
		Code:       ErrCodeBulkPartial,
		Message:    fmt.Sprintf("%d of %d additions failed", failed, total),
		StatusCode: http.StatusMultiStatus,
		Details: map[string]interface{}{
			"Failed":  failed,
			"Total":   total,
			"Serials": strings.Join(serials, ", "),
		},
	}
}

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsSessionExpired reports whether err came from a backend 401.
func IsSessionExpired(err error) bool {
	appErr, ok := IsAppError(err)
	return ok && appErr.Code == ErrCodeSessionExpired
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
