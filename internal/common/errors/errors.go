// Package errors provides standardized error handling for the query router
// and its collaborators.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeUnknownIntent    ErrorCode = "UNKNOWN_INTENT"
	ErrCodeLowConfidence    ErrorCode = "LOW_CONFIDENCE"
	ErrCodeHandlerNotFound  ErrorCode = "HANDLER_NOT_FOUND"
	ErrCodeHandlerPanic     ErrorCode = "HANDLER_PANIC"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
	ErrCodeDataServiceFailed        ErrorCode = "DATA_SERVICE_FAILED"
	ErrCodeDataNotFound             ErrorCode = "DATA_NOT_FOUND"

	ErrCodeCacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"

	ErrCodeRegistryLoadFailed       ErrorCode = "REGISTRY_LOAD_FAILED"
	ErrCodeRegistryValidationFailed ErrorCode = "REGISTRY_VALIDATION_FAILED"
	ErrCodeIntentOwnershipConflict  ErrorCode = "INTENT_OWNERSHIP_CONFLICT"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationFailedError creates a non-retryable entity validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Query is missing required entities",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownIntentError creates a non-retryable classification error.
func NewUnknownIntentError(query string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownIntent,
		Message:   "No intent matched the query",
		Details:   fmt.Sprintf("query: %s", query),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewLowConfidenceError creates a non-retryable error for a match below the
// routing threshold.
func NewLowConfidenceError(intent string, confidence, threshold float64) *StandardError {
	return &StandardError{
		Code:      ErrCodeLowConfidence,
		Message:   "Intent match below routing threshold",
		Details:   fmt.Sprintf("intent: %s, confidence: %.2f, threshold: %.2f", intent, confidence, threshold),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewHandlerNotFoundError creates a non-retryable dispatch error.
func NewHandlerNotFoundError(intent string) *StandardError {
	return &StandardError{
		Code:      ErrCodeHandlerNotFound,
		Message:   "No handler owns the matched intent",
		Details:   fmt.Sprintf("intent: %s", intent),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewHandlerPanicError wraps a recovered handler panic.
func NewHandlerPanicError(handlerName string, recovered interface{}) *StandardError {
	return &StandardError{
		Code:      ErrCodeHandlerPanic,
		Message:   "Handler panicked during execution",
		Details:   fmt.Sprintf("handler: %s, panic: %v", handlerName, recovered),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryTimeoutError creates a retryable query timeout error.
func NewQueryTimeoutError(operation string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryTimeout,
		Message:   "Database query timeout",
		Details:   fmt.Sprintf("operation: %s", operation),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDataServiceFailedError creates a retryable collaborator error.
func NewDataServiceFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDataServiceFailed,
		Message:   "Data service call failed",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDataNotFoundError creates a non-retryable missing-record error.
func NewDataNotFoundError(kind, key string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDataNotFound,
		Message:   fmt.Sprintf("No %s found", kind),
		Details:   fmt.Sprintf("key: %s", key),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRegistryLoadFailedError creates a non-retryable registry load error.
func NewRegistryLoadFailedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRegistryLoadFailed,
		Message:   "Intent registry could not be loaded",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRegistryValidationFailedError creates a non-retryable registry schema error.
func NewRegistryValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRegistryValidationFailed,
		Message:   "Intent registry failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewIntentOwnershipConflictError creates a non-retryable startup wiring error.
func NewIntentOwnershipConflictError(intent, first, second string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIntentOwnershipConflict,
		Message:   "Intent claimed by more than one handler",
		Details:   fmt.Sprintf("intent: %s, handlers: %s, %s", intent, first, second),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeDataServiceFailed:
		return 3

	case ErrCodeQueryTimeout,
		ErrCodeCacheUnavailable:
		return 2

	default:
		return 0 // Classification and validation errors: no retry
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "INTENT") || strings.Contains(codeStr, "CONFIDENCE") || strings.Contains(codeStr, "HANDLER"):
		return "ROUTING"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY") || strings.Contains(codeStr, "DATA"):
		return "DATA"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case strings.Contains(codeStr, "REGISTRY"):
		return "REGISTRY"
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
