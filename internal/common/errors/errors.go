// Package errors provides the standardized error taxonomy shared by the scoring engine and the
// Zeebe workers that expose it.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Engine errors. None of them are retryable: the same input always fails the same way.
const (
	ErrCodeInvalidCategory   ErrorCode = "INVALID_CATEGORY"
	ErrCodeIncompleteContext ErrorCode = "INCOMPLETE_CONTEXT"
	ErrCodeInvalidContext    ErrorCode = "INVALID_CONTEXT"
	ErrCodeInvalidWeight     ErrorCode = "INVALID_WEIGHT"
	ErrCodeOutOfRangeScore   ErrorCode = "OUT_OF_RANGE_SCORE"
	ErrCodeInvalidTables     ErrorCode = "INVALID_TABLES"
)

// Worker errors.
const (
	ErrCodeParseError            ErrorCode = "PARSE_ERROR"
	ErrCodeInputValidationFailed ErrorCode = "INPUT_VALIDATION_FAILED"
	ErrCodeEvaluationFailed      ErrorCode = "EVALUATION_FAILED"
	ErrCodeAnalyticsWriteFailed  ErrorCode = "ANALYTICS_WRITE_FAILED"
	ErrCodeNotificationFailed    ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeInternal              ErrorCode = "INTERNAL_ERROR"
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
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Is matches another *StandardError by code, so errors.Is(err, &StandardError{Code: c}) works
// through wrapping.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// HasCode reports whether err, or anything it wraps, is a StandardError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	if !stderrors.As(err, &stdErr) {
		return false
	}
	return stdErr.Code == code
}

// CodeOf returns the code of the first StandardError in err's chain, or ErrCodeInternal.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ErrCodeInternal
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewInvalidCategoryError is raised when a category key is not part of the scoring tables.
func NewInvalidCategoryError(category string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidCategory,
		Message:   "Unrecognized evaluation category",
		Details:   fmt.Sprintf("category: %s", category),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewIncompleteContextError is raised when a required context field is missing and no default
// policy exists for it.
func NewIncompleteContextError(field string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIncompleteContext,
		Message:   "Required context field is missing",
		Details:   fmt.Sprintf("field: %s", field),
		Retryable: false,
		Metadata:  map[string]interface{}{"field": field},
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidContextError is raised when a context field holds a value outside its enumeration.
func NewInvalidContextError(field, value string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidContext,
		Message:   "Context field has an unrecognized value",
		Details:   fmt.Sprintf("field: %s, value: %s", field, value),
		Retryable: false,
		Metadata:  map[string]interface{}{"field": field, "value": value},
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidWeightError is raised for negative weights or an all-zero weight map.
func NewInvalidWeightError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidWeight,
		Message:   "Invalid category weight",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewOutOfRangeScoreError describes a broken clamp invariant. It is raised by panic, never
// returned.
func NewOutOfRangeScoreError(category string, value float64) *StandardError {
	return &StandardError{
		Code:      ErrCodeOutOfRangeScore,
		Message:   "Computed score outside [0,100]",
		Details:   fmt.Sprintf("category: %s, value: %g", category, value),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidTablesError is raised when scoring tables fail validation at load time.
func NewInvalidTablesError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidTables,
		Message:   "Scoring tables are invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewParseError wraps a job variable decoding failure.
func NewParseError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeParseError,
		Message:   "Failed to parse job variables",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInputValidationFailedError reports JSON schema violations of a job input.
func NewInputValidationFailedError(violations []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInputValidationFailed,
		Message:   "Input failed schema validation",
		Details:   strings.Join(violations, "; "),
		Retryable: false,
		Metadata:  map[string]interface{}{"violations": violations},
		Timestamp: time.Now().UTC(),
	}
}

// NewEvaluationFailedError wraps an unexpected engine failure.
func NewEvaluationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEvaluationFailed,
		Message:   "Evaluation failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// FromPanic converts a recovered panic value. A StandardError anywhere in an error's chain keeps
// its code; anything else becomes EVALUATION_FAILED.
func FromPanic(r interface{}) *StandardError {
	if err, ok := r.(error); ok {
		var stdErr *StandardError
		if stderrors.As(err, &stdErr) {
			return stdErr
		}
		return NewEvaluationFailedError(fmt.Errorf("panic: %w", err))
	}
	return NewEvaluationFailedError(fmt.Errorf("panic: %v", r))
}

// NewAnalyticsWriteFailedError creates a retryable sink error.
func NewAnalyticsWriteFailedError(sink string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAnalyticsWriteFailed,
		Message:   "Analytics sink write failed",
		Details:   fmt.Sprintf("sink: %s, error: %s", sink, err.Error()),
		Retryable: true,
		Metadata:  map[string]interface{}{"sink": sink},
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeAnalyticsWriteFailed,
		ErrCodeNotificationFailed:
		return 3
	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      string(stdErr.Code),
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// GetErrorCategory groups codes for log dashboards.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeInvalidCategory, ErrCodeIncompleteContext, ErrCodeInvalidContext,
		ErrCodeInvalidWeight, ErrCodeOutOfRangeScore, ErrCodeInvalidTables:
		return "ENGINE"
	case ErrCodeParseError, ErrCodeInputValidationFailed:
		return "VALIDATION"
	case ErrCodeAnalyticsWriteFailed:
		return "ANALYTICS"
	case ErrCodeNotificationFailed:
		return "NOTIFICATION"
	default:
		return "OTHER"
	}
}
