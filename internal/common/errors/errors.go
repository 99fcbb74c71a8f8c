// Package errors provides the standardized error type shared by the dispatcher, the
// front-end and the recommendation worker.
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

const (
	ErrCodeQueueSendFailed    ErrorCode = "QUEUE_SEND_FAILED"
	ErrCodeQueueReceiveFailed ErrorCode = "QUEUE_RECEIVE_FAILED"
	ErrCodeQueueDeleteFailed  ErrorCode = "QUEUE_DELETE_FAILED"

	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"

	ErrCodeStoreLookupFailed ErrorCode = "STORE_LOOKUP_FAILED"
	ErrCodeStoreWriteFailed  ErrorCode = "STORE_WRITE_FAILED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeIntentRecognitionFailed ErrorCode = "INTENT_RECOGNITION_FAILED"

	ErrCodeMessageInvalid ErrorCode = "MESSAGE_INVALID"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// Is matches another *StandardError by code, so errors.Is(err, &StandardError{Code: X}) works.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithMetadata attaches a key/value pair and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

func newError(code ErrorCode, message string, retryable bool, cause error) *StandardError {
	se := &StandardError{
		Code:      code,
		Message:   message,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
	if cause != nil {
		se.Details = cause.Error()
	}
	return se
}

// ==========================
// 2. Error Constructors
// ==========================

// NewQueueSendFailedError wraps a failed enqueue.
func NewQueueSendFailedError(err error) *StandardError {
	return newError(ErrCodeQueueSendFailed, "Failed to enqueue dining request", true, err)
}

// NewQueueReceiveFailedError wraps a failed dequeue.
func NewQueueReceiveFailedError(err error) *StandardError {
	return newError(ErrCodeQueueReceiveFailed, "Failed to receive from request queue", true, err)
}

// NewQueueDeleteFailedError wraps a failed delete. The message becomes visible again.
func NewQueueDeleteFailedError(err error) *StandardError {
	return newError(ErrCodeQueueDeleteFailed, "Failed to delete queue message", true, err)
}

func NewSearchQueryFailedError(index string, err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, "Search index query failed", true, err).
		WithMetadata("index", index)
}

func NewStoreLookupFailedError(store string, err error) *StandardError {
	return newError(ErrCodeStoreLookupFailed, fmt.Sprintf("Lookup in %s failed", store), true, err)
}

func NewStoreWriteFailedError(store string, err error) *StandardError {
	return newError(ErrCodeStoreWriteFailed, fmt.Sprintf("Write to %s failed", store), true, err)
}

// NewNotificationSendFailedError wraps a mail delivery failure.
func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification delivery failed", true, err).
		WithMetadata("type", notificationType)
}

func NewIntentRecognitionFailedError(err error) *StandardError {
	return newError(ErrCodeIntentRecognitionFailed, "Intent service call failed", true, err)
}

// NewMessageInvalidError reports a queue body that can never be processed.
func NewMessageInvalidError(details string) *StandardError {
	se := newError(ErrCodeMessageInvalid, "Queue message is not a valid dining request", false, nil)
	se.Details = details
	return se
}

// ==========================
// 3. Utility Functions
// ==========================

// AsStandardError extracts a *StandardError from err's chain.
func AsStandardError(err error) (*StandardError, bool) {
	var se *StandardError
	if stderrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// CodeOf returns the code of the first StandardError in err's chain, or INTERNAL_ERROR.
func CodeOf(err error) ErrorCode {
	if se, ok := AsStandardError(err); ok {
		return se.Code
	}
	return ErrCodeInternal
}

// IsRetryable reports whether redelivering the work could succeed.
func IsRetryable(err error) bool {
	if se, ok := AsStandardError(err); ok {
		return se.Retryable
	}
	return false
}

// GetErrorCategory returns a human-readable category for logging.
func GetErrorCategory(code ErrorCode) string {
	switch {
	case strings.HasPrefix(string(code), "QUEUE_"):
		return "QUEUE"
	case strings.HasPrefix(string(code), "STORE_"):
		return "STORE"
	case code == ErrCodeSearchQueryFailed:
		return "SEARCH"
	case code == ErrCodeNotificationSendFailed:
		return "NOTIFICATION"
	case code == ErrCodeIntentRecognitionFailed:
		return "INTENT_SERVICE"
	case code == ErrCodeMessageInvalid:
		return "VALIDATION"
	default:
		return "UNKNOWN"
	}
}
