// internal/common/errors/handler.go
package errors

import (
	"time"
)

// ErrorHandler normalizes failures from a unit of work and logs them in one shape.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle logs err against the given unit of work and returns it as a StandardError.
func (h *ErrorHandler) Handle(operation, workID string, err error) *StandardError {
	stdErr := h.normalizeError(err)
	h.logger.Error("Operation failed", map[string]interface{}{
		"operation":     operation,
		"workId":        workID,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
	})
	return stdErr
}

// normalizeError ensures we always have a StandardError
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}
