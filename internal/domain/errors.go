package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrConfig       ErrorCode = "CONFIG_ERROR"

	// Quiz specific errors
	ErrCourseNotFound   ErrorCode = "COURSE_NOT_FOUND"
	ErrCourseNoContent  ErrorCode = "COURSE_NO_CONTENT"
	ErrQuizNotFound     ErrorCode = "QUIZ_NOT_FOUND"
	ErrLLMServiceError  ErrorCode = "LLM_SERVICE_ERROR"
	ErrMalformedPayload ErrorCode = "MALFORMED_PAYLOAD"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(ErrNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(ErrInternal, message, cause)
}

func NewConfigError(message string) *DomainError {
	return NewError(ErrConfig, message, nil)
}

func NewCourseNotFoundError(courseID string) *DomainError {
	return NewError(ErrCourseNotFound, fmt.Sprintf("Course id=%s not found", courseID), nil)
}

func NewCourseNoContentError() *DomainError {
	return NewError(ErrCourseNoContent, "Course has no content", nil)
}

func NewQuizNotFoundError(quizID string) *DomainError {
	return NewError(ErrQuizNotFound, fmt.Sprintf("Quiz not found with ID: %s", quizID), nil)
}

func NewLLMServiceError(cause error) *DomainError {
	return NewError(ErrLLMServiceError, "Failed to process with LLM service", cause)
}

// NewMalformedPayloadError marks a model payload that failed parsing or
// normalization. These errors are retryable exactly once by the generation
// orchestrator.
func NewMalformedPayloadError(message string, cause error) *DomainError {
	return NewError(ErrMalformedPayload, message, cause)
}

// ErrorKind returns the short tag used when reporting which class of error
// terminated a generation attempt: the DomainError code when available,
// otherwise the Go type name.
func ErrorKind(err error) string {
	if de, ok := err.(*DomainError); ok {
		return string(de.Code)
	}
	return fmt.Sprintf("%T", err)
}

// ValidationError describes a single invalid input field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ValidationErrors aggregates per-field validation failures for a request
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return e[0].Error()
}
