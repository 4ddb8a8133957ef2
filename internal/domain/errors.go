package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	CodeNotFound       ErrorCode = "NOT_FOUND"

	// Pipeline specific errors
	CodeMissingConfig    ErrorCode = "MISSING_CONFIG"
	CodeFeedUnavailable  ErrorCode = "FEED_UNAVAILABLE"
	CodeLLMService       ErrorCode = "LLM_SERVICE_ERROR"
	CodeInvalidCandidate ErrorCode = "INVALID_CANDIDATE"
	CodeNothingToWrite   ErrorCode = "NOTHING_TO_WRITE"

	// API specific errors
	CodeQuestionNotFound ErrorCode = "QUESTION_NOT_FOUND"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
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
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewInvalidRequestError(message string) *DomainError {
	return NewError(CodeInvalidRequest, message, nil)
}

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewMissingConfigError(name string) *DomainError {
	return NewError(CodeMissingConfig, fmt.Sprintf("%s is not set", name), nil)
}

func NewFeedUnavailableError() *DomainError {
	return NewError(CodeFeedUnavailable, "no news items could be fetched from any feed", nil)
}

func NewLLMServiceError(err error) *DomainError {
	return NewError(CodeLLMService, "failed to generate questions with the LLM service", err)
}

func NewInvalidCandidateError(reason string) *DomainError {
	return NewError(CodeInvalidCandidate, reason, nil)
}

func NewNothingToWriteError(message string) *DomainError {
	return NewError(CodeNothingToWrite, message, nil)
}

func NewQuestionNotFoundError(id int) *DomainError {
	return NewError(CodeQuestionNotFound, fmt.Sprintf("question not found with ID: %d", id), nil)
}
