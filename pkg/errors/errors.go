package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	CodeBotError      = "BOT_ERROR"
	CodeAPIError      = "API_ERROR"
	CodeValidation    = "VALIDATION_ERROR"
	CodeInvalidHandle = "INVALID_HANDLE"
	CodeNetwork       = "NETWORK_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeExtraction    = "EXTRACTION_FAILED"
	CodeNoSuchAccount = "NO_SUCH_ACCOUNT"
)

// Extraction failure reasons
const (
	ReasonNoDataElement = "no-data-element"
	ReasonInvalidJSON   = "invalid-json"
)

type BotError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *BotError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *BotError) Unwrap() error {
	return e.Cause
}

func NewBotError(message, code string, statusCode int, context map[string]any) *BotError {
	return &BotError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

func (e *BotError) WithCause(cause error) *BotError {
	e.Cause = cause
	return e
}

// ErrorCode is promoted to every wrapper type embedding *BotError.
func (e *BotError) ErrorCode() string {
	return e.Code
}

type coder interface {
	ErrorCode() string
}

// CodeOf returns the code of the first coded error in err's chain, or an
// empty string when there is none.
func CodeOf(err error) string {
	var c coder
	if stderrors.As(err, &c) {
		return c.ErrorCode()
	}
	return ""
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

type APIError struct {
	*BotError
}

func NewAPIError(message string, statusCode int, context map[string]any) *APIError {
	return &APIError{
		BotError: &BotError{
			Message:    message,
			Code:       CodeAPIError,
			StatusCode: statusCode,
			Context:    context,
		},
	}
}

type ValidationError struct {
	*BotError
	Field string
	Value any
}

func NewValidationError(message, field string, value any) *ValidationError {
	return &ValidationError{
		BotError: &BotError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

// NewInvalidHandleError reports input that is empty once normalized.
func NewInvalidHandleError(raw string) *BotError {
	return &BotError{
		Message:    "handle is empty",
		Code:       CodeInvalidHandle,
		StatusCode: 400,
		Context:    map[string]any{"input": raw},
	}
}

// NetworkError is a transport failure or an unexpected upstream status.
type NetworkError struct {
	*BotError
	URL string
}

func NewNetworkError(message, url string, statusCode int, cause error) *NetworkError {
	return &NetworkError{
		BotError: &BotError{
			Message:    message,
			Code:       CodeNetwork,
			StatusCode: statusCode,
			Context:    map[string]any{"url": url},
			Cause:      cause,
		},
		URL: url,
	}
}

func NewNotFoundError(handle string) *BotError {
	return &BotError{
		Message:    fmt.Sprintf("account %q not found", handle),
		Code:       CodeNotFound,
		StatusCode: 404,
		Context:    map[string]any{"handle": handle},
	}
}

// ExtractionError means the page did not carry a usable data element.
type ExtractionError struct {
	*BotError
	Reason string
}

func NewExtractionError(reason string, cause error) *ExtractionError {
	return &ExtractionError{
		BotError: &BotError{
			Message:    "extraction failed: " + reason,
			Code:       CodeExtraction,
			StatusCode: 502,
			Context:    map[string]any{"reason": reason},
			Cause:      cause,
		},
		Reason: reason,
	}
}

// ExtractionReason returns the reason of an ExtractionError in err's chain.
func ExtractionReason(err error) string {
	var extErr *ExtractionError
	if stderrors.As(err, &extErr) {
		return extErr.Reason
	}
	return ""
}

func NewNoSuchAccountError() *BotError {
	return &BotError{
		Message:    "user object is empty",
		Code:       CodeNoSuchAccount,
		StatusCode: 404,
	}
}
