package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Pattern validation errors
	ErrEmptyPattern   ErrorCode = "EMPTY_PATTERN"
	ErrInvalidPattern ErrorCode = "INVALID_PATTERN"

	// Draft editing errors
	ErrModifierLocked ErrorCode = "MODIFIER_LOCKED"
	ErrMissingNodeID  ErrorCode = "MISSING_NODE_ID"
	ErrSessionClosed  ErrorCode = "SESSION_CLOSED"
	ErrSessionBusy    ErrorCode = "SESSION_BUSY"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Store errors
	ErrSinkWrite     ErrorCode = "SINK_WRITE"
	ErrRuleNotFound  ErrorCode = "RULE_NOT_FOUND"
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrInvalidRecord ErrorCode = "INVALID_RECORD"
)

// MsgInvalidExpression is the text shown to the user for any pattern
// that cannot be committed, whether blank or not compilable.
const MsgInvalidExpression = "The expression is not a valid Regex"

// RuleError represents a structured error with code and details
type RuleError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RuleError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RuleError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *RuleError) Is(target error) bool {
	var targetErr *RuleError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RuleError with the given code and message
func New(code ErrorCode, message string) *RuleError {
	return &RuleError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RuleError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RuleError {
	return &RuleError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a RuleError
func Wrap(err error, code ErrorCode, message string) *RuleError {
	if err == nil {
		return nil
	}
	return &RuleError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *RuleError {
	if err == nil {
		return nil
	}
	return &RuleError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *RuleError) WithDetail(key string, value interface{}) *RuleError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *RuleError) WithDetails(details map[string]interface{}) *RuleError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var ruleErr *RuleError
	if errors.As(err, &ruleErr) {
		return ruleErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a RuleError
func GetErrorCode(err error) ErrorCode {
	var ruleErr *RuleError
	if errors.As(err, &ruleErr) {
		return ruleErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a RuleError
func GetErrorDetails(err error) map[string]interface{} {
	var ruleErr *RuleError
	if errors.As(err, &ruleErr) {
		return ruleErr.Details
	}
	return nil
}

// IsValidationError reports whether err is one of the pattern validation
// failures a user can correct by editing the draft.
func IsValidationError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrEmptyPattern || code == ErrInvalidPattern
}

// UserMessage returns the text to display for err. Both validation codes
// collapse to MsgInvalidExpression; other errors keep their own message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if IsValidationError(err) {
		return MsgInvalidExpression
	}
	var ruleErr *RuleError
	if errors.As(err, &ruleErr) {
		return ruleErr.Message
	}
	return err.Error()
}
