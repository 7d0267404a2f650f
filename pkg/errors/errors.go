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
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCancelled    ErrorCode = "CANCELLED"

	// Identity errors
	ErrInvalidAlias  ErrorCode = "INVALID_ALIAS"
	ErrInvalidEmail  ErrorCode = "INVALID_EMAIL"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrRecordInvalid ErrorCode = "RECORD_INVALID"

	// Key errors
	ErrKeyGeneration ErrorCode = "KEY_GENERATION_FAILED"

	// Repository errors
	ErrNotInsideRepository  ErrorCode = "NOT_INSIDE_REPOSITORY"
	ErrUnsupportedURLScheme ErrorCode = "UNSUPPORTED_URL_SCHEME"
	ErrCloneFailed          ErrorCode = "CLONE_FAILED"
	ErrPostCloneSwitch      ErrorCode = "POST_CLONE_SWITCH_FAILED"
	ErrGitCommand           ErrorCode = "GIT_COMMAND"

	// Probe errors
	ErrProbeTimeout    ErrorCode = "PROBE_TIMEOUT"
	ErrProbeAuthFailed ErrorCode = "PROBE_AUTH_FAILED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// GimError represents a structured error with code and details
type GimError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *GimError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *GimError) Unwrap() error {
	return e.Wrapped
}

// Is matches any GimError carrying the same code.
func (e *GimError) Is(target error) bool {
	var targetErr *GimError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new GimError with the given code and message
func New(code ErrorCode, message string) *GimError {
	return &GimError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new GimError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *GimError {
	return &GimError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a GimError
func Wrap(err error, code ErrorCode, message string) *GimError {
	if err == nil {
		return nil
	}
	return &GimError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *GimError {
	if err == nil {
		return nil
	}
	return &GimError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *GimError) WithDetail(key string, value interface{}) *GimError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code anywhere in its chain
func IsErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		var gimErr *GimError
		if !errors.As(err, &gimErr) {
			return false
		}
		if gimErr.Code == code {
			return true
		}
		err = gimErr.Wrapped
	}
	return false
}

// GetErrorCode returns the outermost error code, or ErrUnknown if not a GimError
func GetErrorCode(err error) ErrorCode {
	var gimErr *GimError
	if errors.As(err, &gimErr) {
		return gimErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a GimError
func GetErrorDetails(err error) map[string]interface{} {
	var gimErr *GimError
	if errors.As(err, &gimErr) {
		return gimErr.Details
	}
	return nil
}
