package errors

import (
	"fmt"
	"io"
)

// Error codes
const (
	// Authentication errors
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"

	// Validation errors
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeInvalidFormat = "INVALID_FORMAT"

	// Resource errors
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"

	// Service errors
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// CLIError is a failure reported to the user as a single line.
// Internal errors also abort the command; the others leave the exit status alone.
type CLIError struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface
func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the underlying error
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// Fatal reports whether the command should fail.
func (e *CLIError) Fatal() bool {
	return e.Code == ErrCodeInternalError
}

// NewCLIError creates a new CLIError
func NewCLIError(code, message string) *CLIError {
	return &CLIError{
		Code:    code,
		Message: message,
	}
}

// Predefined errors
var (
	ErrNotLoggedIn      = NewCLIError(ErrCodeUnauthorized, "User not logged in")
	ErrLoginRequired    = NewCLIError(ErrCodeUnauthorized, "Please login first")
	ErrSignupFailed     = NewCLIError(ErrCodeAlreadyExists, "Signup failed")
	ErrLoginFailed      = NewCLIError(ErrCodeInvalidCredentials, "Login failed")
	ErrTaskNotFound     = NewCLIError(ErrCodeNotFound, "Task not found or access denied")
	ErrInvalidTaskID    = NewCLIError(ErrCodeInvalidInput, "Invalid task ID")
	ErrInvalidPriority  = NewCLIError(ErrCodeInvalidInput, "Invalid priority")
	ErrInvalidDate      = NewCLIError(ErrCodeInvalidFormat, "Invalid date format. Use YYYY-MM-DD")
	ErrInvalidSortField = NewCLIError(ErrCodeInvalidInput, "Invalid sort field")
	ErrInvalidOrder     = NewCLIError(ErrCodeInvalidInput, "Invalid sort order. Use ASC or DESC")
	ErrTitleRequired    = NewCLIError(ErrCodeInvalidInput, "Title is required")
	ErrTitleEmpty       = NewCLIError(ErrCodeInvalidInput, "Title cannot be empty")
	ErrNoChanges        = NewCLIError(ErrCodeInvalidInput, "No changes specified")
)

// Internal wraps an unexpected failure.
func Internal(err error) *CLIError {
	return &CLIError{
		Code:    ErrCodeInternalError,
		Message: "An error occurred",
		Cause:   err,
	}
}

// Respond prints err as one line to w and returns it if the command must fail.
func Respond(w io.Writer, err *CLIError) error {
	fmt.Fprintln(w, err.Error())
	if err.Fatal() {
		return err
	}
	return nil
}
