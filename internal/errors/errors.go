// Package errors provides structured error types for cmakegen with
// process exit code mapping.
//
// Every fatal condition in the tool is represented as a GenError carrying
// an error type, a stable code, and optional context (config field name,
// file path, underlying cause). The process boundary maps codes to exit
// statuses: a missing configuration file and an invalid configuration
// document terminate with distinct codes so callers can tell them apart.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeScan       ErrorType = "scan"
	ErrorTypeIO         ErrorType = "io"
	ErrorTypeInternal   ErrorType = "internal"
)

// Stable error codes used for exit status mapping and error comparison.
const (
	CodeConfigNotFound = "CONFIG_NOT_FOUND"
	CodeConfigInvalid  = "CONFIG_INVALID"
	CodeScanFailed     = "SCAN_FAILED"
	CodeWriteFailed    = "WRITE_FAILED"
)

// Process exit statuses. ExitConfigNotFound and ExitConfigInvalid are
// part of the tool's contract and must stay distinct.
const (
	ExitOK             = 0
	ExitConfigNotFound = 1
	ExitConfigInvalid  = 2
	ExitFailure        = 3
)

// GenError is a structured error with context.
type GenError struct {
	Type    ErrorType
	Code    string
	Message string
	// Field names the offending configuration field, when relevant.
	Field string
	// Path is the file or directory the error relates to.
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *GenError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Path != "" {
		parts = append(parts, e.Path)
	}

	parts = append(parts, e.Message)

	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("'%s' field", e.Field))
	}

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *GenError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison by type and code.
func (e *GenError) Is(target error) bool {
	var t *GenError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithField attaches the offending configuration field name.
func (e *GenError) WithField(field string) *GenError {
	e.Field = field

	return e
}

// Error creation functions

// NewConfigNotFound reports a configuration file that does not exist on disk.
func NewConfigNotFound(path string, cause error) *GenError {
	return &GenError{
		Type:    ErrorTypeConfig,
		Code:    CodeConfigNotFound,
		Message: "config file does not exist, check file on existence",
		Path:    path,
		Cause:   cause,
	}
}

// NewConfigInvalid reports a configuration document that parsed but does
// not satisfy the required structure.
func NewConfigInvalid(path, message string) *GenError {
	return &GenError{
		Type:    ErrorTypeConfig,
		Code:    CodeConfigInvalid,
		Message: message,
		Path:    path,
	}
}

// NewScanError reports a filesystem traversal failure.
func NewScanError(path string, cause error) *GenError {
	return &GenError{
		Type:    ErrorTypeScan,
		Code:    CodeScanFailed,
		Message: "scanning failed",
		Path:    path,
		Cause:   cause,
	}
}

// NewIOError reports an output write failure.
func NewIOError(path string, cause error) *GenError {
	return &GenError{
		Type:    ErrorTypeIO,
		Code:    CodeWriteFailed,
		Message: "writing output failed",
		Path:    path,
		Cause:   cause,
	}
}

// IsConfigNotFound checks whether an error is a missing-config-file error.
func IsConfigNotFound(err error) bool {
	var ge *GenError
	return errors.As(err, &ge) && ge.Code == CodeConfigNotFound
}

// IsConfigInvalid checks whether an error is an invalid-config error.
func IsConfigInvalid(err error) bool {
	var ge *GenError
	return errors.As(err, &ge) && ge.Code == CodeConfigInvalid
}

// ExitCode maps an error to the process exit status. A nil error maps to
// ExitOK; both configuration failures keep their dedicated codes and every
// other failure maps to the generic ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var ge *GenError
	if errors.As(err, &ge) {
		switch ge.Code {
		case CodeConfigNotFound:
			return ExitConfigNotFound
		case CodeConfigInvalid:
			return ExitConfigInvalid
		}
	}

	return ExitFailure
}
