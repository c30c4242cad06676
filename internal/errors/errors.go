// Package errors provides structured error handling for portmerge operations.
// It defines error codes, error types, and provides utilities for creating
// and handling errors with context and structured information.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents different types of errors that can occur.
type ErrorCode string

const (
	// General errors.
	CodeUnknown       ErrorCode = "UNKNOWN"
	CodeValidation    ErrorCode = "VALIDATION"
	CodeConfiguration ErrorCode = "CONFIGURATION"

	// Input source errors.
	CodeSourceMissing ErrorCode = "SOURCE_MISSING"
	CodeDocumentParse ErrorCode = "DOCUMENT_PARSE"
	CodeBaseDocument  ErrorCode = "BASE_DOCUMENT"
	CodeEncoding      ErrorCode = "ENCODING"
	CodeTableRead     ErrorCode = "TABLE_READ"
	CodeNoData        ErrorCode = "NO_DATA"

	// File system errors.
	CodeFileNotFound    ErrorCode = "FILE_NOT_FOUND"
	CodeDirectoryCreate ErrorCode = "DIRECTORY_CREATE"
	CodeOutputWrite     ErrorCode = "OUTPUT_WRITE"
)

// SourceError represents an error tied to one input or output file.
type SourceError struct {
	Code    ErrorCode
	Message string
	Path    string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Path != "" {
		msg = fmt.Sprintf("%s (path: %s)", msg, e.Path)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error for error unwrapping.
func (e *SourceError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error.
func (e *SourceError) WithContext(key string, value interface{}) *SourceError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewSourceError creates a new source error with the specified code and message.
func NewSourceError(code ErrorCode, message, path string) *SourceError {
	return &SourceError{
		Code:    code,
		Message: message,
		Path:    path,
		Context: make(map[string]interface{}),
	}
}

// WrapSourceError wraps an existing error as a source error.
func WrapSourceError(code ErrorCode, message, path string, err error) *SourceError {
	return &SourceError{
		Code:    code,
		Message: message,
		Path:    path,
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// ConfigError represents configuration-related errors.
type ConfigError struct {
	Code    ErrorCode
	Message string
	Field   string
	Value   interface{}
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s (field: %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new configuration error.
func NewConfigError(code ErrorCode, message string) *ConfigError {
	return &ConfigError{
		Code:    code,
		Message: message,
	}
}

// NewConfigFieldError creates a configuration error for a specific field.
func NewConfigFieldError(code ErrorCode, message, field string, value interface{}) *ConfigError {
	return &ConfigError{
		Code:    code,
		Message: message,
		Field:   field,
		Value:   value,
	}
}

// WrapConfigError wraps an existing error as a configuration error.
func WrapConfigError(code ErrorCode, message string, err error) *ConfigError {
	return &ConfigError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Utility functions for common error operations

// IsCode checks if an error, or any error it wraps, has a specific error code.
func IsCode(err error, code ErrorCode) bool {
	for err != nil {
		switch e := err.(type) {
		case *SourceError:
			if e.Code == code {
				return true
			}
		case *ConfigError:
			if e.Code == code {
				return true
			}
		}
		err = stderrors.Unwrap(err)
	}
	return false
}

// GetCode extracts the outermost error code found in the wrap chain.
func GetCode(err error) ErrorCode {
	var srcErr *SourceError
	if stderrors.As(err, &srcErr) {
		return srcErr.Code
	}
	var cfgErr *ConfigError
	if stderrors.As(err, &cfgErr) {
		return cfgErr.Code
	}
	return CodeUnknown
}

// IsFatal determines if an error indicates a fatal condition that should stop the run.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case CodeNoData, CodeConfiguration, CodeValidation:
		return true
	default:
		return false
	}
}

// Common error creation functions

// ErrSourceMissing creates an error for an absent or empty input resource.
func ErrSourceMissing(path, reason string) *SourceError {
	return NewSourceError(CodeSourceMissing, reason, path)
}

// ErrDocumentParse creates an error for a scan document that could not be parsed.
func ErrDocumentParse(path string, err error) *SourceError {
	return WrapSourceError(CodeDocumentParse, "Failed to parse scan document", path, err)
}

// ErrBaseDocument creates an error for a base document that could not be parsed.
func ErrBaseDocument(path string, err error) *SourceError {
	return WrapSourceError(CodeBaseDocument, "Failed to parse base scan document", path, err)
}

// ErrEncoding creates an error for a text resource no configured encoding could decode.
func ErrEncoding(path string, err error) *SourceError {
	return WrapSourceError(CodeEncoding, "Unable to decode resource", path, err)
}

// ErrTableRead creates an error for a tabular resource that could not be read.
func ErrTableRead(path string, err error) *SourceError {
	return WrapSourceError(CodeTableRead, "Failed to read table", path, err)
}

// ErrNoData creates the terminal error raised when no source produced any record.
func ErrNoData() *SourceError {
	return NewSourceError(CodeNoData, "No usable records found in any source", "")
}

// ErrOutputWrite creates an error for a sink that failed to persist records.
func ErrOutputWrite(path string, err error) *SourceError {
	return WrapSourceError(CodeOutputWrite, "Failed to write output", path, err)
}

// ErrConfigInvalid creates an error for invalid configuration.
func ErrConfigInvalid(field string, value interface{}) *ConfigError {
	return NewConfigFieldError(CodeValidation, "Invalid configuration value", field, value)
}

// ErrConfigMissing creates an error for missing required configuration.
func ErrConfigMissing(field string) *ConfigError {
	return NewConfigFieldError(CodeConfiguration, "Required configuration field missing", field, nil)
}
