package errors

import (
	"errors"
	"fmt"
)

// Code represents an error code for categorizing errors
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates the caller passed an unusable argument
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates a requested run or catalog entry was not found
	CodeNotFound Code = "not_found"

	// CodeAlreadyExists indicates an attempt to store a run that already exists
	CodeAlreadyExists Code = "already_exists"

	// CodeInternal indicates an internal invariant was broken
	CodeInternal Code = "internal"

	// CodeCatalog indicates malformed or inconsistent catalog data
	CodeCatalog Code = "catalog"

	// CodeConfig indicates the player count or constraint policy cannot
	// produce a valid distribution
	CodeConfig Code = "config"

	// CodeInsufficientCatalog indicates the catalog lacks enough eligible
	// entries for the requested distribution
	CodeInsufficientCatalog Code = "insufficient_catalog"
)

// Meta keys attached by the constructors below
const (
	MetaEntry     = "entry"
	MetaField     = "field"
	MetaCategory  = "category"
	MetaNeeded    = "needed"
	MetaAvailable = "available"
)

// Error represents an application error with code and metadata
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error

	// Meta contains additional context
	Meta map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context, keeping its code when it
// already carries one
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return &Error{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(appErr.Meta),
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// AlreadyExistsf creates a formatted already exists error
func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// Internalf creates a formatted internal error
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// Catalogf creates a catalog error for the named entry
func Catalogf(entry, format string, args ...any) *Error {
	return Newf(CodeCatalog, format, args...).WithMeta(MetaEntry, entry)
}

// Configf creates a formatted config error
func Configf(format string, args ...any) *Error {
	return Newf(CodeConfig, format, args...)
}

// InsufficientCatalog reports that category (an alignment or "profession")
// needs more entries than the catalog can supply
func InsufficientCatalog(category string, needed, available int) *Error {
	return Newf(CodeInsufficientCatalog,
		"catalog cannot supply %d %s entries (only %d eligible)", needed, category, available).
		WithMeta(MetaCategory, category).
		WithMeta(MetaNeeded, needed).
		WithMeta(MetaAvailable, available)
}

// Is checks if the error is of a specific code
func Is(err error, code Code) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return Is(err, CodeInvalidArgument)
}

// IsAlreadyExists checks if the error is an already exists error
func IsAlreadyExists(err error) bool {
	return Is(err, CodeAlreadyExists)
}

// IsInternal checks if the error is an internal error
func IsInternal(err error) bool {
	return Is(err, CodeInternal)
}

// IsCatalog checks if the error is a catalog error
func IsCatalog(err error) bool {
	return Is(err, CodeCatalog)
}

// IsConfig checks if the error is a config error
func IsConfig(err error) bool {
	return Is(err, CodeConfig)
}

// IsInsufficientCatalog checks if the error is an insufficient catalog error
func IsInsufficientCatalog(err error) bool {
	return Is(err, CodeInsufficientCatalog)
}

// GetCode returns the error code
func GetCode(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the error metadata
func GetMeta(err error) map[string]any {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Meta
	}
	return nil
}

// copyMeta creates a copy of the metadata map
func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
