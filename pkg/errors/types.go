// Package errors provides typed errors for reposcan.
//
// This package defines domain-specific error types that provide structured
// error information for the scanner, the project store and configuration.
// All error types implement the standard error interface and support
// errors.Is() and errors.As() from the standard library and cockroachdb/errors.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ConfigError represents configuration-related errors.
type ConfigError struct {
	Field   string // Which config field has the issue
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
	}
	return "config error: " + e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// NewConfigErrorWithCause creates a new ConfigError with an underlying cause.
func NewConfigErrorWithCause(field, message string, cause error) *ConfigError {
	return &ConfigError{Field: field, Message: message, Cause: cause}
}

// RootResolutionError is returned when the scan root cannot be resolved to an
// existing filesystem entry.
type RootResolutionError struct {
	Root  string
	Cause error
}

// Error implements the error interface.
func (e *RootResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve scan root %s: %v", e.Root, e.Cause)
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *RootResolutionError) Unwrap() error {
	return e.Cause
}

// NewRootResolutionError creates a new RootResolutionError.
func NewRootResolutionError(root string, cause error) *RootResolutionError {
	return &RootResolutionError{Root: root, Cause: cause}
}

// DirectoryReadError is returned when a directory cannot be opened for a
// reason other than permission denial.
type DirectoryReadError struct {
	Dir   string
	Cause error
}

// Error implements the error interface.
func (e *DirectoryReadError) Error() string {
	return fmt.Sprintf("failed to read directory %s: %v", e.Dir, e.Cause)
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *DirectoryReadError) Unwrap() error {
	return e.Cause
}

// NewDirectoryReadError creates a new DirectoryReadError.
func NewDirectoryReadError(dir string, cause error) *DirectoryReadError {
	return &DirectoryReadError{Dir: dir, Cause: cause}
}

// EntryReadError is returned when the entries of an open directory cannot be
// materialized, e.g. because the directory was removed mid-listing.
type EntryReadError struct {
	Dir   string
	Cause error
}

// Error implements the error interface.
func (e *EntryReadError) Error() string {
	return fmt.Sprintf("failed to read entry in %s: %v", e.Dir, e.Cause)
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *EntryReadError) Unwrap() error {
	return e.Cause
}

// NewEntryReadError creates a new EntryReadError.
func NewEntryReadError(dir string, cause error) *EntryReadError {
	return &EntryReadError{Dir: dir, Cause: cause}
}

// StoreError represents failures reading or writing the project store.
type StoreError struct {
	Operation string // e.g., "Load", "Save", "Lock"
	Path      string
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("project store %s %s failed: %s: %v", e.Operation, e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("project store %s %s failed: %s", e.Operation, e.Path, e.Message)
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *StoreError) Unwrap() error {
	return e.Cause
}

// NewStoreError creates a new StoreError.
func NewStoreError(operation, path, message string) *StoreError {
	return &StoreError{Operation: operation, Path: path, Message: message}
}

// NewStoreErrorWithCause creates a new StoreError with an underlying cause.
func NewStoreErrorWithCause(operation, path, message string, cause error) *StoreError {
	return &StoreError{Operation: operation, Path: path, Message: message, Cause: cause}
}

// IsConfigError checks if an error or any error in its chain is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsScanError reports whether err is one of the errors that abort a scan.
func IsScanError(err error) bool {
	var rootErr *RootResolutionError
	var dirErr *DirectoryReadError
	var entryErr *EntryReadError
	return errors.As(err, &rootErr) || errors.As(err, &dirErr) || errors.As(err, &entryErr)
}

// IsStoreError checks if an error or any error in its chain is a StoreError.
func IsStoreError(err error) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr)
}

// Re-export commonly used functions from cockroachdb/errors for convenience.
// This allows consumers to use rserrors.Wrap() instead of importing two packages.
var (
	// New creates a new error with the given message.
	New = errors.New

	// Newf creates a new error with formatted message.
	Newf = errors.Newf

	// Wrap wraps an error with additional context.
	Wrap = errors.Wrap

	// Wrapf wraps an error with formatted additional context.
	Wrapf = errors.Wrapf

	// Is reports whether any error in err's chain matches target.
	Is = errors.Is

	// As finds the first error in err's chain that matches target.
	As = errors.As

	// Cause returns the root cause of an error.
	Cause = errors.Cause
)
