// Package errors defines the typed errors shared by the snipdeck loader,
// client, HTTP API and CLI. Each type supports errors.Is against one of the
// sentinels below so callers can branch without string matching.
package errors

import (
	"errors"
	"fmt"
)

// Aliases for the standard library so callers need a single errors import.
var (
	New  = errors.New
	Join = errors.Join
	Is   = errors.Is
	As   = errors.As
)

// Sentinels.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrCategoryNotFound = errors.New("category not found")
	ErrLoading          = errors.New("catalog loading")
)

// NotFoundError reports a missing snippet, category or other resource.
// A category NotFoundError also matches ErrCategoryNotFound.
type NotFoundError struct {
	Resource string
	ID       string
}

// NewNotFoundError returns a NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is matches ErrNotFound, and ErrCategoryNotFound for categories.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound || (target == ErrCategoryNotFound && e.Resource == "category")
}

// ValidationError reports invalid input. Field names the offending input
// ("category", "title", "port") when known.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// NewValidationError returns a ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// Is matches ErrInvalidInput.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// LoadError reports that one category module could not be loaded.
type LoadError struct {
	Category string
	Source   string
	Err      error
}

// NewLoadError returns a LoadError.
func NewLoadError(category, source string, err error) *LoadError {
	return &LoadError{Category: category, Source: source, Err: err}
}

func (e *LoadError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("loading category %s: %v", e.Category, e.Err)
	}
	return fmt.Sprintf("loading category %s from %s: %v", e.Category, e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ConfigError reports a bad configuration value or file.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// NewConfigError returns a ConfigError.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

func (e *ConfigError) Error() string {
	if e.Component == "" {
		return "configuration error: " + e.Message
	}
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ParseError reports a malformed snippet file.
type ParseError struct {
	Format  string
	File    string
	Message string
	Err     error
}

// NewParseError returns a ParseError.
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
	}
	return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IOError reports a failed filesystem or network operation on Path.
type IOError struct {
	Operation string
	Path      string
	Err       error
}

// NewIOError returns an IOError.
func NewIOError(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("IO error during %s: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ResourceError reports a failed operation on a named resource, such as
// creating the client.
type ResourceError struct {
	Operation string
	Resource  string
	ID        string
	Err       error
}

func (e *ResourceError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Resource, e.Err)
	}
	return fmt.Sprintf("failed to %s %s %s: %v", e.Operation, e.Resource, e.ID, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// IsNotFound reports whether err matches ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsCategoryNotFound reports whether err is a missing category module.
func IsCategoryNotFound(err error) bool { return errors.Is(err, ErrCategoryNotFound) }

// IsValidationError reports whether err matches ErrInvalidInput.
func IsValidationError(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsLoading reports whether err matches ErrLoading.
func IsLoading(err error) bool { return errors.Is(err, ErrLoading) }

// WrapValidation converts err into a ValidationError for field. Nil stays nil.
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps err as an IOError. Nil stays nil.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource wraps err as a ResourceError. Nil stays nil.
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return &ResourceError{Operation: operation, Resource: resource, ID: id, Err: err}
}

// WrapParse wraps err as a ParseError. Nil stays nil.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapLoad wraps err as a LoadError. Nil stays nil.
func WrapLoad(category, source string, err error) error {
	if err == nil {
		return nil
	}
	return NewLoadError(category, source, err)
}
