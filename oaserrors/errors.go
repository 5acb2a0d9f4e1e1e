package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrReference indicates a reference resolution failure.
	ErrReference = errors.New("reference error")

	// ErrCircularReference indicates a $ref chain that never reaches a value.
	ErrCircularReference = errors.New("circular reference")

	// ErrPathCollision indicates two path templates normalize to the same signature.
	ErrPathCollision = errors.New("path collision")

	// ErrComposition indicates an unsupported schema composition shape.
	ErrComposition = errors.New("unsupported composition")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to parse an OpenAPI document.
// This includes YAML/JSON deserialization errors and structural issues.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ReferenceError represents a failure to resolve a $ref.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// RefType indicates the reference type: "local", "file", or "http"
	RefType string
	// Component is the component table the ref points into (e.g., "schemas")
	Component string
	// IsCircular is true if the $ref chain loops without reaching a value
	IsCircular bool
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.IsCircular {
		msg = "circular reference"
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrReference, and also ErrCircularReference when IsCircular is set.
func (e *ReferenceError) Is(target error) bool {
	if target == ErrReference {
		return true
	}
	return target == ErrCircularReference && e.IsCircular
}

// PathCollisionError reports two path templates of one document that share
// a signature once parameter names are normalized (e.g., "/pets/{id}" and
// "/pets/{petId}").
type PathCollisionError struct {
	// Document identifies the offending side ("source" or "target")
	Document string
	// Signature is the normalized template both paths map to
	Signature string
	// First and Second are the colliding templates, in sorted order
	First  string
	Second string
}

// Error returns a human-readable error message.
func (e *PathCollisionError) Error() string {
	msg := "path collision"
	if e.Document != "" {
		msg += " in " + e.Document
	}
	return msg + fmt.Sprintf(": %q and %q share signature %q", e.First, e.Second, e.Signature)
}

// Is reports whether target matches this error type.
func (e *PathCollisionError) Is(target error) bool {
	return target == ErrPathCollision
}

// CompositionError reports a schema composition the differ cannot compare,
// such as an inline oneOf member without a discriminator mapping.
type CompositionError struct {
	// Path is the location of the composed schema in the change tree
	Path string
	// Keyword is the composition keyword (e.g., "oneOf")
	Keyword string
	// Message describes the unsupported shape
	Message string
}

// Error returns a human-readable error message.
func (e *CompositionError) Error() string {
	msg := "unsupported composition"
	if e.Keyword != "" {
		msg += " (" + e.Keyword + ")"
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *CompositionError) Is(target error) bool {
	return target == ErrComposition
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
