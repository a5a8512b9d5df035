package script

import "fmt"

// ValidationError represents an error in the script document structure.
type ValidationError struct {
	// Field is the name of the field with the error.
	Field string

	// Path is the location in the script document (e.g. "steps[0].op").
	Path string

	// Message describes the validation error.
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("script: validation error at %s: %s", e.Path, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("script: validation error in field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("script: validation error: %s", e.Message)
}

// ApplyError represents an error while applying a script step.
type ApplyError struct {
	// StepIndex is the zero-based index of the step that failed.
	StepIndex int

	// Select is the key path the step addressed.
	Select string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *ApplyError) Error() string {
	return fmt.Sprintf("script: step[%d] select=%q: %v", e.StepIndex, e.Select, e.Cause)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ApplyError) Unwrap() error {
	return e.Cause
}

// ParseError represents an error while parsing a script document.
type ParseError struct {
	// Path is the file path or source identifier.
	Path string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("script: failed to parse %s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("script: failed to parse: %v", e.Cause)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}
