package policy

import "fmt"

// LoadError represents a failure to load a policy document from disk:
// missing files, permission problems, size or encoding violations.
type LoadError struct {
	// Path is the file or directory that failed to load
	Path string

	// Message describes the error
	Message string

	// Cause is the underlying error, if any
	Cause error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load policy %q: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load policy %q: %s", e.Path, e.Message)
}

// Unwrap implements the errors.Unwrap interface for error chain support.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ParseError represents a malformed policy document envelope.
type ParseError struct {
	// Path is the source of the document that failed to parse
	Path string

	// Message describes the parsing error
	Message string

	// Cause is the underlying YAML error, if any
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error in %q: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error in %q: %s", e.Path, e.Message)
}

// Unwrap implements the errors.Unwrap interface for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// GenerateError represents a failure in the descriptor-to-policy generation
// step at startup.
type GenerateError struct {
	// Descriptor is the security descriptor path
	Descriptor string

	// Message describes the error
	Message string

	// Cause is the underlying error, if any
	Cause error
}

// Error implements the error interface.
func (e *GenerateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("policy generation from %q failed: %s: %v", e.Descriptor, e.Message, e.Cause)
	}
	return fmt.Sprintf("policy generation from %q failed: %s", e.Descriptor, e.Message)
}

// Unwrap implements the errors.Unwrap interface for error chain support.
func (e *GenerateError) Unwrap() error {
	return e.Cause
}

// UnknownAlgorithmError is returned when a combining-algorithm name is not
// present in the registry. It is raised at configuration time, never at
// first use.
type UnknownAlgorithmError struct {
	// Name is the unrecognized algorithm identifier
	Name string
}

// Error implements the error interface.
func (e *UnknownAlgorithmError) Error() string {
	return fmt.Sprintf("unknown combining algorithm %q", e.Name)
}
