package pep

import "fmt"

// OperationalError represents a configuration or infrastructure fault in
// the enforcement path: an invalid enforcement mode, an inactive engine, a
// malformed request, or an engine failure. It is logged in full and
// surfaced to callers without policy detail.
type OperationalError struct {
	// Op is the gateway operation that failed
	Op string

	// Message describes the fault
	Message string

	// Cause is the underlying error, if any
	Cause error
}

// Error implements the error interface.
func (e *OperationalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("authorization %s failed: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("authorization %s failed: %s", e.Op, e.Message)
}

// Unwrap implements the errors.Unwrap interface for error chain support.
func (e *OperationalError) Unwrap() error {
	return e.Cause
}

func operational(op, message string, cause error) *OperationalError {
	return &OperationalError{Op: op, Message: message, Cause: cause}
}
