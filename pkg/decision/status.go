package decision

import "fmt"

// StatusCode is a machine-readable classification of why an evaluation
// produced its result.
type StatusCode string

const (
	// StatusOK means the decision was evaluated normally.
	StatusOK StatusCode = "ok"

	// StatusProcessingError means an internal failure — malformed policy
	// document, resolver fault, unknown combining algorithm — was absorbed
	// during evaluation. Results carrying it are Indeterminate.
	StatusProcessingError StatusCode = "processing-error"

	// StatusMissingAttribute means a required attribute could not be
	// resolved.
	StatusMissingAttribute StatusCode = "missing-attribute"
)

// Status pairs a code with a human-readable message.
type Status struct {
	Code    StatusCode
	Message string
}

// ProcessingError builds a processing-error status from a recovered failure.
func ProcessingError(cause error) *Status {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return &Status{Code: StatusProcessingError, Message: msg}
}

// OK reports whether the status is absent or carries StatusOK.
func (s *Status) OK() bool {
	return s == nil || s.Code == StatusOK
}

// String implements fmt.Stringer.
func (s *Status) String() string {
	if s == nil {
		return string(StatusOK)
	}
	if s.Message == "" {
		return string(s.Code)
	}
	return fmt.Sprintf("%s: %s", s.Code, s.Message)
}
