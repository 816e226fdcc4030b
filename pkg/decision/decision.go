package decision

// Decision is the outcome of evaluating one decision request against a
// policy set.
type Decision string

const (
	// Permit means an applicable policy explicitly allowed the request.
	Permit Decision = "Permit"

	// Deny means an applicable policy explicitly denied the request.
	Deny Decision = "Deny"

	// Indeterminate means an error prevented the engine from reaching a
	// decision; the accompanying Status carries the cause.
	Indeterminate Decision = "Indeterminate"

	// NotApplicable means no policy target matched the request.
	NotApplicable Decision = "NotApplicable"
)

// Known reports whether d is one of the four enumerated decisions. Anything
// else is an unexpected code from a future or broken engine and must be
// treated as deny-triggering by aggregation, never silently ignored.
func (d Decision) Known() bool {
	switch d {
	case Permit, Deny, Indeterminate, NotApplicable:
		return true
	default:
		return false
	}
}

// Result is one decision for one resource within an evaluation response.
type Result struct {
	// Decision is the evaluated outcome.
	Decision Decision

	// Status describes why the decision was reached; nil means ok.
	Status *Status

	// Resource is the resource identifier this result applies to, when the
	// engine reports per-resource results. May be empty.
	Resource string
}

// Response is the engine's answer to one Evaluate call: a set of results,
// one per evaluated resource.
type Response struct {
	Results []Result
}

// IndeterminateResponse builds the response an engine returns when it could
// not evaluate a request at all, carrying a machine-readable status instead
// of an error.
func IndeterminateResponse(status *Status) *Response {
	return &Response{Results: []Result{{
		Decision: Indeterminate,
		Status:   status,
	}}}
}
