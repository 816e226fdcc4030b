package pep

import "time"

// AuditEvent is the record of one enforcement call handed to an audit sink.
type AuditEvent struct {
	// Time is when the call completed.
	Time time.Time

	// CorrelationID is the call's correlation id; empty when the engine
	// was never contacted (permit-all and deny-all modes).
	CorrelationID string

	// Subject is the caller's login id; empty for unauthenticated calls.
	Subject string

	// ActionID and API identify the operation.
	ActionID string
	API      string

	// PID and Namespace identify the target resource.
	PID       string
	Namespace string

	// Mode is the enforcement mode the call ran under.
	Mode string

	// Outcome is the tagged enforcement outcome.
	Outcome string

	// Tally counts the raw engine decisions behind the outcome. For batch
	// events the tally spans the whole batch and is repeated on every
	// event of that batch.
	Tally Tally

	// Batch is the number of requests in the batch this event belongs to;
	// zero for single-request calls.
	Batch int

	// Duration is the total enforcement time.
	Duration time.Duration
}

// AuditSink receives enforcement events. Implementations must not block the
// enforcement path; recording is expected to be asynchronous.
type AuditSink interface {
	RecordEnforcement(ev AuditEvent)
}
