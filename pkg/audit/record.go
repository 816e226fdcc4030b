package audit

import "time"

// Record is one persisted enforcement decision.
type Record struct {
	// ID is the record's unique identifier (UUID v4).
	ID string `json:"id"`

	// RecordedAt is when the record was created.
	RecordedAt time.Time `json:"recorded_at"`

	// CorrelationID is the enforcement call's correlation id; empty when
	// the decision engine was never contacted.
	CorrelationID string `json:"correlation_id,omitempty"`

	// Subject is the caller's login id; empty for unauthenticated calls.
	Subject string `json:"subject,omitempty"`

	// ActionID and API identify the operation.
	ActionID string `json:"action_id"`
	API      string `json:"api,omitempty"`

	// PID and Namespace identify the target resource.
	PID       string `json:"pid,omitempty"`
	Namespace string `json:"namespace,omitempty"`

	// Mode is the enforcement mode the call ran under.
	Mode string `json:"mode"`

	// Outcome is the tagged enforcement outcome.
	Outcome string `json:"outcome"`

	// Decision counts behind the outcome. For batch records the counts
	// span the whole batch.
	Permits        int `json:"permits"`
	Denies         int `json:"denies"`
	Indeterminates int `json:"indeterminates"`
	NotApplicables int `json:"not_applicables"`
	Unexpected     int `json:"unexpected"`

	// Batch is the number of requests in the batch this record belongs
	// to; zero for single-request calls.
	Batch int `json:"batch,omitempty"`

	// Duration is the total enforcement time.
	Duration time.Duration `json:"duration"`
}

// Query filters record retrieval.
type Query struct {
	// Subject filters by caller login id when non-empty.
	Subject string

	// ActionID filters by action identifier when non-empty.
	ActionID string

	// PID filters by target object when non-empty.
	PID string

	// Outcome filters by outcome name when non-empty.
	Outcome string

	// Since and Until bound RecordedAt; Since is inclusive, Until is
	// exclusive, and zero values are unbounded.
	Since time.Time
	Until time.Time

	// Limit caps the number of returned records. Zero means the backend
	// default.
	Limit int

	// Offset skips records for pagination.
	Offset int
}
