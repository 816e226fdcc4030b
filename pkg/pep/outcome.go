package pep

// Outcome is the tagged result of an enforcement call. Denial is a normal
// outcome, not an error; errors are reserved for operational faults.
type Outcome int

const (
	// OutcomeDenied means the call is not authorized.
	OutcomeDenied Outcome = iota

	// OutcomePermitted means the call is authorized and the caller should
	// proceed with the operation.
	OutcomePermitted

	// OutcomePermittedNoOp means the call is authorized but the caller
	// asked for a check-only evaluation: treat it as success and perform
	// no side effects.
	OutcomePermittedNoOp
)

// Permitted reports whether the outcome authorizes the call, including the
// check-only variant.
func (o Outcome) Permitted() bool {
	return o == OutcomePermitted || o == OutcomePermittedNoOp
}

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeDenied:
		return "denied"
	case OutcomePermitted:
		return "permitted"
	case OutcomePermittedNoOp:
		return "permitted-noop"
	default:
		return "unknown"
	}
}
