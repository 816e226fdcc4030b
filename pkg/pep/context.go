package pep

import "mercator-hq/themisto/pkg/attr"

// RequestContext is the caller-supplied state accompanying one enforcement
// call. The gateway references it — it never copies it — for exactly the
// duration of the call, so attribute resolvers invoked mid-evaluation can
// read it through the context registry.
type RequestContext struct {
	// Subject is the authenticated login id of the caller. Empty means the
	// caller is unauthenticated; that is a representable state, not an
	// error.
	Subject string

	// NoOp marks a check-only call: authorization is evaluated normally,
	// but a permit is reported as OutcomePermittedNoOp so the caller stops
	// before performing the side-effecting operation.
	NoOp bool

	// Environment carries environment attributes for the decision request,
	// keyed by attribute identifier.
	Environment attr.Values

	// Data is arbitrary caller state (for example the pending HTTP
	// request) for attribute resolvers. Opaque to the gateway.
	Data any
}
