package decision

import (
	"context"

	"mercator-hq/themisto/pkg/attr"
)

// Engine evaluates one decision request against the policies applicable to
// it and returns a set of results.
//
// Evaluate is a blocking call. Engines must absorb policy-composition
// failures into Indeterminate results with a processing-error status rather
// than returning an error; a returned error is reserved for faults in the
// engine itself and is surfaced to callers as an operational failure.
type Engine interface {
	Evaluate(ctx context.Context, req *attr.Request) (*Response, error)
}

// EvaluationContext gives collaborators invoked mid-evaluation — the policy
// composer and attribute resolvers — read access to the attributes of the
// request being evaluated.
type EvaluationContext interface {
	// Attribute returns the value bag for (category, id) and whether the
	// attribute is present on the request.
	Attribute(cat attr.Category, id string) ([]string, bool)

	// Single returns the value for (category, id) only when the bag holds
	// exactly one value.
	Single(cat attr.Category, id string) (string, bool)
}

// AttributeResolver supplies attribute values the request itself does not
// carry, typically from an external source such as a directory service or
// the caller's registered request context.
//
// Resolvers must never panic through a resolution; on internal failure they
// return an empty bag, which evaluation treats as "unknown", not "denied".
// A returned error is logged by the engine and likewise degrades to an empty
// bag.
type AttributeResolver interface {
	ResolveAttribute(ctx context.Context, cat attr.Category, id string, ectx EvaluationContext) ([]string, error)
}

// RequestContext adapts an attr.Request to the EvaluationContext interface.
// Engines wrap the request they are evaluating with it before consulting the
// policy finder or resolvers.
type RequestContext struct {
	Request *attr.Request
}

// Attribute implements EvaluationContext.
func (rc RequestContext) Attribute(cat attr.Category, id string) ([]string, bool) {
	return rc.Request.Attribute(cat, id)
}

// Single implements EvaluationContext.
func (rc RequestContext) Single(cat attr.Category, id string) (string, bool) {
	return rc.Request.Single(cat, id)
}
