package pep

import (
	"context"

	"mercator-hq/themisto/pkg/attr"
	"mercator-hq/themisto/pkg/decision"
)

// ContextResolver serves attribute values out of the request context
// registered for the evaluation in flight. The decision request carries the
// correlation id as an action attribute; the resolver reads it back, looks
// the context up in the registry, and answers from the context's state.
//
// A missing or unparseable correlation id, or an already-unregistered
// context, resolves to an empty bag. Evaluation treats that as "attribute
// unknown", never as an implicit deny or permit.
type ContextResolver struct {
	registry *ContextRegistry
}

// NewContextResolver creates a resolver over the gateway's registry.
func NewContextResolver(registry *ContextRegistry) *ContextResolver {
	return &ContextResolver{registry: registry}
}

// ResolveAttribute implements decision.AttributeResolver.
func (r *ContextResolver) ResolveAttribute(_ context.Context, cat attr.Category, id string, ectx decision.EvaluationContext) ([]string, error) {
	rc, ok := r.contextFor(ectx)
	if !ok {
		return nil, nil
	}

	switch cat {
	case attr.CategorySubject:
		if id == attr.SubjectLoginID && rc.Subject != "" {
			return []string{rc.Subject}, nil
		}
	case attr.CategoryEnvironment:
		if values, ok := rc.Environment[id]; ok {
			return values, nil
		}
	}
	return nil, nil
}

// contextFor recovers the registered request context for the evaluation
// ectx belongs to.
func (r *ContextResolver) contextFor(ectx decision.EvaluationContext) (*RequestContext, bool) {
	raw, ok := ectx.Single(attr.CategoryAction, attr.ActionContextID)
	if !ok {
		return nil, false
	}
	cid, err := ParseCorrelationID(raw)
	if err != nil {
		return nil, false
	}
	return r.registry.Lookup(cid)
}
